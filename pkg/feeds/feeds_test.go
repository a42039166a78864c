package feeds

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write feeds file: %v", err)
	}
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	path := writeFile(t, "feeds.yaml", `
feeds:
  - id: hello-posts
    name: Posts about hello
    kind: posts
    query: hello
  - id: usd-eur
    kind: Exchange_Rate
    query: " usd/eur "
  - id: off
    kind: posts
    enabled: false
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 3 {
		t.Fatalf("expected 3 feeds, got %d", len(reg.All()))
	}
	enabled := reg.Enabled()
	if len(enabled) != 2 {
		t.Fatalf("expected 2 enabled feeds, got %#v", enabled)
	}

	rate := reg.All()[1]
	if rate.ID != "usd-eur" {
		t.Fatalf("expected file order to be kept, got %+v", reg.All())
	}
	if rate.Kind != KindExchangeRate || rate.Query != "USD/EUR" {
		t.Fatalf("unexpected normalized feed %+v", rate)
	}
	if rate.Name != "usd-eur" {
		t.Fatalf("expected name to default to id, got %q", rate.Name)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeFile(t, "feeds.json", `{"feeds":[{"id":"all","kind":"posts"}]}`)
	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	all := reg.All()
	if len(all) != 1 || all[0].ID != "all" || all[0].Query != "" {
		t.Fatalf("expected posts feed with empty query, got %+v", all)
	}
}

func TestLoadRegistryRejectsInvalidFeeds(t *testing.T) {
	cases := map[string]string{
		"duplicate": `
feeds:
  - id: a
    kind: posts
  - id: a
    kind: posts
`,
		"missing pair": `
feeds:
  - id: r
    kind: exchange_rate
`,
		"unknown kind": `
feeds:
  - id: x
    kind: weather
`,
		"empty":     `feeds: []`,
		"malformed": "feeds: [\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadRegistry(writeFile(t, "feeds.yaml", content)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadRegistryMissingPath(t *testing.T) {
	if _, err := LoadRegistry(" "); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
