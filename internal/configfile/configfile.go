// Package configfile decodes the YAML/JSON registry files (feeds, publishers).
package configfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned when no decoder accepts the file content.
var ErrUnknownFormat = errors.New("file format not recognized (expected YAML or JSON)")

type decoder func([]byte, any) error

var decoders = map[string]decoder{
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
	".json": json.Unmarshal,
}

// Load reads path and decodes it into out. The extension picks the decoder;
// files without a known extension are tried as YAML, then JSON.
func Load(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("file path is empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(raw, filepath.Ext(path), out)
}

// Decode decodes data into out using the decoder for ext.
func Decode(data []byte, ext string, out any) error {
	if dec, ok := decoders[strings.ToLower(strings.TrimSpace(ext))]; ok {
		if err := dec(data, out); err != nil {
			return fmt.Errorf("%w: %w", ErrUnknownFormat, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, out); err == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownFormat, err)
	}
	return nil
}
