package publishers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Adda-Baaj/dummy-feeds/internal/configfile"
)

// Supported publisher types.
const (
	TypeSQS       = "sqs"
	TypeSNS       = "sns"
	TypeHTTP      = "http"
	TypeGCPPubSub = "gcp_pubsub"
	TypeRedis     = "redis"
)

// ErrNoPublishers is returned when a publishers file declares nothing to build.
var ErrNoPublishers = errors.New("no publishers configured")

// PublisherConfig is one entry of the publishers file. Exactly the block
// matching Type is read.
type PublisherConfig struct {
	ID      string        `json:"id" yaml:"id"`
	Type    string        `json:"type" yaml:"type"`
	Enabled *bool         `json:"enabled" yaml:"enabled"`
	SQS     *SQSConfig    `json:"sqs" yaml:"sqs"`
	SNS     *SNSConfig    `json:"sns" yaml:"sns"`
	HTTP    *HTTPConfig   `json:"http" yaml:"http"`
	PubSub  *PubSubConfig `json:"gcp_pubsub" yaml:"gcp_pubsub"`
	Redis   *RedisConfig  `json:"redis" yaml:"redis"`
}

// sinkConfig is implemented by every per-type settings block.
type sinkConfig interface {
	normalize()
	validate() error
}

// sink returns the settings block for the configured type, or nil.
func (c *PublisherConfig) sink() sinkConfig {
	switch c.Type {
	case TypeSQS:
		if c.SQS != nil {
			return c.SQS
		}
	case TypeSNS:
		if c.SNS != nil {
			return c.SNS
		}
	case TypeHTTP:
		if c.HTTP != nil {
			return c.HTTP
		}
	case TypeGCPPubSub:
		if c.PubSub != nil {
			return c.PubSub
		}
	case TypeRedis:
		if c.Redis != nil {
			return c.Redis
		}
	}
	return nil
}

// prepare normalizes the entry in place and validates it.
func (c *PublisherConfig) prepare() error {
	c.ID = strings.TrimSpace(c.ID)
	c.Type = strings.ToLower(strings.TrimSpace(c.Type))
	if c.ID == "" {
		return errors.New("id is required")
	}
	if _, ok := defaultBuilders()[c.Type]; !ok {
		return fmt.Errorf("publisher %q: unsupported type %q", c.ID, c.Type)
	}

	s := c.sink()
	if s == nil {
		return fmt.Errorf("publisher %q: %s block is required", c.ID, c.Type)
	}
	s.normalize()
	if err := s.validate(); err != nil {
		return fmt.Errorf("publisher %q: %w", c.ID, err)
	}
	return nil
}

// EnabledValue returns the enabled flag, defaulting to true.
func (c PublisherConfig) EnabledValue() bool {
	return c.Enabled == nil || *c.Enabled
}

// LoadConfigs reads and validates a YAML/JSON publishers file.
func LoadConfigs(path string) ([]PublisherConfig, error) {
	var file struct {
		Publishers []PublisherConfig `json:"publishers" yaml:"publishers"`
	}
	if err := configfile.Load(path, &file); err != nil {
		return nil, fmt.Errorf("load publishers: %w", err)
	}
	if len(file.Publishers) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoPublishers)
	}

	seen := make(map[string]struct{}, len(file.Publishers))
	for i := range file.Publishers {
		cfg := &file.Publishers[i]
		if err := cfg.prepare(); err != nil {
			return nil, fmt.Errorf("publishers[%d]: %w", i, err)
		}
		if _, dup := seen[cfg.ID]; dup {
			return nil, fmt.Errorf("duplicate publisher id %q", cfg.ID)
		}
		seen[cfg.ID] = struct{}{}
	}
	return file.Publishers, nil
}

// Enabled filters cfgs down to the enabled entries, keeping order.
func Enabled(cfgs []PublisherConfig) []PublisherConfig {
	out := make([]PublisherConfig, 0, len(cfgs))
	for _, c := range cfgs {
		if c.EnabledValue() {
			out = append(out, c)
		}
	}
	return out
}
