package mixer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the construction-time options of a Mixer model.
type Config struct {
	InChannels int     `yaml:"in_channels"` // Input image color channels
	Dim        int     `yaml:"dim"`         // Embedding width carried through every block
	NumClasses int     `yaml:"num_classes"` // Output logit size
	PatchSize  int     `yaml:"patch_size"`  // Side length of each square patch
	ImageSize  int     `yaml:"image_size"`  // Side length of the square input image
	Depth      int     `yaml:"depth"`       // Number of stacked mixer blocks (may be 0)
	TokenDim   int     `yaml:"token_dim"`   // Hidden width of the token-mixing MLP
	ChannelDim int     `yaml:"channel_dim"` // Hidden width of the channel-mixing MLP
	Dropout    float64 `yaml:"dropout"`     // Drop probability in [0, 1)
	Seed       uint64  `yaml:"seed"`        // Seed for parameter init and dropout masks
}

// Overrides captures CLI supplied values. Nil fields leave the config
// unchanged.
type Overrides struct {
	Depth   *int
	Dropout *float64
	Seed    *uint64
}

// BaseConfig returns the 8-block, 512-wide model for 224x224 RGB images and
// 1000 classes, with 16x16 patches.
func BaseConfig() Config {
	return Config{
		InChannels: 3,
		Dim:        512,
		NumClasses: 1000,
		PatchSize:  16,
		ImageSize:  224,
		Depth:      8,
		TokenDim:   256,
		ChannelDim: 2048,
	}
}

// TinyConfig returns a small model suited to tests and quick experiments.
func TinyConfig() Config {
	return Config{
		InChannels: 3,
		Dim:        16,
		NumClasses: 10,
		PatchSize:  4,
		ImageSize:  16,
		Depth:      2,
		TokenDim:   8,
		ChannelDim: 32,
	}
}

// Validate verifies the config describes a buildable model. Violations are
// returned as *ConfigError.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	positive := []struct {
		field string
		value int
	}{
		{"in_channels", c.InChannels},
		{"dim", c.Dim},
		{"num_classes", c.NumClasses},
		{"patch_size", c.PatchSize},
		{"image_size", c.ImageSize},
		{"token_dim", c.TokenDim},
		{"channel_dim", c.ChannelDim},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return &ConfigError{Field: p.field, Value: p.value, Reason: "must be > 0"}
		}
	}

	if c.Depth < 0 {
		return &ConfigError{Field: "depth", Value: c.Depth, Reason: "must be >= 0"}
	}
	if !(c.Dropout >= 0 && c.Dropout < 1) {
		return &ConfigError{Field: "dropout", Value: c.Dropout, Reason: "must be in [0, 1)"}
	}
	if c.ImageSize%c.PatchSize != 0 {
		return &ConfigError{
			Field:  "image_size",
			Value:  c.ImageSize,
			Reason: fmt.Sprintf("must be divisible by patch_size (%d)", c.PatchSize),
		}
	}
	return nil
}

// GridSize returns the number of patches along each side of the image.
func (c Config) GridSize() int {
	return c.ImageSize / c.PatchSize
}

// NumPatches returns the number of tokens the patch embedding produces.
func (c Config) NumPatches() int {
	g := c.GridSize()
	return g * g
}

// ApplyOverrides updates c using every non-nil override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Depth != nil {
		c.Depth = *o.Depth
	}
	if o.Dropout != nil {
		c.Dropout = *o.Dropout
	}
	if o.Seed != nil {
		c.Seed = *o.Seed
	}
}

// LoadConfig reads and validates a Config from a YAML file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return ParseConfig(f)
}

// ParseConfig decodes a YAML document into a Config and validates it.
//
// Options missing from the document keep their BaseConfig values. Unknown
// keys are rejected.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := BaseConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
