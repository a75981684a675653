// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mixer

import (
	"io"

	"github.com/born-ml/mixer/internal/mixer"
	"github.com/born-ml/mixer/tensor"
)

// Errors returned by New and Model.Forward. Match them with errors.Is.
var (
	ErrInvalidConfig = mixer.ErrInvalidConfig
	ErrShapeMismatch = mixer.ErrShapeMismatch
)

// ConfigError details a rejected configuration value.
type ConfigError = mixer.ConfigError

// ShapeError details a tensor whose shape does not match the model.
type ShapeError = mixer.ShapeError

// Config holds the architecture hyperparameters.
type Config = mixer.Config

// Overrides replaces selected Config fields. Nil fields are left unchanged.
type Overrides = mixer.Overrides

// BaseConfig returns the Mixer-B/16 configuration for 224x224 RGB images
// and 1000 classes.
func BaseConfig() Config {
	return mixer.BaseConfig()
}

// TinyConfig returns a small configuration for quick experiments.
func TinyConfig() Config {
	return mixer.TinyConfig()
}

// LoadConfig reads a YAML configuration file. Keys that are absent keep
// their BaseConfig value; unknown keys are rejected.
//
// Example config.yaml:
//
//	depth: 8
//	dropout: 0.1
//	seed: 42
func LoadConfig(path string) (Config, error) {
	return mixer.LoadConfig(path)
}

// ParseConfig decodes a YAML configuration from r.
func ParseConfig(r io.Reader) (Config, error) {
	return mixer.ParseConfig(r)
}

// Model is an MLP-Mixer image classifier.
type Model[B tensor.Backend] = mixer.Model[B]

// Building blocks, exposed for inspection.
type (
	PatchEmbedding[B tensor.Backend] = mixer.PatchEmbedding[B]
	Block[B tensor.Backend]          = mixer.Block[B]
	TokenMixing[B tensor.Backend]    = mixer.TokenMixing[B]
	ChannelMixing[B tensor.Backend]  = mixer.ChannelMixing[B]
	FeedForward[B tensor.Backend]    = mixer.FeedForward[B]
	Head[B tensor.Backend]           = mixer.Head[B]
)

// New validates cfg and builds a model with freshly initialized parameters.
//
// Example:
//
//	backend := cpu.New()
//	model, err := mixer.New(mixer.BaseConfig(), backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logits, err := model.Forward(images, nn.Eval)
func New[B tensor.Backend](cfg Config, backend B) (*Model[B], error) {
	return mixer.New(cfg, backend)
}
