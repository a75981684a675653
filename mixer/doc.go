// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mixer provides the MLP-Mixer image classifier.
//
// # Overview
//
// An image batch [batch, channels, H, W] is cut into non-overlapping
// patches, each patch is projected to a dim-sized token, and depth mixer
// blocks alternate token mixing (across patches) with channel mixing
// (across features). A LayerNorm, a mean over patches and a linear layer
// produce [batch, num_classes] logits.
//
// # Basic Usage
//
//	import (
//	    "golang.org/x/exp/rand"
//
//	    "github.com/born-ml/mixer/backend/cpu"
//	    "github.com/born-ml/mixer/mixer"
//	    "github.com/born-ml/mixer/nn"
//	    "github.com/born-ml/mixer/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    model, err := mixer.New(mixer.BaseConfig(), backend)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    images := tensor.Rand[float32](tensor.Shape{2, 3, 224, 224}, rand.NewSource(0), backend)
//	    logits, err := model.Forward(images, nn.Eval) // (2, 1000)
//	}
//
// # Configuration
//
// Config can be built in code, from BaseConfig or TinyConfig, or loaded
// from YAML with LoadConfig. New rejects invalid configurations with an
// error matching ErrInvalidConfig; the image size must be divisible by the
// patch size.
//
// # Modes
//
// Forward takes nn.Train or nn.Eval. Dropout only runs in nn.Train.
//
// # Thread Safety
//
// Forward does not modify parameters, so one Model may serve concurrent
// calls.
package mixer
