// Package main provides the mixer CLI: it builds an MLP-Mixer from a
// configuration and classifies a random image batch.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/exp/rand"

	"github.com/born-ml/mixer/backend/cpu"
	"github.com/born-ml/mixer/mixer"
	"github.com/born-ml/mixer/nn"
	"github.com/born-ml/mixer/tensor"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("Mixer %s\n", version)
		return
	}

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("mixer: %v", err)
	}
}

// run parses args, builds the model and prints its predictions for one
// random batch.
func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("mixer", flag.ContinueOnError)
	fs.SetOutput(out)
	configPath := fs.String("config", "", "YAML config file (default: Mixer-B/16)")
	tiny := fs.Bool("tiny", false, "Use the tiny preset instead of Mixer-B/16")
	batch := fs.Int("batch", 2, "Number of random images to classify")
	train := fs.Bool("train", false, "Run in training mode (dropout active)")
	depth := fs.Int("depth", 0, "Override the number of mixer blocks")
	dropout := fs.Float64("dropout", 0, "Override the dropout probability")
	seed := fs.Uint64("seed", 0, "Override the weight initialization seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := mixer.BaseConfig()
	switch {
	case *configPath != "" && *tiny:
		return errors.New("-config and -tiny are mutually exclusive")
	case *configPath != "":
		loaded, err := mixer.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case *tiny:
		cfg = mixer.TinyConfig()
	}

	// Only flags given on the command line override the config.
	var overrides mixer.Overrides
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "depth":
			overrides.Depth = depth
		case "dropout":
			overrides.Dropout = dropout
		case "seed":
			overrides.Seed = seed
		}
	})
	cfg.ApplyOverrides(overrides)

	if *batch <= 0 {
		return fmt.Errorf("batch must be positive, got %d", *batch)
	}

	backend := cpu.New()
	model, err := mixer.New(cfg, backend)
	if err != nil {
		return fmt.Errorf("failed to build model: %w", err)
	}

	mode := nn.Eval
	if *train {
		mode = nn.Train
	}

	shape := tensor.Shape{*batch, cfg.InChannels, cfg.ImageSize, cfg.ImageSize}
	images := tensor.Rand[float32](shape, rand.NewSource(cfg.Seed+1), backend)

	logits, err := model.Forward(images, mode)
	if err != nil {
		return fmt.Errorf("forward failed: %w", err)
	}

	fmt.Fprintln(out, model)
	fmt.Fprintf(out, "Trainable Parameters: %.3fM\n", float64(model.NumParameters())/1e6)
	fmt.Fprintf(out, "Input: %v -> Logits: %v (%v mode)\n", images.Shape(), logits.Shape(), mode)

	classes := cfg.NumClasses
	data := logits.Data()
	for i := 0; i < *batch; i++ {
		row := data[i*classes : (i+1)*classes]
		best := argmax(row)
		fmt.Fprintf(out, "  image %d: class %d (logit %.4f)\n", i, best, row[best])
	}

	return nil
}

func argmax(values []float32) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
