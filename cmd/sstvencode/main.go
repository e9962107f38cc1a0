package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kb9qz/gosstv/pkg/config"
	"github.com/kb9qz/gosstv/pkg/encoder"
	"github.com/kb9qz/gosstv/pkg/logging"
	"github.com/kb9qz/gosstv/pkg/pcmwav"
	"github.com/kb9qz/gosstv/pkg/raster"
	"github.com/kb9qz/gosstv/pkg/verbose"
)

func main() {
	var (
		input      = flag.String("input", "", "Input image file (PNG or JPEG)")
		output     = flag.String("output", "", "Output WAV file")
		modeName   = flag.String("mode", "ROBOT36", "SSTV mode: ROBOT36, MARTIN1, or SCOTTIE1")
		sampleRate = flag.Int("rate", 48000, "Audio sample rate")
		configPath = flag.String("config", "", "Configuration file path (optional)")
		verboseLog = flag.Bool("v", false, "Enable verbose progress logging")
	)
	flag.Parse()
	verbose.SetEnabled(*verboseLog)

	if *input == "" || *output == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -input picture.png -output signal.wav [options]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	loggingCfg := config.LoggingConfig{Level: "info", Console: true}
	effectiveMode, effectiveRate := *modeName, *sampleRate

	if *configPath != "" {
		cfg, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
			os.Exit(1)
		}
		loggingCfg = cfg.Logging
		if !explicit["mode"] {
			effectiveMode = cfg.Encode.Mode
		}
		if !explicit["rate"] {
			effectiveRate = cfg.Encode.SampleRate
		}
	}

	logger, err := logging.NewLogger(&loggingCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("sstvencode", "starting encode", map[string]interface{}{
		"input": *input, "output": *output, "mode": effectiveMode, "rate": effectiveRate,
	})

	img, err := raster.LoadFile(*input)
	if err != nil {
		logger.Error("sstvencode", fmt.Sprintf("failed to load image: %v", err))
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	w, h := img.Bounds()
	verbose.Printf("loaded %s: %dx%d", *input, w, h)

	enc, err := encoder.New(effectiveMode, float64(effectiveRate))
	if err != nil {
		logger.Error("sstvencode", fmt.Sprintf("failed to create encoder: %v", err))
		fmt.Fprintf(os.Stderr, "Failed to create encoder: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Encoding SSTV Signal\n")
	fmt.Printf("=====================\n")
	fmt.Printf("Input:  %s (%dx%d)\n", *input, w, h)
	fmt.Printf("Mode:   %s\n", enc.Mode().Name)
	fmt.Printf("Rate:   %d Hz\n", effectiveRate)
	fmt.Printf("\n")

	samples := enc.Encode(img)
	duration := float64(len(samples)) / float64(effectiveRate)
	fmt.Printf("Generated %d samples (%.2f seconds)\n", len(samples), duration)
	logger.Debug("sstvencode", fmt.Sprintf("generated %d samples (%.2fs)", len(samples), duration))

	var minSample, maxSample, avgSample float64
	minSample, maxSample = 1, -1
	for _, s := range samples {
		if s < minSample {
			minSample = s
		}
		if s > maxSample {
			maxSample = s
		}
		avgSample += s
	}
	avgSample /= float64(len(samples))
	fmt.Printf("Sample range: %.3f to %.3f (avg %.4f)\n", minSample, maxSample, avgSample)

	wav := pcmwav.Encode(samples, effectiveRate)
	if err := os.WriteFile(*output, wav, 0644); err != nil {
		logger.Error("sstvencode", fmt.Sprintf("failed to write output file: %v", err))
		fmt.Fprintf(os.Stderr, "Failed to write output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", *output, len(wav))
	logger.Info("sstvencode", fmt.Sprintf("wrote %s (%d bytes)", *output, len(wav)))
}
