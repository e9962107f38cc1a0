package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kb9qz/gosstv/pkg/config"
	"github.com/kb9qz/gosstv/pkg/decoder"
	"github.com/kb9qz/gosstv/pkg/logging"
	"github.com/kb9qz/gosstv/pkg/mode"
	"github.com/kb9qz/gosstv/pkg/pcmwav"
	"github.com/kb9qz/gosstv/pkg/raster"
	"github.com/kb9qz/gosstv/pkg/verbose"
)

func main() {
	var (
		input      = flag.String("input", "", "Input WAV file")
		output     = flag.String("output", "", "Output image file (PNG or JPEG)")
		forceMode  = flag.String("mode", "", "Force mode instead of VIS detection: ROBOT36, MARTIN1, or SCOTTIE1")
		useFM      = flag.Bool("fm", false, "Use the FM phase-difference front end instead of Goertzel")
		spectrum   = flag.Bool("spectrum", false, "Print a coarse spectrogram of the VIS leader region and exit")
		configPath = flag.String("config", "", "Configuration file path (optional)")
		verboseLog = flag.Bool("v", false, "Enable verbose progress logging")
	)
	flag.Parse()
	verbose.SetEnabled(*verboseLog)

	if *input == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -input signal.wav -output picture.png [options]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	loggingCfg := config.LoggingConfig{Level: "info", Console: true}
	effectiveFM := *useFM

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
		if !explicit["fm"] {
			effectiveFM = cfg.Decode.UseFMDemod
		}
	}

	logger, err := logging.NewLogger(&loggingCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("sstvdecode", "starting decode", map[string]interface{}{"input": *input, "fm": effectiveFM})

	data, err := os.ReadFile(*input)
	if err != nil {
		logger.Error("sstvdecode", fmt.Sprintf("failed to read input file: %v", err))
		fmt.Fprintf(os.Stderr, "Failed to read input file: %v\n", err)
		os.Exit(1)
	}

	samples, sampleRate, err := pcmwav.Decode(data)
	if err != nil {
		logger.Error("sstvdecode", fmt.Sprintf("failed to decode WAV file: %v", err))
		fmt.Fprintf(os.Stderr, "Failed to decode WAV file: %v\n", err)
		os.Exit(1)
	}
	verbose.Printf("decoded %d samples at %d Hz", len(samples), sampleRate)
	logger.Debug("sstvdecode", fmt.Sprintf("decoded %d samples at %d Hz", len(samples), sampleRate))

	if *spectrum {
		const fftSize = 2048
		rows := pcmwav.Spectrogram(samples, fftSize)
		fmt.Printf("Spectrogram: %d frames, %d bins each, bin width %.1f Hz\n",
			len(rows), fftSize/2, pcmwav.BinHz(1, fftSize, float64(sampleRate)))
		for i, row := range rows {
			if i > 40 {
				fmt.Printf("... (%d more frames)\n", len(rows)-i)
				break
			}
			peak := 0
			for j, mag := range row {
				if mag > row[peak] {
					peak = j
				}
			}
			fmt.Printf("frame %3d: peak %.0f Hz (%.1f dB)\n", i,
				pcmwav.BinHz(peak, fftSize, float64(sampleRate)), row[peak])
		}
		return
	}

	var opts []decoder.Option
	if *forceMode != "" {
		m, ok := mode.LookupByName(*forceMode)
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown mode: %s\n", *forceMode)
			os.Exit(1)
		}
		opts = append(opts, decoder.WithForcedMode(m))
	}
	if effectiveFM {
		opts = append(opts, decoder.WithFMDemod(true))
	}

	dec := decoder.New(float64(sampleRate), opts...)

	fmt.Printf("Decoding SSTV Signal\n")
	fmt.Printf("=====================\n")
	fmt.Printf("Input: %s\n", *input)
	fmt.Printf("Rate:  %d Hz\n", sampleRate)
	fmt.Printf("\n")

	result, err := dec.Decode(samples)
	if err != nil {
		logger.Error("sstvdecode", fmt.Sprintf("decode warning: %v", err))
		fmt.Fprintf(os.Stderr, "Decode warning: %v\n", err)
	}
	if result == nil {
		logger.Error("sstvdecode", "decode failed: no result")
		fmt.Fprintf(os.Stderr, "Decode failed: no result\n")
		os.Exit(1)
	}

	w, h := result.Image.Bounds()
	fmt.Printf("Mode:     %s\n", result.Mode.Name)
	fmt.Printf("Image:    %dx%d\n", w, h)
	fmt.Printf("Warnings: %d\n", len(result.Warnings))
	for _, warn := range result.Warnings {
		fmt.Printf("  - %v\n", warn)
	}
	logger.Info("sstvdecode", fmt.Sprintf("decoded mode=%s image=%dx%d warnings=%d", result.Mode.Name, w, h, len(result.Warnings)))

	if *output == "" {
		return
	}
	if err := raster.SaveFile(*output, result.Image); err != nil {
		logger.Error("sstvdecode", fmt.Sprintf("failed to write output file: %v", err))
		fmt.Fprintf(os.Stderr, "Failed to write output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *output)
	logger.Info("sstvdecode", fmt.Sprintf("wrote %s", *output))
}
