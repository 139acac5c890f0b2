package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"image-analysis/internal/config"
	"image-analysis/internal/logger"
	"image-analysis/internal/pipeline"
	"image-analysis/internal/source"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	input := flag.String("input", "", "Image file or directory to analyze")
	outputDir := flag.String("output", "", "Output directory (default: out)")
	format := flag.String("format", "", "Stage image format: webp or png (default: webp)")
	workers := flag.Int("workers", 0, "Number of images processed concurrently (default: NumCPU)")
	k := flag.Int("k", 0, "Posterize cluster count (default: 3)")
	major := flag.Float64("major", 0, "Strong edge threshold (default: 0.04)")
	minor := flag.Float64("minor", 0, "Weak edge threshold (default: 0.03)")
	testN := flag.Int("test", 0, "Process only the first N images")
	logLevel := flag.String("log", "", "Log level: debug, info, warn, error (default: info)")

	flag.Parse()
	if *input == "" && flag.NArg() > 0 {
		*input = flag.Arg(0)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Input:     *input,
		OutputDir: *outputDir,
		Format:    *format,
		Workers:   *workers,
		K:         *k,
		Major:     *major,
		Minor:     *minor,
		LogLevel:  *logLevel,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewConsole(logger.ParseLevel(cfg.LogLevel))

	opts, err := pipeline.FromConfig(cfg)
	if err != nil {
		log.Error("analyze", err, nil)
		os.Exit(1)
	}

	items, err := source.Scan(cfg.Input)
	if err != nil {
		log.Error("analyze", err, nil)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(items) {
		items = items[:*testN]
	}

	if len(items) == 0 {
		fmt.Println("No images to analyze.")
		os.Exit(0)
	}

	log.Info("analyze", "starting", map[string]interface{}{
		"images":  len(items),
		"workers": opts.Workers,
		"output":  opts.OutputDir,
		"format":  string(opts.Format),
		"k":       opts.K,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := pipeline.Run(ctx, opts, items, log)
	elapsed := time.Since(start)

	success, failed := pipeline.Summary(results)
	log.Info("analyze", "done", map[string]interface{}{
		"analyzed": success,
		"failed":   failed,
		"elapsed":  elapsed.Round(time.Millisecond).String(),
	})

	if failed > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		shown := 0
		for _, r := range results {
			if r.Success {
				continue
			}
			fmt.Printf("  %s: %s\n", r.Name, r.Error)
			if shown++; shown == 20 {
				break
			}
		}
	}

	// Write manifest
	manifestPath := filepath.Join(opts.OutputDir, "manifest.json")
	if err := pipeline.WriteManifest(manifestPath, results); err != nil {
		log.Warning("analyze", "manifest write failed", map[string]interface{}{"error": err.Error()})
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		stop()
		os.Exit(1)
	}
}
