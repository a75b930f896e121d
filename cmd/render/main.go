// Command render encodes a previously exported script into an mp4. Requires
// the ffmpeg binary on PATH.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"sceneforge/render"
	"sceneforge/script"
)

func main() {
	in := flag.String("in", "", "path to script JSON (required)")
	out := flag.String("out", "output.mp4", "output video path")
	workDir := flag.String("workdir", "", "directory for render intermediates (default OS temp)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := buildLogger(*verbose)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	data, err := os.ReadFile(*in)
	if err != nil {
		logger.Fatal("read script", zap.Error(err))
	}
	var sc script.Script
	if err := json.Unmarshal(data, &sc); err != nil {
		logger.Fatal("parse script", zap.Error(err))
	}

	r := render.NewRenderer(logger, *workDir)
	if err := r.Render(context.Background(), &sc, *out); err != nil {
		logger.Fatal("render failed", zap.Error(err))
	}
	logger.Info("done", zap.String("output", *out))
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
