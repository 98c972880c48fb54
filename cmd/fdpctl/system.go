package main

import (
	"fmt"
	"os"

	"github.com/rustyeddy/fdp/graph"
	"github.com/rustyeddy/fdp/internal/config"
	"github.com/rustyeddy/fdp/manifest"
)

// loadSystem loads fdpctl's configuration, parses the manifest file it
// points at, and builds the validated system graph from it.
func loadSystem(cfgPath string) (*config.Config, *manifest.SystemDefinition, *graph.SystemGraph, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, nil, err
	}

	data, err := os.ReadFile(cfg.Manifest)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading manifest %s: %w", cfg.Manifest, err)
	}

	def, err := manifest.LoadSystemDefinition(data)
	if err != nil {
		return nil, nil, nil, err
	}

	g, err := graph.Build(def)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("validating system topology: %w", err)
	}

	return cfg, def, g, nil
}
