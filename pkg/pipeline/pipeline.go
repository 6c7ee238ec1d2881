// Package pipeline provides the core diagram pipeline for laneflow.
//
// This package implements the complete parse → layout → route → export
// pipeline shared by the CLI and API components. Centralizing the staging
// keeps behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: validate the JSON descriptor and build the diagram graph
//  2. Layout: size nodes, stack and equalize groups, place the canvas
//  3. Route: classify every connection and synthesize its path
//  4. Export: serialize the positioned graph into the requested formats
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{Formats: []string{"drawio"}}
//	result, err := runner.Execute(ctx, descriptorJSON, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	xml := result.Artifacts["drawio"]
package pipeline

import (
	"time"

	"github.com/matzehuels/laneflow/pkg/export"
	"github.com/matzehuels/laneflow/pkg/layout"
	"github.com/matzehuels/laneflow/pkg/model"
)

// Default values shared by CLI and API.
const (
	// DefaultFormat is the output format used when none is requested.
	DefaultFormat = string(export.FormatDrawio)

	// DefaultCacheTTL is how long rendered artifacts stay cached.
	DefaultCacheTTL = 24 * time.Hour
)

// Options configures a pipeline run.
type Options struct {
	// Formats are the output formats to produce. Empty means DefaultFormat.
	Formats []string

	// Layout holds the layout constants. The zero value means
	// layout.DefaultConfig().
	Layout *layout.Config

	// Palette resolves lane color names. Nil means export.DefaultPalette().
	Palette export.Palette

	// NoCache skips artifact cache lookups and writes.
	NoCache bool

	// CacheTTL overrides DefaultCacheTTL when positive.
	CacheTTL time.Duration
}

// normalized returns the options with defaults filled in.
func (o Options) normalized() Options {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Layout == nil {
		cfg := layout.DefaultConfig()
		o.Layout = &cfg
	}
	if o.Palette == nil {
		o.Palette = export.DefaultPalette()
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	return o
}

// Result is the outcome of a pipeline run.
type Result struct {
	// Graph is the positioned, routed diagram graph.
	Graph *model.Graph

	// Artifacts maps each requested format to its serialized bytes.
	Artifacts map[string][]byte

	// Cached maps each format to whether its artifact came from cache.
	Cached map[string]bool
}
