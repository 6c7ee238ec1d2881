package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/laneflow/pkg/cache"
	"github.com/matzehuels/laneflow/pkg/export"
	"github.com/matzehuels/laneflow/pkg/input"
	"github.com/matzehuels/laneflow/pkg/layout"
	"github.com/matzehuels/laneflow/pkg/model"
	"github.com/matzehuels/laneflow/pkg/route"
)

// Runner executes pipeline stages with a shared artifact cache and logger.
// A Runner is safe for concurrent use: every Execute call builds and owns
// its Graph instance.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching and a
// nil logger falls back to log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cache: c, logger: logger}
}

// Execute runs the complete pipeline on a raw JSON descriptor.
func (r *Runner) Execute(ctx context.Context, descriptor []byte, opts Options) (*Result, error) {
	opts = opts.normalized()

	start := time.Now()
	d, err := input.Parse(descriptor)
	if err != nil {
		return nil, err
	}
	g, err := r.Build(d, opts)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("layout complete",
		"nodes", len(g.Nodes()), "groups", len(g.Groups()), "edges", len(g.Edges()),
		"elapsed", time.Since(start).Round(time.Millisecond))

	result := &Result{
		Graph:     g,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		Cached:    make(map[string]bool, len(opts.Formats)),
	}

	for _, f := range opts.Formats {
		format, err := export.ParseFormat(f)
		if err != nil {
			return nil, err
		}

		key := cache.ArtifactKey(descriptor, string(format), opts.Layout)
		if !opts.NoCache {
			if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
				r.logger.Debug("artifact cache hit", "format", format)
				result.Artifacts[string(format)] = data
				result.Cached[string(format)] = true
				continue
			}
		}

		exp, err := export.New(format, opts.Palette)
		if err != nil {
			return nil, err
		}
		data, err := exp.Export(g)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", format, err)
		}
		result.Artifacts[string(format)] = data

		if !opts.NoCache {
			if err := r.cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
				// A broken cache should not fail the render.
				r.logger.Warn("artifact cache write failed", "err", err)
			}
		}
	}

	return result, nil
}

// Build runs the parse-to-route stages on an already decoded descriptor and
// returns the positioned, routed graph.
func (r *Runner) Build(d input.Descriptor, opts Options) (*model.Graph, error) {
	opts = opts.normalized()

	g, err := d.Build()
	if err != nil {
		return nil, err
	}
	if err := layoutGraph(g, opts); err != nil {
		return nil, err
	}
	return g, nil
}

func layoutGraph(g *model.Graph, opts Options) error {
	if err := layout.Apply(g, *opts.Layout); err != nil {
		return err
	}
	return route.Edges(g, *opts.Layout)
}
