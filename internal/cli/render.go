package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/laneflow/pkg/export"
	"github.com/matzehuels/laneflow/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple formats)
	formats []string // output formats: "drawio", "mermaid", "text", "dot", "svg", "png"
	config  string   // optional TOML file overriding layout constants
	noCache bool     // skip the artifact cache
}

// renderCommand creates the render command for generating diagram artifacts.
//
// Default settings:
//   - format: drawio
//   - output: derived from the input file name
//   - caching: enabled (~/.cache/laneflow)
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram descriptor to one or more output formats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): drawio (default), mermaid, text, dot, svg, png (comma-separated)")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML file overriding layout constants")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the artifact cache")

	return cmd
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := export.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output ends in a
// known format extension, that extension is stripped. This is used when
// generating multiple files (e.g., diagram.drawio, diagram.mmd).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := export.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender executes the pipeline on the input descriptor and writes one file
// per requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	descriptor, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read descriptor: %w", err)
	}

	cfg, err := loadLayoutConfig(opts.config)
	if err != nil {
		return fmt.Errorf("load config %s: %w", opts.config, err)
	}

	runner := newRunner(ctx, opts.noCache)
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, "Rendering diagram")
	spinner.Start()
	result, err := runner.Execute(ctx, descriptor, pipeline.Options{
		Formats: opts.formats,
		Layout:  &cfg,
		NoCache: opts.noCache,
	})
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	if err := writeArtifacts(ctx, input, opts, result); err != nil {
		return err
	}

	g := result.Graph
	printStats(len(g.Groups()), len(g.Nodes()), len(g.Edges()), allCached(result))
	printNextStep("Preview in terminal", "laneflow preview "+input)
	return nil
}

// writeArtifacts writes each rendered artifact to its output path.
// A single format honors --output verbatim; multiple formats share a base
// path and take their conventional extensions.
func writeArtifacts(ctx context.Context, input string, opts *renderOpts, result *pipeline.Result) error {
	logger := loggerFromContext(ctx)
	single := len(opts.formats) == 1

	for _, f := range opts.formats {
		format, err := export.ParseFormat(f)
		if err != nil {
			return err
		}
		exp, err := export.New(format, nil)
		if err != nil {
			return err
		}

		var path string
		if single && opts.output != "" {
			path = opts.output
		} else {
			path = basePath(opts.output, input) + exp.Extension()
		}

		data := result.Artifacts[string(format)]
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}

		logger.Debugf("Generated %s: %d bytes", format, len(data))
		printFile(path)
	}
	return nil
}

// allCached reports whether every artifact in the result came from cache.
func allCached(result *pipeline.Result) bool {
	if len(result.Cached) == 0 {
		return false
	}
	for _, cached := range result.Cached {
		if !cached {
			return false
		}
	}
	return true
}
