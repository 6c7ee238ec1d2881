package export

import (
	"github.com/matzehuels/laneflow/pkg/errors"
	"github.com/matzehuels/laneflow/pkg/model"
)

// Format identifies a serialization target.
type Format string

// Supported output formats.
const (
	FormatDrawio  Format = "drawio"  // draw.io / diagrams.net mxGraph XML
	FormatMermaid Format = "mermaid" // Mermaid flowchart text
	FormatText    Format = "text"    // plain-text box rendering
	FormatDOT     Format = "dot"     // Graphviz DOT source
	FormatSVG     Format = "svg"     // DOT rendered through Graphviz
	FormatPNG     Format = "png"     // DOT rendered through Graphviz
)

// ParseFormat converts a string (including common aliases) to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "drawio", "xml":
		return FormatDrawio, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	case "text", "txt", "ascii":
		return FormatText, nil
	case "dot", "gv":
		return FormatDOT, nil
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", s)
}

// Exporter serializes a positioned graph into one target format. Exporters
// contain no geometric logic - they translate coordinates and routes the
// engine already computed.
type Exporter interface {
	// Export serializes the graph. The graph must have been laid out and
	// routed; exporters do not run layout passes.
	Export(g *model.Graph) ([]byte, error)

	// Format returns the format this exporter produces.
	Format() Format

	// Extension returns the conventional file extension, with dot.
	Extension() string
}

// New creates an exporter for the given format. The palette is consulted by
// formats that carry color (draw.io); text-based formats ignore it.
func New(format Format, palette Palette) (Exporter, error) {
	if palette == nil {
		palette = DefaultPalette()
	}
	switch format {
	case FormatDrawio:
		return &DrawioExporter{Palette: palette}, nil
	case FormatMermaid:
		return &MermaidExporter{}, nil
	case FormatText:
		return &TextExporter{}, nil
	case FormatDOT:
		return &DOTExporter{}, nil
	case FormatSVG:
		return &DOTExporter{Render: renderSVG, Target: FormatSVG}, nil
	case FormatPNG:
		return &DOTExporter{Render: renderPNG, Target: FormatPNG}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
}
