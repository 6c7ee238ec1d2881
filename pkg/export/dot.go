package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/laneflow/pkg/model"
)

// DOTExporter serializes a graph as Graphviz DOT, with groups as clusters.
// When Render is set the DOT source is additionally rendered through
// Graphviz (see FormatSVG / FormatPNG); Graphviz then performs its own
// layout, so this exporter carries structure and lane grouping, not the
// engine's coordinates.
type DOTExporter struct {
	// Render post-processes the DOT source into a binary format.
	// Nil means raw DOT output.
	Render func(dot string) ([]byte, error)

	// Target is the produced format when Render is set.
	Target Format
}

// Format returns the format this exporter produces.
func (e *DOTExporter) Format() Format {
	if e.Render == nil {
		return FormatDOT
	}
	return e.Target
}

// Extension returns the conventional file extension.
func (e *DOTExporter) Extension() string {
	return "." + string(e.Format())
}

// Export serializes (and optionally renders) the graph.
func (e *DOTExporter) Export(g *model.Graph) ([]byte, error) {
	dot := ToDOT(g)
	if e.Render == nil {
		return []byte(dot), nil
	}
	return e.Render(dot)
}

// ToDOT converts a graph to Graphviz DOT source. Each group becomes a
// cluster subgraph so lanes stay visually separated.
func ToDOT(g *model.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if g.Direction() == model.LeftRight {
		buf.WriteString("  rankdir=LR;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
	}
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for i, grp := range g.Groups() {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", grp.Label)
		for _, id := range grp.Members {
			n, _ := g.Node(id)
			fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(dotAttrs(n), ", "))
		}
		buf.WriteString("  }\n")
	}

	for _, n := range g.Nodes() {
		if n.GroupID != "" {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(dotAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, edge := range g.Edges() {
		attrs := ""
		if edge.Style == model.LineDashed {
			attrs = " [style=dashed]"
		}
		if edge.Label != "" {
			attrs = fmt.Sprintf(" [label=%q]", edge.Label)
			if edge.Style == model.LineDashed {
				attrs = fmt.Sprintf(" [label=%q, style=dashed]", edge.Label)
			}
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", edge.From, edge.To, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotAttrs maps a node's label and shape category to DOT attributes.
func dotAttrs(n *model.Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", n.Label)}
	switch n.Shape {
	case model.ShapeEvent:
		attrs = append(attrs, "shape=circle")
	case model.ShapeGateway:
		attrs = append(attrs, "shape=diamond")
	case model.ShapeDatastore:
		attrs = append(attrs, "shape=cylinder")
	case model.ShapeActor:
		attrs = append(attrs, "shape=oval")
	}
	return attrs
}

// renderSVG renders DOT source to SVG using Graphviz.
func renderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// renderPNG renders DOT source to PNG using Graphviz.
func renderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
