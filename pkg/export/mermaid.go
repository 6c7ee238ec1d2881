package export

import (
	"fmt"
	"strings"

	"github.com/matzehuels/laneflow/pkg/model"
)

// MermaidExporter serializes a graph as a Mermaid flowchart. Groups become
// subgraphs, shapes map to the closest Mermaid node syntax, and dashed
// connections use dotted links. Mermaid performs its own layout, so only
// structure and ordering are carried over - the computed geometry stays
// with the positioned formats.
type MermaidExporter struct{}

// Format returns FormatMermaid.
func (e *MermaidExporter) Format() Format { return FormatMermaid }

// Extension returns ".mmd".
func (e *MermaidExporter) Extension() string { return ".mmd" }

// Export serializes the graph.
func (e *MermaidExporter) Export(g *model.Graph) ([]byte, error) {
	var sb strings.Builder

	dir := "TD"
	if g.Direction() == model.LeftRight {
		dir = "LR"
	}
	fmt.Fprintf(&sb, "flowchart %s\n", dir)

	for _, grp := range g.Groups() {
		fmt.Fprintf(&sb, "    subgraph %s [\"%s\"]\n", grp.ID, escapeMermaid(grp.Label))
		for _, id := range grp.Members {
			n, _ := g.Node(id)
			fmt.Fprintf(&sb, "        %s\n", mermaidNode(n))
		}
		sb.WriteString("    end\n")
	}

	for _, n := range g.Nodes() {
		if n.GroupID != "" {
			continue
		}
		fmt.Fprintf(&sb, "    %s\n", mermaidNode(n))
	}

	if len(g.Edges()) > 0 {
		sb.WriteString("\n")
	}
	for _, edge := range g.Edges() {
		arrow := "-->"
		if edge.Style == model.LineDashed {
			arrow = "-.->"
		}
		if edge.Label != "" {
			fmt.Fprintf(&sb, "    %s %s|\"%s\"| %s\n", edge.From, arrow, escapeMermaid(edge.Label), edge.To)
		} else {
			fmt.Fprintf(&sb, "    %s %s %s\n", edge.From, arrow, edge.To)
		}
	}

	return []byte(sb.String()), nil
}

// mermaidNode renders one node declaration with the shape syntax closest to
// its category.
func mermaidNode(n *model.Node) string {
	label := escapeMermaid(n.Label)
	switch n.Shape {
	case model.ShapeEvent:
		return fmt.Sprintf(`%s(("%s"))`, n.ID, label)
	case model.ShapeGateway:
		return fmt.Sprintf(`%s{"%s"}`, n.ID, label)
	case model.ShapeDatastore:
		return fmt.Sprintf(`%s[("%s")]`, n.ID, label)
	case model.ShapeActor:
		return fmt.Sprintf(`%s(["%s"])`, n.ID, label)
	case model.ShapeTask:
		return fmt.Sprintf(`%s("%s")`, n.ID, label)
	default:
		return fmt.Sprintf(`%s["%s"]`, n.ID, label)
	}
}

// escapeMermaid replaces markup metacharacters in labels with HTML entities
// so they survive Mermaid's parser.
var mermaidEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeMermaid(s string) string {
	return mermaidEscaper.Replace(s)
}
