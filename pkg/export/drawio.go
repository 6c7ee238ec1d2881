package export

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/laneflow/pkg/model"
)

// mxGraphModel is the draw.io document root. The boilerplate attributes and
// the two root cells (id "0" and its child "1") are mandatory - draw.io
// refuses files without them.
type mxGraphModel struct {
	XMLName    xml.Name `xml:"mxGraphModel"`
	Dx         int      `xml:"dx,attr"`
	Dy         int      `xml:"dy,attr"`
	Grid       int      `xml:"grid,attr"`
	GridSize   int      `xml:"gridSize,attr"`
	Guides     int      `xml:"guides,attr"`
	Tooltips   int      `xml:"tooltips,attr"`
	Connect    int      `xml:"connect,attr"`
	Arrows     int      `xml:"arrows,attr"`
	Fold       int      `xml:"fold,attr"`
	Page       int      `xml:"page,attr"`
	PageScale  float64  `xml:"pageScale,attr"`
	PageWidth  int      `xml:"pageWidth,attr"`
	PageHeight int      `xml:"pageHeight,attr"`
	Root       mxRoot   `xml:"root"`
}

type mxRoot struct {
	Cells []mxCell `xml:"mxCell"`
}

type mxCell struct {
	ID       string      `xml:"id,attr"`
	Parent   string      `xml:"parent,attr,omitempty"`
	Value    string      `xml:"value,attr,omitempty"`
	Style    string      `xml:"style,attr,omitempty"`
	Vertex   string      `xml:"vertex,attr,omitempty"`
	Edge     string      `xml:"edge,attr,omitempty"`
	Source   string      `xml:"source,attr,omitempty"`
	Target   string      `xml:"target,attr,omitempty"`
	Geometry *mxGeometry `xml:"mxGeometry,omitempty"`
}

type mxGeometry struct {
	X        float64  `xml:"x,attr,omitempty"`
	Y        float64  `xml:"y,attr,omitempty"`
	Width    float64  `xml:"width,attr,omitempty"`
	Height   float64  `xml:"height,attr,omitempty"`
	Relative string   `xml:"relative,attr,omitempty"`
	As       string   `xml:"as,attr"`
	Points   *mxArray `xml:"Array,omitempty"`
}

type mxArray struct {
	As     string    `xml:"as,attr"`
	Points []mxPoint `xml:"mxPoint"`
}

type mxPoint struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
}

// DrawioExporter serializes a positioned graph as draw.io mxGraph XML.
// Groups become swimlane cells, grouped nodes are parented to their lane
// with group-relative geometry, and routes become exit/entry style tokens
// plus explicit waypoint arrays. Label escaping is handled by encoding/xml.
type DrawioExporter struct {
	// Palette resolves group color names. Required.
	Palette Palette

	// HeaderSize is the swimlane title band height in canvas units.
	// Zero means the conventional 40.
	HeaderSize float64
}

// Format returns FormatDrawio.
func (e *DrawioExporter) Format() Format { return FormatDrawio }

// Extension returns ".drawio".
func (e *DrawioExporter) Extension() string { return ".drawio" }

// Export serializes the graph. The graph must be laid out and routed.
func (e *DrawioExporter) Export(g *model.Graph) ([]byte, error) {
	header := e.HeaderSize
	if header == 0 {
		header = 40
	}

	modelDoc := &mxGraphModel{
		Dx: 600, Dy: 700,
		Grid: 1, GridSize: 10, Guides: 1, Tooltips: 1,
		Connect: 1, Arrows: 1, Fold: 1, Page: 1, PageScale: 1,
		PageWidth:  int(g.Width),
		PageHeight: int(g.Height),
	}

	// Mandatory root cells.
	cells := []mxCell{
		{ID: "0"},
		{ID: "1", Parent: "0"},
	}

	for _, grp := range g.Groups() {
		fill := e.Palette.Resolve(grp.Color)
		cells = append(cells, mxCell{
			ID:     groupCellID(grp.ID),
			Parent: "1",
			Value:  grp.Label,
			Style: fmt.Sprintf("swimlane;html=1;startSize=%.0f;fillColor=%s;strokeColor=%s;swimlaneFillColor=#ffffff;",
				header, fill.Fill, fill.Stroke),
			Vertex: "1",
			Geometry: &mxGeometry{
				X: grp.Origin.X, Y: grp.Origin.Y,
				Width: grp.Width, Height: grp.Height,
				As: "geometry",
			},
		})
	}

	for _, n := range g.Nodes() {
		parent := "1"
		if n.GroupID != "" {
			parent = groupCellID(n.GroupID)
		}
		cells = append(cells, mxCell{
			ID:     nodeCellID(n.ID),
			Parent: parent,
			Value:  n.Label,
			Style:  nodeStyle(n),
			Vertex: "1",
			Geometry: &mxGeometry{
				X: n.Offset.X, Y: n.Offset.Y,
				Width: n.Width, Height: n.Height,
				As: "geometry",
			},
		})
	}

	for i, edge := range g.Edges() {
		cell, err := e.edgeCell(i, edge)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}

	modelDoc.Root.Cells = cells

	out, err := xml.MarshalIndent(modelDoc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal drawio XML: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// edgeCell builds the mxCell for one routed edge.
func (e *DrawioExporter) edgeCell(i int, edge *model.Edge) (mxCell, error) {
	if edge.Route == nil {
		return mxCell{}, fmt.Errorf("edge %s -> %s has no route", edge.From, edge.To)
	}
	rt := edge.Route

	parent := "1"
	if rt.Container != "" {
		// Scope the edge to its lane so draw.io's own router only
		// considers sibling shapes.
		parent = groupCellID(rt.Container)
	}

	var style strings.Builder
	style.WriteString("edgeStyle=orthogonalEdgeStyle;rounded=0;html=1;")
	style.WriteString(anchorStyle("exit", rt.FromSide))
	style.WriteString(anchorStyle("entry", rt.ToSide))
	if edge.Style == model.LineDashed {
		style.WriteString("dashed=1;")
	}

	geo := &mxGeometry{Relative: "1", As: "geometry"}
	if len(rt.Points) > 0 {
		arr := &mxArray{As: "points"}
		for _, p := range rt.Points {
			arr.Points = append(arr.Points, mxPoint{X: p.X, Y: p.Y})
		}
		geo.Points = arr
	}

	return mxCell{
		ID:       fmt.Sprintf("e_%d", i),
		Parent:   parent,
		Value:    edge.Label,
		Style:    style.String(),
		Edge:     "1",
		Source:   nodeCellID(edge.From),
		Target:   nodeCellID(edge.To),
		Geometry: geo,
	}, nil
}

// anchorStyle converts an anchor side to draw.io exit/entry fractions.
func anchorStyle(prefix string, side model.Side) string {
	var x, y float64
	switch side {
	case model.SideTop:
		x, y = 0.5, 0
	case model.SideBottom:
		x, y = 0.5, 1
	case model.SideLeft:
		x, y = 0, 0.5
	case model.SideRight:
		x, y = 1, 0.5
	}
	return fmt.Sprintf("%sX=%.2g;%sY=%.2g;", prefix, x, prefix, y)
}

// nodeStyle maps a shape category plus its attributes to a draw.io style
// string.
func nodeStyle(n *model.Node) string {
	var style strings.Builder
	switch n.Shape {
	case model.ShapeTask:
		style.WriteString("rounded=1;whiteSpace=wrap;html=1;")
	case model.ShapeEvent:
		style.WriteString("ellipse;whiteSpace=wrap;html=1;")
	case model.ShapeGateway:
		style.WriteString("rhombus;whiteSpace=wrap;html=1;")
	case model.ShapeActor:
		style.WriteString("shape=umlActor;html=1;")
	case model.ShapeDatastore:
		style.WriteString("shape=cylinder3;whiteSpace=wrap;html=1;boundedLbl=1;")
	default:
		style.WriteString("rounded=0;whiteSpace=wrap;html=1;")
	}
	if n.BottomLabel {
		style.WriteString("verticalLabelPosition=bottom;verticalAlign=top;")
	}
	if n.Attrs[model.AttrOutline] == "end" {
		style.WriteString("strokeWidth=3;")
	}
	if v := n.Attrs[model.AttrGateway]; v != "" {
		style.WriteString("gatewayKind=" + v + ";")
	}
	if v := n.Attrs[model.AttrSymbol]; v != "" {
		style.WriteString("eventSymbol=" + v + ";")
	}
	if v := n.Attrs[model.AttrMarker]; v != "" {
		style.WriteString("taskMarker=" + v + ";")
	}
	return style.String()
}

func groupCellID(id string) string { return "g_" + id }
func nodeCellID(id string) string  { return "n_" + id }
