package layout

import "github.com/matzehuels/laneflow/pkg/model"

// shapeSize is the fixed bounding box of a shape category.
type shapeSize struct {
	w, h float64
}

// shapeSizes maps every shape category to its fixed dimensions.
// Standard boxes get the default rectangle; BPMN shapes use their
// conventional compact sizes.
var shapeSizes = map[model.Shape]shapeSize{
	model.ShapeBox:       {120, 60},
	model.ShapeTask:      {120, 80},
	model.ShapeEvent:     {50, 50},
	model.ShapeGateway:   {50, 50},
	model.ShapeActor:     {40, 60},
	model.ShapeDatastore: {60, 60},
}

// bottomLabelShapes are the categories whose caption renders below the shape
// body instead of inside it. Downstream passes add extra trailing clearance
// after these so routed connectors stay clear of the caption.
var bottomLabelShapes = map[model.Shape]bool{
	model.ShapeEvent:   true,
	model.ShapeGateway: true,
	model.ShapeActor:   true,
}

// ShapeSize returns the fixed width and height for a shape category.
// Unknown categories fall back to the standard box.
func ShapeSize(s model.Shape) (w, h float64) {
	sz, ok := shapeSizes[s]
	if !ok {
		sz = shapeSizes[model.ShapeBox]
	}
	return sz.w, sz.h
}

// IsBottomLabel reports whether a shape category renders its caption below
// the body.
func IsBottomLabel(s model.Shape) bool { return bottomLabelShapes[s] }

// SizeNodes assigns width, height and the bottom-label flag to every node
// from its shape category. This is the first layout pass; it touches no
// positions.
func SizeNodes(g *model.Graph) {
	for _, n := range g.Nodes() {
		n.Width, n.Height = ShapeSize(n.Shape)
		n.BottomLabel = IsBottomLabel(n.Shape)
	}
}
