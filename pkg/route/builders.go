package route

import (
	"github.com/matzehuels/laneflow/pkg/layout"
	"github.com/matzehuels/laneflow/pkg/model"
)

// Pure route builders, one per routing case. Each returns a complete
// [model.Route]; none of them mutate the graph. Correctness is by
// construction: the gaps the layout passes reserved guarantee the chosen
// anchors and waypoints clear every obstacle, so there is no feedback loop
// with a renderer.

// anchor returns the absolute midpoint of the given side of a node's
// bounding box.
func anchor(g *model.Graph, n *model.Node, side model.Side) model.Point {
	o := g.NodeOrigin(n)
	switch side {
	case model.SideTop:
		return model.Point{X: o.X + n.Width/2, Y: o.Y}
	case model.SideBottom:
		return model.Point{X: o.X + n.Width/2, Y: o.Y + n.Height}
	case model.SideLeft:
		return model.Point{X: o.X, Y: o.Y + n.Height/2}
	default:
		return model.Point{X: o.X + n.Width, Y: o.Y + n.Height/2}
	}
}

// buildIntra routes an edge between neighbors in the same context. The
// rendering container is scoped to the group so any native obstacle
// avoidance in the target format only considers sibling shapes; the engine
// itself emits no waypoints.
func buildIntra(g *model.Graph, from, to *model.Node, forward bool) *model.Route {
	r := &model.Route{Container: from.GroupID}
	if g.Direction() == model.TopDown {
		r.FromSide, r.ToSide = model.SideBottom, model.SideTop
		if !forward {
			r.FromSide, r.ToSide = model.SideTop, model.SideBottom
		}
	} else {
		r.FromSide, r.ToSide = model.SideRight, model.SideLeft
		if !forward {
			r.FromSide, r.ToSide = model.SideLeft, model.SideRight
		}
	}
	return r
}

// buildForward routes a cross-context edge in flow direction: exit the
// trailing side, enter the leading side. The inter-group gap is kept
// obstacle-free by the canvas layout, so the direct path needs no waypoints.
func buildForward(g *model.Graph) *model.Route {
	if g.Direction() == model.TopDown {
		// Lanes sit side by side; the next lane is to the right.
		return &model.Route{FromSide: model.SideRight, ToSide: model.SideLeft}
	}
	return &model.Route{FromSide: model.SideBottom, ToSide: model.SideTop}
}

// buildBackward routes a loop/retry edge against flow direction. Both
// anchors sit on the far side opposite the flow, and an explicit waypoint
// pair pushes the path beyond the extent of every group so it never cuts
// through an intermediate swimlane.
func buildBackward(g *model.Graph, from, to *model.Node, cfg layout.Config) *model.Route {
	if g.Direction() == model.TopDown {
		clearY := contentMaxY(g) + cfg.BackEdgeClearance
		src := anchor(g, from, model.SideBottom)
		dst := anchor(g, to, model.SideBottom)
		return &model.Route{
			FromSide: model.SideBottom,
			ToSide:   model.SideBottom,
			Points: []model.Point{
				{X: src.X, Y: clearY},
				{X: dst.X, Y: clearY},
			},
		}
	}
	clearX := contentMaxX(g) + cfg.BackEdgeClearance
	src := anchor(g, from, model.SideRight)
	dst := anchor(g, to, model.SideRight)
	return &model.Route{
		FromSide: model.SideRight,
		ToSide:   model.SideRight,
		Points: []model.Point{
			{X: clearX, Y: src.Y},
			{X: clearX, Y: dst.Y},
		},
	}
}

// buildIntraSkip routes an edge past siblings stacked between its endpoints.
// The path leaves via the group's far side and runs along a clearance line
// just outside the group border, so it cannot cut through the skipped
// shapes.
func buildIntraSkip(g *model.Graph, from, to *model.Node, cfg layout.Config) *model.Route {
	if g.Direction() == model.TopDown {
		clearX := contextRight(g, from) + cfg.SkipClearance
		src := anchor(g, from, model.SideRight)
		dst := anchor(g, to, model.SideRight)
		return &model.Route{
			FromSide: model.SideRight,
			ToSide:   model.SideRight,
			Points: []model.Point{
				{X: clearX, Y: src.Y},
				{X: clearX, Y: dst.Y},
			},
		}
	}
	clearY := contextBottom(g, from) + cfg.SkipClearance
	src := anchor(g, from, model.SideBottom)
	dst := anchor(g, to, model.SideBottom)
	return &model.Route{
		FromSide: model.SideBottom,
		ToSide:   model.SideBottom,
		Points: []model.Point{
			{X: src.X, Y: clearY},
			{X: dst.X, Y: clearY},
		},
	}
}

// contentMaxY returns the lowest bottom edge over all groups and ungrouped
// nodes.
func contentMaxY(g *model.Graph) float64 {
	max := 0.0
	for _, grp := range g.Groups() {
		if b := grp.Origin.Y + grp.Height; b > max {
			max = b
		}
	}
	for _, n := range g.Nodes() {
		if n.GroupID != "" {
			continue
		}
		if b := n.Offset.Y + n.Height; b > max {
			max = b
		}
	}
	return max
}

// contentMaxX returns the rightmost edge over all groups and ungrouped
// nodes.
func contentMaxX(g *model.Graph) float64 {
	max := 0.0
	for _, grp := range g.Groups() {
		if r := grp.Origin.X + grp.Width; r > max {
			max = r
		}
	}
	for _, n := range g.Nodes() {
		if n.GroupID != "" {
			continue
		}
		if r := n.Offset.X + n.Width; r > max {
			max = r
		}
	}
	return max
}

// contextRight returns the right edge of the node's group box, or of the
// ungrouped stack when the node has no group.
func contextRight(g *model.Graph, n *model.Node) float64 {
	if grp, ok := g.Group(n.GroupID); ok {
		return grp.Origin.X + grp.Width
	}
	max := 0.0
	for _, other := range g.Nodes() {
		if other.GroupID != "" {
			continue
		}
		if r := other.Offset.X + other.Width; r > max {
			max = r
		}
	}
	return max
}

// contextBottom returns the bottom edge of the node's group box, or of the
// ungrouped stack when the node has no group.
func contextBottom(g *model.Graph, n *model.Node) float64 {
	if grp, ok := g.Group(n.GroupID); ok {
		return grp.Origin.Y + grp.Height
	}
	max := 0.0
	for _, other := range g.Nodes() {
		if other.GroupID != "" {
			continue
		}
		if b := other.Offset.Y + other.Height; b > max {
			max = b
		}
	}
	return max
}
