package layout

import (
	"github.com/matzehuels/laneflow/pkg/model"
)

// LayoutCanvas positions groups and ungrouped nodes on the canvas. It is the
// third layout pass and requires [LayoutGroups] to have run.
//
// Groups are placed along the axis orthogonal to their internal stacking:
// side by side for top-down diagrams, on top of each other for left-right
// diagrams, separated by Config.GroupGap. Ungrouped nodes form a simple
// centered stack placed after the last group (or at the canvas margin when
// there are no groups).
//
// The canvas starts at Config.CanvasWidth x Config.CanvasHeight and grows to
// contain all content - nothing is ever clipped.
func LayoutCanvas(g *model.Graph, cfg Config) error {
	d := g.Direction()

	place := cfg.CanvasMargin // cursor along the group placement axis
	for _, grp := range g.Groups() {
		if d == model.TopDown {
			grp.Origin = model.Point{X: place, Y: cfg.CanvasMargin}
			place += grp.Width + cfg.GroupGap
		} else {
			grp.Origin = model.Point{X: cfg.CanvasMargin, Y: place}
			place += grp.Height + cfg.GroupGap
		}
	}
	if len(g.Groups()) > 0 {
		place -= cfg.GroupGap // no gap after the last group
	}

	if err := stackUngrouped(g, cfg, place); err != nil {
		return err
	}

	growCanvas(g, cfg)
	return nil
}

// stackUngrouped lays out nodes without a group as a single flow stacked
// along the primary axis and centered on the cross axis relative to the
// widest node in the stack. contentEnd is the far edge of the last placed
// group along the placement axis; the stack starts after it.
func stackUngrouped(g *model.Graph, cfg Config, contentEnd float64) error {
	d := g.Direction()

	var loose []*model.Node
	maxCross := 0.0
	for _, n := range g.Nodes() {
		if n.GroupID != "" {
			continue
		}
		loose = append(loose, n)
		if c := crossExtent(d, n); c > maxCross {
			maxCross = c
		}
	}
	if len(loose) == 0 {
		return nil
	}

	crossStart := cfg.CanvasMargin
	if len(g.Groups()) > 0 {
		crossStart = contentEnd + cfg.GroupGap
	}

	cur := cfg.CanvasMargin
	for _, n := range loose {
		setPrimaryOffset(d, n, cur)
		setCrossOffset(d, n, crossStart+(maxCross-crossExtent(d, n))/2)
		cur += primaryExtent(d, n) + cfg.NodeGap
		if n.BottomLabel {
			cur += cfg.BottomLabelPad
		}
	}
	return nil
}

// growCanvas expands the canvas bounds to contain every group and node plus
// the canvas margin.
func growCanvas(g *model.Graph, cfg Config) {
	g.Width, g.Height = cfg.CanvasWidth, cfg.CanvasHeight

	extend := func(right, bottom float64) {
		if right+cfg.CanvasMargin > g.Width {
			g.Width = right + cfg.CanvasMargin
		}
		if bottom+cfg.CanvasMargin > g.Height {
			g.Height = bottom + cfg.CanvasMargin
		}
	}

	for _, grp := range g.Groups() {
		extend(grp.Origin.X+grp.Width, grp.Origin.Y+grp.Height)
	}
	for _, n := range g.Nodes() {
		if n.GroupID != "" {
			continue
		}
		extend(n.Offset.X+n.Width, n.Offset.Y+n.Height)
	}
}

// Apply runs the three geometric layout passes in order: node sizing, group
// layout, canvas layout. Edge routing is a separate pass in pkg/route; use
// the pipeline package to run all four.
func Apply(g *model.Graph, cfg Config) error {
	SizeNodes(g)
	if err := LayoutGroups(g, cfg); err != nil {
		return err
	}
	return LayoutCanvas(g, cfg)
}
