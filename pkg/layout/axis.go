package layout

import "github.com/matzehuels/laneflow/pkg/model"

// Axis accessors translating between the direction-dependent primary/cross
// axes and concrete x/y geometry. For top-down diagrams the primary axis is
// vertical (members stack downward, lanes sit side by side); for left-right
// diagrams it is horizontal.

// primaryExtent returns a node's extent along the stacking axis.
func primaryExtent(d model.Direction, n *model.Node) float64 {
	if d == model.TopDown {
		return n.Height
	}
	return n.Width
}

// crossExtent returns a node's extent along the centering axis.
func crossExtent(d model.Direction, n *model.Node) float64 {
	if d == model.TopDown {
		return n.Width
	}
	return n.Height
}

// setPrimaryOffset sets a node's offset along the stacking axis.
func setPrimaryOffset(d model.Direction, n *model.Node, v float64) {
	if d == model.TopDown {
		n.Offset.Y = v
	} else {
		n.Offset.X = v
	}
}

// setCrossOffset sets a node's offset along the centering axis.
func setCrossOffset(d model.Direction, n *model.Node, v float64) {
	if d == model.TopDown {
		n.Offset.X = v
	} else {
		n.Offset.Y = v
	}
}

// groupPrimaryExtent returns a group's extent along the stacking axis.
func groupPrimaryExtent(d model.Direction, grp *model.Group) float64 {
	if d == model.TopDown {
		return grp.Height
	}
	return grp.Width
}

// setGroupPrimaryExtent sets a group's extent along the stacking axis.
func setGroupPrimaryExtent(d model.Direction, grp *model.Group, v float64) {
	if d == model.TopDown {
		grp.Height = v
	} else {
		grp.Width = v
	}
}

// groupCrossExtent returns a group's extent along the centering axis.
func groupCrossExtent(d model.Direction, grp *model.Group) float64 {
	if d == model.TopDown {
		return grp.Width
	}
	return grp.Height
}

// setGroupCrossExtent sets a group's extent along the centering axis.
func setGroupCrossExtent(d model.Direction, grp *model.Group, v float64) {
	if d == model.TopDown {
		grp.Width = v
	} else {
		grp.Height = v
	}
}
