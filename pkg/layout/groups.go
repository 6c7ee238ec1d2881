package layout

import (
	"github.com/matzehuels/laneflow/pkg/errors"
	"github.com/matzehuels/laneflow/pkg/model"
)

// LayoutGroups arranges member nodes within each group and normalizes group
// dimensions across all groups. It is the second layout pass and requires
// [SizeNodes] to have run.
//
// The pass works in three stages:
//
//  1. Stack members along the primary axis in input order, separated by
//     Config.NodeGap, with Config.BottomLabelPad after bottom-label nodes,
//     and accumulate each group's raw primary extent (header allowance plus
//     content plus trailing margin).
//  2. Equalize: set every group's primary extent to the maximum raw extent
//     observed, producing uniform swimlanes regardless of member count.
//     This is deliberately a second stage - equalization must only run once
//     all raw extents are known.
//  3. Center each member on the cross axis within its group's final cross
//     extent.
//
// A group with zero members still reserves a header-only bounding box.
func LayoutGroups(g *model.Graph, cfg Config) error {
	d := g.Direction()
	groups := g.Groups()
	if len(groups) == 0 {
		return nil
	}

	// Stage 1: stack members, record raw primary extents.
	maxPrimary := 0.0
	for _, grp := range groups {
		raw, err := stackMembers(g, grp, cfg)
		if err != nil {
			return err
		}
		setGroupPrimaryExtent(d, grp, raw)
		if raw > maxPrimary {
			maxPrimary = raw
		}

		// Cross extent: the configured default is a floor, not a ceiling.
		cross := cfg.GroupCrossSize
		for _, id := range grp.Members {
			n, _ := g.Node(id)
			if need := crossExtent(d, n) + 2*cfg.GroupMargin; need > cross {
				cross = need
			}
		}
		setGroupCrossExtent(d, grp, cross)
	}

	// Stage 2: equalize primary extents to the global maximum.
	for _, grp := range groups {
		setGroupPrimaryExtent(d, grp, maxPrimary)
	}

	// Stage 3: center members on the cross axis.
	for _, grp := range groups {
		cross := groupCrossExtent(d, grp)
		for _, id := range grp.Members {
			n, _ := g.Node(id)
			offset := (cross - crossExtent(d, n)) / 2
			if offset < 0 {
				return errors.New(errors.ErrCodeLayoutInvariant,
					"node %s wider than its group %s on the cross axis", n.ID, grp.ID)
			}
			setCrossOffset(d, n, offset)
		}
	}

	return nil
}

// stackMembers positions a group's members along the primary axis and
// returns the group's raw primary extent.
func stackMembers(g *model.Graph, grp *model.Group, cfg Config) (float64, error) {
	d := g.Direction()
	cur := cfg.GroupHeader
	for _, id := range grp.Members {
		n, ok := g.Node(id)
		if !ok {
			return 0, errors.New(errors.ErrCodeLayoutInvariant,
				"group %s lists unknown member %s", grp.ID, id)
		}
		setPrimaryOffset(d, n, cur)
		cur += primaryExtent(d, n) + cfg.NodeGap
		if n.BottomLabel {
			cur += cfg.BottomLabelPad
		}
	}
	if len(grp.Members) > 0 {
		cur -= cfg.NodeGap // no gap after the last member
	}
	raw := cur + cfg.GroupMargin
	if raw < 0 {
		return 0, errors.New(errors.ErrCodeLayoutInvariant,
			"negative extent for group %s", grp.ID)
	}
	return raw, nil
}
