package layout

// Config holds every tunable constant of the layout and routing passes.
// The zero value is not usable - start from [DefaultConfig] and override
// individual fields, or decode a TOML file over the defaults.
//
// All values are in canvas units.
type Config struct {
	// NodeGap separates consecutive members along the primary axis.
	NodeGap float64 `toml:"node_gap"`

	// BottomLabelPad is the extra trailing padding after a bottom-label
	// node, keeping routed connectors clear of its below-body caption.
	BottomLabelPad float64 `toml:"bottom_label_pad"`

	// GroupGap separates groups along the canvas placement axis.
	GroupGap float64 `toml:"group_gap"`

	// BackEdgeClearance is how far beyond the largest group extent a
	// backward edge is routed.
	BackEdgeClearance float64 `toml:"back_edge_clearance"`

	// SkipClearance is how far beyond the group border a skip-node edge
	// is routed.
	SkipClearance float64 `toml:"skip_clearance"`

	// GroupCrossSize is the default cross-axis extent of a group. It is a
	// floor: groups grow to fit wider members.
	GroupCrossSize float64 `toml:"group_cross_size"`

	// GroupHeader is the primary-axis allowance for a group's title band.
	GroupHeader float64 `toml:"group_header"`

	// GroupMargin is the trailing primary-axis margin inside a group, and
	// the cross-axis padding applied when a member forces the group to grow.
	GroupMargin float64 `toml:"group_margin"`

	// CanvasWidth and CanvasHeight are the starting canvas dimensions.
	// The canvas grows to contain all content; it never clips.
	CanvasWidth  float64 `toml:"canvas_width"`
	CanvasHeight float64 `toml:"canvas_height"`

	// CanvasMargin offsets the first group (or ungrouped stack) from the
	// canvas origin.
	CanvasMargin float64 `toml:"canvas_margin"`
}

// DefaultConfig returns the conventional layout constants.
func DefaultConfig() Config {
	return Config{
		NodeGap:           20,
		BottomLabelPad:    25,
		GroupGap:          60,
		BackEdgeClearance: 40,
		SkipClearance:     20,
		GroupCrossSize:    200,
		GroupHeader:       40,
		GroupMargin:       20,
		CanvasWidth:       1200,
		CanvasHeight:      800,
		CanvasMargin:      40,
	}
}
