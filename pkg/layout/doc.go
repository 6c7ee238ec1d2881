// Package layout assigns 2D geometry to the nodes and groups of a diagram
// graph.
//
// The package implements three strictly ordered passes over a
// [model.Graph]:
//
//  1. [SizeNodes] - fixed width/height per shape category, bottom-label
//     flagging.
//  2. [LayoutGroups] - stack members inside each group along the primary
//     axis, equalize every group's primary extent to the global maximum,
//     center members on the cross axis.
//  3. [LayoutCanvas] - place groups (or the ungrouped stack) across the
//     canvas and grow the canvas to fit.
//
// [Apply] runs all three. Edge routing is a fourth, separate pass in
// pkg/route.
//
// # Invariants
//
// After LayoutGroups, every group's primary-axis extent equals the maximum
// raw extent across all groups, and every member's cross-axis offset plus
// its extent fits within the group's cross extent. Consecutive members never
// overlap: each starts at least Config.NodeGap after the previous one ends,
// plus Config.BottomLabelPad when the previous member carries its caption
// below the body.
//
// All passes are deterministic: the same graph and config always produce
// identical coordinates. Re-running a pass on its own output is a no-op.
//
// # Tuning
//
// Every constant (gaps, paddings, clearances, default canvas) lives in
// [Config]; nothing is hard-coded inside the algorithms. [DefaultConfig]
// carries the conventional values, and the struct is TOML-taggable so the
// CLI can overlay a config file.
package layout
