// Package model defines the in-memory diagram graph that the layout and
// routing passes operate on.
//
// A [Graph] is built once from validated input descriptors, mutated in place
// by the layout passes in strict order (node sizing, group layout, canvas
// layout, edge routing), and read-only afterwards during export. No entity
// is mutated outside its designated pass.
//
// # Structure
//
// Nodes and groups live in dense arena slices with id→index maps built at
// insertion time, so the edge router's group-order comparisons are O(1)
// rather than linear scans. Input order is preserved throughout - iterating
// [Graph.Nodes], [Graph.Groups] or [Graph.Edges] always yields entities in
// the order they were added, which is what makes layout deterministic.
//
// # Coordinate systems
//
// Two coordinate systems coexist and must not be confused:
//
//   - Group-local: [Node.Offset] for grouped nodes is relative to the owning
//     group's origin. Export formats typically express child geometry this
//     way.
//   - Absolute: [Group.Origin] and the offsets of ungrouped nodes are canvas
//     coordinates. [Graph.NodeOrigin] resolves any node to absolute.
//
// # Shape attributes
//
// [Node.Attrs] carries shape-specific attributes as plain strings.
// Recognized keys:
//
//	marker    BPMN task marker ("user", "service", "script", ...)
//	symbol    BPMN event symbol ("message", "timer", "error", ...)
//	outline   event outline ("start", "end", "intermediate")
//	gateway   gateway kind ("exclusive", "parallel", "inclusive")
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. Multiple diagrams may be laid
// out concurrently as long as each invocation owns its Graph instance; the
// package keeps no shared state.
package model
