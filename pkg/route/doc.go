// Package route synthesizes connector paths for the edges of a laid-out
// diagram graph.
//
// Every edge is classified into exactly one of five cases - intra,
// forward-cross, backward-cross, intra-skip, self-loop - based purely on
// group membership and canvas stacking order ([Case]). Each case dispatches
// to an independent pure builder that emits anchor sides and explicit
// waypoints. There is no iterative collision search and no rendering
// feedback: the gaps reserved by the layout passes make the chosen paths
// clear by construction.
//
//   - Intra edges carry no waypoints; their rendering container is scoped
//     to the owning group so native routers only see sibling shapes.
//   - Forward cross-group edges exit the trailing side and enter the
//     leading side; the inter-group gap is obstacle-free.
//   - Backward cross-group edges (loops/retries) route along a clearance
//     line beyond the extent of every group.
//   - Intra-skip edges route just outside the group border, past the
//     skipped siblings.
//   - Self-loops are rejected with [ErrSelfLoop].
//
// Group-order lookups use maps precomputed once per graph, so routing costs
// O(nodes + edges).
package route
