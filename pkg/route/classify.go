package route

import (
	"github.com/matzehuels/laneflow/pkg/model"
)

// Case is the routing classification of an edge. Every edge falls into
// exactly one case, decided purely from group membership and canvas
// stacking order - no geometry is consulted and no collision search runs.
type Case int

const (
	// CaseIntra connects two nodes in the same local context (same group,
	// or both ungrouped) with no siblings between them.
	CaseIntra Case = iota
	// CaseForward crosses from one context into a later one in canvas order.
	CaseForward
	// CaseBackward crosses from one context into an earlier one (loop/retry).
	CaseBackward
	// CaseIntraSkip connects two nodes in the same context with one or more
	// siblings stacked between them.
	CaseIntraSkip
	// CaseSelfLoop connects a node to itself. Self-loops are rejected
	// rather than routed.
	CaseSelfLoop
)

// String returns the case name for logging and test output.
func (c Case) String() string {
	switch c {
	case CaseIntra:
		return "intra"
	case CaseForward:
		return "forward"
	case CaseBackward:
		return "backward"
	case CaseIntraSkip:
		return "intra-skip"
	case CaseSelfLoop:
		return "self-loop"
	}
	return "unknown"
}

// context holds the precomputed order maps the classifier consults.
// Ungrouped nodes form an implicit trailing context ordered after every
// group, so mixed grouped/ungrouped edges classify through the same rules.
type context struct {
	order map[string]int // node id -> context order index (group canvas order)
	rank  map[string]int // node id -> stacking rank within its context
}

// buildContext precomputes the id→index maps once per graph, keeping the
// per-edge classification O(1).
func buildContext(g *model.Graph) context {
	ctx := context{
		order: make(map[string]int, len(g.Nodes())),
		rank:  make(map[string]int, len(g.Nodes())),
	}
	looseCtx := len(g.Groups())
	looseRank := 0
	for _, n := range g.Nodes() {
		if n.GroupID == "" {
			ctx.order[n.ID] = looseCtx
			ctx.rank[n.ID] = looseRank
			looseRank++
			continue
		}
		idx, _ := g.GroupOrder(n.GroupID)
		ctx.order[n.ID] = idx
		if r, ok := g.MemberRank(n.ID); ok {
			ctx.rank[n.ID] = r
		}
	}
	return ctx
}

// classify maps an edge to its routing case. Evaluated in priority order:
// self-loop, same-context (intra or skip by stacking distance), then
// forward/backward by context order.
func (ctx context) classify(e *model.Edge) Case {
	if e.From == e.To {
		return CaseSelfLoop
	}
	from, to := ctx.order[e.From], ctx.order[e.To]
	if from == to {
		d := ctx.rank[e.To] - ctx.rank[e.From]
		if d > 1 || d < -1 {
			return CaseIntraSkip
		}
		return CaseIntra
	}
	if to > from {
		return CaseForward
	}
	return CaseBackward
}
