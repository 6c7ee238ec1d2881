package route

import (
	stderrors "errors"

	"github.com/matzehuels/laneflow/pkg/errors"
	"github.com/matzehuels/laneflow/pkg/layout"
	"github.com/matzehuels/laneflow/pkg/model"
)

// ErrSelfLoop is returned by [Edges] when a connection's source and target
// are the same node. Self-loop geometry is not synthesized - such inputs are
// rejected explicitly.
var ErrSelfLoop = stderrors.New("self-loop edges are not supported")

// Router classifies and routes the edges of a laid-out graph. The id→index
// maps are precomputed once at construction, so routing is linear in the
// number of edges.
//
// A Router holds no mutable state of its own after construction and may be
// discarded once [Router.Route] has run.
type Router struct {
	g   *model.Graph
	cfg layout.Config
	ctx context
}

// NewRouter prepares a router for a graph whose layout passes have already
// run.
func NewRouter(g *model.Graph, cfg layout.Config) *Router {
	return &Router{g: g, cfg: cfg, ctx: buildContext(g)}
}

// Classify returns the routing case for an edge without building its route.
// Classification is pure: it only consults the precomputed order maps.
func (r *Router) Classify(e *model.Edge) Case {
	return r.ctx.classify(e)
}

// Route computes and attaches a route to every edge of the graph. It fails
// on self-loop edges and on structural inconsistencies (an endpoint whose
// group resolved to no members); on failure no partial routes are kept.
func (r *Router) Route() error {
	if err := r.g.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeUnknownReference, err, "graph failed validation before routing")
	}

	routes := make([]*model.Route, len(r.g.Edges()))
	for i, e := range r.g.Edges() {
		rt, err := r.build(e)
		if err != nil {
			return err
		}
		routes[i] = rt
	}
	for i, e := range r.g.Edges() {
		e.Route = routes[i]
	}
	return nil
}

// build dispatches one edge to the pure builder for its case.
func (r *Router) build(e *model.Edge) (*model.Route, error) {
	from, ok := r.g.Node(e.From)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownReference, "edge source %s", e.From)
	}
	to, ok := r.g.Node(e.To)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownReference, "edge target %s", e.To)
	}

	switch c := r.ctx.classify(e); c {
	case CaseIntra:
		forward := r.ctx.rank[e.To] >= r.ctx.rank[e.From]
		return buildIntra(r.g, from, to, forward), nil
	case CaseForward:
		return buildForward(r.g), nil
	case CaseBackward:
		return buildBackward(r.g, from, to, r.cfg), nil
	case CaseIntraSkip:
		return buildIntraSkip(r.g, from, to, r.cfg), nil
	case CaseSelfLoop:
		return nil, errors.Wrap(errors.ErrCodeUnsupported, ErrSelfLoop, "edge %s -> %s", e.From, e.To)
	default:
		return nil, errors.New(errors.ErrCodeInternal, "unhandled routing case %v", c)
	}
}

// Edges is a convenience wrapper: build a router and route every edge.
func Edges(g *model.Graph, cfg layout.Config) error {
	return NewRouter(g, cfg).Route()
}
