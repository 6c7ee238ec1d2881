package route

import (
	"errors"
	"testing"

	lferrors "github.com/matzehuels/laneflow/pkg/errors"
	"github.com/matzehuels/laneflow/pkg/layout"
	"github.com/matzehuels/laneflow/pkg/model"
)

// buildLaidOut constructs a graph and runs the layout passes so routes can be
// computed against real geometry.
func buildLaidOut(t *testing.T, d model.Direction, groups []model.Group, nodes []model.Node, edges []model.Edge) *model.Graph {
	t.Helper()
	g := model.New(d)
	for _, grp := range groups {
		if err := g.AddGroup(grp); err != nil {
			t.Fatalf("AddGroup(%s): %v", grp.ID, err)
		}
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%s->%s): %v", e.From, e.To, err)
		}
	}
	if err := layout.Apply(g, layout.DefaultConfig()); err != nil {
		t.Fatalf("layout.Apply: %v", err)
	}
	return g
}

// pipelineGraph is the shared fixture: two lanes plus a loose node.
//
//	intake:  request -> triage -> decide   (decide skips back via triage)
//	fulfil:  pick -> ship
//	loose:   audit
func pipelineGraph(t *testing.T, edges []model.Edge) *model.Graph {
	t.Helper()
	return buildLaidOut(t, model.TopDown,
		[]model.Group{{ID: "intake"}, {ID: "fulfil"}},
		[]model.Node{
			{ID: "request", Shape: model.ShapeBox, GroupID: "intake"},
			{ID: "triage", Shape: model.ShapeEvent, GroupID: "intake"},
			{ID: "decide", Shape: model.ShapeGateway, GroupID: "intake"},
			{ID: "pick", Shape: model.ShapeTask, GroupID: "fulfil"},
			{ID: "ship", Shape: model.ShapeBox, GroupID: "fulfil"},
			{ID: "audit", Shape: model.ShapeBox},
		},
		edges)
}

func TestClassify(t *testing.T) {
	g := pipelineGraph(t, nil)
	r := NewRouter(g, layout.DefaultConfig())

	tests := []struct {
		name string
		edge model.Edge
		want Case
	}{
		{"adjacent same lane", model.Edge{From: "request", To: "triage"}, CaseIntra},
		{"adjacent same lane reversed", model.Edge{From: "triage", To: "request"}, CaseIntra},
		{"skip over middle member", model.Edge{From: "request", To: "decide"}, CaseIntraSkip},
		{"skip upward", model.Edge{From: "decide", To: "request"}, CaseIntraSkip},
		{"cross to later lane", model.Edge{From: "decide", To: "pick"}, CaseForward},
		{"cross to earlier lane", model.Edge{From: "ship", To: "request"}, CaseBackward},
		{"grouped to loose", model.Edge{From: "ship", To: "audit"}, CaseForward},
		{"loose to grouped", model.Edge{From: "audit", To: "request"}, CaseBackward},
		{"self loop", model.Edge{From: "pick", To: "pick"}, CaseSelfLoop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Classify(&tt.edge); got != tt.want {
				t.Errorf("Classify(%s->%s) = %s, want %s", tt.edge.From, tt.edge.To, got, tt.want)
			}
		})
	}
}

func TestIntraRoute(t *testing.T) {
	g := pipelineGraph(t, []model.Edge{{From: "request", To: "triage"}})
	if err := Edges(g, layout.DefaultConfig()); err != nil {
		t.Fatalf("Edges: %v", err)
	}

	rt := g.Edges()[0].Route
	if rt == nil {
		t.Fatal("route not attached")
	}
	if rt.FromSide != model.SideBottom || rt.ToSide != model.SideTop {
		t.Errorf("anchors = %s/%s, want bottom/top", rt.FromSide, rt.ToSide)
	}
	if len(rt.Points) != 0 {
		t.Errorf("intra route should have no waypoints, got %v", rt.Points)
	}
	if rt.Container != "intake" {
		t.Errorf("container = %q, want intake", rt.Container)
	}
}

func TestForwardRoute(t *testing.T) {
	g := pipelineGraph(t, []model.Edge{{From: "decide", To: "pick"}})
	if err := Edges(g, layout.DefaultConfig()); err != nil {
		t.Fatalf("Edges: %v", err)
	}

	rt := g.Edges()[0].Route
	if rt.FromSide != model.SideRight || rt.ToSide != model.SideLeft {
		t.Errorf("anchors = %s/%s, want right/left", rt.FromSide, rt.ToSide)
	}
	if len(rt.Points) != 0 {
		t.Errorf("forward route should have no waypoints, got %v", rt.Points)
	}
}

func TestBackwardRoute(t *testing.T) {
	cfg := layout.DefaultConfig()
	g := pipelineGraph(t, []model.Edge{{From: "ship", To: "request"}})
	if err := Edges(g, cfg); err != nil {
		t.Fatalf("Edges: %v", err)
	}

	rt := g.Edges()[0].Route
	if rt.FromSide != model.SideBottom || rt.ToSide != model.SideBottom {
		t.Errorf("anchors = %s/%s, want bottom/bottom", rt.FromSide, rt.ToSide)
	}
	if len(rt.Points) != 2 {
		t.Fatalf("backward route should have 2 waypoints, got %d", len(rt.Points))
	}

	// The clearance line must run below every lane.
	maxBottom := 0.0
	for _, grp := range g.Groups() {
		if b := grp.Origin.Y + grp.Height; b > maxBottom {
			maxBottom = b
		}
	}
	for i, p := range rt.Points {
		if p.Y != maxBottom+cfg.BackEdgeClearance {
			t.Errorf("waypoint %d at Y=%g, want %g", i, p.Y, maxBottom+cfg.BackEdgeClearance)
		}
	}

	// Waypoints align horizontally with the anchor centers.
	ship, _ := g.Node("ship")
	request, _ := g.Node("request")
	if srcX := g.NodeOrigin(ship).X + ship.Width/2; rt.Points[0].X != srcX {
		t.Errorf("first waypoint X=%g, want source center %g", rt.Points[0].X, srcX)
	}
	if dstX := g.NodeOrigin(request).X + request.Width/2; rt.Points[1].X != dstX {
		t.Errorf("second waypoint X=%g, want target center %g", rt.Points[1].X, dstX)
	}
}

func TestSkipRouteAvoidsMiddleMember(t *testing.T) {
	cfg := layout.DefaultConfig()
	g := pipelineGraph(t, []model.Edge{{From: "request", To: "decide"}})
	if err := Edges(g, cfg); err != nil {
		t.Fatalf("Edges: %v", err)
	}

	rt := g.Edges()[0].Route
	if rt.FromSide != model.SideRight || rt.ToSide != model.SideRight {
		t.Errorf("anchors = %s/%s, want right/right", rt.FromSide, rt.ToSide)
	}
	if len(rt.Points) != 2 {
		t.Fatalf("skip route should have 2 waypoints, got %d", len(rt.Points))
	}

	// The clearance line runs outside the lane, so the skipped middle member
	// cannot intersect it.
	grp, _ := g.Group("intake")
	laneRight := grp.Origin.X + grp.Width
	for i, p := range rt.Points {
		if p.X != laneRight+cfg.SkipClearance {
			t.Errorf("waypoint %d at X=%g, want %g", i, p.X, laneRight+cfg.SkipClearance)
		}
	}
	triage, _ := g.Node("triage")
	if right := g.NodeOrigin(triage).X + triage.Width; right >= rt.Points[0].X {
		t.Errorf("skipped member extends to X=%g, past the clearance line %g", right, rt.Points[0].X)
	}
}

func TestSkipRouteLeftRight(t *testing.T) {
	cfg := layout.DefaultConfig()
	g := buildLaidOut(t, model.LeftRight,
		[]model.Group{{ID: "lane"}},
		[]model.Node{
			{ID: "a", Shape: model.ShapeBox, GroupID: "lane"},
			{ID: "b", Shape: model.ShapeBox, GroupID: "lane"},
			{ID: "c", Shape: model.ShapeBox, GroupID: "lane"},
		},
		[]model.Edge{{From: "a", To: "c"}})
	if err := Edges(g, cfg); err != nil {
		t.Fatalf("Edges: %v", err)
	}

	rt := g.Edges()[0].Route
	if rt.FromSide != model.SideBottom || rt.ToSide != model.SideBottom {
		t.Errorf("anchors = %s/%s, want bottom/bottom", rt.FromSide, rt.ToSide)
	}
	grp, _ := g.Group("lane")
	laneBottom := grp.Origin.Y + grp.Height
	for i, p := range rt.Points {
		if p.Y != laneBottom+cfg.SkipClearance {
			t.Errorf("waypoint %d at Y=%g, want %g", i, p.Y, laneBottom+cfg.SkipClearance)
		}
	}
}

func TestSelfLoopRejected(t *testing.T) {
	g := pipelineGraph(t, []model.Edge{
		{From: "request", To: "triage"},
		{From: "pick", To: "pick"},
	})
	err := Edges(g, layout.DefaultConfig())
	if err == nil {
		t.Fatal("self-loop should fail routing")
	}
	if !errors.Is(err, ErrSelfLoop) {
		t.Errorf("error should wrap ErrSelfLoop, got %v", err)
	}
	if code := lferrors.GetCode(err); code != lferrors.ErrCodeUnsupported {
		t.Errorf("error code = %s, want %s", code, lferrors.ErrCodeUnsupported)
	}

	// Failure must not leave partial routes behind.
	for _, e := range g.Edges() {
		if e.Route != nil {
			t.Errorf("edge %s->%s has a route after failed run", e.From, e.To)
		}
	}
}

func TestRoutingDeterministic(t *testing.T) {
	edges := []model.Edge{
		{From: "request", To: "triage"},
		{From: "decide", To: "pick"},
		{From: "ship", To: "request"},
		{From: "request", To: "decide"},
	}

	first := pipelineGraph(t, edges)
	second := pipelineGraph(t, edges)
	cfg := layout.DefaultConfig()
	if err := Edges(first, cfg); err != nil {
		t.Fatal(err)
	}
	if err := Edges(second, cfg); err != nil {
		t.Fatal(err)
	}

	for i, e := range first.Edges() {
		a, b := e.Route, second.Edges()[i].Route
		if a.FromSide != b.FromSide || a.ToSide != b.ToSide || a.Container != b.Container {
			t.Errorf("edge %s->%s routed differently across runs", e.From, e.To)
		}
		if len(a.Points) != len(b.Points) {
			t.Fatalf("edge %s->%s waypoint count differs", e.From, e.To)
		}
		for j := range a.Points {
			if a.Points[j] != b.Points[j] {
				t.Errorf("edge %s->%s waypoint %d differs: %+v vs %+v", e.From, e.To, j, a.Points[j], b.Points[j])
			}
		}
	}
}

func TestCaseString(t *testing.T) {
	for c, want := range map[Case]string{
		CaseIntra:     "intra",
		CaseForward:   "forward",
		CaseBackward:  "backward",
		CaseIntraSkip: "intra-skip",
		CaseSelfLoop:  "self-loop",
		Case(99):      "unknown",
	} {
		if got := c.String(); got != want {
			t.Errorf("Case(%d).String() = %q, want %q", int(c), got, want)
		}
	}
}
