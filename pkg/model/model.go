package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrInvalidGroupID is returned by [Graph.AddGroup] when the group ID
	// is empty.
	ErrInvalidGroupID = errors.New("group ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique across the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDuplicateGroupID is returned by [Graph.AddGroup] when a group with
	// the same ID already exists.
	ErrDuplicateGroupID = errors.New("duplicate group ID")

	// ErrUnknownNodeReference is returned by [Graph.AddEdge] when an edge
	// endpoint does not name an existing node, and by [Graph.Validate] when
	// a stored edge references a node that is no longer present.
	ErrUnknownNodeReference = errors.New("unknown node reference")

	// ErrUnknownGroupReference is returned by [Graph.AddNode] when the node
	// names a group that was never added, and by [Graph.Validate] when a
	// node's group resolved to an empty member list.
	ErrUnknownGroupReference = errors.New("unknown group reference")
)

// Direction is the flow direction of a diagram.
type Direction string

const (
	// TopDown stacks lane members vertically; lanes sit side by side.
	TopDown Direction = "top-down"
	// LeftRight stacks lane members horizontally; lanes sit on top of each other.
	LeftRight Direction = "left-right"
)

// ParseDirection converts a string to a Direction.
// Returns false if s is not a recognized direction.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case TopDown, LeftRight:
		return Direction(s), true
	}
	return "", false
}

// Side identifies a side of a shape's bounding box where a connector attaches.
type Side string

// Anchor sides.
const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Shape is the shape category of a node. The category determines the node's
// fixed dimensions and whether its caption renders below the body.
type Shape string

// Shape categories.
const (
	ShapeBox       Shape = "box"       // standard rectangle (default)
	ShapeTask      Shape = "task"      // BPMN task
	ShapeEvent     Shape = "event"     // BPMN event circle, bottom-label
	ShapeGateway   Shape = "gateway"   // BPMN gateway diamond, bottom-label
	ShapeActor     Shape = "actor"     // stick figure, bottom-label
	ShapeDatastore Shape = "datastore" // cylinder
)

// ParseShape converts a string to a Shape. An empty string maps to ShapeBox.
// Returns false if s is not a recognized shape category.
func ParseShape(s string) (Shape, bool) {
	if s == "" {
		return ShapeBox, true
	}
	switch Shape(s) {
	case ShapeBox, ShapeTask, ShapeEvent, ShapeGateway, ShapeActor, ShapeDatastore:
		return Shape(s), true
	}
	return "", false
}

// LineStyle is the stroke style of a connector.
type LineStyle string

// Line styles.
const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
)

// ParseLineStyle converts a string to a LineStyle.
// An empty string maps to LineSolid.
func ParseLineStyle(s string) (LineStyle, bool) {
	if s == "" {
		return LineSolid, true
	}
	switch LineStyle(s) {
	case LineSolid, LineDashed:
		return LineStyle(s), true
	}
	return "", false
}

// Attrs stores shape-specific attributes as key-value pairs.
// Recognized keys are documented in the package doc.
type Attrs map[string]string

// Recognized attribute keys.
const (
	AttrMarker  = "marker"  // BPMN task marker (e.g. "user", "service")
	AttrSymbol  = "symbol"  // BPMN event symbol (e.g. "message", "timer")
	AttrOutline = "outline" // event outline (e.g. "start", "end")
	AttrGateway = "gateway" // gateway kind (e.g. "exclusive", "parallel")
)

// Point is a 2D coordinate in canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Route is the computed connector path of an edge: the anchor sides on both
// shapes plus an ordered list of explicit waypoints (possibly empty).
// Container, when non-empty, names the group the edge rendering should be
// scoped to so that native routers only consider sibling shapes.
type Route struct {
	FromSide  Side    `json:"from_side"`
	ToSide    Side    `json:"to_side"`
	Points    []Point `json:"points,omitempty"`
	Container string  `json:"container,omitempty"`
}

// Node is a vertex of the diagram graph. Width, Height, Offset and
// BottomLabel are computed by the layout passes; everything else comes from
// the input descriptors.
//
// Offset is the node position relative to its group's origin, or the
// absolute canvas position for ungrouped nodes. Use [Graph.NodeOrigin] to
// resolve the absolute position either way.
type Node struct {
	ID      string
	Label   string
	Shape   Shape
	GroupID string // empty for ungrouped nodes
	Attrs   Attrs  // never nil after AddNode

	Width, Height float64
	Offset        Point
	BottomLabel   bool
}

// Group is a swimlane container. Members holds member node IDs in input
// order; it is populated by [Graph.AddNode] as nodes reference the group.
// Width, Height and Origin are computed by the layout passes; Origin is
// always an absolute canvas coordinate.
type Group struct {
	ID      string
	Label   string
	Color   string // palette color name, resolved by exporters
	Members []string

	Width, Height float64
	Origin        Point
}

// Edge is a directed connection between two nodes. Route is nil until the
// edge router has run.
type Edge struct {
	From  string
	To    string
	Label string
	Style LineStyle
	Route *Route
}

// Graph is a diagram graph with dense node/group arenas and id→index maps
// for O(1) lookups. Input order is preserved everywhere: Nodes, Groups and
// Edges iterate in the order the entities were added, which makes layout
// output deterministic and reproducible.
//
// The zero value is not usable - use [New]. Graph is not safe for concurrent
// use; lay out one Graph per goroutine.
type Graph struct {
	direction Direction

	nodes      []*Node
	nodeIndex  map[string]int
	groups     []*Group
	groupIndex map[string]int
	edges      []*Edge

	// Canvas dimensions, set by the canvas layout pass.
	Width, Height float64
}

// New creates an empty graph with the given flow direction.
func New(direction Direction) *Graph {
	return &Graph{
		direction:  direction,
		nodeIndex:  make(map[string]int),
		groupIndex: make(map[string]int),
	}
}

// Direction returns the flow direction of the diagram.
func (g *Graph) Direction() Direction { return g.direction }

// AddGroup adds a swimlane group. Groups must be added before the nodes that
// reference them. Returns ErrInvalidGroupID or ErrDuplicateGroupID.
func (g *Graph) AddGroup(grp Group) error {
	if grp.ID == "" {
		return ErrInvalidGroupID
	}
	if _, exists := g.groupIndex[grp.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateGroupID, grp.ID)
	}
	grp.Members = nil // membership is derived from AddNode calls
	g.groupIndex[grp.ID] = len(g.groups)
	g.groups = append(g.groups, &grp)
	return nil
}

// AddNode adds a node and, when the node names a group, appends it to that
// group's member list. Returns ErrInvalidNodeID, ErrDuplicateNodeID, or
// ErrUnknownGroupReference.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodeIndex[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
	}
	if n.Attrs == nil {
		n.Attrs = Attrs{}
	}
	if n.GroupID != "" {
		idx, ok := g.groupIndex[n.GroupID]
		if !ok {
			return fmt.Errorf("%w: node %s references group %s", ErrUnknownGroupReference, n.ID, n.GroupID)
		}
		g.groups[idx].Members = append(g.groups[idx].Members, n.ID)
	}
	g.nodeIndex[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, &n)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownNodeReference if either endpoint is missing.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodeIndex[e.From]; !ok {
		return fmt.Errorf("%w: edge source %s", ErrUnknownNodeReference, e.From)
	}
	if _, ok := g.nodeIndex[e.To]; !ok {
		return fmt.Errorf("%w: edge target %s", ErrUnknownNodeReference, e.To)
	}
	g.edges = append(g.edges, &e)
	return nil
}

// Nodes returns all nodes in input order. The slice is shared - do not
// reorder it.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Groups returns all groups in input order. The slice is shared - do not
// reorder it.
func (g *Graph) Groups() []*Group { return g.groups }

// Edges returns all edges in input order.
func (g *Graph) Edges() []*Edge { return g.edges }

// Node returns the node with the given ID, or false if it does not exist.
func (g *Graph) Node(id string) (*Node, bool) {
	idx, ok := g.nodeIndex[id]
	if !ok {
		return nil, false
	}
	return g.nodes[idx], true
}

// Group returns the group with the given ID, or false if it does not exist.
func (g *Graph) Group(id string) (*Group, bool) {
	idx, ok := g.groupIndex[id]
	if !ok {
		return nil, false
	}
	return g.groups[idx], true
}

// GroupOrder returns the canvas stacking index of a group (its position in
// input order), or false if the group does not exist. The lookup is O(1).
func (g *Graph) GroupOrder(id string) (int, bool) {
	idx, ok := g.groupIndex[id]
	return idx, ok
}

// MemberRank returns the stacking position of a node within its group's
// member list, or false if the node is ungrouped or not listed.
func (g *Graph) MemberRank(id string) (int, bool) {
	n, ok := g.Node(id)
	if !ok || n.GroupID == "" {
		return 0, false
	}
	grp, ok := g.Group(n.GroupID)
	if !ok {
		return 0, false
	}
	for i, m := range grp.Members {
		if m == id {
			return i, true
		}
	}
	return 0, false
}

// NodeOrigin resolves the absolute canvas position of a node's top-left
// corner. For grouped nodes this translates the group-local offset by the
// owning group's origin.
func (g *Graph) NodeOrigin(n *Node) Point {
	if n.GroupID == "" {
		return n.Offset
	}
	grp, ok := g.Group(n.GroupID)
	if !ok {
		return n.Offset
	}
	return Point{X: grp.Origin.X + n.Offset.X, Y: grp.Origin.Y + n.Offset.Y}
}

// Validate checks referential integrity of the stored graph: every edge
// endpoint must resolve to a node, and every grouped node's group must exist
// and list the node as a member. AddNode/AddEdge enforce these constraints
// on the way in, so Validate only fails after external mutation.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		if _, ok := g.nodeIndex[e.From]; !ok {
			return fmt.Errorf("%w: edge source %s", ErrUnknownNodeReference, e.From)
		}
		if _, ok := g.nodeIndex[e.To]; !ok {
			return fmt.Errorf("%w: edge target %s", ErrUnknownNodeReference, e.To)
		}
	}
	for _, n := range g.nodes {
		if n.GroupID == "" {
			continue
		}
		grp, ok := g.Group(n.GroupID)
		if !ok || len(grp.Members) == 0 {
			return fmt.Errorf("%w: node %s references group %s", ErrUnknownGroupReference, n.ID, n.GroupID)
		}
	}
	return nil
}
