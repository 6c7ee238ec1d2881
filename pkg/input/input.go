package input

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/laneflow/pkg/errors"
	"github.com/matzehuels/laneflow/pkg/model"
)

// Descriptor is the validated input contract for a diagram: flow direction,
// ordered groups, ordered nodes, ordered connections. Order is significant -
// it drives stacking order and therefore the entire layout.
type Descriptor struct {
	Direction   string       `json:"direction"`
	Groups      []Group      `json:"groups,omitempty"`
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections,omitempty"`
}

// Group describes a swimlane.
type Group struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Color string `json:"color,omitempty"` // palette color name
}

// Node describes a diagram node.
type Node struct {
	ID    string            `json:"id"`
	Label string            `json:"label,omitempty"`
	Group string            `json:"group,omitempty"`
	Shape string            `json:"shape,omitempty"` // defaults to "box"
	Attrs map[string]string `json:"attrs,omitempty"`
}

// Connection describes a directed edge between two nodes.
type Connection struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
	Style string `json:"style,omitempty"` // defaults to "solid"
}

// Parse decodes JSON bytes into a Descriptor. The descriptor is not yet
// validated - use [Descriptor.Build] to validate and construct the graph.
func Parse(data []byte) (Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return Descriptor{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode descriptor")
	}
	return d, nil
}

// Read decodes a JSON descriptor from an io.Reader.
func Read(r io.Reader) (Descriptor, error) {
	var d Descriptor
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Descriptor{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode descriptor")
	}
	return d, nil
}

// ReadFile reads and decodes a JSON descriptor file.
func ReadFile(path string) (Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Descriptor{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Descriptor{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Build validates the descriptor and constructs the diagram graph.
// Validation is eager and aborts on the first structural error with the
// offending id in the message - a partially positioned diagram would be more
// misleading than an explicit rejection.
func (d Descriptor) Build() (*model.Graph, error) {
	dir, ok := model.ParseDirection(d.Direction)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDirection,
			"invalid direction %q (must be %q or %q)", d.Direction, model.TopDown, model.LeftRight)
	}

	g := model.New(dir)

	for _, grp := range d.Groups {
		if err := errors.ValidateID(grp.ID); err != nil {
			return nil, err
		}
		label := grp.Label
		if label == "" {
			label = grp.ID
		}
		if err := g.AddGroup(model.Group{ID: grp.ID, Label: label, Color: grp.Color}); err != nil {
			return nil, structural(err, "group %s", grp.ID)
		}
	}

	for _, n := range d.Nodes {
		if err := errors.ValidateID(n.ID); err != nil {
			return nil, err
		}
		shape, ok := model.ParseShape(n.Shape)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidShape, "node %s: invalid shape %q", n.ID, n.Shape)
		}
		label := n.Label
		if label == "" {
			label = n.ID
		}
		node := model.Node{
			ID:      n.ID,
			Label:   label,
			Shape:   shape,
			GroupID: n.Group,
			Attrs:   model.Attrs(n.Attrs),
		}
		if err := g.AddNode(node); err != nil {
			return nil, structural(err, "node %s", n.ID)
		}
	}

	for _, c := range d.Connections {
		style, ok := model.ParseLineStyle(c.Style)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidLineStyle,
				"connection %s -> %s: invalid style %q", c.From, c.To, c.Style)
		}
		edge := model.Edge{From: c.From, To: c.To, Label: c.Label, Style: style}
		if err := g.AddEdge(edge); err != nil {
			return nil, structural(err, "connection %s -> %s", c.From, c.To)
		}
	}

	return g, nil
}

// structural maps model sentinel errors to the structured error taxonomy,
// preserving the offending entity in the message.
func structural(err error, format string, args ...any) error {
	switch {
	case stderrors.Is(err, model.ErrDuplicateNodeID), stderrors.Is(err, model.ErrDuplicateGroupID):
		return errors.Wrap(errors.ErrCodeDuplicateID, err, format, args...)
	case stderrors.Is(err, model.ErrUnknownNodeReference), stderrors.Is(err, model.ErrUnknownGroupReference):
		return errors.Wrap(errors.ErrCodeUnknownReference, err, format, args...)
	case stderrors.Is(err, model.ErrInvalidNodeID), stderrors.Is(err, model.ErrInvalidGroupID):
		return errors.Wrap(errors.ErrCodeInvalidID, err, format, args...)
	default:
		return errors.Wrap(errors.ErrCodeInvalidInput, err, format, args...)
	}
}
