package model

import (
	"errors"
	"testing"
)

func TestAddNodeValidation(t *testing.T) {
	tests := []struct {
		name    string
		build   func(g *Graph) error
		wantErr error
	}{
		{
			name: "empty node ID",
			build: func(g *Graph) error {
				return g.AddNode(Node{ID: ""})
			},
			wantErr: ErrInvalidNodeID,
		},
		{
			name: "duplicate node ID",
			build: func(g *Graph) error {
				if err := g.AddNode(Node{ID: "a"}); err != nil {
					return err
				}
				return g.AddNode(Node{ID: "a"})
			},
			wantErr: ErrDuplicateNodeID,
		},
		{
			name: "unknown group reference",
			build: func(g *Graph) error {
				return g.AddNode(Node{ID: "a", GroupID: "missing"})
			},
			wantErr: ErrUnknownGroupReference,
		},
		{
			name: "valid grouped node",
			build: func(g *Graph) error {
				if err := g.AddGroup(Group{ID: "lane"}); err != nil {
					return err
				}
				return g.AddNode(Node{ID: "a", GroupID: "lane"})
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(TopDown)
			err := tt.build(g)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddGroupValidation(t *testing.T) {
	g := New(TopDown)

	if err := g.AddGroup(Group{ID: ""}); !errors.Is(err, ErrInvalidGroupID) {
		t.Errorf("empty ID: got %v, want ErrInvalidGroupID", err)
	}
	if err := g.AddGroup(Group{ID: "lane"}); err != nil {
		t.Fatalf("AddGroup failed: %v", err)
	}
	if err := g.AddGroup(Group{ID: "lane"}); !errors.Is(err, ErrDuplicateGroupID) {
		t.Errorf("duplicate ID: got %v, want ErrDuplicateGroupID", err)
	}
}

func TestAddGroupIgnoresPresetMembers(t *testing.T) {
	g := New(TopDown)
	if err := g.AddGroup(Group{ID: "lane", Members: []string{"ghost"}}); err != nil {
		t.Fatalf("AddGroup failed: %v", err)
	}

	grp, _ := g.Group("lane")
	if len(grp.Members) != 0 {
		t.Errorf("members should be derived from AddNode, got %v", grp.Members)
	}
}

func TestAddEdgeValidation(t *testing.T) {
	g := New(TopDown)
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatal(err)
	}

	if err := g.AddEdge(Edge{From: "a", To: "missing"}); !errors.Is(err, ErrUnknownNodeReference) {
		t.Errorf("missing target: got %v, want ErrUnknownNodeReference", err)
	}
	if err := g.AddEdge(Edge{From: "missing", To: "a"}); !errors.Is(err, ErrUnknownNodeReference) {
		t.Errorf("missing source: got %v, want ErrUnknownNodeReference", err)
	}
}

func TestInputOrderPreserved(t *testing.T) {
	g := New(TopDown)
	ids := []string{"charlie", "alpha", "bravo"}
	for _, id := range ids {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatal(err)
		}
	}

	for i, n := range g.Nodes() {
		if n.ID != ids[i] {
			t.Errorf("node %d = %s, want %s", i, n.ID, ids[i])
		}
	}
}

func TestGroupOrderAndMemberRank(t *testing.T) {
	g := New(TopDown)
	for _, id := range []string{"first", "second"} {
		if err := g.AddGroup(Group{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	for _, n := range []Node{
		{ID: "a", GroupID: "second"},
		{ID: "b", GroupID: "first"},
		{ID: "c", GroupID: "second"},
		{ID: "loose"},
	} {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}

	if order, ok := g.GroupOrder("second"); !ok || order != 1 {
		t.Errorf("GroupOrder(second) = %d, %v; want 1, true", order, ok)
	}
	if rank, ok := g.MemberRank("c"); !ok || rank != 1 {
		t.Errorf("MemberRank(c) = %d, %v; want 1, true", rank, ok)
	}
	if rank, ok := g.MemberRank("b"); !ok || rank != 0 {
		t.Errorf("MemberRank(b) = %d, %v; want 0, true", rank, ok)
	}
	if _, ok := g.MemberRank("loose"); ok {
		t.Error("MemberRank should be false for ungrouped nodes")
	}
}

func TestNodeOrigin(t *testing.T) {
	g := New(TopDown)
	if err := g.AddGroup(Group{ID: "lane"}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(Node{ID: "grouped", GroupID: "lane"}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(Node{ID: "loose"}); err != nil {
		t.Fatal(err)
	}

	grp, _ := g.Group("lane")
	grp.Origin = Point{X: 100, Y: 50}
	grouped, _ := g.Node("grouped")
	grouped.Offset = Point{X: 40, Y: 60}
	loose, _ := g.Node("loose")
	loose.Offset = Point{X: 7, Y: 9}

	if got := g.NodeOrigin(grouped); got != (Point{X: 140, Y: 110}) {
		t.Errorf("grouped origin = %+v, want {140 110}", got)
	}
	if got := g.NodeOrigin(loose); got != (Point{X: 7, Y: 9}) {
		t.Errorf("loose origin = %+v, want {7 9}", got)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in     string
		want   Direction
		wantOK bool
	}{
		{"top-down", TopDown, true},
		{"left-right", LeftRight, true},
		{"", "", false},
		{"sideways", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDirection(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		in     string
		want   Shape
		wantOK bool
	}{
		{"", ShapeBox, true},
		{"box", ShapeBox, true},
		{"task", ShapeTask, true},
		{"event", ShapeEvent, true},
		{"gateway", ShapeGateway, true},
		{"actor", ShapeActor, true},
		{"datastore", ShapeDatastore, true},
		{"blob", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseShape(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseShape(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseLineStyle(t *testing.T) {
	if got, ok := ParseLineStyle(""); !ok || got != LineSolid {
		t.Errorf("empty style should default to solid, got %v, %v", got, ok)
	}
	if got, ok := ParseLineStyle("dashed"); !ok || got != LineDashed {
		t.Errorf("ParseLineStyle(dashed) = %v, %v", got, ok)
	}
	if _, ok := ParseLineStyle("dotted"); ok {
		t.Error("ParseLineStyle(dotted) should be false")
	}
}

func TestValidate(t *testing.T) {
	g := New(TopDown)
	if err := g.AddGroup(Group{ID: "lane"}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(Node{ID: "a", GroupID: "lane"}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(Node{ID: "b"}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Fatal(err)
	}

	if err := g.Validate(); err != nil {
		t.Errorf("well-formed graph should validate, got %v", err)
	}
}
