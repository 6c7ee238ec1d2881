package model_test

import (
	"fmt"

	"github.com/matzehuels/laneflow/pkg/model"
)

func ExampleGraph_basic() {
	// Build a two-lane order flow: intake feeds fulfilment.
	g := model.New(model.TopDown)
	_ = g.AddGroup(model.Group{ID: "intake", Label: "Intake"})
	_ = g.AddGroup(model.Group{ID: "fulfil", Label: "Fulfilment"})
	_ = g.AddNode(model.Node{ID: "request", GroupID: "intake"})
	_ = g.AddNode(model.Node{ID: "pick", GroupID: "fulfil"})
	_ = g.AddEdge(model.Edge{From: "request", To: "pick"})

	fmt.Println("Direction:", g.Direction())
	fmt.Println("Groups:", len(g.Groups()))
	fmt.Println("Nodes:", len(g.Nodes()))
	fmt.Println("Edges:", len(g.Edges()))
	// Output:
	// Direction: top-down
	// Groups: 2
	// Nodes: 2
	// Edges: 1
}

func ExampleGraph_MemberRank() {
	// Membership order follows node input order, not group declaration.
	g := model.New(model.TopDown)
	_ = g.AddGroup(model.Group{ID: "lane"})
	_ = g.AddNode(model.Node{ID: "first", GroupID: "lane"})
	_ = g.AddNode(model.Node{ID: "second", GroupID: "lane"})

	rank, _ := g.MemberRank("second")
	fmt.Println("Rank of second:", rank)

	grp, _ := g.Group("lane")
	fmt.Println("Members:", grp.Members)
	// Output:
	// Rank of second: 1
	// Members: [first second]
}
