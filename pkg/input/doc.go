// Package input parses and validates diagram descriptors.
//
// A [Descriptor] is the JSON contract between upstream producers (hand
// written files, translation layers) and the layout engine:
//
//	{
//	  "direction": "top-down",
//	  "groups": [{"id": "intake", "label": "Intake", "color": "blue"}],
//	  "nodes": [
//	    {"id": "start", "group": "intake", "shape": "event",
//	     "attrs": {"outline": "start"}},
//	    {"id": "review", "group": "intake", "shape": "task"}
//	  ],
//	  "connections": [{"from": "start", "to": "review"}]
//	}
//
// [Descriptor.Build] validates eagerly - duplicate ids, unknown references,
// bad vocabulary values - and constructs a [model.Graph] preserving input
// order. Errors carry structured codes (pkg/errors) and name the offending
// entity; no partial graph is ever returned.
package input
