// Package graph builds and validates a directed multigraph representation
// of a whole system's message flow from a manifest.SystemDefinition, and
// reports the topology errors spec.md's validator requires: unlistened
// broadcasts, unhandled requests, self-references, and dangling references.
package graph

import "gonum.org/v1/gonum/graph/encoding"

// AppNode is one app in the system graph.
type AppNode struct {
	id   int64
	Name string
}

func (n *AppNode) ID() int64 { return n.id }

// DOTID satisfies encoding/dot's naming interface, so the emitted graph
// uses app names instead of gonum's synthesized node IDs.
func (n *AppNode) DOTID() string { return n.Name }

// Attributes supplies the node's "label" attribute directly, the same role
// the original implementation's `Dot::with_attr_getters` node closure
// played against petgraph.
func (n *AppNode) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: quoteLabel(n.Name)}}
}
