package graph

import (
	"gonum.org/v1/gonum/graph/multi"

	"github.com/rustyeddy/fdp/manifest"
)

// SystemGraph is the built, validated graph for one system: one node per
// app, one edge per message flow (a broadcast to each listener, a request
// to its handler). Parallel edges between the same pair of apps are
// expected whenever more than one message flows the same direction, so the
// graph is a directed multigraph, not a simple graph.
type SystemGraph struct {
	g     *multi.DirectedGraph
	nodes map[string]*AppNode
}

// Underlying returns the gonum graph for consumption by the artifact
// emitter's DOT marshaler.
func (s *SystemGraph) Underlying() *multi.DirectedGraph {
	return s.g
}

// Node looks up an app's node by name.
func (s *SystemGraph) Node(name string) (*AppNode, bool) {
	n, ok := s.nodes[name]
	return n, ok
}

// Build validates definition and constructs its system graph. It follows
// the same single-pass, fail-fast algorithm as the original implementation
// (original_source fdp-core/fdp-common/src/graph.rs's FdpSystem::from),
// iterating apps and their declarations in definition's insertion order,
// plus the self-reference and dangling-reference checks promoted to
// required invariants (see DESIGN.md).
func Build(definition *manifest.SystemDefinition) (*SystemGraph, error) {
	g := multi.NewDirectedGraph()
	nodes := make(map[string]*AppNode, definition.Len())

	var nextNodeID int64
	for _, name := range definition.Names() {
		node := &AppNode{id: nextNodeID, Name: name}
		nextNodeID++
		g.AddNode(node)
		nodes[name] = node
	}

	for _, appName := range definition.Names() {
		app, _ := definition.Manifest(appName)
		for _, ref := range app.ListenedEvents {
			if err := checkReference(definition, appName, ref, manifest.ModuleBroadcastedEvents); err != nil {
				return nil, err
			}
		}
		for _, ref := range app.EmittedRequests {
			if err := checkReference(definition, appName, ref, manifest.ModuleIncomingRequests); err != nil {
				return nil, err
			}
		}
	}

	var nextLineID int64
	for _, appName := range definition.Names() {
		app, _ := definition.Manifest(appName)
		appNode := nodes[appName]

		for _, decl := range app.BroadcastedEvents {
			listened := false
			for _, otherName := range definition.Names() {
				if otherName == appName {
					continue
				}
				otherApp, _ := definition.Manifest(otherName)
				if otherApp.ReferencesEvent(appName, decl) {
					g.SetLine(&MessageEdge{
						F: appNode, T: nodes[otherName], uid: nextLineID,
						Identifier: decl.Identifier, Topic: decl.Topic, Kind: manifest.Event,
					})
					nextLineID++
					listened = true
				}
			}
			if !listened {
				return nil, &UnlistenedEventError{Identifier: decl.Identifier, Topic: decl.Topic}
			}
		}

		for _, decl := range app.IncomingRequests {
			handled := false
			for _, otherName := range definition.Names() {
				if otherName == appName {
					continue
				}
				otherApp, _ := definition.Manifest(otherName)
				if otherApp.ReferencesRequest(appName, decl) {
					g.SetLine(&MessageEdge{
						F: nodes[otherName], T: appNode, uid: nextLineID,
						Identifier: decl.Identifier, Topic: decl.Topic, Kind: manifest.Request,
					})
					nextLineID++
					handled = true
				}
			}
			if !handled {
				return nil, &UnhandledRequestError{Identifier: decl.Identifier, Topic: decl.Topic}
			}
		}
	}

	return &SystemGraph{g: g, nodes: nodes}, nil
}

func checkReference(definition *manifest.SystemDefinition, appName string, ref manifest.MessageReference, expectedModule string) error {
	if ref.AppName == appName {
		return &SelfReferenceError{AppName: appName, Identifier: ref.Identifier}
	}

	targetApp, ok := definition.Manifest(ref.AppName)
	if !ok {
		return &DanglingReferenceError{AppName: appName, TargetApp: ref.AppName, Identifier: ref.Identifier}
	}

	var decls []manifest.MessageDeclaration
	switch expectedModule {
	case manifest.ModuleBroadcastedEvents:
		decls = targetApp.BroadcastedEvents
	case manifest.ModuleIncomingRequests:
		decls = targetApp.IncomingRequests
	}
	for _, d := range decls {
		if d.Identifier == ref.Identifier {
			return nil
		}
	}
	return &DanglingReferenceError{AppName: appName, TargetApp: ref.AppName, Identifier: ref.Identifier}
}
