// Package artifact renders a validated system graph and its manifests into
// the two document formats external tooling consumes: a Graphviz DOT graph
// for visualization, and per-app/per-module JSON-Schema bundles for payload
// validation.
package artifact

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/graph/encoding/dot"

	"github.com/rustyeddy/fdp/graph"
	"github.com/rustyeddy/fdp/manifest"
)

// ToDOT renders g as a Graphviz DOT document. Node and edge labels come
// entirely from graph.AppNode and graph.MessageEdge's Attributes()
// implementations; default gonum node/edge labels are never shown, the
// same "suppress defaults, substitute custom labels" shape the original
// implementation got from petgraph's Dot::with_attr_getters.
func ToDOT(g *graph.SystemGraph) (string, error) {
	data, err := dot.Marshal(g.Underlying(), "", "", "  ")
	if err != nil {
		return "", fmt.Errorf("artifact: rendering DOT graph: %w", err)
	}
	return string(data), nil
}

// Document is a JSON-Schema bundle: a fixed draft-07 envelope around a set
// of named schema definitions.
type Document struct {
	Schema      string                     `json:"$schema"`
	Definitions map[string]json.RawMessage `json:"definitions"`
}

const draft07 = "http://json-schema.org/draft-07/schema#"

// ToJSONSchemas bundles every declaration in the named app's module into a
// single JSON-Schema document keyed by declaration identifier. Declarations
// outside the selected app/module are omitted.
func ToJSONSchemas(definition *manifest.SystemDefinition, app, module string) (Document, error) {
	appManifest, ok := definition.Manifest(app)
	if !ok {
		return Document{}, fmt.Errorf("artifact: unknown app %q", app)
	}

	var decls []manifest.MessageDeclaration
	switch module {
	case manifest.ModuleBroadcastedEvents:
		decls = appManifest.BroadcastedEvents
	case manifest.ModuleIncomingRequests:
		decls = appManifest.IncomingRequests
	case manifest.ModuleOutgoingResponses:
		decls = appManifest.OutgoingResponses
	default:
		return Document{}, fmt.Errorf("artifact: unknown module %q", module)
	}

	definitions := make(map[string]json.RawMessage, len(decls))
	for _, d := range decls {
		definitions[d.Identifier] = json.RawMessage(d.Schema)
	}

	return Document{Schema: draft07, Definitions: definitions}, nil
}
