package manifest

import (
	"encoding/json"
	"fmt"
)

// wireDeclaration and wireReference mirror MessageDeclaration/
// MessageReference's JSON shape in a manifest file. Declarations are kept
// under a module name matching the field they're declared in, so loading
// can validate each bucket's kind the same way NewAppManifest does.
type wireDeclaration struct {
	Identifier string         `json:"identifier"`
	Topic      string         `json:"topic"`
	Schema     SchemaDocument `json:"schema"`
}

type wireReference struct {
	Identifier string `json:"identifier"`
	AppName    string `json:"app_name"`
}

type wireAppManifest struct {
	Name string `json:"name"`

	BroadcastedEvents []wireDeclaration `json:"broadcasted_events"`
	IncomingRequests  []wireDeclaration `json:"incoming_requests"`
	OutgoingResponses []wireDeclaration `json:"outgoing_responses"`

	ListenedEvents  []wireReference `json:"listened_events"`
	EmittedRequests []wireReference `json:"emitted_requests"`
}

type wireSystemDefinition struct {
	Apps []wireAppManifest `json:"apps"`
}

// LoadSystemDefinition parses a system manifest document. Apps and the
// declarations/references within them are validated exactly as the
// constructor functions in this package validate them; the JSON array's
// natural ordering becomes the SystemDefinition's insertion order.
func LoadSystemDefinition(data []byte) (*SystemDefinition, error) {
	var wire wireSystemDefinition
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("manifest: parsing system definition: %w", err)
	}

	entries := make([]NamedManifest, 0, len(wire.Apps))
	for _, app := range wire.Apps {
		appManifest, err := buildAppManifest(app)
		if err != nil {
			return nil, fmt.Errorf("manifest: app %q: %w", app.Name, err)
		}
		entries = append(entries, NamedManifest{Name: app.Name, Manifest: appManifest})
	}

	return NewSystemDefinition(entries)
}

func buildAppManifest(app wireAppManifest) (*AppManifest, error) {
	broadcasted, err := declarations(app.BroadcastedEvents, Event)
	if err != nil {
		return nil, err
	}
	incoming, err := declarations(app.IncomingRequests, Request)
	if err != nil {
		return nil, err
	}
	outgoing, err := declarations(app.OutgoingResponses, Response)
	if err != nil {
		return nil, err
	}

	listened, err := references(app.ListenedEvents, ModuleBroadcastedEvents)
	if err != nil {
		return nil, err
	}
	emitted, err := references(app.EmittedRequests, ModuleIncomingRequests)
	if err != nil {
		return nil, err
	}

	return NewAppManifest(broadcasted, incoming, outgoing, listened, emitted)
}

func declarations(wire []wireDeclaration, kind MessageKind) ([]MessageDeclaration, error) {
	decls := make([]MessageDeclaration, 0, len(wire))
	for _, d := range wire {
		decl, err := NewMessageDeclaration(d.Identifier, d.Topic, d.Schema, kind)
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func references(wire []wireReference, module string) ([]MessageReference, error) {
	refs := make([]MessageReference, 0, len(wire))
	for _, r := range wire {
		ref, err := NewMessageReference(r.Identifier, r.AppName, module)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
