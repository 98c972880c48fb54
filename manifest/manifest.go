// Package manifest holds the plain data describing one app's declared and
// referenced messages, and the closed set of manifests that make up a whole
// system. It has no behavior beyond construction validation and the two
// membership predicates the graph builder needs.
package manifest

import (
	"fmt"
	"strings"
)

// MessageKind tags a MessageDeclaration with one of the three message
// shapes the fabric understands.
type MessageKind int

const (
	// Event is a broadcast message: one producer, zero-or-more listeners.
	Event MessageKind = iota
	// Request is one half of a paired exchange: one emitter, one handler.
	Request
	// Response is the other half of a paired exchange.
	Response
)

func (k MessageKind) String() string {
	switch k {
	case Event:
		return "Event"
	case Request:
		return "Request"
	case Response:
		return "Response"
	default:
		return fmt.Sprintf("MessageKind(%d)", int(k))
	}
}

// Module names the three declaration buckets an AppManifest keeps, and the
// two reference buckets that point at them.
const (
	ModuleBroadcastedEvents = "broadcasted_events"
	ModuleIncomingRequests  = "incoming_requests"
	ModuleOutgoingResponses = "outgoing_responses"
)

// MessageDeclaration is an intrinsic definition local to one app.
type MessageDeclaration struct {
	Identifier string
	Topic      string
	Schema     SchemaDocument
	Kind       MessageKind
}

// NewMessageDeclaration validates and builds a MessageDeclaration. The
// schema document is checked for syntactic well-formedness as a draft-07
// JSON-Schema (see schema.go); semantic payload validation is outside this
// component's scope.
func NewMessageDeclaration(identifier, topic string, schema SchemaDocument, kind MessageKind) (MessageDeclaration, error) {
	if strings.TrimSpace(identifier) == "" {
		return MessageDeclaration{}, fmt.Errorf("manifest: declaration identifier must not be empty")
	}
	if strings.TrimSpace(topic) == "" {
		return MessageDeclaration{}, fmt.Errorf("manifest: declaration %q has an empty topic", identifier)
	}
	if err := validateSchemaDocument(identifier, schema); err != nil {
		return MessageDeclaration{}, err
	}
	return MessageDeclaration{Identifier: identifier, Topic: topic, Schema: schema, Kind: kind}, nil
}

// MessageReference is a pointer, from one app, to a declaration owned by
// another app.
type MessageReference struct {
	Identifier string
	AppName    string
	Module     string
}

// NewMessageReference validates and builds a MessageReference.
func NewMessageReference(identifier, appName, module string) (MessageReference, error) {
	if strings.TrimSpace(identifier) == "" {
		return MessageReference{}, fmt.Errorf("manifest: reference identifier must not be empty")
	}
	if strings.TrimSpace(appName) == "" {
		return MessageReference{}, fmt.Errorf("manifest: reference %q has an empty app_name", identifier)
	}
	switch module {
	case ModuleBroadcastedEvents, ModuleIncomingRequests, ModuleOutgoingResponses:
	default:
		return MessageReference{}, fmt.Errorf("manifest: reference %q has an unknown module %q", identifier, module)
	}
	return MessageReference{Identifier: identifier, AppName: appName, Module: module}, nil
}

// AppManifest holds one app's declarations (messages it owns) and
// references (pointers at declarations owned by other apps).
type AppManifest struct {
	BroadcastedEvents []MessageDeclaration
	IncomingRequests  []MessageDeclaration
	OutgoingResponses []MessageDeclaration

	ListenedEvents  []MessageReference
	EmittedRequests []MessageReference
}

// NewAppManifest validates that each declaration bucket only holds
// declarations of the matching kind, and returns the assembled manifest.
func NewAppManifest(broadcastedEvents, incomingRequests, outgoingResponses []MessageDeclaration, listenedEvents, emittedRequests []MessageReference) (*AppManifest, error) {
	if err := requireKind(broadcastedEvents, Event, ModuleBroadcastedEvents); err != nil {
		return nil, err
	}
	if err := requireKind(incomingRequests, Request, ModuleIncomingRequests); err != nil {
		return nil, err
	}
	if err := requireKind(outgoingResponses, Response, ModuleOutgoingResponses); err != nil {
		return nil, err
	}
	return &AppManifest{
		BroadcastedEvents: broadcastedEvents,
		IncomingRequests:  incomingRequests,
		OutgoingResponses: outgoingResponses,
		ListenedEvents:    listenedEvents,
		EmittedRequests:   emittedRequests,
	}, nil
}

func requireKind(decls []MessageDeclaration, kind MessageKind, module string) error {
	for _, d := range decls {
		if d.Kind != kind {
			return fmt.Errorf("manifest: declaration %q in %s must be kind %s, got %s", d.Identifier, module, kind, d.Kind)
		}
	}
	return nil
}

// ReferencesEvent reports whether this manifest's listened_events contains
// a reference matching declaringApp and decl's identifier. The module field
// is validated once at reference-construction time, not rechecked here —
// matching is by (app_name, identifier) as spec.md §4.1 describes.
func (m *AppManifest) ReferencesEvent(declaringApp string, decl MessageDeclaration) bool {
	for _, ref := range m.ListenedEvents {
		if ref.AppName == declaringApp && ref.Identifier == decl.Identifier {
			return true
		}
	}
	return false
}

// ReferencesRequest is the request-side analogue of ReferencesEvent, over
// emitted_requests.
func (m *AppManifest) ReferencesRequest(declaringApp string, decl MessageDeclaration) bool {
	for _, ref := range m.EmittedRequests {
		if ref.AppName == declaringApp && ref.Identifier == decl.Identifier {
			return true
		}
	}
	return false
}
