package graph

import (
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"

	"github.com/rustyeddy/fdp/manifest"
)

// MessageEdge is one message flowing between two apps: a broadcast from
// producer to listener, or a request from emitter to handler. Response
// edges are representable (manifest.Response is a valid Kind) but the
// builder never emits one — see DESIGN.md open question 3.
type MessageEdge struct {
	F, T       graph.Node
	uid        int64
	Identifier string
	Topic      string
	Kind       manifest.MessageKind
}

func (e *MessageEdge) From() graph.Node { return e.F }
func (e *MessageEdge) To() graph.Node   { return e.T }
func (e *MessageEdge) ReversedLine() graph.Line {
	return &MessageEdge{F: e.T, T: e.F, uid: e.uid, Identifier: e.Identifier, Topic: e.Topic, Kind: e.Kind}
}
func (e *MessageEdge) ID() int64 { return e.uid }

// Attributes supplies the edge's "label" attribute, matching the three
// phrasings the original implementation's edge closure produced:
// "Broadcasts: X", "Handles: X", "Replies with X".
func (e *MessageEdge) Attributes() []encoding.Attribute {
	var text string
	switch e.Kind {
	case manifest.Event:
		text = fmt.Sprintf("Broadcasts: %s", e.Identifier)
	case manifest.Request:
		text = fmt.Sprintf("Handles: %s", e.Identifier)
	case manifest.Response:
		text = fmt.Sprintf("Replies with %s", e.Identifier)
	}
	return []encoding.Attribute{{Key: "label", Value: quoteLabel(text)}}
}

func quoteLabel(s string) string {
	return fmt.Sprintf("%q", s)
}
