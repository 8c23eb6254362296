// Package resolve implements the staged resolution pipeline that threads a
// user message and its execution context through entity detection and format
// conversion.
package resolve

import (
	"time"

	"github.com/google/uuid"

	"github.com/hashgraph-online/conversational-agent-sub001/core/entity"
	"github.com/hashgraph-online/conversational-agent-sub001/core/network"
)

// ToolMetadata is the externally owned tool record a context may carry. The
// engine only ever reads it; FormatPreferences maps an entity-id format to
// the output format that tool wants, e.g. topic_id -> hrl.
type ToolMetadata struct {
	Name              string                          `json:"name"`
	FormatPreferences map[entity.Format]entity.Format `json:"format_preferences,omitempty"`
}

// ConversionRecord is one append-only audit entry describing a conversion
// that actually occurred. The engine writes records and never reads them.
type ConversionRecord struct {
	OriginalValue  string        `json:"original_value"`
	ConvertedValue string        `json:"converted_value"`
	SourceFormat   entity.Format `json:"source_format"`
	TargetFormat   entity.Format `json:"target_format"`
	ConverterName  string        `json:"converter_name"`
	Timestamp      time.Time     `json:"timestamp"`
	SessionID      string        `json:"session_id"`
	ToolName       string        `json:"tool_name,omitempty"`
	Network        network.Type  `json:"network"`
}

// Context is the per-request resolution context. It is built once and only
// ever extended: the With* builders return a new value and never mutate the
// receiver. ConversionHistory is the one append-only exception, written by
// the conversion stage as an audit trail.
type Context struct {
	UserMessage       string             `json:"user_message"`
	SessionID         string             `json:"session_id"`
	Network           network.Type       `json:"network"`
	EntityHints       []entity.Hint      `json:"entity_hints"`
	ConversionHistory []ConversionRecord `json:"conversion_history"`
	Tool              *ToolMetadata      `json:"tool,omitempty"`
}

// FromMessage seeds a context from a user message and session id. An empty
// session id gets a generated one. The network defaults to the
// non-production network.
func FromMessage(message, sessionID string) *Context {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return &Context{
		UserMessage:       message,
		SessionID:         sessionID,
		Network:           network.Default,
		EntityHints:       []entity.Hint{},
		ConversionHistory: []ConversionRecord{},
	}
}

// WithNetwork returns a copy of the context targeting the given network.
func (c *Context) WithNetwork(net network.Type) *Context {
	next := c.clone()
	next.Network = net
	return next
}

// WithToolContext returns a copy of the context carrying the tool metadata.
// The receiver is untouched.
func (c *Context) WithToolContext(meta *ToolMetadata) *Context {
	next := c.clone()
	next.Tool = meta
	return next
}

// WithEntityHints returns a copy of the context whose hints are replaced by
// a copy of the supplied list. Later mutation of the input slice does not
// affect the returned context.
func (c *Context) WithEntityHints(hints []entity.Hint) *Context {
	next := c.clone()
	next.EntityHints = make([]entity.Hint, len(hints))
	copy(next.EntityHints, hints)
	return next
}

func (c *Context) clone() *Context {
	next := &Context{
		UserMessage: c.UserMessage,
		SessionID:   c.SessionID,
		Network:     c.Network,
		Tool:        c.Tool,
	}
	next.EntityHints = make([]entity.Hint, len(c.EntityHints))
	copy(next.EntityHints, c.EntityHints)
	next.ConversionHistory = make([]ConversionRecord, len(c.ConversionHistory))
	copy(next.ConversionHistory, c.ConversionHistory)
	return next
}

// recordConversion appends an audit entry for a conversion that ran.
func (c *Context) recordConversion(rec ConversionRecord) {
	c.ConversionHistory = append(c.ConversionHistory, rec)
}
