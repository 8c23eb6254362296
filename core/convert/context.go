// Package convert implements the entity format conversion engine: the
// converter contract, the converter registry, and format detection with its
// TTL-bounded cache.
package convert

import (
	"github.com/hashgraph-online/conversational-agent-sub001/core/network"
)

// Context is the per-call value bag threaded through every conversion. It is
// immutable by convention: converters read it and never write to it.
type Context struct {
	// Network is the target network. Empty means the conservative default.
	Network network.Type

	// SessionID correlates conversions belonging to one request.
	SessionID string

	// ToolName names the tool the converted value is destined for.
	ToolName string

	// Preferences maps preference keys to desired sub-formats,
	// e.g. "format.topic_id" -> "hrl".
	Preferences map[string]string

	// Extra carries free-form extension fields converters may consult.
	Extra map[string]any
}

// NetworkOrDefault returns the context's network, falling back to the
// non-production default when the context or its network is unset.
func (c *Context) NetworkOrDefault() network.Type {
	if c == nil || c.Network == "" {
		return network.Default
	}
	return c.Network
}

// Preference looks up a preference key, reporting whether it was set.
func (c *Context) Preference(key string) (string, bool) {
	if c == nil || c.Preferences == nil {
		return "", false
	}
	v, ok := c.Preferences[key]
	return v, ok
}
