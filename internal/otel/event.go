// Package otel provides structured observability for scour.
//
// Events are typed structs serialized as JSONL lines. The Logger writes
// events asynchronously via a buffered channel and background drain goroutine.
// An optional RingBuffer keeps recent events in memory for the debug overlay.
package otel

import (
	"encoding/json"
	"time"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of an observability event.
// Dot-delimited: "<subsystem>.<action>".
type EventKind string

const (
	// Backend task (loading screen)
	KindTaskStart    EventKind = "task.start"
	KindTaskComplete EventKind = "task.complete"
	KindTaskError    EventKind = "task.error"

	// Load-more pagination
	KindLoadMoreStart    EventKind = "loadmore.start"
	KindLoadMoreComplete EventKind = "loadmore.complete"
	KindLoadMoreError    EventKind = "loadmore.error"
	KindLoadMoreDrop     EventKind = "loadmore.drop"
	KindPageBootstrap    EventKind = "page.bootstrap"

	// Rendering
	KindHoverAttach EventKind = "hover.attach"

	// Navigation between screens
	KindNavRoute EventKind = "nav.route"

	// History store
	KindHistoryError EventKind = "history.error"

	// UI events
	KindKeyPress EventKind = "ui.key"

	// System events
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
	KindError    EventKind = "sys.error"

	// Message tracing (SCOUR_TRACE)
	KindMsgReceived EventKind = "trace.msg_received"
)

// Event is the universal observability record. Every field except Kind and
// Time is optional. Serialized as a single JSONL line.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"`       // "ui", "search", "loading", "pager", "main"
	SessionID string         `json:"session_id,omitempty"` // random hex, same for entire run
	QueryID   string         `json:"qid,omitempty"`        // X-Request-ID of the HTTP call
	Dur       time.Duration  `json:"-"`
	DurMs     float64        `json:"dur_ms,omitempty"` // computed from Dur at marshal time
	Count     int            `json:"count,omitempty"`
	Page      int            `json:"page,omitempty"`
	Query     string         `json:"query,omitempty"`
	Target    string         `json:"target,omitempty"` // navigation target
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// MarshalJSON implements json.Marshaler, converting Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	a := struct {
		alias
	}{alias: alias(e)}
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}
