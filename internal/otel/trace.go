package otel

import (
	"fmt"
	"os"
	"sync/atomic"
)

var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(os.Getenv("SCOUR_TRACE") != "")
}

// TraceEnabled reports whether SCOUR_TRACE is set.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

// setTraceEnabled overrides the flag in tests.
func setTraceEnabled(v bool) {
	traceEnabled.Store(v)
}

// TraceMsg records the dynamic type of a Bubble Tea message when tracing is
// on. Costs one atomic load when it is off.
func (l *Logger) TraceMsg(comp string, msg any) {
	if !TraceEnabled() {
		return
	}
	l.Emit(Event{
		Level: LevelDebug,
		Kind:  KindMsgReceived,
		Comp:  comp,
		Msg:   fmt.Sprintf("%T", msg),
	})
}
