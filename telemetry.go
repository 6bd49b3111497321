package riff

import "sync"

// telemetry.go is a lightweight, dependency-free metrics hook in the
// same shape as the teacher's internal/telemetry.go: a default no-op
// emitter that a caller can swap out for a real meter (OpenTelemetry,
// a test stub, whatever) via RegisterTelemetryEmitter. Kept in the root
// package (rather than internal) since stripe-skip efficiency is a
// reader-facing observability signal, not an implementation detail.

type telemetryEmitter func(name string, labels map[string]string, value float64)

var (
	teleMu   sync.Mutex
	teleImpl telemetryEmitter = func(name string, labels map[string]string, value float64) {}
)

// RegisterTelemetryEmitter installs a custom emitter. Passing nil
// restores the no-op default.
func RegisterTelemetryEmitter(fn func(name string, labels map[string]string, value float64)) {
	teleMu.Lock()
	defer teleMu.Unlock()
	if fn == nil {
		teleImpl = func(name string, labels map[string]string, value float64) {}
		return
	}
	teleImpl = fn
}

// EmitPushdownEfficiency records the fraction of stripes skipped by a
// single evaluate_stripes call: name "riff_stripe_pushdown_efficiency",
// label {"path": <header path>}, value in [0,1].
func EmitPushdownEfficiency(path string, skippedRatio float64) {
	teleMu.Lock()
	fn := teleImpl
	teleMu.Unlock()
	fn("riff_stripe_pushdown_efficiency", map[string]string{"path": path}, skippedRatio)
}

// EmitRowsRead records rows yielded by a scan: name "riff_rows_read",
// label {"path": <header path>}.
func EmitRowsRead(path string, rows int64) {
	teleMu.Lock()
	fn := teleImpl
	teleMu.Unlock()
	fn("riff_rows_read", map[string]string{"path": path}, float64(rows))
}
