package observability

import (
	"context"
	"testing"
	"time"
)

// recordingTallyHooks counts events for assertions.
type recordingTallyHooks struct {
	NoopTallyHooks
	groups int
}

func (h *recordingTallyHooks) OnGroupStart(context.Context, int, int) { h.groups++ }

func TestSetTallyHooks(t *testing.T) {
	defer Reset()

	rec := &recordingTallyHooks{}
	SetTallyHooks(rec)

	Tally().OnGroupStart(context.Background(), 5, 2)
	Tally().OnGroupStart(context.Background(), 3, 1)

	if rec.groups != 2 {
		t.Errorf("recorded %d group events, want 2", rec.groups)
	}
}

func TestSetTallyHooks_NilIgnored(t *testing.T) {
	defer Reset()

	SetTallyHooks(nil)
	if Tally() == nil {
		t.Fatal("Tally() returned nil after SetTallyHooks(nil)")
	}
	// Must not panic.
	Tally().OnTallyComplete(context.Background(), 1, 1, time.Millisecond)
}

func TestReset(t *testing.T) {
	rec := &recordingTallyHooks{}
	SetTallyHooks(rec)
	Reset()

	Tally().OnGroupStart(context.Background(), 1, 1)
	if rec.groups != 0 {
		t.Errorf("hooks still registered after Reset: %d events", rec.groups)
	}
}
