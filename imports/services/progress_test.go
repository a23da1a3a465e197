package services

import "testing"

func TestProgressReporterLifecycle(t *testing.T) {
	var events []ProgressState
	p := NewProgressReporter(func(s ProgressState) { events = append(events, s) })

	p.Reset(2)
	if s := p.Snapshot(); !s.Visible || s.Total != 2 || s.Sent != 0 {
		t.Fatalf("unexpected state after Reset: %+v", s)
	}
	if p.IsComplete() {
		t.Error("reporter complete before any send")
	}

	p.Advance("a@x.com", true)
	p.Advance("b@x.com", false)

	s := p.Snapshot()
	if s.Sent != 2 || s.SuccessCount != 1 || s.FailedCount != 1 {
		t.Errorf("unexpected counters: %+v", s)
	}
	if s.CurrentTarget != "b@x.com" {
		t.Errorf("CurrentTarget = %q, want b@x.com", s.CurrentTarget)
	}
	if !p.IsComplete() {
		t.Error("reporter not complete after all sends")
	}

	p.Acknowledge()
	if p.Snapshot().Visible {
		t.Error("still visible after Acknowledge")
	}

	// Reset + 2 advances + acknowledge
	if len(events) != 4 {
		t.Errorf("onChange fired %d times, want 4", len(events))
	}
}

func TestProgressReporterSignalsCompletionOnce(t *testing.T) {
	var completions int
	p := NewProgressReporter(func(s ProgressState) {
		if s.JustCompleted {
			completions++
		}
	})

	p.Reset(2)
	p.Advance("a@x.com", true)
	if completions != 0 {
		t.Fatal("completion signalled before the final attempt")
	}
	p.Advance("b@x.com", false)
	p.Acknowledge()

	if completions != 1 {
		t.Errorf("completion signalled %d times, want 1", completions)
	}
	if p.Snapshot().JustCompleted {
		t.Error("JustCompleted persisted in stored state")
	}
}

func TestProgressReporterResetClearsCounters(t *testing.T) {
	p := NewProgressReporter(nil)
	p.Reset(1)
	p.Advance("x@y.com", false)
	p.Reset(3)

	s := p.Snapshot()
	if s.Sent != 0 || s.FailedCount != 0 || s.Total != 3 || !s.Visible {
		t.Errorf("Reset did not clear state: %+v", s)
	}
}
