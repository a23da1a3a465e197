package services

import "sync"

// ProgressState is a snapshot of a bulk email dispatch in flight. The
// presentation layer renders it; only the dispatcher mutates it.
type ProgressState struct {
	Visible       bool   `json:"visible"`
	Sent          int    `json:"sent"`
	Total         int    `json:"total"`
	CurrentTarget string `json:"current_target"`
	SuccessCount  int    `json:"success_count"`
	FailedCount   int    `json:"failed_count"`

	// JustCompleted is set only on the snapshot whose attempt brings Sent up
	// to Total. It is never stored, so later transitions such as Acknowledge
	// cannot re-signal completion.
	JustCompleted bool `json:"-"`
}

// ProgressReporter holds dispatch progress behind a mutex. The dispatcher
// goroutine writes, websocket readers observe; the lock keeps snapshots
// consistent across OS threads.
type ProgressReporter struct {
	mu       sync.Mutex
	state    ProgressState
	onChange func(ProgressState)
}

// NewProgressReporter creates a reporter. onChange, when non-nil, is invoked
// with a snapshot after every state transition.
func NewProgressReporter(onChange func(ProgressState)) *ProgressReporter {
	return &ProgressReporter{onChange: onChange}
}

// Reset starts a new dispatch of the given size and makes the progress view
// visible.
func (p *ProgressReporter) Reset(total int) {
	p.mu.Lock()
	p.state = ProgressState{Visible: true, Total: total}
	snapshot := p.state
	p.mu.Unlock()
	p.notify(snapshot)
}

// Advance records one email attempt, success or failure.
func (p *ProgressReporter) Advance(currentTarget string, success bool) {
	p.mu.Lock()
	p.state.Sent++
	p.state.CurrentTarget = currentTarget
	if success {
		p.state.SuccessCount++
	} else {
		p.state.FailedCount++
	}
	snapshot := p.state
	if p.state.Total > 0 && p.state.Sent == p.state.Total {
		snapshot.JustCompleted = true
	}
	p.mu.Unlock()
	p.notify(snapshot)
}

// IsComplete reports whether every planned send has been attempted.
func (p *ProgressReporter) IsComplete() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Sent >= p.state.Total
}

// Acknowledge hides the progress view. It does not stop in-flight sends;
// closing the view is cosmetic, dispatch always runs to completion.
func (p *ProgressReporter) Acknowledge() {
	p.mu.Lock()
	p.state.Visible = false
	snapshot := p.state
	p.mu.Unlock()
	p.notify(snapshot)
}

// Snapshot returns a copy of the current state.
func (p *ProgressReporter) Snapshot() ProgressState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *ProgressReporter) notify(s ProgressState) {
	if p.onChange != nil {
		p.onChange(s)
	}
}
