package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

type fakeSender struct {
	configured bool
	failFor    map[string]bool
	sent       []string
	subjects   []string
	bodies     []string
}

func (f *fakeSender) IsConfigured() bool { return f.configured }

func (f *fakeSender) Send(to, subject, message, attachmentPath string) error {
	f.sent = append(f.sent, to)
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, message)
	if f.failFor[to] {
		return fmt.Errorf("mailbox unavailable")
	}
	return nil
}

func targetsFor(emails ...string) []NewUserCredential {
	targets := make([]NewUserCredential, len(emails))
	for i, email := range emails {
		targets[i] = NewUserCredential{
			FullName:     "User " + email,
			Email:        email,
			Username:     strings.SplitN(email, "@", 2)[0],
			TempPassword: "Temp@123x",
		}
	}
	return targets
}

func TestSendBatchProgressAndOrder(t *testing.T) {
	sender := &fakeSender{configured: true}
	d := NewEmailDispatcher(sender, 0, nil)

	var sentSeq []int
	var targetsSeen []string
	results := d.SendBatch(context.Background(), targetsFor("a@x.com", "b@x.com", "c@x.com"), "Acme", func(sent, total int, currentTarget string, success bool) {
		sentSeq = append(sentSeq, sent)
		targetsSeen = append(targetsSeen, currentTarget)
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
	})

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, want := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		if results[i].Target != want {
			t.Errorf("results[%d].Target = %q, want %q", i, results[i].Target, want)
		}
		if !results[i].Success {
			t.Errorf("results[%d] failed: %s", i, results[i].Error)
		}
	}
	if len(sentSeq) != 3 || sentSeq[0] != 1 || sentSeq[1] != 2 || sentSeq[2] != 3 {
		t.Errorf("progress sent sequence = %v, want [1 2 3]", sentSeq)
	}
	if targetsSeen[2] != "c@x.com" {
		t.Errorf("progress targets out of order: %v", targetsSeen)
	}
}

func TestSendBatchPacesSends(t *testing.T) {
	sender := &fakeSender{configured: true}
	interval := 20 * time.Millisecond
	d := NewEmailDispatcher(sender, interval, nil)

	start := time.Now()
	results := d.SendBatch(context.Background(), targetsFor("a@x.com", "b@x.com", "c@x.com"), "Acme", nil)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	// The first send fires immediately; the remaining two each wait one
	// interval.
	if elapsed := time.Since(start); elapsed < 2*interval {
		t.Errorf("batch finished in %v, want at least %v between sequential sends", elapsed, 2*interval)
	}
}

func TestSendBatchContinuesPastFailures(t *testing.T) {
	sender := &fakeSender{configured: true, failFor: map[string]bool{"b@x.com": true}}
	d := NewEmailDispatcher(sender, 0, nil)

	results := d.SendBatch(context.Background(), targetsFor("a@x.com", "b@x.com", "c@x.com"), "Acme", nil)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3 (batch must not abort early)", len(results))
	}
	if results[0].Success != true || results[1].Success != false || results[2].Success != true {
		t.Errorf("unexpected outcomes: %+v", results)
	}
	if results[1].Error == "" {
		t.Error("failed result carries no error message")
	}
	if len(sender.sent) != 3 {
		t.Errorf("sender invoked %d times, want 3", len(sender.sent))
	}
}

func TestSendBatchUnconfiguredProvider(t *testing.T) {
	sender := &fakeSender{configured: false}
	d := NewEmailDispatcher(sender, 0, nil)

	progressCalls := 0
	results := d.SendBatch(context.Background(), targetsFor("a@x.com", "b@x.com"), "Acme", func(sent, total int, currentTarget string, success bool) {
		progressCalls++
		if success {
			t.Error("unconfigured provider reported a successful send")
		}
	})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Success || r.Error != notConfiguredReason {
			t.Errorf("unexpected result: %+v", r)
		}
	}
	if len(sender.sent) != 0 {
		t.Errorf("unconfigured provider made %d network calls, want 0", len(sender.sent))
	}
	if progressCalls != 2 {
		t.Errorf("onProgress fired %d times, want 2", progressCalls)
	}
}

func TestSendOneIncludesCredentials(t *testing.T) {
	sender := &fakeSender{configured: true}
	d := NewEmailDispatcher(sender, 0, nil)

	target := NewUserCredential{FullName: "Jane Doe", Email: "jane@x.com", Username: "jane.doe42", TempPassword: "Aa1@secret"}
	res := d.SendOne(target, "Acme Facilities")

	if !res.Success {
		t.Fatalf("SendOne failed: %s", res.Error)
	}
	if !strings.Contains(sender.subjects[0], "Acme Facilities") {
		t.Errorf("subject %q missing organization name", sender.subjects[0])
	}
	body := sender.bodies[0]
	if !strings.Contains(body, "jane.doe42") || !strings.Contains(body, "Aa1@secret") {
		t.Errorf("body missing credentials: %q", body)
	}
}
