package rewrite

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/shavin-peiries/rewrite-this/internal/clipboard"
	"github.com/shavin-peiries/rewrite-this/internal/config"
	"github.com/shavin-peiries/rewrite-this/internal/llm"
	"github.com/shavin-peiries/rewrite-this/internal/preset"
)

type fakeBridge struct {
	captureText string
	captureErr  error
	captured    bool

	committed    []string
	commitPasted bool
	commitErr    error
}

func (f *fakeBridge) Capture(ctx context.Context) (string, error) {
	f.captured = true
	return f.captureText, f.captureErr
}

func (f *fakeBridge) Commit(ctx context.Context, text string) (clipboard.CommitOutcome, error) {
	f.committed = append(f.committed, text)
	return clipboard.CommitOutcome{Pasted: f.commitPasted}, f.commitErr
}

type fakeRewriter struct {
	lastReq *llm.RewriteRequest
	out     string
	err     error
}

func (f *fakeRewriter) Rewrite(ctx context.Context, req *llm.RewriteRequest) (string, error) {
	f.lastReq = req
	return f.out, f.err
}

type notice struct{ title, message string }

type fakeNotifier struct{ notices []notice }

func (f *fakeNotifier) Notify(title, message string) {
	f.notices = append(f.notices, notice{title, message})
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testStore(t *testing.T, keyUsed bool) *preset.Store {
	t.Helper()
	s, err := preset.Open(filepath.Join(t.TempDir(), "presets.json"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if keyUsed {
		if err := s.MarkAPIKeyUsed(); err != nil {
			t.Fatalf("MarkAPIKeyUsed() error: %v", err)
		}
	}
	return s
}

func TestMissingCredentialShortCircuits(t *testing.T) {
	bridge := &fakeBridge{}
	client := &fakeRewriter{}
	notifier := &fakeNotifier{}

	o := NewOrchestrator(&config.Config{}, testStore(t, true), bridge, client, notifier, testLogger())
	res := o.Run(context.Background())

	if res.State != StateFailed {
		t.Errorf("State = %v, want StateFailed", res.State)
	}
	if !errors.Is(res.Err, ErrMissingCredential) {
		t.Errorf("Err = %v, want ErrMissingCredential", res.Err)
	}
	if bridge.captured {
		t.Error("capture ran despite missing credential")
	}
	if client.lastReq != nil {
		t.Error("model called despite missing credential")
	}
}

func TestFirstUseGate(t *testing.T) {
	store := testStore(t, false)
	bridge := &fakeBridge{captureText: "hello"}
	client := &fakeRewriter{out: "rewritten"}
	notifier := &fakeNotifier{}
	cfg := &config.Config{APIKey: "sk-test", Model: config.DefaultModel}

	o := NewOrchestrator(cfg, store, bridge, client, notifier, testLogger())

	res := o.Run(context.Background())
	if res.State != StateAwaitingFirstUse {
		t.Fatalf("State = %v, want StateAwaitingFirstUse", res.State)
	}
	if bridge.captured {
		t.Error("capture ran on first-use invocation")
	}
	if !store.APIKeyUsed() {
		t.Error("first use not recorded")
	}
	if len(notifier.notices) != 1 {
		t.Fatalf("got %d notices, want 1", len(notifier.notices))
	}

	// Second invocation proceeds through the full pipeline.
	bridge2 := &fakeBridge{captureText: "hello", commitPasted: true}
	o2 := NewOrchestrator(cfg, store, bridge2, client, notifier, testLogger())
	res2 := o2.Run(context.Background())
	if res2.State != StateDone {
		t.Errorf("second run State = %v, want StateDone", res2.State)
	}
}

func TestNoSelection(t *testing.T) {
	tests := []struct {
		name        string
		captureText string
		captureErr  error
	}{
		{name: "empty capture", captureText: ""},
		{name: "whitespace only", captureText: "  \n\t "},
		{name: "automation failure", captureErr: errors.New("osascript: not authorized")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := &fakeBridge{captureText: tt.captureText, captureErr: tt.captureErr}
			client := &fakeRewriter{}
			notifier := &fakeNotifier{}
			cfg := &config.Config{APIKey: "sk-test", Model: config.DefaultModel}

			o := NewOrchestrator(cfg, testStore(t, true), bridge, client, notifier, testLogger())
			res := o.Run(context.Background())

			if res.State != StateNoSelection {
				t.Errorf("State = %v, want StateNoSelection", res.State)
			}
			if !errors.Is(res.Err, ErrNoSelection) {
				t.Errorf("Err = %v, want ErrNoSelection", res.Err)
			}
			if client.lastReq != nil {
				t.Error("model called with no selection")
			}
			if len(bridge.committed) != 0 {
				t.Error("commit ran with no selection")
			}
		})
	}
}

func TestRequestConstruction(t *testing.T) {
	store := testStore(t, true)
	if _, err := store.Add("Grammar fixer", "Fix grammar"); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	bridge := &fakeBridge{captureText: "hello   world", commitPasted: true}
	client := &fakeRewriter{out: "hello world"}
	notifier := &fakeNotifier{}
	cfg := &config.Config{APIKey: "sk-test", Model: "claude-3-5-sonnet-20241022", AvoidEmDashes: true}

	o := NewOrchestrator(cfg, store, bridge, client, notifier, testLogger())
	res := o.Run(context.Background())

	if res.State != StateDone {
		t.Fatalf("State = %v, want StateDone", res.State)
	}
	req := client.lastReq
	if req == nil {
		t.Fatal("model never called")
	}
	if req.Model != "claude-3-5-sonnet-20241022" {
		t.Errorf("Model = %q", req.Model)
	}
	if req.MaxTokens != 8192 {
		t.Errorf("MaxTokens = %d, want 8192", req.MaxTokens)
	}
	if !strings.Contains(req.System, "em dashes") {
		t.Errorf("System missing em-dash clause: %q", req.System)
	}
	wantPrefix := "Fix grammar Here's the text to rewrite:\n\nhello   world"
	if !strings.HasPrefix(req.Input, wantPrefix) {
		t.Errorf("Input = %q, want prefix %q", req.Input, wantPrefix)
	}
	if len(bridge.committed) != 1 || bridge.committed[0] != "hello world" {
		t.Errorf("committed = %v, want the model output", bridge.committed)
	}
}

func TestEmptyModelOutputCommitsPlaceholder(t *testing.T) {
	bridge := &fakeBridge{captureText: "hello", commitPasted: true}
	client := &fakeRewriter{out: ""}
	notifier := &fakeNotifier{}
	cfg := &config.Config{APIKey: "sk-test", Model: config.DefaultModel}

	o := NewOrchestrator(cfg, testStore(t, true), bridge, client, notifier, testLogger())
	res := o.Run(context.Background())

	if res.State != StateDone {
		t.Fatalf("State = %v, want StateDone", res.State)
	}
	if len(bridge.committed) != 1 {
		t.Fatalf("commit called %d times, want 1", len(bridge.committed))
	}
	if bridge.committed[0] != placeholderText {
		t.Errorf("committed %q, want placeholder", bridge.committed[0])
	}
}

func TestUpstreamErrorFails(t *testing.T) {
	upstream := errors.New("anthropic: invalid x-api-key")
	bridge := &fakeBridge{captureText: "hello"}
	client := &fakeRewriter{err: upstream}
	notifier := &fakeNotifier{}
	cfg := &config.Config{APIKey: "sk-test", Model: config.DefaultModel}

	o := NewOrchestrator(cfg, testStore(t, true), bridge, client, notifier, testLogger())
	res := o.Run(context.Background())

	if res.State != StateFailed {
		t.Errorf("State = %v, want StateFailed", res.State)
	}
	if !errors.Is(res.Err, upstream) {
		t.Errorf("Err = %v, want upstream error", res.Err)
	}
	if len(bridge.committed) != 0 {
		t.Error("commit ran after upstream failure")
	}
	last := notifier.notices[len(notifier.notices)-1]
	if !strings.Contains(last.message, "invalid x-api-key") {
		t.Errorf("notice message %q does not carry the upstream error", last.message)
	}
}

func TestPasteFailureDegrades(t *testing.T) {
	bridge := &fakeBridge{captureText: "hello", commitPasted: false}
	client := &fakeRewriter{out: "rewritten"}
	notifier := &fakeNotifier{}
	cfg := &config.Config{APIKey: "sk-test", Model: config.DefaultModel}

	o := NewOrchestrator(cfg, testStore(t, true), bridge, client, notifier, testLogger())
	res := o.Run(context.Background())

	if res.State != StateDone {
		t.Fatalf("State = %v, want StateDone", res.State)
	}
	last := notifier.notices[len(notifier.notices)-1]
	if last.title != "Copied to clipboard" {
		t.Errorf("notice title = %q, want the manual-paste message", last.title)
	}
}

func TestResolvePrompt(t *testing.T) {
	t.Run("pointer wins", func(t *testing.T) {
		store := testStore(t, true)
		if err := store.SetCurrent("grammar"); err != nil {
			t.Fatal(err)
		}
		o := NewOrchestrator(&config.Config{DefaultPreset: "formal"}, store, nil, nil, nil, testLogger())
		p, _ := store.Get("grammar")
		if got := o.resolvePrompt(); got != p.Prompt {
			t.Errorf("resolvePrompt() = %q, want the pointed-at prompt", got)
		}
	})

	t.Run("custom default prompt", func(t *testing.T) {
		store := testStore(t, true)
		cfg := &config.Config{DefaultPreset: "custom", CustomPrompt: "Translate to pirate speak"}
		o := NewOrchestrator(cfg, store, nil, nil, nil, testLogger())
		if got := o.resolvePrompt(); got != "Translate to pirate speak" {
			t.Errorf("resolvePrompt() = %q, want the custom prompt", got)
		}
	})

	t.Run("configured default preset", func(t *testing.T) {
		store := testStore(t, true)
		o := NewOrchestrator(&config.Config{DefaultPreset: "formal"}, store, nil, nil, nil, testLogger())
		p, _ := store.Get("formal")
		if got := o.resolvePrompt(); got != p.Prompt {
			t.Errorf("resolvePrompt() = %q, want the formal prompt", got)
		}
	})

	t.Run("falls back to first resolved", func(t *testing.T) {
		store := testStore(t, true)
		o := NewOrchestrator(&config.Config{}, store, nil, nil, nil, testLogger())
		if got := o.resolvePrompt(); got != store.List()[0].Prompt {
			t.Errorf("resolvePrompt() = %q, want the first resolved prompt", got)
		}
	})

	t.Run("hardcoded fallback on empty list", func(t *testing.T) {
		store := testStore(t, true)
		for _, b := range preset.Builtins() {
			if err := store.Delete(b.ID); err != nil {
				t.Fatal(err)
			}
		}
		o := NewOrchestrator(&config.Config{}, store, nil, nil, nil, testLogger())
		if got := o.resolvePrompt(); got != preset.FallbackPrompt {
			t.Errorf("resolvePrompt() = %q, want the fallback prompt", got)
		}
	})
}
