package rewrite

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/shavin-peiries/rewrite-this/internal/clipboard"
	"github.com/shavin-peiries/rewrite-this/internal/config"
	"github.com/shavin-peiries/rewrite-this/internal/llm"
	"github.com/shavin-peiries/rewrite-this/internal/preset"
)

// State enumerates the steps of a single rewrite invocation.
// AwaitingFirstUse, NoSelection, Done, and Failed are terminal.
type State int

const (
	StateIdle State = iota
	StateResolvingConfig
	StateAwaitingFirstUse
	StateCapturingSelection
	StateNoSelection
	StateCallingModel
	StateApplyingResult
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolvingConfig:
		return "resolving-config"
	case StateAwaitingFirstUse:
		return "awaiting-first-use"
	case StateCapturingSelection:
		return "capturing-selection"
	case StateNoSelection:
		return "no-selection"
	case StateCallingModel:
		return "calling-model"
	case StateApplyingResult:
		return "applying-result"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrMissingCredential = errors.New("no API key configured")
	ErrNoSelection       = errors.New("no text selected")
)

// maxOutputTokens is a generous ceiling; rewrites are roughly the size
// of their input.
const maxOutputTokens = 8192

// placeholderText replaces the output when a successful response
// carries no text block. Committing something visible beats silently
// aborting after the model call succeeded.
const placeholderText = "[rewrite-this: the model returned no rewritten text]"

// Rewriter is the remote endpoint as the orchestrator sees it.
type Rewriter interface {
	Rewrite(ctx context.Context, req *llm.RewriteRequest) (string, error)
}

// Notifier delivers user-visible notices.
type Notifier interface {
	Notify(title, message string)
}

// Orchestrator drives one rewrite invocation through the state machine.
// All collaborators are injected.
type Orchestrator struct {
	cfg    *config.Config
	store  *preset.Store
	bridge clipboard.Bridge
	client Rewriter
	notify Notifier
	log    logrus.FieldLogger
}

func NewOrchestrator(cfg *config.Config, store *preset.Store, bridge clipboard.Bridge, client Rewriter, notify Notifier, log logrus.FieldLogger) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg,
		store:  store,
		bridge: bridge,
		client: client,
		notify: notify,
		log:    log,
	}
}

// Result is the terminal state of an invocation plus the failure cause,
// if any.
type Result struct {
	State State
	Err   error
}

// Run executes the rewrite pipeline: resolve config and active preset,
// capture the selection, call the model, commit the replacement. Every
// failure becomes a single user-visible notice; no persisted state is
// left half-written.
func (o *Orchestrator) Run(ctx context.Context) Result {
	state := StateIdle

	var (
		activePrompt string
		captured     string
		output       string
		outcome      clipboard.CommitOutcome
	)

	for {
		o.log.WithField("state", state).Debug("rewrite state")

		switch state {
		case StateIdle:
			state = StateResolvingConfig

		case StateResolvingConfig:
			if o.cfg.APIKey == "" {
				return o.fail(ErrMissingCredential,
					"No API key configured",
					"Add api_key to your config file or set ANTHROPIC_API_KEY.")
			}
			activePrompt = o.resolvePrompt()

			if !o.store.APIKeyUsed() {
				if err := o.store.MarkAPIKeyUsed(); err != nil {
					return o.fail(err, "Rewrite failed", err.Error())
				}
				o.notify.Notify("Ready to rewrite",
					"Your API key is set up. Select text anywhere and run rewrite-this to replace it with the rewritten version.")
				return Result{State: StateAwaitingFirstUse}
			}
			state = StateCapturingSelection

		case StateCapturingSelection:
			text, err := o.bridge.Capture(ctx)
			if err != nil {
				o.log.WithError(err).Warn("selection capture failed")
			}
			if strings.TrimSpace(text) == "" {
				o.notify.Notify("No text selected", "Select some text and try again.")
				return Result{State: StateNoSelection, Err: ErrNoSelection}
			}
			captured = text
			state = StateCallingModel

		case StateCallingModel:
			out, err := o.client.Rewrite(ctx, &llm.RewriteRequest{
				Model:     o.cfg.Model,
				System:    BuildSystemPrompt(o.cfg.AvoidEmDashes),
				Input:     BuildUserPrompt(activePrompt, captured),
				MaxTokens: maxOutputTokens,
			})
			if err != nil {
				return o.fail(err, "Rewrite failed", err.Error())
			}
			output = out
			state = StateApplyingResult

		case StateApplyingResult:
			if strings.TrimSpace(output) == "" {
				output = placeholderText
			}
			oc, err := o.bridge.Commit(ctx, output)
			if err != nil {
				return o.fail(err, "Rewrite failed", err.Error())
			}
			outcome = oc
			state = StateDone

		case StateDone:
			if outcome.Pasted {
				o.notify.Notify("Selection rewritten", "The rewritten text replaced your selection.")
			} else {
				o.notify.Notify("Copied to clipboard",
					"Pasting failed, but the rewritten text is on your clipboard. Paste it manually.")
			}
			return Result{State: StateDone}
		}
	}
}

// resolvePrompt picks the active preset's prompt: the persisted pointer
// first, then the configured default (where "custom" selects the
// free-text custom prompt), then the first resolved preset, then the
// built-in fallback.
func (o *Orchestrator) resolvePrompt() string {
	if id := o.store.CurrentID(); id != "" {
		if p, ok := o.store.Get(id); ok {
			return p.Prompt
		}
	}

	if o.cfg.DefaultPreset == "custom" && strings.TrimSpace(o.cfg.CustomPrompt) != "" {
		return o.cfg.CustomPrompt
	}
	if o.cfg.DefaultPreset != "" {
		if p, ok := o.store.Get(o.cfg.DefaultPreset); ok {
			return p.Prompt
		}
	}

	if presets := o.store.List(); len(presets) > 0 {
		return presets[0].Prompt
	}
	return preset.FallbackPrompt
}

func (o *Orchestrator) fail(err error, title, message string) Result {
	o.log.WithError(err).Error("rewrite failed")
	o.notify.Notify(title, message)
	return Result{State: StateFailed, Err: err}
}
