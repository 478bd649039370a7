package cli

import (
	"context"

	"github.com/shavin-peiries/rewrite-this/internal/clipboard"
	"github.com/shavin-peiries/rewrite-this/internal/llm"
	"github.com/shavin-peiries/rewrite-this/internal/rewrite"
)

// runRewrite is the primary command: one full capture -> model ->
// replace invocation. The orchestrator surfaces every outcome as a
// notice; only the Failed state maps to a non-zero exit.
func (a *app) runRewrite(ctx context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		terminalNotifier{}.Notify("Rewrite failed", err.Error())
		return err
	}

	store, err := a.openStore()
	if err != nil {
		terminalNotifier{}.Notify("Rewrite failed", err.Error())
		return err
	}

	orch := rewrite.NewOrchestrator(
		cfg,
		store,
		clipboard.NewSystemBridge(a.log),
		llm.NewClient(cfg.APIKey),
		terminalNotifier{},
		a.log,
	)

	result := orch.Run(ctx)
	a.log.WithField("state", result.State).Debug("rewrite finished")

	if result.State == rewrite.StateFailed {
		return result.Err
	}
	return nil
}
