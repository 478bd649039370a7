// Package clipboard captures the foreground application's selection and
// writes rewritten text back over it, using the system clipboard plus
// synthesized copy/paste keystrokes. Everything here is best-effort: it
// depends on OS accessibility permissions and timing outside our
// control. The one hard guarantee is that the user's original clipboard
// contents survive the capture path.
package clipboard

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
)

// CommitOutcome reports how far a replacement got. When Pasted is
// false the clipboard still holds the text, so the user can paste
// manually.
type CommitOutcome struct {
	Pasted bool
}

// Bridge is the capture/commit capability consumed by the orchestrator.
type Bridge interface {
	Capture(ctx context.Context) (string, error)
	Commit(ctx context.Context, text string) (CommitOutcome, error)
}

// SystemBridge is the real implementation over the OS clipboard and
// keystroke synthesis.
type SystemBridge struct {
	log logrus.FieldLogger

	pollInterval time.Duration
	pollTimeout  time.Duration

	readClipboard  func() (string, error)
	writeClipboard func(text string) error
	keystroke      func(ctx context.Context, letter string) error
}

func NewSystemBridge(log logrus.FieldLogger) *SystemBridge {
	return &SystemBridge{
		log:            log,
		pollInterval:   50 * time.Millisecond,
		pollTimeout:    time.Second,
		readClipboard:  clipboard.ReadAll,
		writeClipboard: clipboard.WriteAll,
		keystroke:      sendKeystroke,
	}
}

// Capture snapshots the clipboard, synthesizes a copy keystroke, and
// polls for the clipboard to change. The snapshot is restored before
// returning. If the clipboard never changes within the timeout the
// capture reports no selection rather than returning stale contents.
func (b *SystemBridge) Capture(ctx context.Context) (string, error) {
	snapshot, err := b.readClipboard()
	if err != nil {
		// An unreadable clipboard is treated as empty; capture can
		// still work and restore writes back the empty string.
		b.log.WithError(err).Warn("could not read clipboard snapshot")
		snapshot = ""
	}

	// Every capture exit restores the snapshot, including the error
	// paths: a failed copy command may still have fired the keystroke.
	defer func() {
		if err := b.writeClipboard(snapshot); err != nil {
			b.log.WithError(err).Warn("could not restore clipboard snapshot")
		}
	}()

	if err := b.keystroke(ctx, "c"); err != nil {
		b.log.WithError(err).Warn("copy keystroke failed")
		return "", fmt.Errorf("simulating copy: %w", err)
	}

	captured, changed := b.waitForChange(ctx, snapshot)
	if !changed {
		return "", nil
	}
	return captured, nil
}

// Commit writes text to the clipboard and synthesizes a paste
// keystroke. A failed clipboard write is a hard error; a failed paste
// is a partial success since the text is already on the clipboard.
func (b *SystemBridge) Commit(ctx context.Context, text string) (CommitOutcome, error) {
	if err := b.writeClipboard(text); err != nil {
		return CommitOutcome{}, fmt.Errorf("writing clipboard: %w", err)
	}

	if err := b.keystroke(ctx, "v"); err != nil {
		b.log.WithError(err).Warn("paste keystroke failed")
		return CommitOutcome{Pasted: false}, nil
	}
	return CommitOutcome{Pasted: true}, nil
}

func (b *SystemBridge) waitForChange(ctx context.Context, before string) (string, bool) {
	deadline := time.Now().Add(b.pollTimeout)
	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", false
		case <-ticker.C:
		}

		cur, err := b.readClipboard()
		if err == nil && cur != before {
			return cur, true
		}
		if time.Now().After(deadline) {
			return "", false
		}
	}
}

// keystrokeCommand returns the platform command that synthesizes
// cmd/ctrl + letter in the foreground application.
func keystrokeCommand(goos, letter string) (string, []string, error) {
	switch goos {
	case "darwin":
		script := fmt.Sprintf(`tell application "System Events" to keystroke %q using command down`, letter)
		return "osascript", []string{"-e", script}, nil
	case "linux":
		return "xdotool", []string{"key", "--clearmodifiers", "ctrl+" + letter}, nil
	case "windows":
		cmd := fmt.Sprintf(`$ws = New-Object -ComObject WScript.Shell; $ws.SendKeys('^%s')`, letter)
		return "powershell", []string{"-NoProfile", "-Command", cmd}, nil
	default:
		return "", nil, fmt.Errorf("keystroke synthesis not supported on %s", goos)
	}
}

func sendKeystroke(ctx context.Context, letter string) error {
	name, args, err := keystrokeCommand(runtime.GOOS, letter)
	if err != nil {
		return err
	}
	if out, err := exec.CommandContext(ctx, name, args...).CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, out)
	}
	return nil
}
