// Package cli wires the three user-facing commands: the primary
// rewrite (root), preset toggling, and the preset administration TUI.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shavin-peiries/rewrite-this/internal/config"
	"github.com/shavin-peiries/rewrite-this/internal/preset"
)

var version = "dev"

type app struct {
	cfgPath string
	verbose bool
	model   string
	log     *logrus.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{log: logrus.New()}
	a.log.SetLevel(logrus.WarnLevel)

	root := &cobra.Command{
		Use:     "rewrite-this",
		Short:   "Rewrite the selected text in any app with Claude",
		Long:    "rewrite-this captures the text selected in the foreground application,\nrewrites it with the active preset via the Anthropic API, and pastes the\nresult back over the selection.",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.verbose {
				a.log.SetLevel(logrus.DebugLevel)
			}
			// .env is picked up here, once, so config loading stays
			// a pure function of the file and the process environment.
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRewrite(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "path to config file")
	root.Flags().StringVar(&a.model, "model", "", "override the configured model for this invocation")

	root.AddCommand(a.newToggleCmd())
	root.AddCommand(a.newPresetsCmd())

	return root
}

// Execute runs the CLI. Failure notices have already been shown to the
// user by the time an error propagates here.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if a.model != "" {
		if config.GetModel(a.model) == nil {
			return nil, fmt.Errorf("unknown model %q (supported: %s)", a.model, supportedModels())
		}
		cfg.Model = a.model
	}
	a.log.WithFields(logrus.Fields{
		"model":   cfg.Model,
		"api_key": cfg.MaskedAPIKey(),
	}).Debug("config loaded")
	return cfg, nil
}

func supportedModels() string {
	ids := make([]string, len(config.Models))
	for i, m := range config.Models {
		ids[i] = m.ID
	}
	return strings.Join(ids, ", ")
}

func (a *app) openStore() (*preset.Store, error) {
	path, err := preset.DefaultPath()
	if err != nil {
		return nil, err
	}
	store, err := preset.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening preset store: %w", err)
	}
	return store, nil
}

var (
	noticeTitleStyle = lipgloss.NewStyle().Bold(true)
	noticeBodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// terminalNotifier prints user-visible notices to stdout.
type terminalNotifier struct{}

func (terminalNotifier) Notify(title, message string) {
	fmt.Println(noticeTitleStyle.Render(title))
	if message != "" {
		fmt.Println(noticeBodyStyle.Render(message))
	}
}
