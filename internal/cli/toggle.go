package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Cycle to the next rewrite preset",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				terminalNotifier{}.Notify("Toggle failed", err.Error())
				return err
			}

			p, err := store.ToggleNext()
			if err != nil {
				terminalNotifier{}.Notify("Toggle failed", err.Error())
				return err
			}

			terminalNotifier{}.Notify(fmt.Sprintf("Preset: %s", p.Name), p.Prompt)
			return nil
		},
	}
}
