package cli

import (
	"fmt"

	"github.com/alexanderramin/officeflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSweepCmd(app *App) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run one escalation sweep over active instances",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			if at != "" {
				t, err := parseTimeFlag(at)
				if err != nil {
					return fmt.Errorf("--at: %w", err)
				}
				now = t
			}

			res, err := app.Sweeper.Sweep(cmd.Context(), now)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSweepResult(res))
			if n := len(res.Failures); n > 0 {
				return fmt.Errorf("%d task(s) failed to update", n)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "evaluate timers as of this time instead of now")
	return cmd
}
