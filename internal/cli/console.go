package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"potato-racer/internal/agent"
	"potato-racer/internal/console"
	"potato-racer/internal/track"
)

var consoleCmd = &cobra.Command{
	Use:   "console <track>",
	Short: "Drive the agent by hand from an interactive prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := track.Load(args[0])
		if err != nil {
			return err
		}
		factory, err := newFactory()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := console.New(agent.New(factory), t).Run(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Goodbye!")
		return nil
	},
}
