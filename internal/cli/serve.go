package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"potato-racer/internal/agent"
	"potato-racer/internal/display"
	"potato-racer/internal/host"
	"potato-racer/internal/logger"
	"potato-racer/internal/track"
)

var (
	serveTrackPath string
	serveWatch     bool
	serveQuiet     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer tick requests (JSON lines) on stdin with steps on stdout",
	Long: `serve keeps one agent alive for the whole process. Each stdin line is a
request {"tick": n, "location": [r, c], "track": {...}}; "track" may be left
out once a snapshot is known (from --track or an earlier request).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		factory, err := newFactory()
		if err != nil {
			return err
		}

		var initial *track.Track
		if serveTrackPath != "" {
			if initial, err = track.Load(serveTrackPath); err != nil {
				return err
			}
		}

		session := host.NewSession(agent.New(factory), initial)
		logger.Log.Printf("[Serve] session %s started (solver=%s)", session.ID, cfg.SolverBackend)

		if serveWatch {
			if serveTrackPath == "" {
				return fmt.Errorf("--watch needs --track")
			}
			w, err := track.NewWatcher(serveTrackPath)
			if err != nil {
				return err
			}
			w.OnChange(session.SetTrack)
			if err := w.Start(); err != nil {
				return err
			}
			defer w.Stop()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		serveErr := session.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())

		m := session.Metrics()
		logger.Log.Printf("[Serve] session %s finished: %d ticks, %d replans", m.SessionID, m.Ticks, m.Replans)
		if !serveQuiet {
			fmt.Fprintln(cmd.ErrOrStderr(), display.FormatSessionMetrics(m))
		}
		if serveErr != nil && ctx.Err() == nil {
			return serveErr
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveTrackPath, "track", "", "initial track snapshot (.yaml or .json)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload --track when the file changes")
	serveCmd.Flags().BoolVarP(&serveQuiet, "quiet", "q", false, "do not print session metrics on exit")
}
