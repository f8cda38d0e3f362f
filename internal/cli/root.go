package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"potato-racer/internal/config"
	"potato-racer/internal/logger"
	"potato-racer/internal/solver"
)

var version = "dev"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "potato",
	Short: "Movement agent for grid racing tracks",
	Long: `potato turns solver routes into one unit step per tick. It keeps the
route cached per target and only asks the solver again when the target moves.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		if err := logger.Init(cfg.LogFile); err != nil {
			return fmt.Errorf("could not initialize logger: %w", err)
		}
		cfg.SolverBackend = strings.ToLower(strings.TrimSpace(cfg.SolverBackend))
		return cfg.Validate()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, planCmd, consoleCmd, versionCmd)
}

// Execute binds the persistent flags to cfg and runs the root command.
func Execute(c *config.Config) {
	cfg = c
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.SolverBackend, "solver", cfg.SolverBackend, "solver backend: exec or table")
	pf.StringVar(&cfg.SolverCommand, "solver-cmd", cfg.SolverCommand, "external solver command line (exec backend)")
	pf.StringVar(&cfg.RouteTable, "routes", cfg.RouteTable, "route table file (table backend)")
	pf.DurationVar(&cfg.SolverTimeout, "solver-timeout", cfg.SolverTimeout, "limit for one solver run (0 = none)")
	pf.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newFactory() (solver.Factory, error) {
	return solver.NewFactory(cfg)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "potato-racer %s\n", version)
	},
}
