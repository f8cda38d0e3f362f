package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendExec  = "exec"
	BackendTable = "table"
)

const (
	defaultLogFile         = "potato.log"
	defaultPlanConcurrency = 4
)

var ErrMissingSolverCommand = errors.New("exec solver selected but POTATO_SOLVER_CMD is empty")

type Config struct {
	SolverBackend   string
	SolverCommand   string
	SolverTimeout   time.Duration
	RouteTable      string
	LogFile         string
	PlanConcurrency int
}

// Load reads the configuration from the environment (after .env has been applied).
func Load() (*Config, error) {
	cfg := &Config{
		SolverBackend:   strings.ToLower(strings.TrimSpace(os.Getenv("POTATO_SOLVER"))),
		SolverCommand:   strings.TrimSpace(os.Getenv("POTATO_SOLVER_CMD")),
		RouteTable:      strings.TrimSpace(os.Getenv("POTATO_ROUTE_TABLE")),
		LogFile:         strings.TrimSpace(os.Getenv("POTATO_LOG_FILE")),
		PlanConcurrency: defaultPlanConcurrency,
	}
	if cfg.SolverBackend == "" {
		cfg.SolverBackend = BackendExec
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}

	if v := strings.TrimSpace(os.Getenv("POTATO_SOLVER_TIMEOUT_MS")); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("POTATO_SOLVER_TIMEOUT_MS: invalid value %q", v)
		}
		cfg.SolverTimeout = time.Duration(ms) * time.Millisecond
	}
	if v := strings.TrimSpace(os.Getenv("POTATO_PLAN_CONCURRENCY")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("POTATO_PLAN_CONCURRENCY: invalid value %q", v)
		}
		cfg.PlanConcurrency = n
	}
	return cfg, nil
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	switch c.SolverBackend {
	case BackendExec:
		if c.SolverCommand == "" {
			return ErrMissingSolverCommand
		}
	case BackendTable:
		if c.RouteTable == "" {
			return fmt.Errorf("table solver selected but POTATO_ROUTE_TABLE is empty")
		}
	default:
		return fmt.Errorf("unsupported solver backend: %s", c.SolverBackend)
	}
	return nil
}
