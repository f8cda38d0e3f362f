package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"potato-racer/internal/agent"
	"potato-racer/internal/display"
	"potato-racer/internal/track"
)

const helpText = `commands:
  <row> <col>          ask the agent for a step from this cell
  target <row> <col>   move the target (next step replans)
  path                 show the remaining route
  stats                show agent counters
  help                 this text
  exit                 quit`

var errExit = errors.New("exit")

// Console drives an agent by hand, one typed location per tick.
type Console struct {
	agent *agent.Agent
	track *track.Track
	tick  int
}

func New(a *agent.Agent, t *track.Track) *Console {
	return &Console{agent: a, track: t}
}

// Run reads commands until "exit", EOF or Ctrl+C.
func (c *Console) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("init terminal input: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "Track %q, target %s. Type 'help' for commands.\n", c.track.Name, c.track.Target)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		out, err := c.Exec(ctx, line)
		if errors.Is(err, errExit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(rl.Stdout(), "error: %v\n", err)
			continue
		}
		if out != "" {
			fmt.Fprintln(rl.Stdout(), out)
		}
	}
}

// Exec runs one command line and returns what to print.
func (c *Console) Exec(ctx context.Context, line string) (string, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return "", nil
	}

	switch strings.ToLower(fields[0]) {
	case "exit", "quit":
		return "", errExit
	case "help", "?":
		return helpText, nil
	case "path":
		target, ok := c.agent.LastTarget()
		if !ok {
			return "No route planned yet.", nil
		}
		return display.FormatRoute(target, c.agent.Path()), nil
	case "stats":
		return display.FormatAgentStats(c.agent.Stats()), nil
	case "target":
		cell, err := track.ParseCell(strings.Join(fields[1:], " "))
		if err != nil {
			return "", err
		}
		c.track = c.track.WithTarget(cell)
		return fmt.Sprintf("Target is now %s.", cell), nil
	default:
		loc, err := track.ParseCell(strings.Join(fields, " "))
		if err != nil {
			return "", fmt.Errorf("unknown command %q (type 'help')", line)
		}
		c.tick++
		out, err := c.agent.MoveDetailed(ctx, loc, c.track)
		if err != nil {
			return "", err
		}
		msg := fmt.Sprintf("tick %d: %s -> %s", c.tick, loc, display.FormatStep(out.Step))
		if out.Replanned {
			msg += fmt.Sprintf("  [replanned, %d waypoint(s) left]", out.Remaining)
		}
		return msg, nil
	}
}
