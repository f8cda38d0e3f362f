package display

import (
	"fmt"
	"strings"
	"time"

	"potato-racer/internal/agent"
	"potato-racer/internal/metrics"
)

func FormatSessionMetrics(sm *metrics.SessionMetrics) string {
	if sm == nil {
		return "No metrics available."
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session %s metrics:\n", sm.SessionID))
	sb.WriteString(fmt.Sprintf("- Total: %d ms  ticks=%d replans=%d null=%d errors=%d solver=%d ms\n",
		sm.DurationMs, sm.Ticks, sm.Replans, sm.NullSteps, sm.Errors, sm.SolverMs))
	for _, tm := range sm.Recent {
		status := "ok"
		if tm.Err != "" {
			status = "err"
		} else if tm.Replanned {
			status = "replan"
		}
		sb.WriteString(fmt.Sprintf("    • tick %-5d %-9s -> %-12s left=%-4d %6d us  [%s]\n",
			tm.Tick, tm.Location, FormatStep(tm.Step), tm.Remaining, tm.DurationUs, status))
	}
	return sb.String()
}

func FormatAgentStats(st agent.Stats) string {
	return fmt.Sprintf("moves=%d replans=%d failed=%d null=%d consumed=%d solver=%s last_plan=%s(%d)",
		st.Moves, st.Replans, st.FailedPlans, st.NullSteps, st.Consumed,
		st.SolverTime.Round(time.Microsecond), orDash(st.LastPlanID), st.LastPlanSize)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
