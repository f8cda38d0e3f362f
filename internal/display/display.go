package display

import (
	"fmt"
	"strings"

	"potato-racer/internal/track"
)

const maxRouteCells = 24

// FormatRoute lists the waypoints of a route (truncated for stdout).
func FormatRoute(target track.Cell, path []track.Cell) string {
	return formatRouteInternal(target, path, maxRouteCells)
}

// full route (no truncation), used for logs
func FormatRouteFull(target track.Cell, path []track.Cell) string {
	return formatRouteInternal(target, path, -1)
}

func formatRouteInternal(target track.Cell, path []track.Cell, limit int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Route to %s: ", target))
	if len(path) == 0 {
		sb.WriteString("no route")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("%d waypoint(s)\n  ", len(path)))

	shown := path
	if limit >= 0 && len(path) > limit {
		shown = path[:limit]
	}
	parts := make([]string, len(shown))
	for i, c := range shown {
		parts[i] = c.String()
	}
	sb.WriteString(strings.Join(parts, " -> "))
	if len(shown) < len(path) {
		sb.WriteString(fmt.Sprintf(" -> ... (+%d)", len(path)-len(shown)))
	}
	return sb.String()
}

var stepNames = map[track.Step]string{
	{DRow: -1, DCol: 0}:  "N",
	{DRow: -1, DCol: 1}:  "NE",
	{DRow: 0, DCol: 1}:   "E",
	{DRow: 1, DCol: 1}:   "SE",
	{DRow: 1, DCol: 0}:   "S",
	{DRow: 1, DCol: -1}:  "SW",
	{DRow: 0, DCol: -1}:  "W",
	{DRow: -1, DCol: -1}: "NW",
	{DRow: 0, DCol: 0}:   "stay",
}

// FormatStep renders a step with its compass name, e.g. "(0,1) E".
func FormatStep(s track.Step) string {
	name, ok := stepNames[s]
	if !ok {
		name = "?"
	}
	return fmt.Sprintf("%s %s", s, name)
}
