package solver

import (
	"errors"
	"fmt"
	"math"

	"potato-racer/internal/track"
)

var (
	ErrShape      = errors.New("track layer shape mismatch")
	ErrValueRange = errors.New("track value out of range for solver element type")
)

// Layers is the solver-facing form of a track: row-major grids with fixed
// element types. Presence and state grids are uint8, color grids int32.
type Layers struct {
	Rows         int
	Cols         int
	Walls        []uint8
	Active       []uint8
	Buttons      []uint8
	WallColors   []int32
	ButtonColors []int32
	Target       track.Cell
}

// Normalize converts a snapshot into Layers. It changes representation only:
// a value that would not survive the conversion is an error, never truncated.
// The shape of Walls defines the grid; the other layers must match it.
func Normalize(t *track.Track) (*Layers, error) {
	rows, cols, err := shapeOf("walls", t.Walls)
	if err != nil {
		return nil, err
	}
	l := &Layers{Rows: rows, Cols: cols, Target: t.Target}

	if l.Walls, err = flattenU8("walls", t.Walls, rows, cols); err != nil {
		return nil, err
	}
	if l.Active, err = flattenU8("active", t.Active, rows, cols); err != nil {
		return nil, err
	}
	if l.Buttons, err = flattenU8("buttons", t.Buttons, rows, cols); err != nil {
		return nil, err
	}
	if l.WallColors, err = flattenI32("wall_colors", t.WallColors, rows, cols); err != nil {
		return nil, err
	}
	if l.ButtonColors, err = flattenI32("button_colors", t.ButtonColors, rows, cols); err != nil {
		return nil, err
	}
	return l, nil
}

// At returns the flat index of (row, col).
func (l *Layers) At(row, col int) int {
	return row*l.Cols + col
}

func shapeOf(name string, grid [][]int) (int, int, error) {
	if len(grid) == 0 {
		return 0, 0, nil
	}
	cols := len(grid[0])
	for r, row := range grid {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("%w: %s row %d has %d columns, want %d", ErrShape, name, r, len(row), cols)
		}
	}
	return len(grid), cols, nil
}

func checkShape(name string, grid [][]int, rows, cols int) error {
	if len(grid) != rows {
		return fmt.Errorf("%w: %s has %d rows, want %d", ErrShape, name, len(grid), rows)
	}
	for r, row := range grid {
		if len(row) != cols {
			return fmt.Errorf("%w: %s row %d has %d columns, want %d", ErrShape, name, r, len(row), cols)
		}
	}
	return nil
}

func flattenU8(name string, grid [][]int, rows, cols int) ([]uint8, error) {
	if err := checkShape(name, grid, rows, cols); err != nil {
		return nil, err
	}
	out := make([]uint8, 0, rows*cols)
	for r, row := range grid {
		for c, v := range row {
			if v < 0 || v > math.MaxUint8 {
				return nil, fmt.Errorf("%w: %s[%d][%d]=%d does not fit uint8", ErrValueRange, name, r, c, v)
			}
			out = append(out, uint8(v))
		}
	}
	return out, nil
}

func flattenI32(name string, grid [][]int, rows, cols int) ([]int32, error) {
	if err := checkShape(name, grid, rows, cols); err != nil {
		return nil, err
	}
	out := make([]int32, 0, rows*cols)
	for r, row := range grid {
		for c, v := range row {
			if v < math.MinInt32 || v > math.MaxInt32 {
				return nil, fmt.Errorf("%w: %s[%d][%d]=%d does not fit int32", ErrValueRange, name, r, c, v)
			}
			out = append(out, int32(v))
		}
	}
	return out, nil
}
