package track

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Cell is a grid position (row, column).
type Cell struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Step is a single-tick movement vector. Each axis is -1, 0 or +1.
type Step struct {
	DRow int
	DCol int
}

// NullStep means "do not move this tick".
var NullStep = Step{}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func (s Step) String() string {
	return fmt.Sprintf("(%d,%d)", s.DRow, s.DCol)
}

// StepToward returns the unit step from one cell toward another, clamping
// each axis independently. A target several cells away still yields a unit step.
func StepToward(from, to Cell) Step {
	return Step{
		DRow: clampUnit(to.Row - from.Row),
		DCol: clampUnit(to.Col - from.Col),
	}
}

func clampUnit(d int) int {
	return max(-1, min(1, d))
}

// Cells and steps travel as [a, b] pairs on the wire.

func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("cell must have 2 coordinates, got %d", len(pair))
		}
		c.Row, c.Col = pair[0], pair[1]
		return nil
	}
	var obj struct {
		Row *int `json:"row"`
		Col *int `json:"col"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("cell must be [row, col] or {\"row\":..,\"col\":..}: %w", err)
	}
	if obj.Row == nil || obj.Col == nil {
		return fmt.Errorf("cell object needs both row and col")
	}
	c.Row, c.Col = *obj.Row, *obj.Col
	return nil
}

func (c *Cell) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var pair []int
		if err := value.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: cell must have 2 coordinates, got %d", value.Line, len(pair))
		}
		c.Row, c.Col = pair[0], pair[1]
		return nil
	case yaml.MappingNode:
		var obj struct {
			Row *int `yaml:"row"`
			Col *int `yaml:"col"`
		}
		if err := value.Decode(&obj); err != nil {
			return err
		}
		if obj.Row == nil || obj.Col == nil {
			return fmt.Errorf("line %d: cell needs both row and col", value.Line)
		}
		c.Row, c.Col = *obj.Row, *obj.Col
		return nil
	default:
		return fmt.Errorf("line %d: cell must be [row, col] or {row, col}", value.Line)
	}
}

func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.DRow, s.DCol})
}

func (s *Step) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("step must be [drow, dcol]: %w", err)
	}
	s.DRow, s.DCol = pair[0], pair[1]
	return nil
}

// ParseCell parses "r,c" or "r c".
func ParseCell(s string) (Cell, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return Cell{}, fmt.Errorf("invalid cell %q: want \"row,col\"", s)
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return Cell{}, fmt.Errorf("invalid row in %q: %v", s, err)
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return Cell{}, fmt.Errorf("invalid col in %q: %v", s, err)
	}
	return Cell{Row: row, Col: col}, nil
}
