package track

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepToward(t *testing.T) {
	testCases := []struct {
		name string
		from Cell
		to   Cell
		want Step
	}{
		{"same cell", Cell{2, 3}, Cell{2, 3}, NullStep},
		{"east neighbour", Cell{2, 3}, Cell{2, 4}, Step{0, 1}},
		{"north neighbour", Cell{2, 3}, Cell{1, 3}, Step{-1, 0}},
		{"diagonal", Cell{2, 3}, Cell{3, 2}, Step{1, -1}},
		{"far waypoint is clamped", Cell{0, 0}, Cell{7, -12}, Step{1, -1}},
		{"far on one axis only", Cell{5, 5}, Cell{5, 40}, Step{0, 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StepToward(tc.from, tc.to))
		})
	}
}

func TestStepToward_AlwaysUnit(t *testing.T) {
	for dr := -9; dr <= 9; dr++ {
		for dc := -9; dc <= 9; dc++ {
			s := StepToward(Cell{10, 10}, Cell{10 + dr, 10 + dc})
			assert.Contains(t, []int{-1, 0, 1}, s.DRow)
			assert.Contains(t, []int{-1, 0, 1}, s.DCol)
		}
	}
}

func TestParseCell(t *testing.T) {
	testCases := []struct {
		in      string
		want    Cell
		wantErr bool
	}{
		{in: "2,3", want: Cell{2, 3}},
		{in: " 4 5 ", want: Cell{4, 5}},
		{in: "-1, 7", want: Cell{-1, 7}},
		{in: "1", wantErr: true},
		{in: "a,b", wantErr: true},
		{in: "1,2,3", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseCell(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCellJSON(t *testing.T) {
	b, err := json.Marshal(Cell{Row: 2, Col: 5})
	require.NoError(t, err)
	assert.JSONEq(t, `[2,5]`, string(b))

	var c Cell
	require.NoError(t, json.Unmarshal([]byte(`{"row":4,"col":1}`), &c))
	assert.Equal(t, Cell{4, 1}, c)

	assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"row":1}`), &c))
}

const sampleYAML = `
name: loop
walls:
  - [1, 1, 1]
  - [1, 0, 1]
active:
  - [1, 1, 1]
  - [1, 0, 1]
buttons:
  - [0, 0, 0]
  - [0, 1, 0]
wall_colors:
  - [1, 1, 2]
  - [1, 0, 1]
button_colors:
  - [0, 0, 0]
  - [0, 2, 0]
target: [1, 1]
`

func TestParse_YAMLAndJSONAgree(t *testing.T) {
	fromYAML, err := Parse([]byte(sampleYAML), ".yaml")
	require.NoError(t, err)
	assert.Equal(t, "loop", fromYAML.Name)
	assert.Equal(t, Cell{1, 1}, fromYAML.Target)
	assert.Equal(t, []int{1, 0, 1}, fromYAML.Walls[1])

	b, err := json.Marshal(fromYAML)
	require.NoError(t, err)
	fromJSON, err := Parse(b, ".json")
	require.NoError(t, err)
	assert.Equal(t, fromYAML, fromJSON)
}

func TestParse_TargetAsMapping(t *testing.T) {
	tr, err := Parse([]byte("target: {row: 5, col: 6}\n"), ".yml")
	require.NoError(t, err)
	assert.Equal(t, Cell{5, 6}, tr.Target)

	_, err = Parse([]byte("target: {row: 5}\n"), ".yml")
	assert.Error(t, err)
}

func TestLoad_DefaultsNameToFileBase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sprint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target: [0, 0]\n"), 0o644))

	tr, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sprint", tr.Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestWithTarget(t *testing.T) {
	base := &Track{Walls: [][]int{{0}}, Target: Cell{1, 1}}
	moved := base.WithTarget(Cell{2, 2})
	assert.Equal(t, Cell{1, 1}, base.Target)
	assert.Equal(t, Cell{2, 2}, moved.Target)
	assert.Equal(t, base.Walls, moved.Walls)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target: [1, 1]\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	got := make(chan Cell, 4)
	w.OnChange(func(tr *Track) { got <- tr.Target })
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("target: [3, 4]\n"), 0o644))

	select {
	case c := <-got:
		assert.Equal(t, Cell{3, 4}, c)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the rewritten track")
	}
}

func TestWatcher_ReloadsAfterRenameSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target: [1, 1]\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	got := make(chan Cell, 8)
	w.OnChange(func(tr *Track) { got <- tr.Target })
	require.NoError(t, w.Start())
	defer w.Stop()

	// the way editors save: write a sibling, rename it over the original
	for i, body := range []string{"target: [2, 2]\n", "target: [5, 6]\n"} {
		tmp := filepath.Join(dir, ".live.yaml.swp")
		require.NoError(t, os.WriteFile(tmp, []byte(body), 0o644))
		require.NoError(t, os.Rename(tmp, path))

		want := []Cell{{Row: 2, Col: 2}, {Row: 5, Col: 6}}[i]
		deadline := time.After(5 * time.Second)
		for seen := false; !seen; {
			select {
			case c := <-got:
				seen = c == want
			case <-deadline:
				t.Fatalf("watcher missed save %d", i+1)
			}
		}
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target: [1, 1]\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	got := make(chan Cell, 4)
	w.OnChange(func(tr *Track) { got <- tr.Target })
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("target: [9, 9]\n"), 0o644))

	select {
	case c := <-got:
		t.Fatalf("unexpected reload with target %s", c)
	case <-time.After(200 * time.Millisecond):
	}
}
