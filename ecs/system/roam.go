package system

import (
	"fmt"
	"math/rand"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/shadowmaze/logging"
	"github.com/milk9111/shadowmaze/nav"
)

// RoamPicker chooses the next patrol destination for a roaming agent. The
// returned cell may be blocked or a sentinel; callers discard those draws.
type RoamPicker interface {
	PickRoam(g *nav.Grid, from *nav.Cell) *nav.Cell
}

// RandomRoam draws a uniform cell from the whole grid.
type RandomRoam struct {
	Rand *rand.Rand
}

func NewRandomRoam(seed int64) *RandomRoam {
	return &RandomRoam{Rand: rand.New(rand.NewSource(seed))}
}

func (r *RandomRoam) PickRoam(g *nav.Grid, _ *nav.Cell) *nav.Cell {
	if g == nil || g.Cols() == 0 || g.Rows() == 0 {
		return nil
	}
	return g.Cell(r.Rand.Intn(g.Cols()), r.Rand.Intn(g.Rows()))
}

// ScriptRoam asks a tengo script for the destination. The script sees
// cols, rows, from_col, from_row and two random rolls (roll_a, roll_b) and
// must assign dest_col and dest_row.
type ScriptRoam struct {
	name     string
	compiled *tengo.Compiled
	rand     *rand.Rand
}

// NewScriptRoam compiles src once. name is only used in log output.
func NewScriptRoam(name string, src []byte, rng *rand.Rand) (*ScriptRoam, error) {
	if rng == nil {
		return nil, fmt.Errorf("roam script %s: nil random source", name)
	}
	script := tengo.NewScript(src)
	for _, v := range []string{"cols", "rows", "from_col", "from_row", "roll_a", "roll_b"} {
		if err := script.Add(v, 0); err != nil {
			return nil, fmt.Errorf("roam script %s: %w", name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("roam script %s: compile: %w", name, err)
	}
	if !compiled.IsDefined("dest_col") || !compiled.IsDefined("dest_row") {
		return nil, fmt.Errorf("roam script %s: must define dest_col and dest_row", name)
	}
	return &ScriptRoam{name: name, compiled: compiled, rand: rng}, nil
}

func (s *ScriptRoam) PickRoam(g *nav.Grid, from *nav.Cell) *nav.Cell {
	if g == nil || g.Cols() == 0 || g.Rows() == 0 {
		return nil
	}
	col, row, err := s.run(g, from)
	if err != nil {
		logging.For("roam").WithField("script", s.name).WithError(err).Warn("roam script failed")
		return nil
	}
	return g.Cell(col, row)
}

func (s *ScriptRoam) run(g *nav.Grid, from *nav.Cell) (int, int, error) {
	fromCol, fromRow := 0, 0
	if from.Valid() {
		fromCol, fromRow = from.Col, from.Row
	}
	vars := map[string]int{
		"cols":     g.Cols(),
		"rows":     g.Rows(),
		"from_col": fromCol,
		"from_row": fromRow,
		"roll_a":   s.rand.Intn(1 << 30),
		"roll_b":   s.rand.Intn(1 << 30),
	}
	for k, v := range vars {
		if err := s.compiled.Set(k, v); err != nil {
			return 0, 0, err
		}
	}
	if err := s.compiled.Run(); err != nil {
		return 0, 0, err
	}
	return s.compiled.Get("dest_col").Int(), s.compiled.Get("dest_row").Int(), nil
}
