package system

import (
	"math/rand"
	"testing"

	"github.com/milk9111/shadowmaze/nav"
	"github.com/milk9111/shadowmaze/prefabs"
)

func TestRandomRoamIsSeeded(t *testing.T) {
	g := nav.NewGridCells(21, 12, nav.DefaultCellSize)
	a, b := NewRandomRoam(42), NewRandomRoam(42)
	for i := 0; i < 20; i++ {
		ca, cb := a.PickRoam(g, nil), b.PickRoam(g, nil)
		if ca != cb {
			t.Fatalf("draw %d: (%d,%d) != (%d,%d)", i, ca.Col, ca.Row, cb.Col, cb.Row)
		}
		if !ca.Valid() {
			t.Fatalf("draw %d out of the grid", i)
		}
	}
	if NewRandomRoam(1).PickRoam(nil, nil) != nil {
		t.Fatal("nil grid should give no destination")
	}
}

func TestScriptRoamMirror(t *testing.T) {
	src := []byte("dest_col := cols - 1 - from_col\ndest_row := rows - 1 - from_row\n")
	roam, err := NewScriptRoam("mirror", src, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewScriptRoam: %v", err)
	}
	g := nav.NewGridCells(10, 10, nav.DefaultCellSize)
	tests := []struct{ fromCol, fromRow, wantCol, wantRow int }{
		{2, 3, 7, 6},
		{0, 0, 9, 9},
		{9, 9, 0, 0},
	}
	for _, tc := range tests {
		got := roam.PickRoam(g, g.Cell(tc.fromCol, tc.fromRow))
		if got.Col != tc.wantCol || got.Row != tc.wantRow {
			t.Errorf("from (%d,%d): got (%d,%d), want (%d,%d)", tc.fromCol, tc.fromRow, got.Col, got.Row, tc.wantCol, tc.wantRow)
		}
	}
}

func TestScriptRoamErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		rng  *rand.Rand
	}{
		{"nil rand", "dest_col := 0\ndest_row := 0\n", nil},
		{"syntax", "dest_col := (\n", rand.New(rand.NewSource(1))},
		{"missing outputs", "x := cols\n", rand.New(rand.NewSource(1))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewScriptRoam(tc.name, []byte(tc.src), tc.rng); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestScriptRoamRuntimeFailure(t *testing.T) {
	src := []byte("dest_col := cols + []\ndest_row := 0\n")
	roam, err := NewScriptRoam("bad operand", src, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewScriptRoam: %v", err)
	}
	g := nav.NewGridCells(4, 4, nav.DefaultCellSize)
	if got := roam.PickRoam(g, g.Cell(0, 0)); got != nil {
		t.Fatalf("failed script returned (%d,%d)", got.Col, got.Row)
	}
}

func TestPatrolScriptPicksFarHalf(t *testing.T) {
	src, err := prefabs.LoadScript("patrol.tengo")
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	roam, err := NewScriptRoam("patrol", src, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewScriptRoam: %v", err)
	}
	g := nav.NewGridCells(21, 12, nav.DefaultCellSize)
	from := g.Cell(2, 2)
	for i := 0; i < 25; i++ {
		got := roam.PickRoam(g, from)
		if !got.Valid() {
			t.Fatalf("draw %d left the grid", i)
		}
		if got.Col < 11 || got.Row < 6 {
			t.Fatalf("draw %d: (%d,%d) is not in the far quadrant", i, got.Col, got.Row)
		}
	}
}
