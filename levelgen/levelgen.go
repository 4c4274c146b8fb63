// Package levelgen builds the grids pursuers run on.
package levelgen

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/milk9111/shadowmaze/nav"
)

// Layout is a built grid plus the cells entities start on.
type Layout struct {
	Name      string
	Grid      *nav.Grid
	Pursuers  []image.Point
	Targets   []image.Point
	BeamSpots []image.Point
}

const (
	tileOpen    = '.'
	tileWall    = '#'
	tileWater   = '~'
	tileTree    = 'T'
	tileBeam    = '*'
	tilePursuer = 'P'
	tileTarget  = 'S'
)

var genesis = []string{
	"T.........P.........T",
	"T.######T...T######.T",
	"..#TTT.........TTT#..",
	"..#T*...#####...*T#..",
	"..T....#~#~#~#....T..",
	".......#~#~#~#.......",
	"..T.....#####.....T..",
	"..###....TTT....###..",
	"..#~~#*........#~~#..",
	"T.######T...T######.T",
	"T.........S.........T",
	"TTTTTTTTTTTTTTTTTTTTT",
}

// Parse builds a layout from rows of tiles. '#', '~' and 'T' block; '.', '*',
// 'P' and 'S' are open, with '*' marking a beam pickup and 'P'/'S' marking
// pursuer and target starts.
func Parse(name string, rows []string, cellSize int) (*Layout, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("levelgen: %s: empty layout", name)
	}
	cols := len(rows[0])
	l := &Layout{Name: name, Grid: nav.NewGridCells(cols, len(rows), cellSize)}
	for row, line := range rows {
		if len(line) != cols {
			return nil, fmt.Errorf("levelgen: %s: row %d has %d tiles, want %d", name, row, len(line), cols)
		}
		for col, tile := range line {
			at := image.Pt(col, row)
			switch tile {
			case tileOpen:
			case tileWall, tileWater, tileTree:
				l.Grid.SetTraversable(col, row, false)
			case tileBeam:
				l.BeamSpots = append(l.BeamSpots, at)
			case tilePursuer:
				l.Pursuers = append(l.Pursuers, at)
			case tileTarget:
				l.Targets = append(l.Targets, at)
			default:
				return nil, fmt.Errorf("levelgen: %s: unknown tile %q at (%d,%d)", name, tile, col, row)
			}
		}
	}
	return l, nil
}

// Genesis is the stock 21x12 map.
func Genesis() *Layout {
	l, err := Parse("genesis", genesis, nav.DefaultCellSize)
	if err != nil {
		panic(err)
	}
	return l
}

// Open is an obstacle-free room with the pursuer and target in opposite
// corners.
func Open(cols, rows int) *Layout {
	return &Layout{
		Name:     "open",
		Grid:     nav.NewGridCells(cols, rows, nav.DefaultCellSize),
		Pursuers: []image.Point{{X: 0, Y: 0}},
		Targets:  []image.Point{{X: max(cols-1, 0), Y: max(rows-1, 0)}},
	}
}

// ColumnWall is a 21x12 room split by a blocked column 10. With gap set the
// bottom cell of the column stays open so the halves connect.
func ColumnWall(gap bool) *Layout {
	const cols, rows, wall = 21, 12, 10
	l := &Layout{
		Name:     "column",
		Grid:     nav.NewGridCells(cols, rows, nav.DefaultCellSize),
		Pursuers: []image.Point{{X: 2, Y: 5}},
		Targets:  []image.Point{{X: 18, Y: 5}},
	}
	if !gap {
		l.Name = "column-sealed"
	}
	for row := 0; row < rows; row++ {
		if gap && row == rows-1 {
			continue
		}
		l.Grid.SetTraversable(wall, row, false)
	}
	return l
}

// Perlin blocks every cell whose smoothed noise value is above threshold.
// The pursuer starts on the first open cell in scan order and the target on
// the last.
func Perlin(cols, rows int, seed int64, threshold float64) *Layout {
	const (
		alpha = 2.0
		beta  = 2.0
		n     = int32(3)
		scale = 4.0
	)
	noise := perlin.NewPerlin(alpha, beta, n, seed)
	l := &Layout{Name: "perlin", Grid: nav.NewGridCells(cols, rows, nav.DefaultCellSize)}
	var open []image.Point
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			v := (noise.Noise2D((float64(col)+0.5)/scale, (float64(row)+0.5)/scale) + 1) / 2
			if v > threshold {
				l.Grid.SetTraversable(col, row, false)
				continue
			}
			open = append(open, image.Pt(col, row))
		}
	}
	if len(open) > 0 {
		l.Pursuers = []image.Point{open[0]}
		l.Targets = []image.Point{open[len(open)-1]}
	}
	return l
}

var builders = map[string]func(seed int64) *Layout{
	"genesis":       func(int64) *Layout { return Genesis() },
	"open":          func(int64) *Layout { return Open(21, 12) },
	"column":        func(int64) *Layout { return ColumnWall(true) },
	"column-sealed": func(int64) *Layout { return ColumnWall(false) },
	"perlin":        func(seed int64) *Layout { return Perlin(21, 12, seed, 0.6) },
}

// ByName builds one of the named layouts. seed only affects "perlin".
func ByName(name string, seed int64) (*Layout, error) {
	build, ok := builders[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("levelgen: unknown layout %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return build(seed), nil
}

func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
