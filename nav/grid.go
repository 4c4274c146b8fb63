package nav

import (
	"image"
	"math"

	"github.com/jakecoffman/cp"
)

// DefaultCellSize is the pixel edge of a full-screen tile.
const DefaultCellSize = 50

// Cell is one fixed-size tile of the grid. Search scores are not stored here;
// see Scores.
type Cell struct {
	Col         int
	Row         int
	Rect        image.Rectangle
	Traversable bool
	Lit         bool
}

// Valid reports whether the cell belongs to a grid. Sentinel cells returned
// for out-of-bounds queries are never valid.
func (c *Cell) Valid() bool {
	return c != nil && c.Col >= 0 && c.Row >= 0
}

// Center returns the pixel centre of the cell.
func (c *Cell) Center() cp.Vector {
	if c == nil {
		return cp.Vector{}
	}
	return cp.Vector{
		X: float64(c.Rect.Min.X) + float64(c.Rect.Dx())/2,
		Y: float64(c.Rect.Min.Y) + float64(c.Rect.Dy())/2,
	}
}

// Origin returns the top-left corner of the cell as a vector.
func (c *Cell) Origin() cp.Vector {
	if c == nil {
		return cp.Vector{}
	}
	return cp.Vector{X: float64(c.Rect.Min.X), Y: float64(c.Rect.Min.Y)}
}

func sentinel() *Cell {
	return &Cell{Col: -1, Row: -1}
}

// Grid is a fixed cols x rows tiling of the world. Cells are stored row-major.
type Grid struct {
	cols       int
	rows       int
	cellWidth  int
	cellHeight int
	cells      []Cell
}

// NewGrid tiles a world of the given pixel size with cells of the given size.
// Partial cells at the right and bottom edges are dropped. All cells start
// traversable.
func NewGrid(worldWidth, worldHeight, cellWidth, cellHeight int) *Grid {
	if cellWidth <= 0 {
		cellWidth = DefaultCellSize
	}
	if cellHeight <= 0 {
		cellHeight = DefaultCellSize
	}
	cols := max(worldWidth/cellWidth, 0)
	rows := max(worldHeight/cellHeight, 0)
	return newGrid(cols, rows, cellWidth, cellHeight)
}

// NewGridCells builds a grid with an explicit cell count.
func NewGridCells(cols, rows, cellSize int) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return newGrid(max(cols, 0), max(rows, 0), cellSize, cellSize)
}

func newGrid(cols, rows, cw, ch int) *Grid {
	g := &Grid{
		cols:       cols,
		rows:       rows,
		cellWidth:  cw,
		cellHeight: ch,
		cells:      make([]Cell, cols*rows),
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			g.cells[row*cols+col] = Cell{
				Col:         col,
				Row:         row,
				Rect:        image.Rect(col*cw, row*ch, (col+1)*cw, (row+1)*ch),
				Traversable: true,
			}
		}
	}
	return g
}

func (g *Grid) Cols() int       { return g.cols }
func (g *Grid) Rows() int       { return g.rows }
func (g *Grid) CellWidth() int  { return g.cellWidth }
func (g *Grid) CellHeight() int { return g.cellHeight }
func (g *Grid) Len() int        { return len(g.cells) }

// Bounds is the pixel rectangle covered by the grid.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.cols*g.cellWidth, g.rows*g.cellHeight)
}

func (g *Grid) InBounds(col, row int) bool {
	return g != nil && col >= 0 && row >= 0 && col < g.cols && row < g.rows
}

// Index returns the row-major index of a valid cell, or -1.
func (g *Grid) Index(c *Cell) int {
	if !c.Valid() || !g.InBounds(c.Col, c.Row) {
		return -1
	}
	return c.Row*g.cols + c.Col
}

// Cell returns the cell at col,row or a non-traversable sentinel when the
// coordinates fall outside the grid.
func (g *Grid) Cell(col, row int) *Cell {
	if !g.InBounds(col, row) {
		return sentinel()
	}
	return &g.cells[row*g.cols+col]
}

func (g *Grid) at(idx int) *Cell {
	return &g.cells[idx]
}

// CellAt returns the cell containing the pixel point.
func (g *Grid) CellAt(p image.Point) *Cell {
	if g == nil || p.X < 0 || p.Y < 0 {
		return sentinel()
	}
	return g.Cell(p.X/g.cellWidth, p.Y/g.cellHeight)
}

// CellAtVec returns the cell containing a world position. Fractional
// coordinates are floored so that small negative drift stays out of bounds.
func (g *Grid) CellAtVec(v cp.Vector) *Cell {
	if math.IsNaN(v.X) || math.IsNaN(v.Y) {
		return sentinel()
	}
	return g.CellAt(image.Pt(int(math.Floor(v.X)), int(math.Floor(v.Y))))
}

// SetTraversable flips a cell's traversability. Out-of-bounds writes are
// ignored.
func (g *Grid) SetTraversable(col, row int, ok bool) {
	if !g.InBounds(col, row) {
		return
	}
	g.cells[row*g.cols+col].Traversable = ok
}

// Traversable reports whether col,row is inside the grid and walkable.
func (g *Grid) Traversable(col, row int) bool {
	return g.InBounds(col, row) && g.cells[row*g.cols+col].Traversable
}

var neighborOffsets = [8]struct{ dc, dr int }{
	{0, -1},  // above
	{1, -1},  // up-right
	{1, 0},   // right
	{1, 1},   // down-right
	{0, 1},   // below
	{-1, 1},  // down-left
	{-1, 0},  // left
	{-1, -1}, // up-left
}

// Neighbors8 lists the cells around c clockwise from above. Orthogonal cells
// are returned whenever they are in bounds. A diagonal cell is returned only
// when both cells sharing an edge with c and the diagonal are traversable.
func (g *Grid) Neighbors8(c *Cell) []*Cell {
	return g.appendNeighbors(nil, c)
}

func (g *Grid) appendNeighbors(out []*Cell, c *Cell) []*Cell {
	if !c.Valid() || !g.InBounds(c.Col, c.Row) {
		return out
	}
	for _, off := range neighborOffsets {
		col, row := c.Col+off.dc, c.Row+off.dr
		if !g.InBounds(col, row) {
			continue
		}
		if off.dc != 0 && off.dr != 0 {
			if !g.Traversable(c.Col+off.dc, c.Row) || !g.Traversable(c.Col, c.Row+off.dr) {
				continue
			}
		}
		out = append(out, &g.cells[row*g.cols+col])
	}
	return out
}

// ResetLighting clears the lit flag on every cell.
func (g *Grid) ResetLighting() {
	for i := range g.cells {
		g.cells[i].Lit = false
	}
}

// Light marks the given cells of this grid as lit. Sentinels are skipped.
func (g *Grid) Light(cells []*Cell) {
	for _, c := range cells {
		if idx := g.Index(c); idx >= 0 {
			g.cells[idx].Lit = true
		}
	}
}

// ForEach visits every cell in row-major order.
func (g *Grid) ForEach(fn func(c *Cell)) {
	for i := range g.cells {
		fn(&g.cells[i])
	}
}
