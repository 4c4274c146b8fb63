package nav

import "container/heap"

const (
	StraightCost = 10
	DiagonalCost = 14
)

// Heuristic is the octile distance between two cells in cost units.
func Heuristic(a, b *Cell) int {
	dx := abs(a.Col - b.Col)
	dy := abs(a.Row - b.Row)
	return StraightCost*max(dx, dy) + (DiagonalCost-StraightCost)*min(dx, dy)
}

// StepCost is the cost of moving between two 8-adjacent cells.
func StepCost(a, b *Cell) int {
	if a.Col != b.Col && a.Row != b.Row {
		return DiagonalCost
	}
	return StraightCost
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Path is an immutable route ordered from start to destination. G holds the
// cumulative cost of reaching each cell.
type Path struct {
	Cells []*Cell
	G     []int
}

func (p Path) Len() int { return len(p.Cells) }

// Found reports whether the path leads anywhere beyond its start.
func (p Path) Found() bool { return len(p.Cells) > 1 }

// Next returns the cell after the start.
func (p Path) Next() (*Cell, bool) {
	if len(p.Cells) < 2 {
		return nil, false
	}
	return p.Cells[1], true
}

// Last returns the destination cell.
func (p Path) Last() (*Cell, bool) {
	if len(p.Cells) == 0 {
		return nil, false
	}
	return p.Cells[len(p.Cells)-1], true
}

// Cost is the total g cost of the path.
func (p Path) Cost() int {
	if len(p.G) == 0 {
		return 0
	}
	return p.G[len(p.G)-1]
}

type nodeState uint8

const (
	nodeUnseen nodeState = iota
	nodeOpen
	nodeClosed
)

type score struct {
	g, h, f int
	parent  int
	state   nodeState
	seq     int
	index   int
}

// Scores is the per-search scratch for one A* run, keyed by cell index.
type Scores struct {
	nodes []score
	open  openSet
	seq   int
}

// Reset sizes the scratch for n cells and clears every record.
func (s *Scores) Reset(n int) {
	if cap(s.nodes) < n {
		s.nodes = make([]score, n)
	} else {
		s.nodes = s.nodes[:n]
		clear(s.nodes)
	}
	for i := range s.nodes {
		s.nodes[i].parent = -1
		s.nodes[i].index = -1
	}
	s.open.items = s.open.items[:0]
	s.open.scores = s
	s.seq = 0
}

// G returns the recorded g cost for a cell index.
func (s *Scores) G(idx int) int {
	if idx < 0 || idx >= len(s.nodes) {
		return 0
	}
	return s.nodes[idx].g
}

// SearchStats summarises a finished search.
type SearchStats struct {
	Expanded int
	Reached  bool
	Length   int
}

// Observer receives stats for every search a Pathfinder runs.
type Observer interface {
	ObserveSearch(SearchStats)
}

// Pathfinder runs 8-way A* searches. A Pathfinder reuses its scratch between
// calls and must not be shared by concurrent searches; FindPath allocates a
// private one per call.
type Pathfinder struct {
	// StrictRelaxation switches already-open updates to textbook A*. The
	// default keeps the legacy rule that reparents an open neighbour when
	// its g is lower than the expanding cell's g.
	StrictRelaxation bool
	Observer         Observer

	scores    Scores
	neighbors []*Cell
}

// FindPath searches from start to dest with a fresh scratch.
func FindPath(start, dest *Cell, g *Grid) Path {
	var pf Pathfinder
	return pf.Find(start, dest, g)
}

// Find searches from start to dest. An unreachable destination yields an
// empty path; start == dest yields a single-cell path.
func (pf *Pathfinder) Find(start, dest *Cell, g *Grid) Path {
	stats := SearchStats{}
	path := pf.search(start, dest, g, &stats)
	stats.Length = path.Len()
	stats.Reached = path.Len() > 0
	if pf.Observer != nil {
		pf.Observer.ObserveSearch(stats)
	}
	return path
}

func (pf *Pathfinder) search(start, dest *Cell, g *Grid, stats *SearchStats) Path {
	if g == nil {
		return Path{}
	}
	startIdx := g.Index(start)
	destIdx := g.Index(dest)
	if startIdx < 0 || destIdx < 0 {
		return Path{}
	}

	s := &pf.scores
	s.Reset(g.Len())

	first := &s.nodes[startIdx]
	first.h = Heuristic(g.at(startIdx), g.at(destIdx))
	first.f = first.h
	s.push(startIdx)

	for s.open.Len() > 0 {
		curIdx := heap.Pop(&s.open).(int)
		cur := &s.nodes[curIdx]
		cur.state = nodeClosed
		stats.Expanded++
		if curIdx == destIdx {
			break
		}

		curCell := g.at(curIdx)
		pf.neighbors = g.appendNeighbors(pf.neighbors[:0], curCell)
		for _, n := range pf.neighbors {
			if !n.Traversable {
				continue
			}
			nIdx := n.Row*g.cols + n.Col
			node := &s.nodes[nIdx]
			step := StepCost(curCell, n)
			switch node.state {
			case nodeClosed:
				continue
			case nodeUnseen:
				node.parent = curIdx
				node.g = cur.g + step
				node.h = Heuristic(n, g.at(destIdx))
				node.f = node.g + node.h
				s.push(nIdx)
			case nodeOpen:
				if pf.StrictRelaxation {
					if cur.g+step >= node.g {
						continue
					}
				} else if node.g >= cur.g {
					continue
				}
				node.parent = curIdx
				node.g = cur.g + step
				node.f = node.g + node.h
				heap.Fix(&s.open, node.index)
			}
		}
	}

	if s.nodes[destIdx].state != nodeClosed {
		return Path{}
	}
	return reconstructPath(g, s, startIdx, destIdx)
}

func reconstructPath(g *Grid, s *Scores, startIdx, destIdx int) Path {
	idxs := make([]int, 0, 32)
	for cur := destIdx; cur != -1; cur = s.nodes[cur].parent {
		idxs = append(idxs, cur)
		if cur == startIdx {
			break
		}
	}
	for i, j := 0, len(idxs)-1; i < j; i, j = i+1, j-1 {
		idxs[i], idxs[j] = idxs[j], idxs[i]
	}

	path := Path{
		Cells: make([]*Cell, len(idxs)),
		G:     make([]int, len(idxs)),
	}
	total := 0
	for i, idx := range idxs {
		path.Cells[i] = g.at(idx)
		if i > 0 {
			total += StepCost(path.Cells[i-1], path.Cells[i])
		}
		path.G[i] = total
	}
	return path
}

func (s *Scores) push(idx int) {
	node := &s.nodes[idx]
	node.state = nodeOpen
	node.seq = s.seq
	s.seq++
	heap.Push(&s.open, idx)
}

// openSet orders cell indices by f, then by insertion order.
type openSet struct {
	items  []int
	scores *Scores
}

func (o openSet) Len() int { return len(o.items) }

func (o openSet) Less(i, j int) bool {
	a := &o.scores.nodes[o.items[i]]
	b := &o.scores.nodes[o.items[j]]
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

func (o openSet) Swap(i, j int) {
	o.items[i], o.items[j] = o.items[j], o.items[i]
	o.scores.nodes[o.items[i]].index = i
	o.scores.nodes[o.items[j]].index = j
}

func (o *openSet) Push(x any) {
	idx := x.(int)
	o.scores.nodes[idx].index = len(o.items)
	o.items = append(o.items, idx)
}

func (o *openSet) Pop() any {
	n := len(o.items)
	idx := o.items[n-1]
	o.items = o.items[:n-1]
	o.scores.nodes[idx].index = -1
	return idx
}
