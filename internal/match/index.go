package match

import (
	"math"

	"github.com/ironsheep/munsell-mcp/internal/colorspace"
)

type cellKey [3]int

// Index is a grid-bucketed nearest-match structure over LUV coordinates.
//
// Each coordinate is filed under the cube of edge cellSize containing it.
// A query starts at its own cube and widens one ring of cubes at a time; it
// stops once every unvisited cube is provably farther than the best match.
type Index struct {
	cell   float64
	coords []colorspace.LUV
	cells  map[cellKey][]int
	lo, hi cellKey
}

// NewIndex builds an index over coords, keeping their order as the tie-break
// order. A non-positive cellSize selects DefaultCellSize. The slice is copied.
func NewIndex(coords []colorspace.LUV, cellSize float64) *Index {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	ix := &Index{
		cell:   cellSize,
		coords: make([]colorspace.LUV, len(coords)),
		cells:  make(map[cellKey][]int),
	}
	copy(ix.coords, coords)

	for i, c := range ix.coords {
		k := ix.key(c)
		ix.cells[k] = append(ix.cells[k], i)
		if i == 0 {
			ix.lo, ix.hi = k, k
			continue
		}
		for a := 0; a < 3; a++ {
			ix.lo[a] = min(ix.lo[a], k[a])
			ix.hi[a] = max(ix.hi[a], k[a])
		}
	}
	return ix
}

// Len returns the number of indexed coordinates.
func (ix *Index) Len() int {
	return len(ix.coords)
}

// Nearest returns the index of the closest coordinate and its distance. It
// returns -1 for an empty index. The result equals Linear.Nearest over the
// same coordinates.
func (ix *Index) Nearest(c colorspace.LUV) (int, float64) {
	if len(ix.coords) == 0 {
		return -1, math.Inf(1)
	}

	// Cells more than one step outside the occupied box hold nothing, so the
	// query cell is clamped to the box grown by one. Ring distances from the
	// clamped cell never exceed the true ones, which keeps the stop rule
	// below valid, and far or huge queries can no longer overflow the key.
	q := ix.queryKey(c)
	first, last := 0, 0
	for a := 0; a < 3; a++ {
		// Rings closer than the occupied box are empty.
		if q[a] < ix.lo[a] {
			first = max(first, ix.lo[a]-q[a])
		} else if q[a] > ix.hi[a] {
			first = max(first, q[a]-ix.hi[a])
		}
		last = max(last, abs(q[a]-ix.lo[a]), abs(q[a]-ix.hi[a]))
	}

	cand := newCandidate()
	for r := first; r <= last; r++ {
		ix.visitRing(q, r, func(i int) {
			cand.offer(i, c.Distance(ix.coords[i]))
		})
		// Every coordinate in ring r+1 or beyond is more than r cells away.
		if cand.best+TieEpsilon <= float64(r)*ix.cell {
			break
		}
	}
	return cand.resolve()
}

// maxCell bounds cell keys of indexed coordinates so the float to int
// conversion stays defined.
const maxCell = 1 << 40

func (ix *Index) key(c colorspace.LUV) cellKey {
	return cellKey{
		cellOf(c.L/ix.cell, -maxCell, maxCell),
		cellOf(c.U/ix.cell, -maxCell, maxCell),
		cellOf(c.V/ix.cell, -maxCell, maxCell),
	}
}

func (ix *Index) queryKey(c colorspace.LUV) cellKey {
	return cellKey{
		cellOf(c.L/ix.cell, ix.lo[0]-1, ix.hi[0]+1),
		cellOf(c.U/ix.cell, ix.lo[1]-1, ix.hi[1]+1),
		cellOf(c.V/ix.cell, ix.lo[2]-1, ix.hi[2]+1),
	}
}

// cellOf returns floor(x) clamped to [lo, hi]. NaN maps to lo.
func cellOf(x float64, lo, hi int) int {
	f := math.Floor(x)
	switch {
	case math.IsNaN(f) || f <= float64(lo):
		return lo
	case f >= float64(hi):
		return hi
	default:
		return int(f)
	}
}

// visitRing calls visit for every coordinate in the cells at Chebyshev
// distance exactly r from q, restricted to the occupied box.
func (ix *Index) visitRing(q cellKey, r int, visit func(int)) {
	for l := max(q[0]-r, ix.lo[0]); l <= min(q[0]+r, ix.hi[0]); l++ {
		edgeL := l == q[0]-r || l == q[0]+r
		for u := max(q[1]-r, ix.lo[1]); u <= min(q[1]+r, ix.hi[1]); u++ {
			if edgeL || u == q[1]-r || u == q[1]+r {
				for v := max(q[2]-r, ix.lo[2]); v <= min(q[2]+r, ix.hi[2]); v++ {
					ix.visitCell(cellKey{l, u, v}, visit)
				}
				continue
			}
			ix.visitCell(cellKey{l, u, q[2] - r}, visit)
			ix.visitCell(cellKey{l, u, q[2] + r}, visit)
		}
	}
}

func (ix *Index) visitCell(k cellKey, visit func(int)) {
	for _, i := range ix.cells[k] {
		visit(i)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
