// Package match finds the reference entry closest to an arbitrary LUV point.
//
// Distance is Euclidean in (L,U,V). When several entries are equally close
// (within TieEpsilon of the minimum) the one with the lowest table index wins,
// so a query always returns the same entry regardless of how the search
// visits candidates.
//
// Index buckets the coordinates into a uniform grid and searches outward ring
// by ring, which on a table of a few thousand entries inspects a small
// fraction of them. Linear is the exhaustive scan; both return identical
// results and Linear exists as the reference the index is tested against.
//
// Both types are read-only after construction and safe for concurrent use.
package match

import (
	"math"

	"github.com/ironsheep/munsell-mcp/internal/colorspace"
)

// TieEpsilon is the distance tolerance under which two candidates count as
// equally close.
const TieEpsilon = 1e-9

// DefaultCellSize is the grid cell edge, in LUV units, used by NewIndex when
// the cell size given is not positive.
const DefaultCellSize = 8.0

// Matcher finds the nearest reference coordinate.
type Matcher interface {
	// Nearest returns the index of the closest coordinate and its distance.
	Nearest(c colorspace.LUV) (index int, distance float64)
}

// candidate accumulates the search result. It tracks the true minimum and,
// separately, the lowest index whose distance is within TieEpsilon of it.
type candidate struct {
	best float64
	hits []hit
}

type hit struct {
	index int
	dist  float64
}

func newCandidate() *candidate {
	return &candidate{best: math.Inf(1)}
}

func (c *candidate) offer(index int, dist float64) {
	if dist > c.best+TieEpsilon {
		return
	}
	if dist < c.best {
		c.best = dist
	}
	c.hits = append(c.hits, hit{index: index, dist: dist})
}

// resolve picks the lowest index among hits within TieEpsilon of the minimum.
func (c *candidate) resolve() (int, float64) {
	bestIdx, bestDist := -1, math.Inf(1)
	for _, h := range c.hits {
		if h.dist > c.best+TieEpsilon {
			continue
		}
		if bestIdx < 0 || h.index < bestIdx {
			bestIdx, bestDist = h.index, h.dist
		}
	}
	return bestIdx, bestDist
}

// Linear is an exhaustive nearest-match over a coordinate list.
type Linear struct {
	coords []colorspace.LUV
}

// NewLinear builds a Linear matcher. The slice is copied.
func NewLinear(coords []colorspace.LUV) *Linear {
	l := &Linear{coords: make([]colorspace.LUV, len(coords))}
	copy(l.coords, coords)
	return l
}

// Nearest scans every coordinate. It returns -1 for an empty matcher.
func (l *Linear) Nearest(c colorspace.LUV) (int, float64) {
	cand := newCandidate()
	for i, p := range l.coords {
		cand.offer(i, c.Distance(p))
	}
	return cand.resolve()
}
