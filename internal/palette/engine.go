// Package palette is the matching core: it validates notations against the
// reference table, corrects out-of-gamut ones, maps coordinates back to their
// nearest notation and generates interpolated sequences.
//
// An Engine wraps one immutable table and the nearest-match index built over
// it. Every method is a pure function of its arguments and the table, so an
// Engine is safe for concurrent use. Vectorized methods return one Result per
// input in input order; a failing element never aborts the batch. Callers who
// want all-or-nothing behaviour pass the results to Collect.
package palette

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/munsell-mcp/internal/colorspace"
	"github.com/ironsheep/munsell-mcp/internal/match"
	"github.com/ironsheep/munsell-mcp/internal/munsell"
	"github.com/ironsheep/munsell-mcp/internal/table"
)

// parallelThreshold is the batch size from which vectorized calls fan out
// over the worker pool.
const parallelThreshold = 256

// MaxSeqLength bounds the number of colours Seq generates.
const MaxSeqLength = 1024

// Estimator returns the coordinate a notation would have, whether or not the
// table lists it. It drives gamut correction.
type Estimator func(munsell.Notation) colorspace.LUV

// Engine answers gamut, matching and sequence queries over one table.
type Engine struct {
	table    *table.Table
	matcher  match.Matcher
	estimate Estimator
	workers  int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets how many goroutines large batches are split across.
// Values below 1 mean sequential processing.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithEstimator replaces the renotation model used for gamut correction.
func WithEstimator(f Estimator) Option {
	return func(e *Engine) { e.estimate = f }
}

// WithMatcher replaces the grid index, e.g. with match.NewLinear. The matcher
// must index the table's coordinates in table order.
func WithMatcher(m match.Matcher) Option {
	return func(e *Engine) { e.matcher = m }
}

// New builds an engine over t. By default it indexes t with a grid index,
// corrects with table.Estimate and processes batches sequentially.
func New(t *table.Table, opts ...Option) *Engine {
	e := &Engine{
		table:    t,
		estimate: table.Estimate,
		workers:  1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.matcher == nil {
		e.matcher = match.NewIndex(t.Coords(), match.DefaultCellSize)
	}
	return e
}

// Table returns the reference table the engine was built over.
func (e *Engine) Table() *table.Table {
	return e.table
}

// Result is the outcome for one element of a vectorized call. When Err is
// non-nil, Notation holds the input that failed.
type Result struct {
	Notation munsell.Notation
	Err      error
}

// OK reports whether the element succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Collect is the all-or-nothing view of a batch: it returns every notation
// when all elements succeeded, otherwise nil and the joined element errors.
func Collect(results []Result) ([]munsell.Notation, error) {
	var errs []error
	out := make([]munsell.Notation, len(results))
	for i, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, r.Err))
			continue
		}
		out[i] = r.Notation
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// Nearest returns the table notation closest to c in LUV space. Ties resolve
// to the lowest table index.
func (e *Engine) Nearest(c colorspace.LUV) munsell.Notation {
	i, _ := e.matcher.Nearest(c)
	return e.table.At(i).Notation
}

// NearestRGB returns the table notation closest to an sRGB colour.
func (e *Engine) NearestRGB(rgb colorspace.RGB) munsell.Notation {
	return e.Nearest(colorspace.FromRGB(rgb))
}

// NearestHex parses "#RRGGBB" and returns the closest table notation.
func (e *Engine) NearestHex(hex string) (munsell.Notation, error) {
	rgb, err := colorspace.ParseHex(hex)
	if err != nil {
		return munsell.Notation{}, err
	}
	return e.NearestRGB(rgb), nil
}

// Check validates a single notation. A notation with an exact entry is
// returned unchanged. Otherwise, with fix false it fails with
// *OutOfGamutError; with fix true the notation's estimated coordinate is
// resolved to the nearest entry.
func (e *Engine) Check(n munsell.Notation, fix bool) (munsell.Notation, error) {
	if e.table.Contains(n) {
		return n, nil
	}
	if !fix {
		return n, &OutOfGamutError{Notation: n}
	}
	return e.Nearest(e.estimate(n)), nil
}

// InGamut applies Check element-wise. With fix true every result succeeds
// and names a table entry.
func (e *Engine) InGamut(ns []munsell.Notation, fix bool) []Result {
	out := make([]Result, len(ns))
	e.each(len(ns), func(i int) {
		n, err := e.Check(ns[i], fix)
		out[i] = Result{Notation: n, Err: err}
	})
	return out
}

// Complement maps every notation to its antipodal hue, (h+20) mod 40 on the
// hue circle, keeping value and chroma, and validates the result with fix.
func (e *Engine) Complement(ns []munsell.Notation, fix bool) []Result {
	comp := make([]munsell.Notation, len(ns))
	for i, n := range ns {
		comp[i] = n.Complement()
	}
	return e.InGamut(comp, fix)
}

// RotateHue moves every hue by steps on the 40 step circle and validates the
// result with fix. Hues off the 2.5 grid fail with *munsell.FormatError.
func (e *Engine) RotateHue(ns []munsell.Notation, steps int, fix bool) []Result {
	out := make([]Result, len(ns))
	e.each(len(ns), func(i int) {
		rotated, err := ns[i].RotateHue(steps)
		if err != nil {
			out[i] = Result{Notation: ns[i], Err: err}
			return
		}
		n, err := e.Check(rotated, fix)
		out[i] = Result{Notation: n, Err: err}
	})
	return out
}

// Coord returns the coordinate of n after validation with fix.
func (e *Engine) Coord(n munsell.Notation, fix bool) (colorspace.LUV, munsell.Notation, error) {
	valid, err := e.Check(n, fix)
	if err != nil {
		return colorspace.LUV{}, n, err
	}
	entry, _ := e.table.Lookup(valid)
	return entry.Coord, valid, nil
}

// Hex returns the "#RRGGBB" form of n after validation with fix. Table
// coordinates outside sRGB are clipped.
func (e *Engine) Hex(n munsell.Notation, fix bool) (string, munsell.Notation, error) {
	c, valid, err := e.Coord(n, fix)
	if err != nil {
		return "", n, err
	}
	rgb, _ := colorspace.ToRGB(c)
	return rgb.Hex(), valid, nil
}

// Seq returns n notations spaced evenly between from and to. Both endpoints
// must be exact table entries; they fail with *NotInTableError otherwise and
// are never corrected. Points are interpolated linearly on each LUV axis and
// resolved with Nearest, so adjacent duplicates are possible.
func (e *Engine) Seq(from, to munsell.Notation, n int) ([]munsell.Notation, error) {
	if n < 2 {
		return nil, fmt.Errorf("sequence needs at least 2 colours, got %d", n)
	}
	if n > MaxSeqLength {
		return nil, fmt.Errorf("sequence limited to %d colours, got %d", MaxSeqLength, n)
	}
	a, ok := e.table.Lookup(from)
	if !ok {
		return nil, &NotInTableError{Notation: from}
	}
	b, ok := e.table.Lookup(to)
	if !ok {
		return nil, &NotInTableError{Notation: to}
	}

	out := make([]munsell.Notation, n)
	last := float64(n - 1)
	e.each(n, func(i int) {
		out[i] = e.Nearest(colorspace.Lerp(a.Coord, b.Coord, float64(i)/last))
	})
	// Endpoints are the inputs themselves even if another entry shares
	// their coordinate.
	out[0], out[n-1] = from, to
	return out, nil
}

// each runs f for every index in [0,n). Large batches are split into
// contiguous chunks across the worker pool; f must only write its own slot.
// Per-element failures travel in the slots f writes, so the group is only
// used for its limit and Wait always returns nil.
func (e *Engine) each(n int, f func(i int)) {
	if e.workers <= 1 || n < parallelThreshold {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(e.workers)
	chunk := (n + e.workers - 1) / e.workers
	for start := 0; start < n; start += chunk {
		start, end := start, min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				f(i)
			}
			return nil
		})
	}
	_ = g.Wait()
}
