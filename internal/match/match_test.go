package match

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ironsheep/munsell-mcp/internal/colorspace"
	"github.com/ironsheep/munsell-mcp/internal/table"
)

func randomCoords(rng *rand.Rand, n int) []colorspace.LUV {
	out := make([]colorspace.LUV, n)
	for i := range out {
		out[i] = colorspace.LUV{
			L: rng.Float64() * 100,
			U: rng.Float64()*300 - 120,
			V: rng.Float64()*260 - 140,
		}
	}
	return out
}

func TestLinear_Nearest(t *testing.T) {
	coords := []colorspace.LUV{{L: 0, U: 0, V: 0}, {L: 10, U: 0, V: 0}, {L: 20, U: 0, V: 0}}
	l := NewLinear(coords)

	tests := []struct {
		name string
		q    colorspace.LUV
		want int
	}{
		{"exact first", colorspace.LUV{L: 0, U: 0, V: 0}, 0},
		{"near second", colorspace.LUV{L: 9, U: 1, V: 0}, 1},
		{"beyond last", colorspace.LUV{L: 90, U: 0, V: 0}, 2},
		{"tie goes to lower index", colorspace.LUV{L: 5, U: 0, V: 0}, 0},
		{"tie between 1 and 2", colorspace.LUV{L: 15, U: 0, V: 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := l.Nearest(tt.q)
			if got != tt.want {
				t.Errorf("Nearest(%v): got %d, want %d", tt.q, got, tt.want)
			}
		})
	}
}

func TestIndex_Empty(t *testing.T) {
	ix := NewIndex(nil, 0)
	if i, d := ix.Nearest(colorspace.LUV{L: 50, U: 0, V: 0}); i != -1 || !math.IsInf(d, 1) {
		t.Errorf("empty index: got (%d, %f), want (-1, +Inf)", i, d)
	}
	if i, _ := NewLinear(nil).Nearest(colorspace.LUV{}); i != -1 {
		t.Errorf("empty linear: got %d, want -1", i)
	}
}

func TestIndex_MatchesLinear(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	coords := randomCoords(rng, 2000)
	lin := NewLinear(coords)

	for _, cell := range []float64{0, 3, 8, 25} {
		ix := NewIndex(coords, cell)
		for q := 0; q < 500; q++ {
			query := colorspace.LUV{
				L: rng.Float64()*140 - 20,
				U: rng.Float64()*400 - 200,
				V: rng.Float64()*400 - 200,
			}
			wi, wd := lin.Nearest(query)
			gi, gd := ix.Nearest(query)
			if gi != wi || gd != wd {
				t.Fatalf("cell %v query %v: index (%d, %f), linear (%d, %f)", cell, query, gi, gd, wi, wd)
			}
		}
	}
}

func TestIndex_FarQuery(t *testing.T) {
	coords := []colorspace.LUV{{L: 10, U: 10, V: 10}, {L: 90, U: -50, V: 40}}
	ix := NewIndex(coords, 8)
	if i, _ := ix.Nearest(colorspace.LUV{L: 1e6, U: 0, V: 0}); i != 1 {
		t.Errorf("far query: got %d, want 1", i)
	}
	if i, _ := ix.Nearest(colorspace.LUV{L: -1e6, U: 0, V: 0}); i != 0 {
		t.Errorf("far negative query: got %d, want 0", i)
	}
}

func TestIndex_ExtremeQuery(t *testing.T) {
	coords := table.Builtin().Coords()
	ix := NewIndex(coords, DefaultCellSize)
	lin := NewLinear(coords)

	var queries []colorspace.LUV
	for _, x := range []float64{1e20, -1e20, 1e300, -1e300} {
		queries = append(queries,
			colorspace.LUV{L: x},
			colorspace.LUV{L: 50, U: x},
			colorspace.LUV{L: 50, V: x},
			colorspace.LUV{L: x, U: x, V: -x},
		)
	}
	queries = append(queries, colorspace.LUV{L: math.NaN()})

	for _, q := range queries {
		wi, _ := lin.Nearest(q)
		gi, _ := ix.Nearest(q)
		if gi < 0 || gi != wi {
			t.Errorf("query %v: index %d, linear %d", q, gi, wi)
		}
	}
}

func TestIndex_TieBreakAcrossCells(t *testing.T) {
	// Two points equidistant from the query but in different cells; the
	// higher cell is visited first, the lower table index must still win.
	coords := []colorspace.LUV{{L: 0, U: -4, V: 0}, {L: 0, U: 4, V: 0}, {L: 0, U: 100, V: 0}}
	ix := NewIndex(coords, 3)
	for i := 0; i < 10; i++ {
		if got, _ := ix.Nearest(colorspace.LUV{L: 0, U: 0, V: 0}); got != 0 {
			t.Fatalf("tie break: got %d, want 0", got)
		}
	}

	dup := []colorspace.LUV{{L: 50, U: 1, V: 1}, {L: 20, U: 0, V: 0}, {L: 50, U: 1, V: 1}}
	if got, _ := NewIndex(dup, 8).Nearest(colorspace.LUV{L: 50, U: 1, V: 1}); got != 0 {
		t.Errorf("duplicate coordinate: got %d, want 0", got)
	}
}

func TestIndex_BuiltinTable(t *testing.T) {
	tbl := table.Builtin()
	coords := tbl.Coords()
	ix := NewIndex(coords, DefaultCellSize)
	lin := NewLinear(coords)

	for i, c := range coords {
		got, d := ix.Nearest(c)
		if got != i || d != 0 {
			t.Fatalf("entry %d (%s): nearest to own coordinate is %d at %f", i, tbl.At(i).Notation, got, d)
		}
	}

	rng := rand.New(rand.NewSource(11))
	for q := 0; q < 300; q++ {
		rgb := colorspace.RGB{R: rng.Float64(), G: rng.Float64(), B: rng.Float64()}
		query := colorspace.FromRGB(rgb)
		wi, _ := lin.Nearest(query)
		gi, _ := ix.Nearest(query)
		if gi != wi {
			t.Fatalf("query %v: index %d, linear %d", query, gi, wi)
		}
	}
}

func TestMatcher_Interface(t *testing.T) {
	var _ Matcher = (*Index)(nil)
	var _ Matcher = (*Linear)(nil)
}
