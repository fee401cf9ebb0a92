// Package table holds the Munsell reference table: the fixed, ordered set of
// notations known to be realizable, each paired with its LUV coordinate.
//
// A Table is immutable once built. The built-in table is synthesized on first
// use by Builtin and shared by the whole process; external tables can be read
// from YAML with LoadYAML or LoadFile. Entry order is part of the contract:
// nearest-match ties resolve to the lowest index.
package table

import (
	"fmt"
	"sync"

	"github.com/ironsheep/munsell-mcp/internal/colorspace"
	"github.com/ironsheep/munsell-mcp/internal/munsell"
)

// Entry pairs a notation with its LUV coordinate.
type Entry struct {
	Notation munsell.Notation `json:"notation"`
	Coord    colorspace.LUV   `json:"luv"`
}

// Table is an immutable, ordered set of entries indexed by notation.
//
// Table is safe for concurrent use; none of its methods modify it.
type Table struct {
	entries []Entry
	index   map[munsell.Notation]int
}

// New builds a table from entries, keeping their order. The slice is copied.
//
// Returns an error if entries is empty or a notation appears twice.
func New(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("reference table is empty")
	}

	t := &Table{
		entries: make([]Entry, len(entries)),
		index:   make(map[munsell.Notation]int, len(entries)),
	}
	copy(t.entries, entries)

	for i, e := range t.entries {
		if prev, dup := t.index[e.Notation]; dup {
			return nil, fmt.Errorf("duplicate notation %s at entries %d and %d", e.Notation, prev, i)
		}
		t.index[e.Notation] = i
	}
	return t, nil
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// At returns the entry at position i. It panics if i is out of range.
func (t *Table) At(i int) Entry {
	return t.entries[i]
}

// Lookup returns the entry for an exact notation.
func (t *Table) Lookup(n munsell.Notation) (Entry, bool) {
	i, ok := t.index[n]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// IndexOf returns the position of an exact notation.
func (t *Table) IndexOf(n munsell.Notation) (int, bool) {
	i, ok := t.index[n]
	return i, ok
}

// Contains reports whether n has an exact entry.
func (t *Table) Contains(n munsell.Notation) bool {
	_, ok := t.index[n]
	return ok
}

// Coords returns a copy of all coordinates in table order.
func (t *Table) Coords() []colorspace.LUV {
	out := make([]colorspace.LUV, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Coord
	}
	return out
}

// Entries returns a copy of all entries in table order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

var (
	builtin     *Table
	builtinOnce sync.Once
)

// Builtin returns the process-wide table synthesized from the renotation
// model. It is built once on first call.
func Builtin() *Table {
	builtinOnce.Do(func() {
		t, err := New(Synthesize())
		if err != nil {
			// Synthesize never produces duplicates or an empty set.
			panic(err)
		}
		builtin = t
	})
	return builtin
}
