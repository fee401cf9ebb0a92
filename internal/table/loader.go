package table

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/munsell-mcp/internal/colorspace"
	"github.com/ironsheep/munsell-mcp/internal/munsell"
)

// yamlTable is the on-disk form of an external reference table:
//
//	entries:
//	  - notation: "5R 4/14"
//	    luv: [41.2, 120.3, 25.7]
type yamlTable struct {
	Entries []yamlEntry `yaml:"entries"`
}

type yamlEntry struct {
	Notation string    `yaml:"notation"`
	LUV      []float64 `yaml:"luv"`
}

// LoadYAML reads a reference table from YAML. Entry order in the document is
// the table order.
func LoadYAML(r io.Reader) (*Table, error) {
	var doc yamlTable
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode table: %w", err)
	}

	entries := make([]Entry, 0, len(doc.Entries))
	for i, e := range doc.Entries {
		n, err := munsell.Parse(e.Notation)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if len(e.LUV) != 3 {
			return nil, fmt.Errorf("entry %d (%s): luv needs 3 components, got %d", i, n, len(e.LUV))
		}
		entries = append(entries, Entry{
			Notation: n,
			Coord:    colorspace.LUV{L: e.LUV[0], U: e.LUV[1], V: e.LUV[2]},
		})
	}
	return New(entries)
}

// LoadFile reads a YAML reference table from path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer f.Close()

	t, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteYAML writes entries in the format LoadYAML reads.
func WriteYAML(w io.Writer, t *Table) error {
	doc := yamlTable{Entries: make([]yamlEntry, t.Len())}
	for i, e := range t.entries {
		doc.Entries[i] = yamlEntry{
			Notation: e.Notation.String(),
			LUV:      []float64{e.Coord.L, e.Coord.U, e.Coord.V},
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	return enc.Close()
}
