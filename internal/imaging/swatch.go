package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/munsell-mcp/internal/colorspace"
)

// MaxSwatchCells bounds the number of colours in one swatch.
const MaxSwatchCells = 1024

// SwatchResult is a rendered swatch image.
type SwatchResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Columns     int    `json:"columns"`
	Rows        int    `json:"rows"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Swatch renders colours as a grid of square cells, left to right then top
// to bottom, on a white background, and returns it as base64 PNG.
//
// cell is the edge length of each square in pixels. columns <= 0 puts every
// colour on one row.
func Swatch(colors []colorspace.RGB, cell, columns int) (*SwatchResult, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("swatch needs at least one colour")
	}
	if len(colors) > MaxSwatchCells {
		return nil, fmt.Errorf("swatch limited to %d colours, got %d", MaxSwatchCells, len(colors))
	}
	if cell <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %d", cell)
	}
	if columns <= 0 || columns > len(colors) {
		columns = len(colors)
	}
	rows := (len(colors) + columns - 1) / columns

	canvas := imaging.New(columns*cell, rows*cell, color.White)
	for i, c := range colors {
		x, y := (i%columns)*cell, (i/columns)*cell
		r := image.Rect(x, y, x+cell, y+cell)
		draw.Draw(canvas, r, image.NewUniform(c.Color()), image.Point{}, draw.Src)
	}

	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode swatch: %w", err)
	}

	return &SwatchResult{
		Width:       canvas.Bounds().Dx(),
		Height:      canvas.Bounds().Dy(),
		Columns:     columns,
		Rows:        rows,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
