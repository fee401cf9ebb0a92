package imaging

import (
	"fmt"
	"image"
	"sort"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/munsell-mcp/internal/colorspace"
	"github.com/ironsheep/munsell-mcp/internal/munsell"
)

// Matcher maps a colour coordinate to the nearest known notation.
// *palette.Engine satisfies it.
type Matcher interface {
	Nearest(c colorspace.LUV) munsell.Notation
}

// LabeledPoint is a pixel coordinate with an optional label.
type LabeledPoint struct {
	X     int
	Y     int
	Label string
}

// PixelNotation is the nearest notation for one sampled pixel.
type PixelNotation struct {
	Label    string         `json:"label,omitempty"`
	X        int            `json:"x"`
	Y        int            `json:"y"`
	Hex      string         `json:"hex"`      // Pixel colour "#RRGGBB", alpha ignored
	LUV      colorspace.LUV `json:"luv"`      // Pixel colour in LUV
	Notation string         `json:"notation"` // Nearest table notation
}

// SampleResult holds samples in input order.
type SampleResult struct {
	Samples []PixelNotation `json:"samples"`
}

// SampleMunsell finds the nearest notation for each point.
//
// Coordinates are 0-based from the top-left corner. Any point outside the
// image bounds fails the whole call; no partial result is returned.
func SampleMunsell(img image.Image, points []LabeledPoint, m Matcher) (*SampleResult, error) {
	bounds := img.Bounds()
	samples := make([]PixelNotation, 0, len(points))

	for _, p := range points {
		x, y := bounds.Min.X+p.X, bounds.Min.Y+p.Y
		if !(image.Point{X: x, Y: y}).In(bounds) {
			return nil, fmt.Errorf("point (%d,%d) outside image bounds %dx%d", p.X, p.Y, bounds.Dx(), bounds.Dy())
		}
		rgb := colorspace.RGBFromColor(img.At(x, y))
		luv := colorspace.FromRGB(rgb)

		samples = append(samples, PixelNotation{
			Label:    p.Label,
			X:        p.X,
			Y:        p.Y,
			Hex:      rgb.Hex(),
			LUV:      luv,
			Notation: m.Nearest(luv).String(),
		})
	}
	return &SampleResult{Samples: samples}, nil
}

// Region is a rectangle in image coordinates; (X1,Y1) inclusive, (X2,Y2)
// exclusive.
type Region struct {
	X1, Y1, X2, Y2 int
}

// NotationShare is one entry of an image palette.
type NotationShare struct {
	Notation   string  `json:"notation"`
	Percentage float64 `json:"percentage"` // Share of analysed pixels, 0-100
}

// PaletteResult lists notations by descending share.
type PaletteResult struct {
	Colors      []NotationShare `json:"colors"`
	PixelsTotal int             `json:"pixels_total"`
}

// DominantMunsell returns the count notations covering most pixels of img,
// or of region when it is non-nil.
//
// Pixels are quantized to 16 levels per channel before matching, so a
// large image needs at most 4096 nearest-match queries. Equal shares are
// ordered by notation text.
func DominantMunsell(img image.Image, count int, region *Region, m Matcher) (*PaletteResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	src := img
	if region != nil {
		b := img.Bounds()
		r := image.Rect(b.Min.X+region.X1, b.Min.Y+region.Y1, b.Min.X+region.X2, b.Min.Y+region.Y2)
		if r.Empty() || !r.In(b) {
			return nil, fmt.Errorf("region (%d,%d)-(%d,%d) empty or outside image bounds %dx%d",
				region.X1, region.Y1, region.X2, region.Y2, b.Dx(), b.Dy())
		}
		src = imaging.Crop(img, r)
	}

	bounds := src.Bounds()
	buckets := make(map[[3]uint8]int)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			buckets[[3]uint8{quantize(r), quantize(g), quantize(b)}]++
		}
	}
	total := bounds.Dx() * bounds.Dy()

	counts := make(map[munsell.Notation]int)
	for key, n := range buckets {
		counts[m.Nearest(colorspace.FromRGB255(key[0], key[1], key[2]))] += n
	}

	colors := make([]NotationShare, 0, len(counts))
	for n, c := range counts {
		colors = append(colors, NotationShare{
			Notation:   n.String(),
			Percentage: float64(c) / float64(total) * 100,
		})
	}
	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Notation < colors[j].Notation
	})
	if len(colors) > count {
		colors = colors[:count]
	}

	return &PaletteResult{Colors: colors, PixelsTotal: total}, nil
}

// quantize reduces a 16-bit channel to the nearest of the 16 levels
// 0x00, 0x11, ..., 0xFF.
func quantize(v uint32) uint8 {
	return uint8(((v>>8)+8)/17*17)
}
