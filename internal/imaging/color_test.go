package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/munsell-mcp/internal/colorspace"
	"github.com/ironsheep/munsell-mcp/internal/munsell"
)

// lightnessMatcher maps a coordinate to the neutral with the nearest value,
// which keeps these tests independent of the reference table contents.
type lightnessMatcher struct{}

func (lightnessMatcher) Nearest(c colorspace.LUV) munsell.Notation {
	v := float64(int(c.L/10 + 0.5))
	return munsell.New(0, munsell.Neutral, v, 0)
}

// quadrantImage is black on the left half and white on the right half.
func quadrantImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func TestSampleMunsell(t *testing.T) {
	img := quadrantImage(20, 10)
	points := []LabeledPoint{
		{X: 0, Y: 0, Label: "left"},
		{X: 19, Y: 9, Label: "right"},
	}

	res, err := SampleMunsell(img, points, lightnessMatcher{})
	if err != nil {
		t.Fatalf("SampleMunsell failed: %v", err)
	}
	if len(res.Samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(res.Samples))
	}

	tests := []struct {
		label, hex, notation string
	}{
		{"left", "#000000", "N 0/0"},
		{"right", "#FFFFFF", "N 10/0"},
	}
	for i, tt := range tests {
		s := res.Samples[i]
		if s.Label != tt.label || s.Hex != tt.hex || s.Notation != tt.notation {
			t.Errorf("sample %d: got %+v, want label=%s hex=%s notation=%s", i, s, tt.label, tt.hex, tt.notation)
		}
	}
}

func TestSampleMunsell_OutOfBounds(t *testing.T) {
	img := quadrantImage(10, 10)
	for _, p := range []LabeledPoint{{X: -1, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}} {
		if _, err := SampleMunsell(img, []LabeledPoint{p}, lightnessMatcher{}); err == nil {
			t.Errorf("point (%d,%d) should be rejected", p.X, p.Y)
		}
	}
}

func TestSampleMunsell_Empty(t *testing.T) {
	res, err := SampleMunsell(quadrantImage(4, 4), nil, lightnessMatcher{})
	if err != nil || len(res.Samples) != 0 {
		t.Errorf("no points: got %v, %v", res, err)
	}
}

func TestDominantMunsell(t *testing.T) {
	img := quadrantImage(40, 10)
	// Make a quarter of the white half mid grey.
	for y := 0; y < 10; y++ {
		for x := 30; x < 40; x++ {
			img.Set(x, y, color.Gray{Y: 119})
		}
	}

	res, err := DominantMunsell(img, 5, nil, lightnessMatcher{})
	if err != nil {
		t.Fatalf("DominantMunsell failed: %v", err)
	}
	if res.PixelsTotal != 400 {
		t.Errorf("PixelsTotal: got %d, want 400", res.PixelsTotal)
	}
	if len(res.Colors) != 3 {
		t.Fatalf("got %d colours, want 3: %+v", len(res.Colors), res.Colors)
	}
	if res.Colors[0].Notation != "N 0/0" || res.Colors[0].Percentage != 50 {
		t.Errorf("first colour: got %+v, want N 0/0 at 50%%", res.Colors[0])
	}
	// 25% white and 25% grey tie; lexical order breaks it.
	if res.Colors[1].Percentage != 25 || res.Colors[2].Percentage != 25 {
		t.Errorf("remaining shares: got %+v", res.Colors[1:])
	}
	if res.Colors[1].Notation > res.Colors[2].Notation {
		t.Errorf("equal shares should be ordered by notation: %+v", res.Colors[1:])
	}

	top, err := DominantMunsell(img, 1, nil, lightnessMatcher{})
	if err != nil || len(top.Colors) != 1 {
		t.Errorf("count=1: got %+v, %v", top, err)
	}
}

func TestDominantMunsell_Region(t *testing.T) {
	img := quadrantImage(20, 10)
	res, err := DominantMunsell(img, 3, &Region{X1: 10, Y1: 0, X2: 20, Y2: 10}, lightnessMatcher{})
	if err != nil {
		t.Fatalf("DominantMunsell failed: %v", err)
	}
	if len(res.Colors) != 1 || res.Colors[0].Notation != "N 10/0" || res.Colors[0].Percentage != 100 {
		t.Errorf("right half: got %+v", res.Colors)
	}
	if res.PixelsTotal != 100 {
		t.Errorf("PixelsTotal: got %d, want 100", res.PixelsTotal)
	}
}

func TestDominantMunsell_Errors(t *testing.T) {
	img := quadrantImage(20, 10)
	tests := []struct {
		name   string
		count  int
		region *Region
	}{
		{"zero count", 0, nil},
		{"empty region", 3, &Region{X1: 5, Y1: 5, X2: 5, Y2: 8}},
		{"region outside", 3, &Region{X1: 10, Y1: 0, X2: 30, Y2: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DominantMunsell(img, tt.count, tt.region, lightnessMatcher{}); err == nil {
				t.Error("DominantMunsell should fail")
			}
		})
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   uint8
		want uint8
	}{
		{0, 0}, {8, 0}, {9, 17}, {255, 255}, {247, 255}, {128, 136},
	}
	for _, tt := range tests {
		if got := quantize(uint32(tt.in) * 0x101); got != tt.want {
			t.Errorf("quantize(%d): got %d, want %d", tt.in, got, tt.want)
		}
	}
}
