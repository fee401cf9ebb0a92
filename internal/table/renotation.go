package table

import (
	"math"

	"github.com/ironsheep/munsell-mcp/internal/colorspace"
	"github.com/ironsheep/munsell-mcp/internal/munsell"
)

// MaxChroma bounds the chroma search when synthesizing the table.
const MaxChroma = 40

// chromaScale is the LUV chroma (sqrt(u^2+v^2)) per Munsell chroma unit.
const chromaScale = 5.0

// familyAngles holds the LUV hue angle, in degrees, of the 5 hue of each
// family in circle order (5R, 5YR, ..., 5RP).
var familyAngles = [munsell.FamilyCount]float64{12, 45, 75, 105, 140, 190, 225, 260, 295, 335}

// valueY is the ASTM D1535 polynomial giving luminous reflectance Y (in
// percent, relative to MgO) for a Munsell value.
func valueY(v float64) float64 {
	return v * (1.1914 + v*(-0.22533+v*(0.23352+v*(-0.020484+v*0.00081939))))
}

// whiteY is valueY(10); value 10 maps to L* = 100.
var whiteY = valueY(10)

// Lightness returns CIE L* for a Munsell value. Values outside [0,10] are
// clamped.
func Lightness(value float64) float64 {
	v := math.Max(0, math.Min(10, value))
	y := valueY(v) / whiteY
	const eps = 216.0 / 24389.0
	const kappa = 24389.0 / 27.0
	if y <= eps {
		return kappa * y
	}
	return 116*math.Cbrt(y) - 16
}

// HueAngle returns the LUV hue angle in degrees, in [0,360), for a hue given
// as a continuous 40 step circle position (0 = 2.5R). Angles between the
// family anchors are interpolated linearly.
func HueAngle(position float64) float64 {
	// Anchors (the 5 hues) sit at positions 1, 5, 9, ...
	p := math.Mod(position-1, munsell.HueSteps)
	if p < 0 {
		p += munsell.HueSteps
	}
	seg := int(p / 4)
	frac := (p - float64(seg*4)) / 4

	a0 := familyAngles[seg]
	a1 := familyAngles[(seg+1)%munsell.FamilyCount]
	if a1 < a0 {
		a1 += 360
	}
	return math.Mod(a0+(a1-a0)*frac, 360)
}

// huePosition maps any chromatic notation, standard hue or not, to a
// continuous position on the 40 step circle.
func huePosition(n munsell.Notation) float64 {
	return float64(n.Family)*4 + n.HueNumber/2.5 - 1
}

// Estimate returns the LUV coordinate the renotation model assigns to n. It
// accepts any notation, including ones with no table entry: value is clamped
// to [0,10] and a negative chroma is treated as 0 (grey).
//
// The built-in table is generated with this model, so for built-in entries
// Estimate(e.Notation) == e.Coord.
func Estimate(n munsell.Notation) colorspace.LUV {
	l := Lightness(n.Value)
	if n.IsNeutral() || n.Chroma <= 0 {
		return colorspace.LUV{L: l}
	}
	rad := HueAngle(huePosition(n)) * math.Pi / 180
	c := float64(n.Chroma) * chromaScale
	return colorspace.LUV{L: l, U: c * math.Cos(rad), V: c * math.Sin(rad)}
}

// Synthesize generates the built-in table entries:
//   - neutrals N 0/0 to N 10/0 first
//   - then, for each of the 40 standard hues and each value 1 to 9, chroma
//     2, 4, ... for as long as the colour stays inside sRGB
//
// The chroma run for a hue/value pair stops at the first colour that falls
// outside sRGB, so every chroma listed for a pair is realizable.
func Synthesize() []Entry {
	entries := make([]Entry, 0, 4096)

	for v := 0; v <= 10; v++ {
		n := munsell.New(0, munsell.Neutral, float64(v), 0)
		entries = append(entries, Entry{Notation: n, Coord: Estimate(n)})
	}

	for h := 0; h < munsell.HueSteps; h++ {
		for v := 1; v <= 9; v++ {
			for c := munsell.ChromaStep; c <= MaxChroma; c += munsell.ChromaStep {
				n := munsell.FromHueIndex(h, float64(v), c)
				luv := Estimate(n)
				if _, ok := colorspace.ToRGB(luv); !ok {
					break
				}
				entries = append(entries, Entry{Notation: n, Coord: luv})
			}
		}
	}
	return entries
}
