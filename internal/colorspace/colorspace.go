// Package colorspace converts between CIE LUV coordinates and sRGB.
//
// The conversions are delegated to go-colorful using the D65 white point.
// LUV coordinates use the conventional scale: L from 0 to 100, and U and V
// roughly from -100 to +100 (go-colorful works on a 1/100 scale internally).
//
// # Out of Range Colours
//
// Not every LUV point has an sRGB counterpart. ToRGB always clips the result
// into [0,1] per channel and reports whether clipping was needed. Every
// caller in this module goes through ToRGB, so clipping is applied the same
// way everywhere.
package colorspace

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// LUV is a point in CIE 1976 L*u*v* space.
type LUV struct {
	L float64 `json:"l"` // Lightness, 0-100
	U float64 `json:"u"` // Red-green axis
	V float64 `json:"v"` // Yellow-blue axis
}

// Distance returns the Euclidean distance between two LUV points. It stays
// finite for finite points whose squared distance would overflow.
func (c LUV) Distance(o LUV) float64 {
	d := math.Sqrt(c.DistanceSq(o))
	if !math.IsInf(d, 1) {
		return d
	}
	dl, du, dv := math.Abs(c.L-o.L), math.Abs(c.U-o.U), math.Abs(c.V-o.V)
	m := max(dl, du, dv)
	if math.IsInf(m, 1) {
		return m
	}
	dl, du, dv = dl/m, du/m, dv/m
	return m * math.Sqrt(dl*dl+du*du+dv*dv)
}

// DistanceSq returns the squared Euclidean distance between two LUV points.
func (c LUV) DistanceSq(o LUV) float64 {
	dl, du, dv := c.L-o.L, c.U-o.U, c.V-o.V
	return dl*dl + du*du + dv*dv
}

// Lerp interpolates each axis independently as (1-t)*a + t*b. t = 0 returns
// a and t = 1 returns b exactly.
func Lerp(a, b LUV, t float64) LUV {
	s := 1 - t
	return LUV{
		L: s*a.L + t*b.L,
		U: s*a.U + t*b.U,
		V: s*a.V + t*b.V,
	}
}

// RGB is an sRGB colour with gamma encoded components in [0,1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// ToRGB converts an LUV point to sRGB. The result is clipped into [0,1];
// inGamut is false when clipping changed it.
func ToRGB(c LUV) (rgb RGB, inGamut bool) {
	col := colorful.Luv(c.L/100, c.U/100, c.V/100)
	inGamut = col.IsValid()
	col = col.Clamped()
	return RGB{R: col.R, G: col.G, B: col.B}, inGamut
}

// FromRGB converts an sRGB colour to LUV. Components are clipped into [0,1]
// first.
func FromRGB(rgb RGB) LUV {
	col := colorful.Color{R: rgb.R, G: rgb.G, B: rgb.B}.Clamped()
	l, u, v := col.Luv()
	return LUV{L: l * 100, U: u * 100, V: v * 100}
}

// FromRGB255 converts 8-bit sRGB components to LUV.
func FromRGB255(r, g, b uint8) LUV {
	return FromRGB(RGB{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255})
}

// RGBFromColor converts any color.Color to RGB, undoing alpha
// premultiplication. Fully transparent colours convert as black.
func RGBFromColor(c color.Color) RGB {
	col, _ := colorful.MakeColor(c)
	return RGB{R: col.R, G: col.G, B: col.B}
}

// FromColor converts any color.Color to LUV, ignoring alpha.
func FromColor(c color.Color) LUV {
	return FromRGB(RGBFromColor(c))
}

// RGB255 returns the colour as 8-bit components.
func (rgb RGB) RGB255() (r, g, b uint8) {
	return colorful.Color{R: rgb.R, G: rgb.G, B: rgb.B}.Clamped().RGB255()
}

// Color returns the colour as an opaque color.RGBA.
func (rgb RGB) Color() color.RGBA {
	r, g, b := rgb.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Hex formats the colour as "#RRGGBB".
func (rgb RGB) Hex() string {
	return strings.ToUpper(colorful.Color{R: rgb.R, G: rgb.G, B: rgb.B}.Clamped().Hex())
}

// ParseHex reads "#RRGGBB" or "#RGB"; the leading '#' is optional.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	col, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return RGB{R: col.R, G: col.G, B: col.B}, nil
}
