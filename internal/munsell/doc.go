// Package munsell models colours written in Munsell notation.
//
// A notation names a colour by hue, value (lightness) and chroma (saturation),
// for example "5PB 2/4". This package parses and formats that text form into
// a typed Notation and implements the pure arithmetic on it: value and chroma
// steps, hue rotation and the hue circle complement. Nothing here knows which
// notations are physically realizable; that question belongs to the reference
// table and the palette engine.
//
// # Text Form
//
// The canonical layout is:
//
//	<hue number><family> <value>/<chroma>
//
// with exactly one space between the hue and the value. Neutral greys use the
// family letter alone: "N 5/0".
//
// # Hue Circle
//
// The ten families in circle order are R, YR, Y, GY, G, BG, B, PB, P and RP.
// Each family is split into four standard hues (2.5, 5, 7.5 and 10), giving a
// 40 step circle:
//   - index 0 is 2.5R, index 1 is 5R, index 3 is 10R
//   - index 4 is 2.5YR and so on up to index 39, 10RP
//
// A hue number of 0 is not canonical. 0YR is the same hue as 10R and is
// normalized to it when parsed or constructed.
//
// # Thread Safety
//
// Notation is a small comparable value type. All functions in this package
// are pure and safe for concurrent use.
package munsell
