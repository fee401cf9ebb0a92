package munsell

import "math"

// HueSteps is the number of standard hues on the circle (10 families x 4).
const HueSteps = 40

// hueSpacing is the hue number distance between standard hues.
const hueSpacing = 2.5

// HueIndex returns the position of the notation's hue on the 40 step circle.
// ok is false for neutral notations and for hue numbers that are not a
// multiple of 2.5.
func (n Notation) HueIndex() (index int, ok bool) {
	if n.Family == Neutral || n.Family < Red || n.Family > RedPurple {
		return 0, false
	}
	q := n.HueNumber / hueSpacing
	if q != math.Trunc(q) || q < 1 || q > 4 {
		return 0, false
	}
	return int(n.Family)*4 + int(q) - 1, true
}

// FromHueIndex builds the notation with the standard hue at index (taken
// modulo 40) and the given value and chroma.
func FromHueIndex(index int, value float64, chroma int) Notation {
	i := ((index % HueSteps) + HueSteps) % HueSteps
	return New(float64(i%4+1)*hueSpacing, Family(i/4), value, chroma)
}

// Hues returns the names of the 40 standard hues in circle order, starting
// at 2.5R.
func Hues() []string {
	out := make([]string, HueSteps)
	for i := range out {
		out[i] = FromHueIndex(i, 0, 0).Hue()
	}
	return out
}

// Complement returns the antipodal hue with value and chroma unchanged. For
// standard hues this is index (h+20) mod 40. Neutral notations are their own
// complement.
func (n Notation) Complement() Notation {
	if n.Family == Neutral {
		return n
	}
	n.Family = (n.Family + FamilyCount/2) % FamilyCount
	return n
}

// RotateHue moves the hue by steps positions on the 40 step circle. Positive
// steps go R towards YR (clockwise on the usual wheel), negative steps go
// the other way. Neutral notations are returned unchanged.
//
// Returns *FormatError when the hue is not one of the 40 standard hues.
func (n Notation) RotateHue(steps int) (Notation, error) {
	if n.Family == Neutral {
		return n, nil
	}
	h, ok := n.HueIndex()
	if !ok {
		return Notation{}, formatErr(n.String(), "hue is not on the 2.5 step circle")
	}
	return FromHueIndex(h+steps, n.Value, n.Chroma), nil
}
