package munsell

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Family is a Munsell hue family. The ten chromatic families are declared in
// hue circle order; Neutral is the grey axis and sits outside the circle.
type Family int

const (
	Red Family = iota
	YellowRed
	Yellow
	GreenYellow
	Green
	BlueGreen
	Blue
	PurpleBlue
	Purple
	RedPurple
	Neutral
)

// FamilyCount is the number of chromatic families on the hue circle.
const FamilyCount = 10

var familyNames = [...]string{"R", "YR", "Y", "GY", "G", "BG", "B", "PB", "P", "RP", "N"}

// String returns the family letters used in notation, e.g. "PB".
func (f Family) String() string {
	if f < Red || f > Neutral {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return familyNames[f]
}

// ParseFamily converts family letters ("R", "YR", ..., "N") to a Family.
func ParseFamily(s string) (Family, error) {
	for i, name := range familyNames {
		if s == name {
			return Family(i), nil
		}
	}
	return 0, fmt.Errorf("unknown hue family %q", s)
}

// Notation is a parsed Munsell colour.
//
// The zero value is not a meaningful colour; build notations with New or
// Parse so that the hue number is canonical.
type Notation struct {
	HueNumber float64 // Position inside the family, canonical range (0,10]; 0 for Neutral
	Family    Family  // Hue family
	Value     float64 // Lightness, 0 (black) to 10 (white)
	Chroma    int     // Saturation, even and non-negative for realizable colours
}

// New builds a notation and normalizes its hue. A hue number of 0 becomes 10
// of the previous family, so New(0, YellowRed, ...) is 10R. Neutral notations
// always carry hue number 0.
func New(hueNumber float64, family Family, value float64, chroma int) Notation {
	if value == 0 {
		value = 0 // drop negative zero
	}
	if family == Neutral {
		return Notation{Family: Neutral, Value: value, Chroma: chroma}
	}
	if hueNumber == 0 {
		hueNumber = 10
		family = (family + FamilyCount - 1) % FamilyCount
	}
	return Notation{HueNumber: hueNumber, Family: family, Value: value, Chroma: chroma}
}

// Parse reads a notation in the canonical layout "<hue><family> <value>/<chroma>",
// for example "5PB 2/4" or "N 5/0". Leading and trailing whitespace is ignored;
// inside the string the layout is strict.
//
// Parse checks structure only. A value above 10 or an odd chroma parses fine
// and is simply absent from any reference table. Chroma must be an integer.
//
// # Errors
//
// Returns *FormatError when:
//   - the hue/value space or the value/chroma slash is missing
//   - the hue family is unknown or the hue number is outside 0-10
//   - value is not a finite number or chroma is not an integer
func Parse(s string) (Notation, error) {
	text := strings.TrimSpace(s)

	hue, rest, ok := strings.Cut(text, " ")
	if !ok {
		return Notation{}, formatErr(s, "missing space between hue and value")
	}
	valueText, chromaText, ok := strings.Cut(rest, "/")
	if !ok {
		return Notation{}, formatErr(s, "missing '/' between value and chroma")
	}
	if strings.ContainsAny(valueText, " /") || strings.ContainsAny(chromaText, " /") {
		return Notation{}, formatErr(s, "unexpected separator")
	}

	number, family, err := parseHue(s, hue)
	if err != nil {
		return Notation{}, err
	}

	value, err := strconv.ParseFloat(valueText, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return Notation{}, formatErr(s, "value %q is not a number", valueText)
	}

	chroma, err := strconv.Atoi(chromaText)
	if err != nil {
		return Notation{}, formatErr(s, "chroma %q is not an integer", chromaText)
	}

	return New(number, family, value, chroma), nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Notation {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// ParseAll parses every string. The returned slice always has one entry per
// input; entries that failed are zero Notations and their errors are joined
// into the returned error in input order.
func ParseAll(texts []string) ([]Notation, error) {
	out := make([]Notation, len(texts))
	var errs []error
	for i, t := range texts {
		n, err := Parse(t)
		if err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		out[i] = n
	}
	return out, errors.Join(errs...)
}

func parseHue(input, hue string) (float64, Family, error) {
	i := strings.IndexFunc(hue, unicode.IsLetter)
	if i < 0 {
		return 0, 0, formatErr(input, "missing hue family")
	}
	family, err := ParseFamily(hue[i:])
	if err != nil {
		return 0, 0, formatErr(input, "%v", err)
	}

	numberText := hue[:i]
	if family == Neutral {
		if numberText != "" {
			return 0, 0, formatErr(input, "neutral hue takes no number")
		}
		return 0, Neutral, nil
	}
	if numberText == "" {
		return 0, 0, formatErr(input, "missing hue number")
	}
	number, err := strconv.ParseFloat(numberText, 64)
	if err != nil || number < 0 || number > 10 {
		return 0, 0, formatErr(input, "hue number %q outside 0-10", numberText)
	}
	return number, family, nil
}

// Hue returns the hue part of the notation, e.g. "5PB" or "N".
func (n Notation) Hue() string {
	if n.Family == Neutral {
		return Neutral.String()
	}
	return formatNumber(n.HueNumber) + n.Family.String()
}

// String formats the notation in canonical layout. Parse(n.String()) == n for
// any notation built by New or Parse.
func (n Notation) String() string {
	return fmt.Sprintf("%s %s/%d", n.Hue(), formatNumber(n.Value), n.Chroma)
}

// MarshalText implements encoding.TextMarshaler.
func (n Notation) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Notation) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// IsNeutral reports whether the notation lies on the grey axis.
func (n Notation) IsNeutral() bool {
	return n.Family == Neutral
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
