package munsell

// ChromaStep is the chroma distance between neighbouring table entries.
const ChromaStep = 2

// Lighter raises value by steps. No range or gamut check is made.
func (n Notation) Lighter(steps int) Notation {
	n.Value += float64(steps)
	return n
}

// Darker lowers value by steps. No range or gamut check is made.
func (n Notation) Darker(steps int) Notation {
	return n.Lighter(-steps)
}

// Saturate raises chroma by 2 per step.
func (n Notation) Saturate(steps int) Notation {
	n.Chroma += ChromaStep * steps
	return n
}

// Desaturate lowers chroma by 2 per step. A negative result is kept as is so
// the caller can see it; it never matches a table entry.
func (n Notation) Desaturate(steps int) Notation {
	return n.Saturate(-steps)
}

// Lighter applies Notation.Lighter to every element, preserving order.
// steps = 1 is the standard one value step.
func Lighter(ns []Notation, steps int) []Notation {
	return apply(ns, func(n Notation) Notation { return n.Lighter(steps) })
}

// Darker applies Notation.Darker to every element, preserving order.
func Darker(ns []Notation, steps int) []Notation {
	return apply(ns, func(n Notation) Notation { return n.Darker(steps) })
}

// Saturate applies Notation.Saturate to every element, preserving order.
func Saturate(ns []Notation, steps int) []Notation {
	return apply(ns, func(n Notation) Notation { return n.Saturate(steps) })
}

// Desaturate applies Notation.Desaturate to every element, preserving order.
func Desaturate(ns []Notation, steps int) []Notation {
	return apply(ns, func(n Notation) Notation { return n.Desaturate(steps) })
}

// TextColour returns "black" or "white", whichever reads better on top of n.
// Values above 4 take black text.
func TextColour(n Notation) string {
	if n.Value > 4 {
		return "black"
	}
	return "white"
}

func apply(ns []Notation, f func(Notation) Notation) []Notation {
	out := make([]Notation, len(ns))
	for i, n := range ns {
		out[i] = f(n)
	}
	return out
}
