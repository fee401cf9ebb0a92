package munsell

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Notation
	}{
		{"5PB 2/4", Notation{HueNumber: 5, Family: PurpleBlue, Value: 2, Chroma: 4}},
		{"2.5YR 7/10", Notation{HueNumber: 2.5, Family: YellowRed, Value: 7, Chroma: 10}},
		{"10RP 5.5/2", Notation{HueNumber: 10, Family: RedPurple, Value: 5.5, Chroma: 2}},
		{"N 5/0", Notation{Family: Neutral, Value: 5, Chroma: 0}},
		{"  7.5G 3/6  ", Notation{HueNumber: 7.5, Family: Green, Value: 3, Chroma: 6}},
		{"0YR 4/2", Notation{HueNumber: 10, Family: Red, Value: 4, Chroma: 2}},
		{"0R 4/2", Notation{HueNumber: 10, Family: RedPurple, Value: 4, Chroma: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q): got %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no space", "5PB2/4"},
		{"no slash", "5PB 2 4"},
		{"double space", "5PB  2/4"},
		{"extra slash", "5PB 2/4/6"},
		{"unknown family", "5Q 2/4"},
		{"lower case family", "5pb 2/4"},
		{"missing family", "5 2/4"},
		{"missing hue number", "PB 2/4"},
		{"hue number too big", "12R 2/4"},
		{"neutral with number", "5N 5/0"},
		{"value not numeric", "5PB x/4"},
		{"chroma not numeric", "5PB 2/four"},
		{"fractional chroma", "5PB 2/4.5"},
		{"infinite value", "5PB Inf/4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Parse(%q) error %T, want *FormatError", tt.input, err)
			}
			if fe.Input != tt.input {
				t.Errorf("FormatError.Input: got %q, want %q", fe.Input, tt.input)
			}
		})
	}
}

func TestString_RoundTrip(t *testing.T) {
	inputs := []string{"5PB 2/4", "2.5R 9/2", "10Y 8/14", "N 0/0", "N 10/0", "7.5BG 4.5/6", "5R 2/-2"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			n := MustParse(in)
			if got := n.String(); got != in {
				t.Errorf("String(): got %q, want %q", got, in)
			}
			back, err := Parse(n.String())
			if err != nil {
				t.Fatalf("Parse(String()) failed: %v", err)
			}
			if back != n {
				t.Errorf("round trip: got %+v, want %+v", back, n)
			}
		})
	}
}

func TestString_AllStandardHues(t *testing.T) {
	for i := 0; i < HueSteps; i++ {
		for value := 0; value <= 10; value++ {
			n := FromHueIndex(i, float64(value), 2*value)
			back, err := Parse(n.String())
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", n, err)
			}
			if back != n {
				t.Fatalf("round trip %q: got %+v, want %+v", n, back, n)
			}
		}
	}
}

func TestParseAll(t *testing.T) {
	got, err := ParseAll([]string{"5R 4/14", "bogus", "N 3/0"})
	if err == nil {
		t.Fatal("ParseAll should report the malformed element")
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("ParseAll error should wrap *FormatError, got %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ParseAll: got %d results, want 3", len(got))
	}
	want := []Notation{MustParse("5R 4/14"), {}, MustParse("N 3/0")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseAll mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalText(t *testing.T) {
	var n Notation
	if err := n.UnmarshalText([]byte("5Y 8/12")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if n != MustParse("5Y 8/12") {
		t.Errorf("UnmarshalText: got %v", n)
	}
	if err := n.UnmarshalText([]byte("nope")); err == nil {
		t.Error("UnmarshalText should reject malformed text")
	}
}

func TestFamily_String(t *testing.T) {
	if PurpleBlue.String() != "PB" {
		t.Errorf("PurpleBlue: got %s", PurpleBlue)
	}
	if Neutral.String() != "N" {
		t.Errorf("Neutral: got %s", Neutral)
	}
	if got := Family(42).String(); got != "Family(42)" {
		t.Errorf("out of range family: got %s", got)
	}
}
