package palette

import (
	"fmt"

	"github.com/ironsheep/munsell-mcp/internal/munsell"
)

// OutOfGamutError reports a notation with no exact table entry when no
// correction was requested.
type OutOfGamutError struct {
	Notation munsell.Notation
}

func (e *OutOfGamutError) Error() string {
	return fmt.Sprintf("%s is out of gamut", e.Notation)
}

// NotInTableError reports a sequence endpoint that is not an exact table
// entry. Sequence endpoints are never corrected.
type NotInTableError struct {
	Notation munsell.Notation
}

func (e *NotInTableError) Error() string {
	return fmt.Sprintf("%s is not in the reference table", e.Notation)
}
