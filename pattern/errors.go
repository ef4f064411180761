package pattern

import (
	"fmt"

	"github.com/hueristiq/hq-go-urlpattern/tokenizer"
)

// ExpectedTokenError is returned when a required token is missing.
type ExpectedTokenError struct {
	Expected tokenizer.Kind
	Got      tokenizer.Kind
	GotValue string
}

func (e *ExpectedTokenError) Error() string {
	return fmt.Sprintf("pattern: expected token %s, found %q of type %s", e.Expected, e.GotValue, e.Got)
}

// DuplicateNameError is returned when two non-FixedText parts in the same
// component share a name.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("pattern: contains duplicate name %s", e.Name)
}
