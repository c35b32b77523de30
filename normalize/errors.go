package normalize

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrEmptyCountry  = errors.New("empty country name")

	ErrInvalidDate     = errors.New("unparseable date")
	ErrNonNumericCount = errors.New("non-numeric count")
	ErrInvalidCount    = errors.New("count is not a nonnegative whole number")
)

// MalformedInputError reports a schema violation in the raw input. Row is the
// 1-based line of the source, zero when the problem is with the header.
type MalformedInputError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("malformed input: column %q: %s", e.Column, e.Err)
	}
	return fmt.Sprintf("malformed input: line %d column %q value %q: %s", e.Row, e.Column, e.Value, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}
