package expr

import (
	"errors"
	"strconv"
)

var (
	// ErrEmptyInput is returned when there is no expression to parse.
	ErrEmptyInput = errors.New("expr: empty expression")

	// ErrMalformedNumber matches every *MalformedNumberError via errors.Is.
	ErrMalformedNumber = errors.New("expr: malformed number")
)

// MalformedNumberError reports a coefficient or exponent that is not a
// valid floating-point literal.
type MalformedNumberError struct {
	// Text is the offending substring, exactly as it appeared in the input.
	Text string
	// Err is the underlying strconv error.
	Err error
}

func (e *MalformedNumberError) Error() string {
	msg := "expr: malformed number " + strconv.Quote(e.Text)
	var ne *strconv.NumError
	switch {
	case errors.As(e.Err, &ne):
		msg += ": " + ne.Err.Error()
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is ErrMalformedNumber.
func (e *MalformedNumberError) Is(target error) bool {
	return target == ErrMalformedNumber
}

func (e *MalformedNumberError) Unwrap() error { return e.Err }
