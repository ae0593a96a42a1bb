package expr

import (
	"strconv"
	"strings"
)

// Parse parses s into an expression tree. It returns ErrEmptyInput for
// blank input and a *MalformedNumberError for the first coefficient or
// exponent that fails to parse.
func Parse(s string) (Expression, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrEmptyInput
	}
	return parse(s)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Expression {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

func parse(s string) (Expression, error) {
	if left, right, ok := strings.Cut(s, "+"); ok {
		l, r, err := parsePair(left, right)
		if err != nil {
			return nil, err
		}
		return Sum{Left: l, Right: r}, nil
	}
	if left, right, ok := strings.Cut(s, "*"); ok {
		l, r, err := parsePair(left, right)
		if err != nil {
			return nil, err
		}
		return Product{Left: l, Right: r}, nil
	}
	m, err := ParseMonomial(s)
	if err != nil {
		return nil, err
	}
	return Literal{m}, nil
}

// parsePair parses both operands, stopping at the first error so the
// right half is never looked at when the left one is malformed.
func parsePair(left, right string) (Expression, Expression, error) {
	l, err := parse(left)
	if err != nil {
		return nil, nil, err
	}
	r, err := parse(right)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

// ParseMonomial parses a single term of the form "c", "x", "cx" or "cx^p".
//
// The coefficient is the text before the first 'x' and defaults to 1.
// The exponent is the text after "x^" and defaults to 1; without an 'x'
// it is 0. Spaces may surround the '^'. Anything after an 'x' not
// followed by '^' is ignored.
func ParseMonomial(s string) (Monomial, error) {
	before, after, hasX := strings.Cut(s, "x")
	if !hasX {
		c, err := parseNumber(s)
		if err != nil {
			return Monomial{}, err
		}
		return Monomial{Coefficient: c, Exponent: 0}, nil
	}

	m := Monomial{Coefficient: 1, Exponent: 1}
	if strings.TrimSpace(before) != "" {
		c, err := parseNumber(before)
		if err != nil {
			return Monomial{}, err
		}
		m.Coefficient = c
	}
	if exp, ok := strings.CutPrefix(strings.TrimLeft(after, " \t"), "^"); ok {
		p, err := parseNumber(exp)
		if err != nil {
			return Monomial{}, err
		}
		m.Exponent = p
	}
	return m, nil
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &MalformedNumberError{Text: s, Err: err}
	}
	return v, nil
}
