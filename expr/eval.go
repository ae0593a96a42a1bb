package expr

import "math"

// Eval returns the value of e at x.
func Eval(e Expression, x float64) float64 {
	return e.Eval(x)
}

// Eval returns Coefficient * x^Exponent using real exponentiation.
func (m Monomial) Eval(x float64) float64 {
	return m.Coefficient * math.Pow(x, m.Exponent)
}

// Eval returns Coefficient * x^Exponent.
func (l Literal) Eval(x float64) float64 { return l.Monomial.Eval(x) }

// Eval returns Left(x) + Right(x).
func (s Sum) Eval(x float64) float64 { return s.Left.Eval(x) + s.Right.Eval(x) }

// Eval returns Left(x) * Right(x).
func (p Product) Eval(x float64) float64 { return p.Left.Eval(x) * p.Right.Eval(x) }
