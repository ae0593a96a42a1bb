package expr

import "strconv"

// Monomial is the term Coefficient * x^Exponent.
type Monomial struct {
	Coefficient float64
	Exponent    float64
}

// String formats the monomial as "cx^p".
func (m Monomial) String() string {
	return formatFloat(m.Coefficient) + "x^" + formatFloat(m.Exponent)
}

// Expression is a node of a parsed expression tree: a [Literal], a [Sum]
// or a [Product]. Trees are never shared or mutated after parsing, so an
// Expression may be evaluated from many goroutines at once.
type Expression interface {
	// Eval returns the value of the expression at x.
	Eval(x float64) float64

	// String returns a structural rendering of the tree, for example
	// "Sum(Literal(1x^0), Literal(2x^1))".
	String() string

	node()
}

// Literal is a leaf holding a single monomial.
type Literal struct {
	Monomial
}

// Sum adds its two operands.
type Sum struct {
	Left, Right Expression
}

// Product multiplies its two operands.
type Product struct {
	Left, Right Expression
}

func (Literal) node() {}
func (Sum) node()     {}
func (Product) node() {}

func (l Literal) String() string { return "Literal(" + l.Monomial.String() + ")" }
func (s Sum) String() string     { return "Sum(" + s.Left.String() + ", " + s.Right.String() + ")" }
func (p Product) String() string {
	return "Product(" + p.Left.String() + ", " + p.Right.String() + ")"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
