// Package expr parses and evaluates the restricted polynomial expressions
// that ggcurve plots.
//
// # Grammar
//
// An expression is a chain of monomials joined by '+' and '*'. There are
// no parentheses, no subtraction and no division. Parsing is a left scan
// that splits on the first operator it finds:
//
//  1. If the text contains '+', it is split at the first '+' and both
//     halves are parsed recursively into a [Sum].
//  2. Otherwise, if it contains '*', it is split at the first '*' into a
//     [Product].
//  3. Otherwise the text is a single [Monomial]: "c", "x", "cx" or
//     "cx^p".
//
// Because '+' is tried first it binds looser than '*', so "1+2*3" is
// 1 + (2*3). Chains of the same operator group to the right: "1+2+3" is
// 1 + (2+3), which gives the same value.
//
// Numbers follow Go's floating-point literal syntax, so coefficients and
// exponents may be negative, fractional or written with an exponent
// ("-0.5x^1.5", "2e3x"). An exponent written with an explicit '+' sign
// ("1e+3") is split as an addition.
//
// # Evaluation
//
// [Eval] never fails. Domain problems such as a negative base raised to a
// fractional power follow IEEE-754 rules and yield NaN or ±Inf.
package expr
