package polynomial

import (
	"fmt"
	"math"
	"strings"

	"github.com/tuneinsight/polyrange/utils/errs"
	"golang.org/x/exp/slices"
)

// item is an operand of a flat expression, followed by the operator
// combining it with the next item. The last item of an expression has op 0.
type item struct {
	p     Polynomial
	op    byte
	pos   int
	opPos int
}

type parser struct {
	text     string
	variable byte
}

// Parse reads a polynomial in the given variable from text, e.g.
// "-x + 1.34x^2 + 1/50x^3 + 344(x+2)^2 + 2*-1".
//
// The grammar accepts the binary operators + - * / ^, a single unary sign in
// front of an operand, parenthesized sub-expressions, unsigned decimal
// literals and the variable letter. A literal directly followed by the
// variable, or an operand directly followed by '(', is an implicit product.
// Exponents and divisors must be constant, and exponents non-negative
// integers. The operators bind from ^ (tightest) to * and / to + and -, all
// left associative. A unary sign binds to its operand before ^, so "-x^2"
// is (-x)^2.
//
// Malformed text returns an error wrapping a *errs.ParseError that locates
// the offending character. A variable that is not an ASCII letter or a blank
// text returns an error wrapping errs.InvalidArgument.
func Parse(text string, variable byte) (Polynomial, error) {

	if !isLetter(variable) {
		return Polynomial{}, fmt.Errorf("cannot Parse: %w", errs.Errorf(errs.InvalidArgument, "variable %q should be a letter", variable))
	}

	if strings.Trim(text, " ") == "" {
		return Polynomial{}, fmt.Errorf("cannot Parse: %w", errs.Errorf(errs.InvalidArgument, "parsing empty string"))
	}

	ps := &parser{text: text, variable: variable}

	p, err := ps.parse(0, len(text))
	if err != nil {
		return Polynomial{}, fmt.Errorf("cannot Parse: %w", err)
	}

	return p, nil
}

// MustParse is Parse, panicking on error.
func MustParse(text string, variable byte) Polynomial {
	p, err := Parse(text, variable)
	if err != nil {
		panic(err)
	}
	return p
}

func (ps *parser) errorAt(reason string, pos int) error {
	return errs.NewParseError(reason, ps.text, pos)
}

// parse reads the expression spanning text[begin:end].
func (ps *parser) parse(begin, end int) (Polynomial, error) {

	var items []item
	var sign float64
	var signPos int
	var err error

	// operand returns the position of the operand starting at i, including its sign.
	operand := func(i int) int {
		if sign != 0 {
			return signPos
		}
		return i
	}

	for i := begin; i < end; i++ {

		switch c := ps.text[i]; {
		case c == ' ':

		case c == '+' || c == '-':
			if sign != 0 {
				return Polynomial{}, ps.errorAt("unexpected symbol", i)
			}
			sign, signPos = 1, i
			if c == '-' {
				sign = -1
			}

		case c == '(':
			closing, ok := ps.matching(i, end)
			if !ok {
				return Polynomial{}, ps.errorAt("parentheses not closed", i)
			}

			if strings.Trim(ps.text[i+1:closing], " ") == "" {
				return Polynomial{}, ps.errorAt("empty parentheses not allowed", i)
			}

			it := item{pos: operand(i)}
			if it.p, err = ps.parse(i+1, closing); err != nil {
				return Polynomial{}, err
			}

			if sign < 0 {
				it.p = it.p.Neg()
			}

			if it.op, it.opPos, i, err = ps.nextOp(closing, end); err != nil {
				return Polynomial{}, err
			}

			items = append(items, it)
			sign = 0

		case c == '*' || c == '/' || c == ')' || c == '^':
			return Polynomial{}, ps.errorAt("unexpected symbol", i)

		case c == ps.variable:
			it := item{pos: operand(i), p: NewMonomial(1, 1)}
			if sign < 0 {
				it.p = NewMonomial(-1, 1)
			}

			if it.op, it.opPos, i, err = ps.nextOp(i, end); err != nil {
				return Polynomial{}, err
			}

			items = append(items, it)
			sign = 0

		case isDigit(c) || c == '.':
			it := item{pos: operand(i)}
			if it.p, i, err = ps.literal(i, end); err != nil {
				return Polynomial{}, err
			}

			if sign < 0 {
				it.p = it.p.Neg()
			}

			j := i
			for j+1 < end && ps.text[j+1] == ' ' {
				j++
			}

			if j+1 < end && ps.text[j+1] == ps.variable {
				it.op, it.opPos, i = '*', j+1, j
			} else if it.op, it.opPos, i, err = ps.nextOp(i, end); err != nil {
				return Polynomial{}, err
			}

			items = append(items, it)
			sign = 0

		default:
			return Polynomial{}, ps.errorAt("unrecognized symbol", i)
		}
	}

	if sign != 0 {
		return Polynomial{}, ps.errorAt("expect an operand", signPos)
	}

	if len(items) == 0 {
		return Polynomial{}, ps.errorAt("expect an operand", begin)
	}

	if last := items[len(items)-1]; last.op != 0 {
		return Polynomial{}, ps.errorAt("expect an operand", last.opPos)
	}

	return ps.reduce(items)
}

// matching returns the position of the parenthesis closing the one at open.
func (ps *parser) matching(open, end int) (int, bool) {
	var depth int
	for i := open; i < end; i++ {
		switch ps.text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// nextOp reads the operator following the operand ending at i. It returns the
// operator, its position and the position of the last consumed character.
// The operator is 0 at the end of the span.
func (ps *parser) nextOp(i, end int) (op byte, opPos, last int, err error) {

	for i+1 < end && ps.text[i+1] == ' ' {
		i++
	}

	if i+1 >= end {
		return 0, 0, i, nil
	}

	switch c := ps.text[i+1]; c {
	case '+', '-', '*', '/', '^':
		if i+2 >= end {
			return 0, 0, i, ps.errorAt("expect an operand", i+1)
		}
		return c, i + 1, i + 1, nil
	case '(':
		return '*', i + 1, i, nil
	default:
		return 0, 0, i, ps.errorAt("expect an operator", i+1)
	}
}

// literal reads the unsigned decimal number starting at begin and returns it
// with the position of its last character.
func (ps *parser) literal(begin, end int) (p Polynomial, last int, err error) {

	point := -1
	i := begin
	for ; i < end && (isDigit(ps.text[i]) || ps.text[i] == '.'); i++ {
		if ps.text[i] == '.' {
			if point != -1 {
				return Polynomial{}, i, ps.errorAt("unexpected symbol", i)
			}
			point = i
		}
	}

	if point != -1 && i-begin == 1 {
		return Polynomial{}, begin, ps.errorAt("unexpected symbol", begin)
	}

	return New(decimal(ps.text[begin:i])), i - 1, nil
}

// decimal converts digits with at most one '.' by accumulating them as an
// integer, then scaling by 0.1 raised to the number of fractional digits.
// Too many digits overflow to +Inf.
func decimal(s string) float64 {

	var v float64
	var frac int
	point := false

	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			point = true
			continue
		}
		// The explicit conversion rounds the product, forbidding a fused multiply-add.
		v = float64(v*10) + float64(s[i]-'0')
		if point {
			frac++
		}
	}

	if math.IsInf(v, 0) {
		return v
	}

	return v * math.Pow(0.1, float64(frac))
}

// reduce folds items by operator precedence.
func (ps *parser) reduce(items []item) (Polynomial, error) {

	fold := func(i int, p Polynomial) []item {
		p.Shrink()
		items[i].p = p
		items[i].op, items[i].opPos = items[i+1].op, items[i+1].opPos
		return slices.Delete(items, i+1, i+2)
	}

	for i := 0; i < len(items); {

		if items[i].op != '^' {
			i++
			continue
		}

		rhs := items[i+1]

		if !rhs.p.IsConstant() {
			return Polynomial{}, ps.errorAt("variable in exponent not supported", rhs.pos)
		}

		e := rhs.p.Coeff(0)

		switch {
		case math.IsNaN(e) || math.IsInf(e, 0) || e != math.Trunc(e):
			return Polynomial{}, ps.errorAt("exponent can only be an integer", rhs.pos)
		case e < 0:
			return Polynomial{}, ps.errorAt("exponent can only be non-negative", rhs.pos)
		case e > math.MaxInt32:
			return Polynomial{}, ps.errorAt("exponent out of range", rhs.pos)
		}

		p, err := items[i].p.Pow(int(e))
		if err != nil {
			return Polynomial{}, err
		}

		items = fold(i, p)
	}

	for i := 0; i < len(items); {
		switch items[i].op {
		case '*':
			items = fold(i, items[i].p.Mul(items[i+1].p))
		case '/':
			rhs := items[i+1]
			if !rhs.p.IsConstant() {
				return Polynomial{}, ps.errorAt("variable in denominator not supported", rhs.pos)
			}
			items = fold(i, items[i].p.DivScalar(rhs.p.Coeff(0)))
		default:
			i++
		}
	}

	for i := 0; i < len(items); {
		switch items[i].op {
		case '+':
			items = fold(i, items[i].p.Add(items[i+1].p))
		case '-':
			items = fold(i, items[i].p.Sub(items[i+1].p))
		default:
			i++
		}
	}

	if len(items) != 1 {
		panic(fmt.Errorf("cannot Parse: %w", errs.Errorf(errs.Internal, "%d items left after reduction of %q", len(items), ps.text)))
	}

	p := items[0].p
	p.Shrink()
	return p, nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
