// Package polynomial implements dense single-variable polynomials with real
// coefficients, their algebra, a textual parser and a binary codec.
package polynomial

import (
	"fmt"

	"github.com/tuneinsight/polyrange/utils/errs"
	"golang.org/x/exp/slices"
)

// Polynomial is a polynomial with float64 coefficients. The i-th coefficient
// is the coefficient of x^i. The zero value is the zero polynomial.
//
// Polynomial has value semantics: no method modifies the coefficients of
// its receiver, except Shrink which only truncates them.
type Polynomial struct {
	coeffs []float64
}

// New returns the polynomial coeffs[0] + coeffs[1]x + coeffs[2]x^2 + ...
func New(coeffs ...float64) Polynomial {
	return Polynomial{coeffs: slices.Clone(coeffs)}
}

// NewMonomial returns c * x^e.
func NewMonomial(c float64, e int) Polynomial {
	return Polynomial{}.AddTerm(c, e)
}

// One returns the constant polynomial 1.
func One() Polynomial {
	return New(1)
}

// AddTerm returns a copy of p with c added to the coefficient of x^e.
// The copy is extended with zero coefficients if e is beyond the degree of p.
// It panics if e is negative.
func (p Polynomial) AddTerm(c float64, e int) Polynomial {
	if e < 0 {
		panic(fmt.Errorf("cannot AddTerm: %w", errs.Errorf(errs.InvalidArgument, "exponent %d is negative", e)))
	}

	n := len(p.coeffs)
	if e >= n {
		n = e + 1
	}

	coeffs := make([]float64, n)
	copy(coeffs, p.coeffs)
	coeffs[e] += c

	return Polynomial{coeffs: coeffs}
}

// Coeff returns the coefficient of x^e.
func (p Polynomial) Coeff(e int) float64 {
	if e < 0 || e >= len(p.coeffs) {
		return 0
	}
	return p.coeffs[e]
}

// Coeffs returns a copy of the coefficients of p, in ascending order of
// exponent, trailing zeros included.
func (p Polynomial) Coeffs() []float64 {
	return slices.Clone(p.coeffs)
}

// Degree returns the exponent of the highest non-zero term, or -1 for the
// zero polynomial.
func (p Polynomial) Degree() int {
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		if p.coeffs[i] != 0 {
			return i
		}
	}
	return -1
}

// IsZero returns true if all the coefficients of p are zero.
func (p Polynomial) IsZero() bool {
	return p.Degree() == -1
}

// IsConstant returns true if p has no term of positive degree.
func (p Polynomial) IsConstant() bool {
	return p.Degree() <= 0
}

// Evaluate returns p(x). Terms are accumulated in ascending order of exponent.
func (p Polynomial) Evaluate(x float64) (y float64) {
	power := 1.0
	for _, c := range p.coeffs {
		y += power * c
		power *= x
	}
	return
}

// Substitute returns the composition p(q).
func (p Polynomial) Substitute(q Polynomial) (r Polynomial) {
	powq := One()
	for _, c := range p.coeffs {
		r = r.Add(powq.MulScalar(c))
		powq = powq.Mul(q)
	}
	return
}

// Add returns p + q.
func (p Polynomial) Add(q Polynomial) Polynomial {
	return p.combine(q, 1)
}

// Sub returns p - q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	return p.combine(q, -1)
}

func (p Polynomial) combine(q Polynomial, sign float64) Polynomial {
	coeffs := make([]float64, max(len(p.coeffs), len(q.coeffs)))
	copy(coeffs, p.coeffs)
	for i, c := range q.coeffs {
		coeffs[i] += sign * c
	}
	return Polynomial{coeffs: coeffs}
}

// Mul returns p * q.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	if len(p.coeffs) == 0 || len(q.coeffs) == 0 {
		return Polynomial{}
	}
	coeffs := make([]float64, len(p.coeffs)+len(q.coeffs)-1)
	for i, a := range p.coeffs {
		for j, b := range q.coeffs {
			coeffs[i+j] += a * b
		}
	}
	return Polynomial{coeffs: coeffs}
}

// MulScalar returns c * p.
func (p Polynomial) MulScalar(c float64) Polynomial {
	coeffs := make([]float64, len(p.coeffs))
	for i := range coeffs {
		coeffs[i] = p.coeffs[i] * c
	}
	return Polynomial{coeffs: coeffs}
}

// DivScalar returns p / c. Division by zero follows IEEE-754.
func (p Polynomial) DivScalar(c float64) Polynomial {
	coeffs := make([]float64, len(p.coeffs))
	for i := range coeffs {
		coeffs[i] = p.coeffs[i] / c
	}
	return Polynomial{coeffs: coeffs}
}

// Neg returns -p.
func (p Polynomial) Neg() Polynomial {
	coeffs := make([]float64, len(p.coeffs))
	for i := range coeffs {
		coeffs[i] = -p.coeffs[i]
	}
	return Polynomial{coeffs: coeffs}
}

// Pow returns p^n. It returns an error if n is negative.
func (p Polynomial) Pow(n int) (Polynomial, error) {

	if n < 0 {
		return Polynomial{}, fmt.Errorf("cannot Pow: %w", errs.Errorf(errs.InvalidArgument, "exponent %d is negative", n))
	}

	if n == 0 {
		return One(), nil
	}

	// acc holds p, the n-1 remaining factors are multiplied in by
	// square-and-multiply over the bits of n-1.
	acc, base := p, p
	for e := n - 1; e > 0; e >>= 1 {
		if e&1 == 1 {
			acc = acc.Mul(base)
		}
		if e > 1 {
			base = base.Mul(base)
		}
	}

	return Polynomial{coeffs: slices.Clone(acc.coeffs)}, nil
}

// Shrink removes the trailing zero coefficients of p.
func (p *Polynomial) Shrink() {
	p.coeffs = p.coeffs[:p.Degree()+1]
}

// Equal returns true if p and q have the same coefficients, missing
// coefficients being zero.
func (p Polynomial) Equal(q Polynomial) bool {
	n := max(len(p.coeffs), len(q.coeffs))
	for i := 0; i < n; i++ {
		if p.Coeff(i) != q.Coeff(i) {
			return false
		}
	}
	return true
}
