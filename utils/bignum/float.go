// Package bignum implements extended-precision reference arithmetic used to
// bound the error of float64 computations.
package bignum

import (
	"fmt"
	"math/big"
)

// DefaultPrec is the precision in bits of the reference computations.
const DefaultPrec = 256

// NewFloat creates a new big.Float element with "prec" bits of precision.
// Valid types for x are: int, int64, uint64, float64, *big.Int or *big.Float.
func NewFloat(x interface{}, prec uint) (y *big.Float) {

	y = new(big.Float)
	y.SetPrec(prec)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case int:
		y.SetInt64(int64(x))
	case int64:
		y.SetInt64(x)
	case uint64:
		y.SetUint64(x)
	case float64:
		y.SetFloat64(x)
	case *big.Int:
		y.SetInt(x)
	case *big.Float:
		y.Set(x)
	default:
		panic(fmt.Errorf("invalid x.(type): valid types are int, int64, uint64, float64, *big.Int or *big.Float but is %T", x))
	}

	return
}

// Horner evaluates sum coeffs[i] * x^i with prec bits of precision.
// The coefficients are taken as exact binary values.
func Horner(coeffs []float64, x float64, prec uint) (y *big.Float) {
	y = NewFloat(nil, prec)
	bx := NewFloat(x, prec)
	for i := len(coeffs) - 1; i >= 0; i-- {
		y.Mul(y, bx)
		y.Add(y, NewFloat(coeffs[i], prec))
	}
	return
}

// AbsError returns |want - got| as a float64.
func AbsError(want *big.Float, got float64) float64 {
	d := NewFloat(got, want.Prec())
	d.Sub(d, want)
	f, _ := d.Abs(d).Float64()
	return f
}

// Scale returns max(1, |x|), the magnitude against which AbsError is compared.
func Scale(x *big.Float) float64 {
	f, _ := new(big.Float).Abs(x).Float64()
	if f < 1 {
		return 1
	}
	return f
}
