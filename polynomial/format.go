package polynomial

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// DefaultPrecision is the number of significant digits of the coefficients
// rendered by Format and String.
const DefaultPrecision = 6

// String renders p in the variable x, see Format.
func (p Polynomial) String() string {
	return p.Format("x")
}

// Format renders p in the given variable, in ascending order of exponent,
// e.g. "1-x+0.5x^2". Zero terms are omitted and unit coefficients of
// non-constant terms are collapsed. The zero polynomial renders as "0".
// Coefficients are rounded to DefaultPrecision significant digits.
func (p Polynomial) Format(variable string) string {
	return p.FormatPrec(variable, DefaultPrecision)
}

// FormatPrec is Format with coefficients rounded to prec significant digits.
// A negative prec renders each coefficient with the fewest fractional digits
// that Parse reads back exactly, or as a parenthesized fraction over a power
// of two when no decimal does, e.g. "(6034823500676465/2^52)*x". It also
// writes -1 coefficients out, so that Parse(p.FormatPrec(v, -1), v) is equal
// to p when p has finite coefficients.
func (p Polynomial) FormatPrec(variable string, prec int) string {

	var sb strings.Builder

	for i, c := range p.coeffs {

		if c == 0 {
			continue
		}

		if sb.Len() != 0 && !(c < 0) {
			sb.WriteByte('+')
		}

		if i == 0 {
			sb.WriteString(formatCoeff(c, prec))
			continue
		}

		switch {
		case c == 1:
		case c == -1 && prec >= 0:
			sb.WriteByte('-')
		default:
			s := formatCoeff(c, prec)
			sb.WriteString(s)
			if strings.HasSuffix(s, ")") {
				sb.WriteByte('*')
			}
		}

		sb.WriteString(variable)

		if i > 1 {
			sb.WriteByte('^')
			sb.WriteString(strconv.Itoa(i))
		}
	}

	if sb.Len() == 0 {
		return "0"
	}

	return sb.String()
}

func formatCoeff(c float64, prec int) string {
	switch {
	case math.IsNaN(c):
		return "nan"
	case math.IsInf(c, 1):
		return "inf"
	case math.IsInf(c, -1):
		return "-inf"
	case prec < 0:
		return formatExact(c)
	default:
		return strconv.FormatFloat(c, 'g', prec, 64)
	}
}

// maxFractionDigits bounds the fixed-point renderings tried by formatExact.
const maxFractionDigits = 17

// formatExact renders the finite c so that decimal, or Parse, reads it back
// exactly.
func formatExact(c float64) string {

	if c < 0 {
		return "-" + formatExact(-c)
	}

	for digits := 0; digits <= maxFractionDigits; digits++ {
		if s := strconv.FormatFloat(c, 'f', digits, 64); decimal(s) == c {
			return s
		}
	}

	// c = mant * 2^exp with mant < 2^53, so that both the literal and the
	// power of two are exact.
	frac, exp := math.Frexp(c)
	mant := uint64(math.Ldexp(frac, 53))
	exp -= 53

	if exp >= 0 {
		return fmt.Sprintf("(%d*2^%d)", mant, exp)
	}

	shift := min(bits.TrailingZeros64(mant), -exp)
	mant >>= shift
	exp += shift

	var sb strings.Builder
	sb.WriteString("(" + strconv.FormatUint(mant, 10))
	// 2^1074 overflows, the denominator of subnormals is split.
	for ; exp < -1000; exp += 1000 {
		sb.WriteString("/2^1000")
	}
	if exp < 0 {
		sb.WriteString("/2^" + strconv.Itoa(-exp))
	}
	sb.WriteByte(')')

	return sb.String()
}
