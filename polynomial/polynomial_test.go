package polynomial

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/polyrange/utils/bignum"
	"github.com/tuneinsight/polyrange/utils/errs"
	"github.com/tuneinsight/polyrange/utils/sampling"
)

func testString(opname string, p Polynomial) string {
	return fmt.Sprintf("%s/deg=%d", opname, p.Degree())
}

func newTestSource(t testing.TB) *sampling.Source {
	src, err := sampling.NewSourceFromKey([]byte("polynomial"))
	require.NoError(t, err)
	return src
}

func randomPolynomial(src *sampling.Source, degree int) Polynomial {
	return New(src.Float64Slice(degree+1, -1, 1)...)
}

func TestPolynomial(t *testing.T) {

	t.Run("Coeff", func(t *testing.T) {
		p := New(1, 2, 3)
		require.Equal(t, 2.0, p.Coeff(1))
		require.Equal(t, 0.0, p.Coeff(3))
		require.Equal(t, 0.0, p.Coeff(-1))
	})

	t.Run("Coeffs/Copy", func(t *testing.T) {
		p := New(1, 2, 3)
		c := p.Coeffs()
		c[0] = 42
		require.Equal(t, 1.0, p.Coeff(0))
	})

	t.Run("AddTerm", func(t *testing.T) {
		p := NewMonomial(2, 1)
		q := p.AddTerm(3, 4)
		require.Equal(t, []float64{0, 2}, p.Coeffs())
		require.Equal(t, []float64{0, 2, 0, 0, 3}, q.Coeffs())
		require.Equal(t, []float64{0, 2, 0, 0, 0}, q.AddTerm(-3, 4).Coeffs())
		require.Panics(t, func() { p.AddTerm(1, -1) })
	})

	t.Run("Degree", func(t *testing.T) {
		require.Equal(t, -1, Polynomial{}.Degree())
		require.Equal(t, -1, New(0, 0).Degree())
		require.Equal(t, 0, One().Degree())
		require.Equal(t, 2, New(1, 0, 3, 0).Degree())
		require.True(t, New(0, 0).IsZero())
		require.True(t, New(5, 0).IsConstant())
		require.False(t, New(5, 1).IsConstant())
	})

	t.Run("Shrink", func(t *testing.T) {
		p := New(1, 0, 2, 0, 0)
		p.Shrink()
		require.Equal(t, []float64{1, 0, 2}, p.Coeffs())

		p = New(0, 0)
		p.Shrink()
		require.Empty(t, p.Coeffs())
	})

	t.Run("Equal", func(t *testing.T) {
		require.True(t, New(1, 2).Equal(New(1, 2, 0, 0)))
		require.True(t, New(0, 0).Equal(Polynomial{}))
		require.False(t, New(1, 2).Equal(New(1, 2, 3)))
		require.False(t, New(1, 2).Equal(New(1, 3)))
	})

	t.Run("Evaluate", func(t *testing.T) {
		p := New(1, -2, 1)
		require.Equal(t, 0.0, p.Evaluate(1))
		require.Equal(t, 9.0, p.Evaluate(-2))
		require.Equal(t, 0.0, Polynomial{}.Evaluate(3))
	})

	t.Run("Evaluate/Reference", func(t *testing.T) {
		src := newTestSource(t)
		for i := 0; i < 32; i++ {
			p := randomPolynomial(src, 1+src.Intn(12))
			x := src.Float64(-1, 1)
			want := bignum.Horner(p.Coeffs(), x, bignum.DefaultPrec)
			require.LessOrEqual(t, bignum.AbsError(want, p.Evaluate(x)), 1e-12*bignum.Scale(want), testString("Evaluate", p))
		}
	})

	t.Run("Substitute", func(t *testing.T) {
		p := New(1, 0, 1)
		q := New(-1, 1)
		require.Equal(t, []float64{2, -2, 1}, p.Substitute(q).Coeffs())
		require.True(t, Polynomial{}.Substitute(q).IsZero())
	})
}

func TestAlgebra(t *testing.T) {

	t.Run("Add", func(t *testing.T) {
		require.Equal(t, []float64{4, 2, 3}, New(1, 2, 3).Add(New(3)).Coeffs())
		require.Equal(t, []float64{4, 2, 3}, New(3).Add(New(1, 2, 3)).Coeffs())
	})

	t.Run("Sub", func(t *testing.T) {
		require.Equal(t, []float64{1, -1}, New(1).Sub(New(0, 1)).Coeffs())
		require.Equal(t, []float64{-1, 1}, New(0, 1).Sub(New(1)).Coeffs())
		require.True(t, New(1, 2, 3).Sub(New(1, 2, 3)).IsZero())
	})

	t.Run("Mul", func(t *testing.T) {
		require.Equal(t, []float64{-1, 0, 1}, New(1, 1).Mul(New(-1, 1)).Coeffs())
		require.True(t, New(1, 1).Mul(Polynomial{}).IsZero())
	})

	t.Run("Scalar", func(t *testing.T) {
		require.Equal(t, []float64{2, -4}, New(1, -2).MulScalar(2).Coeffs())
		require.Equal(t, []float64{0.5, -1}, New(1, -2).DivScalar(2).Coeffs())
		require.Equal(t, []float64{-1, 2}, New(1, -2).Neg().Coeffs())

		p := New(0, 1).DivScalar(0)
		require.True(t, math.IsNaN(p.Coeff(0)))
		require.True(t, math.IsInf(p.Coeff(1), 1))
	})

	t.Run("Aliasing", func(t *testing.T) {
		p := New(1, 2)
		q := p.Add(Polynomial{})
		r, err := p.Pow(1)
		require.NoError(t, err)
		q.coeffs[0] = 7
		r.coeffs[0] = 7
		require.Equal(t, 1.0, p.Coeff(0))
	})

	t.Run("Homomorphism", func(t *testing.T) {
		src := newTestSource(t)
		for i := 0; i < 64; i++ {
			p := randomPolynomial(src, src.Intn(8))
			q := randomPolynomial(src, src.Intn(8))
			x := src.Float64(-2, 2)

			require.InDelta(t, p.Evaluate(x)+q.Evaluate(x), p.Add(q).Evaluate(x), 1e-9, testString("Add", p))
			require.InDelta(t, p.Evaluate(x)-q.Evaluate(x), p.Sub(q).Evaluate(x), 1e-9, testString("Sub", p))
			require.InDelta(t, p.Evaluate(x)*q.Evaluate(x), p.Mul(q).Evaluate(x), 1e-9, testString("Mul", p))
		}

		for i := 0; i < 64; i++ {
			p := randomPolynomial(src, src.Intn(8))
			q := randomPolynomial(src, src.Intn(4))
			x := src.Float64(-1, 1)

			require.InDelta(t, p.Evaluate(q.Evaluate(x)), p.Substitute(q).Evaluate(x), 1e-9, testString("Substitute", p))
		}
	})

	t.Run("Pow", func(t *testing.T) {

		// Small integer coefficients keep every product exact.
		p := New(1, -2, 1)

		p0, err := p.Pow(0)
		require.NoError(t, err)
		require.True(t, p0.Equal(One()))

		p1, err := p.Pow(1)
		require.NoError(t, err)
		require.True(t, p1.Equal(p))

		p4, err := p.Pow(4)
		require.NoError(t, err)
		require.True(t, p4.Equal(p.Mul(p).Mul(p).Mul(p)), p4.String())

		for a := 0; a < 5; a++ {
			for b := 0; b < 5; b++ {
				pa, err := p.Pow(a)
				require.NoError(t, err)
				pb, err := p.Pow(b)
				require.NoError(t, err)
				pab, err := p.Pow(a + b)
				require.NoError(t, err)
				require.True(t, pab.Equal(pa.Mul(pb)), "a=%d b=%d", a, b)
			}
		}

		_, err = p.Pow(-1)
		require.True(t, errors.Is(err, errs.InvalidArgument))
	})
}

func TestFormat(t *testing.T) {

	for _, tc := range []struct {
		p    Polynomial
		want string
	}{
		{Polynomial{}, "0"},
		{New(0, 0), "0"},
		{New(-1), "-1"},
		{New(1), "1"},
		{New(0, 1), "x"},
		{New(0, -1), "-x"},
		{New(0, 1, 0, 1), "x+x^3"},
		{New(2, 0, -3.5), "2-3.5x^2"},
		{New(1e6, math.Nextafter(0.3, 1)), "1e+06+0.3x"},
		{New(math.NaN()), "nan"},
		{New(1, math.Inf(1)), "1+infx"},
		{New(0, math.Inf(-1)), "-infx"},
	} {
		t.Run("Format/"+tc.want, func(t *testing.T) {
			require.Equal(t, tc.want, tc.p.String())
		})
	}

	t.Run("Format/Variable", func(t *testing.T) {
		require.Equal(t, "1-t^2", New(1, 0, -1).Format("t"))
	})

	t.Run("FormatPrec", func(t *testing.T) {
		require.Equal(t, "3.1416x", New(0, math.Pi).FormatPrec("x", 5))
		require.Equal(t, "-1x+0.3x^2", New(0, -1, math.Nextafter(0.3, 1)).FormatPrec("x", -1))
		require.Equal(t, "1000000", New(1e6).FormatPrec("x", -1))
		require.Equal(t, "0.5-0.1x", New(0.5, -0.1).FormatPrec("x", -1))
	})

	t.Run("FormatPrec/Fraction", func(t *testing.T) {
		require.Equal(t, "(6034823500676465/2^52)", New(1.34).FormatPrec("x", -1))
		require.Equal(t, "1-(6034823500676465/2^52)*x^2", New(1, 0, -1.34).FormatPrec("x", -1))
		require.Equal(t, "(1/2^1000/2^74)", New(math.SmallestNonzeroFloat64).FormatPrec("x", -1))
		require.Equal(t, "(9007199254740991*2^971)", New(math.MaxFloat64).FormatPrec("x", -1))
	})

	t.Run("FormatPrec/RoundTrip", func(t *testing.T) {
		for _, c := range []float64{1.34, -99.98, math.Pi, 1e300, -1e-30, math.SmallestNonzeroFloat64, math.MaxFloat64, 0.1, 4.2} {
			p := New(c, c, c)
			text := p.FormatPrec("x", -1)
			q, err := Parse(text, 'x')
			require.NoError(t, err, text)
			require.True(t, p.Equal(q), "%s != %s", text, q.FormatPrec("x", -1))
		}
	})
}

func TestParse(t *testing.T) {

	t.Run("Parse/Canonical", func(t *testing.T) {
		p, err := Parse("-x + 1.34x^2 + 1/50x^3 + 344(x+2)^2 + 2*-1", 'x')
		require.NoError(t, err)
		require.Equal(t, "1374+1375x+345.34x^2+0.02x^3", p.String())

		p, err = Parse("-1/10(x(2-x)^2)^3", 'x')
		require.NoError(t, err)
		require.Equal(t, "-6.4x^3+19.2x^4-24x^5+16x^6-6x^7+1.2x^8-0.1x^9", p.String())
	})

	for _, tc := range []struct {
		text string
		want []float64
	}{
		{"0", nil},
		{"x - x", nil},
		{"2x", []float64{0, 2}},
		{"2 x", []float64{0, 2}},
		{"x^2", []float64{0, 0, 1}},
		{"-x^2", []float64{0, 0, 1}},
		{"-(x^2)", []float64{0, 0, -1}},
		{"1-x^2", []float64{1, 0, -1}},
		{"x^0", []float64{1}},
		{"2^3^2", []float64{64}},
		{"12/4/3", []float64{1}},
		{"2*-1", []float64{-2}},
		{"1--2", []float64{3}},
		{"((x))", []float64{0, 1}},
		{"(x+1)(x-1)", []float64{-1, 0, 1}},
		{"x(x+1)", []float64{0, 1, 1}},
		{"3(x)", []float64{0, 3}},
		{"5.", []float64{5}},
		{".5x", []float64{0, 0.5}},
		{"  1 +  2 * x  ", []float64{1, 2}},
		{"x^(1+1)", []float64{0, 0, 1}},
		{"x/(4-2)", []float64{0, 0.5}},
	} {
		t.Run(fmt.Sprintf("Parse/%q", tc.text), func(t *testing.T) {
			p, err := Parse(tc.text, 'x')
			require.NoError(t, err)
			require.True(t, cmp.Equal(tc.want, p.Coeffs()) || (len(tc.want) == 0 && p.IsZero()), cmp.Diff(tc.want, p.Coeffs()))
			require.Equal(t, p.Degree()+1, len(p.Coeffs()))
		})
	}

	// Literals accumulate their digits, then scale by a power of 0.1.
	for _, tc := range []struct {
		text string
		bits uint64
	}{
		{"1.34", 0x3ff570a3d70a3d72},
		{"0.3", 0x3fd3333333333334},
		{"99.98", 0x4058feb851eb8520},
		{"0.5", 0x3fe0000000000000},
		{"42", 0x4045000000000000},
	} {
		t.Run(fmt.Sprintf("Parse/Literal/%s", tc.text), func(t *testing.T) {
			p, err := Parse(tc.text, 'x')
			require.NoError(t, err)
			require.Equal(t, tc.bits, math.Float64bits(p.Coeff(0)), "%v", p.Coeff(0))
		})
	}

	t.Run("Parse/Literal/Overflow", func(t *testing.T) {
		p, err := Parse("1"+strings.Repeat("0", 400)+".5", 'x')
		require.NoError(t, err)
		require.True(t, math.IsInf(p.Coeff(0), 1))
	})

	t.Run("Parse/Variable", func(t *testing.T) {
		p, err := Parse("t^2+1", 't')
		require.NoError(t, err)
		require.Equal(t, []float64{1, 0, 1}, p.Coeffs())

		_, err = Parse("x^2+1", 't')
		var perr *errs.ParseError
		require.True(t, errors.As(err, &perr))
		require.Equal(t, byte('x'), perr.Symbol)
	})

	t.Run("Parse/DivisionByZero", func(t *testing.T) {
		p, err := Parse("x/0", 'x')
		require.NoError(t, err)
		require.True(t, math.IsNaN(p.Coeff(0)))
		require.True(t, math.IsInf(p.Coeff(1), 1))
	})

	for _, tc := range []struct {
		text, variable string
	}{
		{"x", "1"},
		{"x", "+"},
		{"", "x"},
		{"   ", "x"},
	} {
		t.Run(fmt.Sprintf("Parse/InvalidArgument/%q/%q", tc.text, tc.variable), func(t *testing.T) {
			_, err := Parse(tc.text, tc.variable[0])
			require.True(t, errors.Is(err, errs.InvalidArgument), err)
		})
	}

	for _, tc := range []struct {
		text   string
		reason string
		pos    int
	}{
		{"1+*2", "unexpected symbol", 2},
		{"--x", "unexpected symbol", 1},
		{"*x", "unexpected symbol", 0},
		{"x)", "expect an operator", 1},
		{"x y", "expect an operator", 2},
		{"2 & 3", "expect an operator", 2},
		{"1+&2", "unrecognized symbol", 2},
		{"2x+", "expect an operand", 2},
		{"1+ ", "expect an operand", 1},
		{"-", "expect an operand", 0},
		{"1 + -", "expect an operand", 4},
		{"(x+1", "parentheses not closed", 0},
		{"x(", "parentheses not closed", 1},
		{"(()", "parentheses not closed", 0},
		{"()", "empty parentheses not allowed", 0},
		{"2*( )", "empty parentheses not allowed", 2},
		{"x^x", "variable in exponent not supported", 2},
		{"x^(x+1)", "variable in exponent not supported", 2},
		{"x^-1", "exponent can only be non-negative", 2},
		{"x^ -0.5", "exponent can only be an integer", 3},
		{"1/-x", "variable in denominator not supported", 2},
		{"x^0.5", "exponent can only be an integer", 2},
		{"1/x", "variable in denominator not supported", 2},
		{"1.2.3", "unexpected symbol", 3},
		{".", "unexpected symbol", 0},
		{"1+.", "unexpected symbol", 2},
	} {
		t.Run(fmt.Sprintf("Parse/Error/%q", tc.text), func(t *testing.T) {
			_, err := Parse(tc.text, 'x')
			require.True(t, errors.Is(err, errs.Parse), err)

			var perr *errs.ParseError
			require.True(t, errors.As(err, &perr))
			require.Equal(t, tc.reason, perr.Reason)
			require.Equal(t, tc.pos, perr.Position)
		})
	}

	t.Run("MustParse", func(t *testing.T) {
		require.Equal(t, []float64{0, 1}, MustParse("x", 'x').Coeffs())
		require.Panics(t, func() { MustParse("x+", 'x') })
	})

	t.Run("Parse/RoundTrip", func(t *testing.T) {
		src := newTestSource(t)
		for i := 0; i < 64; i++ {
			coeffs := src.Float64Slice(1+src.Intn(10), -100, 100)
			for j := range coeffs {
				switch src.Intn(4) {
				case 0:
					coeffs[j] = 0
				case 1:
					coeffs[j] = float64(src.Intn(3) - 1)
				}
			}

			p := New(coeffs...)
			text := p.FormatPrec("x", -1)

			q, err := Parse(text, 'x')
			require.NoError(t, err, text)
			require.True(t, p.Equal(q), "%s != %s", text, q.FormatPrec("x", -1))
		}
	})
}

func TestCodec(t *testing.T) {

	t.Run("Codec/Buffer", func(t *testing.T) {
		p := New(1, -0.5, 0, math.Inf(1))
		data, err := p.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, data, p.BinarySize())

		var q Polynomial
		require.NoError(t, q.UnmarshalBinary(data))
		require.Equal(t, p.Coeffs(), q.Coeffs())
	})

	t.Run("Codec/Stream", func(t *testing.T) {
		p := New(3, 2, 1)
		var w bytes.Buffer
		n, err := p.WriteTo(&w)
		require.NoError(t, err)
		require.Equal(t, int64(p.BinarySize()), n)

		var q Polynomial
		n, err = q.ReadFrom(bytes.NewReader(w.Bytes()))
		require.NoError(t, err)
		require.Equal(t, int64(p.BinarySize()), n)
		require.True(t, p.Equal(q))
	})

	t.Run("Codec/Zero", func(t *testing.T) {
		data, err := Polynomial{}.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, data, 8)

		q := New(1)
		require.NoError(t, q.UnmarshalBinary(data))
		require.True(t, q.IsZero())
	})

	t.Run("Codec/Truncated", func(t *testing.T) {
		data, err := New(1, 2).MarshalBinary()
		require.NoError(t, err)
		var q Polynomial
		require.Error(t, q.UnmarshalBinary(data[:len(data)-1]))
	})
}

func BenchmarkParse(b *testing.B) {
	text := "-1/10(x(2-x)^2)^3 + 344(x+2)^2 - 0.5x^7"
	for i := 0; i < b.N; i++ {
		if _, err := Parse(text, 'x'); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluate(b *testing.B) {
	p := randomPolynomial(newTestSource(b), 15)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Evaluate(0.75)
	}
}
