package piecewise

import (
	"fmt"

	"github.com/tuneinsight/polyrange/interval"
	"github.com/tuneinsight/polyrange/polynomial"
	"github.com/zeebo/blake3"
)

// DigestSize is the size in bytes of a digest.
const DigestSize = 32

// Digest returns the blake3 hash of the binary encoding of the shrunk pp.
// Piecewise polynomials that are Equal and have no NaN coefficient share the
// same digest.
func (pp *Polynomial) Digest() (digest [DigestSize]byte, err error) {

	hasher := blake3.New()

	if _, err = pp.canonical().WriteTo(hasher); err != nil {
		return digest, fmt.Errorf("cannot Digest: %w", err)
	}

	copy(digest[:], hasher.Sum(nil))

	return
}

// canonical returns a shrunk copy of pp with trailing zero coefficients
// removed and negative zeros replaced by zeros.
func (pp *Polynomial) canonical() *Polynomial {

	c := pp.CopyNew()
	c.Shrink()

	for i, frag := range c.fragments {

		coeffs := frag.Polynomial.Coeffs()
		for j := range coeffs {
			if coeffs[j] == 0 {
				coeffs[j] = 0
			}
		}

		p := polynomial.New(coeffs...)
		p.Shrink()

		r := frag.Range
		if r.Left == 0 {
			r.Left = 0
		}
		if r.Right == 0 {
			r.Right = 0
		}

		c.fragments[i] = Fragment{Polynomial: p, Range: interval.New(r.IncludedLeft, r.Left, r.Right, r.IncludedRight)}
	}

	return c
}
