// Package piecewise implements piecewise polynomials: polynomials bound to
// disjoint ranges of the real line.
package piecewise

import (
	"fmt"
	"strings"

	"github.com/op/go-logging"
	"github.com/tuneinsight/polyrange/interval"
	"github.com/tuneinsight/polyrange/polynomial"
	"github.com/tuneinsight/polyrange/utils/errs"
	"golang.org/x/exp/slices"
)

var log = logging.MustGetLogger("piecewise")

// Fragment is a polynomial bound to a range.
type Fragment struct {
	Polynomial polynomial.Polynomial
	Range      interval.Range[float64]
}

// Polynomial is a sequence of fragments. Ranges bound by Set are kept
// pairwise disjoint, see Set for the exception.
//
// The zero value is an empty piecewise polynomial, defined nowhere.
type Polynomial struct {
	fragments []Fragment
}

// NewPolynomial returns an empty piecewise polynomial.
func NewPolynomial() *Polynomial {
	return &Polynomial{}
}

// Len returns the number of fragments of pp.
func (pp *Polynomial) Len() int {
	return len(pp.fragments)
}

// Fragments returns a copy of the fragments of pp, in their current order.
func (pp *Polynomial) Fragments() []Fragment {
	return slices.Clone(pp.fragments)
}

// CopyNew returns a deep copy of pp.
func (pp *Polynomial) CopyNew() *Polynomial {
	return &Polynomial{fragments: slices.Clone(pp.fragments)}
}

// Set binds p to r. An empty r is ignored.
//
// If r overlaps the range of a fragment of pp, Set returns an error wrapping
// errs.DomainConflict unless override is true. With override, the first
// overlapping fragment is truncated to the part left of r if it sorts before
// r, and to the part right of r otherwise; it is removed if nothing is left.
// Only the first overlapping fragment is truncated: other overlapping
// fragments keep their range and take precedence over p in Evaluate.
func (pp *Polynomial) Set(p polynomial.Polynomial, r interval.Range[float64], override bool) error {

	if r.Empty() {
		return nil
	}

	for i := range pp.fragments {

		frag := &pp.fragments[i]

		if interval.Relate(frag.Range, r) == interval.Separated {
			continue
		}

		if !override {
			return fmt.Errorf("cannot Set: %w", errs.Errorf(errs.DomainConflict, "range %v conflicts with range %v", r, frag.Range))
		}

		before, err := interval.Less(frag.Range, r)
		if err != nil {
			return fmt.Errorf("cannot Set: %w", err)
		}

		old := frag.Range

		if before {
			frag.Range.Right = r.Left
			frag.Range.IncludedRight = !r.IncludedLeft
		} else {
			frag.Range.Left = r.Right
			frag.Range.IncludedLeft = !r.IncludedRight
		}

		if frag.Range.Empty() {
			log.Debugf("range %v overrides fragment %v, removing it", r, old)
			pp.fragments = slices.Delete(pp.fragments, i, i+1)
		} else {
			log.Debugf("range %v overrides fragment %v, truncated to %v", r, old, frag.Range)
		}

		break
	}

	pp.fragments = append(pp.fragments, Fragment{Polynomial: p, Range: r})

	return nil
}

// Evaluate returns the value at x of the polynomial of the first fragment
// whose range contains x. It returns an error wrapping errs.Domain if no
// range contains x.
func (pp *Polynomial) Evaluate(x float64) (float64, error) {
	for _, frag := range pp.fragments {
		if frag.Range.Contains(x) {
			return frag.Polynomial.Evaluate(x), nil
		}
	}
	return 0, fmt.Errorf("cannot Evaluate: %w", errs.Errorf(errs.Domain, "value %v is not in the range", x))
}

// sort orders the fragments by range, preserving the order of equivalent ranges.
func (pp *Polynomial) sort() {
	slices.SortStableFunc(pp.fragments, func(a, b Fragment) bool {
		// Bound fragments are never empty.
		less, _ := interval.Less(a.Range, b.Range)
		return less
	})
}

// Shrink sorts the fragments by range and merges the neighboring fragments
// bound to equal polynomials.
func (pp *Polynomial) Shrink() {

	pp.sort()

	for i := 1; i < len(pp.fragments); {

		prev, next := &pp.fragments[i-1], pp.fragments[i]

		if !prev.Polynomial.Equal(next.Polynomial) || !interval.IsNeighbor(prev.Range, next.Range) {
			i++
			continue
		}

		log.Debugf("merging fragments %v and %v", prev.Range, next.Range)

		prev.Range.Right = next.Range.Right
		prev.Range.IncludedRight = next.Range.IncludedRight
		pp.fragments = slices.Delete(pp.fragments, i, i+1)
	}
}

// Domain returns the ranges covered by pp, sorted and with neighbors merged.
func (pp *Polynomial) Domain() (domain []interval.Range[float64]) {

	sorted := pp.CopyNew()
	sorted.sort()

	for _, frag := range sorted.fragments {
		if n := len(domain); n > 0 && interval.IsNeighbor(domain[n-1], frag.Range) {
			domain[n-1].Right = frag.Range.Right
			domain[n-1].IncludedRight = frag.Range.IncludedRight
			continue
		}
		domain = append(domain, frag.Range)
	}

	return
}

// Add returns a + b, defined on the intersection of the domains of a and b.
func Add(a, b *Polynomial) (*Polynomial, error) {
	pp, err := combine(a, b, polynomial.Polynomial.Add)
	if err != nil {
		return nil, fmt.Errorf("cannot Add: %w", err)
	}
	return pp, nil
}

// Mul returns a * b, defined on the intersection of the domains of a and b.
func Mul(a, b *Polynomial) (*Polynomial, error) {
	pp, err := combine(a, b, polynomial.Polynomial.Mul)
	if err != nil {
		return nil, fmt.Errorf("cannot Mul: %w", err)
	}
	return pp, nil
}

func combine(a, b *Polynomial, op func(p, q polynomial.Polynomial) polynomial.Polynomial) (*Polynomial, error) {
	pp := NewPolynomial()
	for _, fa := range a.fragments {
		for _, fb := range b.fragments {
			for _, r := range interval.Cut(fa.Range, fb.Range, true) {
				if err := pp.Set(op(fa.Polynomial, fb.Polynomial), r, false); err != nil {
					return nil, err
				}
			}
		}
	}
	return pp, nil
}

// Equal returns true if a and b, once shrunk, have the same fragments.
func Equal(a, b *Polynomial) bool {

	sa, sb := a.CopyNew(), b.CopyNew()
	sa.Shrink()
	sb.Shrink()

	if len(sa.fragments) != len(sb.fragments) {
		return false
	}

	for i := range sa.fragments {
		fa, fb := sa.fragments[i], sb.fragments[i]
		if !fa.Polynomial.Equal(fb.Polynomial) || !interval.Equal(fa.Range, fb.Range) {
			return false
		}
	}

	return true
}

// String renders pp in the variable x, see Format.
func (pp *Polynomial) String() string {
	return pp.Format("x")
}

// Format renders one "<range> : <polynomial>" line per fragment, in the
// current order of the fragments.
func (pp *Polynomial) Format(variable string) string {
	lines := make([]string, len(pp.fragments))
	for i, frag := range pp.fragments {
		lines[i] = fmt.Sprintf("%v : %s", frag.Range, frag.Polynomial.Format(variable))
	}
	return strings.Join(lines, "\n")
}
