// Package interval implements ranges of ordered numbers with open or closed
// bounds, and the relationships between two ranges used to partition the real
// line.
package interval

import (
	"fmt"

	"github.com/tuneinsight/polyrange/utils/errs"
	"golang.org/x/exp/constraints"
)

// Number is the set of types a Range can be defined over.
type Number interface {
	constraints.Integer | constraints.Float
}

// Range is the set of values between Left and Right. Each bound is part of
// the range if the corresponding Included flag is set.
type Range[T Number] struct {
	Left          T
	Right         T
	IncludedLeft  bool
	IncludedRight bool
}

// New returns the range between left and right with the given bound inclusion.
func New[T Number](includedLeft bool, left, right T, includedRight bool) Range[T] {
	return Range[T]{Left: left, Right: right, IncludedLeft: includedLeft, IncludedRight: includedRight}
}

// Closed returns [left, right].
func Closed[T Number](left, right T) Range[T] {
	return New(true, left, right, true)
}

// Open returns (left, right).
func Open[T Number](left, right T) Range[T] {
	return New(false, left, right, false)
}

// ClosedOpen returns [left, right).
func ClosedOpen[T Number](left, right T) Range[T] {
	return New(true, left, right, false)
}

// OpenClosed returns (left, right].
func OpenClosed[T Number](left, right T) Range[T] {
	return New(false, left, right, true)
}

// Empty returns true if r contains no value. A range with a NaN bound is empty.
func (r Range[T]) Empty() bool {
	if isNaN(r.Left) || isNaN(r.Right) {
		return true
	}
	return r.Left > r.Right || (r.Left == r.Right && !(r.IncludedLeft && r.IncludedRight))
}

// Compare returns -1 if v lies left of r, 1 if v lies right of r and 0 if v
// is in r. A value on an excluded bound lies outside on the side of that bound.
// NaN is in no range, and no value is in a range with a NaN bound: both
// compare as 1.
func (r Range[T]) Compare(v T) int {
	if isNaN(v) || isNaN(r.Left) || isNaN(r.Right) {
		return 1
	}
	if (r.IncludedLeft && v < r.Left) || (!r.IncludedLeft && v <= r.Left) {
		return -1
	}
	if (r.IncludedRight && v > r.Right) || (!r.IncludedRight && v >= r.Right) {
		return 1
	}
	return 0
}

func isNaN[T Number](v T) bool {
	return v != v
}

// Contains returns true if v is in r.
func (r Range[T]) Contains(v T) bool {
	return r.Compare(v) == 0
}

// Length returns Right - Left.
func (r Range[T]) Length() T {
	return r.Right - r.Left
}

// String renders r as [l,r], [l,r), (l,r] or (l,r).
func (r Range[T]) String() string {
	open, close := '(', ')'
	if r.IncludedLeft {
		open = '['
	}
	if r.IncludedRight {
		close = ']'
	}
	return fmt.Sprintf("%c%v,%v%c", open, r.Left, r.Right, close)
}

// Less orders non-empty ranges by their left bound, a closed left bound
// sorting before an open one at the same coordinate.
func Less[T Number](a, b Range[T]) (bool, error) {
	if a.Empty() || b.Empty() {
		return false, fmt.Errorf("cannot Less: %w", errs.Errorf(errs.Domain, "cannot compare with empty range(s) %v and %v", a, b))
	}
	return a.Left < b.Left || (a.Left == b.Left && a.IncludedLeft && !b.IncludedLeft), nil
}

// Equal returns true if a and b contain the same values.
func Equal[T Number](a, b Range[T]) bool {
	return Relate(a, b) == Identical
}

// IsNeighbor returns true if a and b are non-empty and touch at exactly one
// coordinate, one of them including it and the other one not.
func IsNeighbor[T Number](a, b Range[T]) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	if a.Right == b.Left && a.IncludedRight != b.IncludedLeft {
		return true
	}
	return a.Left == b.Right && a.IncludedLeft != b.IncludedRight
}
