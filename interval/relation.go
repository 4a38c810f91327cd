package interval

// Relation is the relative position of two ranges a and b.
type Relation int

const (
	// BLeftIntersectsA: the ranges overlap and b starts left of a.
	BLeftIntersectsA = Relation(-2)
	// ALeftIntersectsB: the ranges overlap and a starts left of b.
	ALeftIntersectsB = Relation(-1)
	// Separated: the ranges do not overlap.
	Separated = Relation(0)
	// AIncludesB: b lies within a.
	AIncludesB = Relation(1)
	// BIncludesA: a lies within b.
	BIncludesA = Relation(2)
	// Identical: a and b contain the same values.
	Identical = Relation(3)
)

var relationNames = map[Relation]string{
	BLeftIntersectsA: "b left-intersects a",
	ALeftIntersectsB: "a left-intersects b",
	Separated:        "separated",
	AIncludesB:       "a includes b",
	BIncludesA:       "b includes a",
	Identical:        "identical",
}

func (rel Relation) String() string {
	if name, ok := relationNames[rel]; ok {
		return name
	}
	return "unknown"
}

// Swap returns the relation of (b, a) given the relation of (a, b).
func (rel Relation) Swap() Relation {
	switch rel {
	case BLeftIntersectsA:
		return ALeftIntersectsB
	case ALeftIntersectsB:
		return BLeftIntersectsA
	case AIncludesB:
		return BIncludesA
	case BIncludesA:
		return AIncludesB
	default:
		return rel
	}
}

// coversLeftOf reports whether the left bound of o is in r, or coincides with
// the left bound of r while being excluded from o.
func (r Range[T]) coversLeftOf(o Range[T]) bool {
	return r.Contains(o.Left) || (r.Left == o.Left && !o.IncludedLeft)
}

func (r Range[T]) coversRightOf(o Range[T]) bool {
	return r.Contains(o.Right) || (r.Right == o.Right && !o.IncludedRight)
}

// Relate returns the relative position of a and b.
func Relate[T Number](a, b Range[T]) Relation {

	aibl := a.coversLeftOf(b)
	aibr := a.coversRightOf(b)
	bial := b.coversLeftOf(a)
	biar := b.coversRightOf(a)

	switch {
	case aibl && aibr && bial && biar:
		return Identical
	case aibl && aibr:
		return AIncludesB
	case bial && biar:
		return BIncludesA
	case aibl && biar:
		return ALeftIntersectsB
	case bial && aibr:
		return BLeftIntersectsA
	default:
		return Separated
	}
}

// Cut splits a and b along each other's bounds. With removeBlank the result
// is limited to the common part of a and b, otherwise the parts of a and b
// outside of it are returned as well. Empty parts are never returned.
func Cut[T Number](a, b Range[T], removeBlank bool) (ranges []Range[T]) {

	push := func(r Range[T]) {
		if !r.Empty() {
			ranges = append(ranges, r)
		}
	}

	switch rel := Relate(a, b); {
	case rel > 0:
		outer, inner := a, b
		if rel != AIncludesB {
			outer, inner = b, a
		}

		if !removeBlank {
			push(New(outer.IncludedLeft, outer.Left, inner.Left, !inner.IncludedLeft))
		}
		push(inner)
		if !removeBlank {
			push(New(!inner.IncludedRight, inner.Right, outer.Right, outer.IncludedRight))
		}
	case rel < 0:
		left, right := a, b
		if rel != ALeftIntersectsB {
			left, right = b, a
		}

		if !removeBlank {
			push(New(left.IncludedLeft, left.Left, right.Left, !right.IncludedLeft))
		}
		push(New(right.IncludedLeft, right.Left, left.Right, left.IncludedRight))
		if !removeBlank {
			push(New(!left.IncludedRight, left.Right, right.Right, right.IncludedRight))
		}
	default:
		if !removeBlank {
			push(a)
			push(b)
		}
	}

	return
}

// Intersect returns the common part of a and b, and false if there is none.
func Intersect[T Number](a, b Range[T]) (Range[T], bool) {
	if ranges := Cut(a, b, true); len(ranges) == 1 {
		return ranges[0], true
	}
	return Range[T]{}, false
}
