package piecewise

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/tuneinsight/polyrange/utils/errs"
)

// Summary holds descriptive statistics of the values of a piecewise
// polynomial over a set of points.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
}

func (s Summary) String() string {
	return fmt.Sprintf("count=%d min=%g max=%g mean=%g median=%g stddev=%g", s.Count, s.Min, s.Max, s.Mean, s.Median, s.StdDev)
}

// Summarize evaluates pp at each of the points xs and returns statistics of
// the values. It returns an error wrapping errs.Domain if a point is not
// covered by pp.
func (pp *Polynomial) Summarize(xs []float64) (s Summary, err error) {

	if len(xs) == 0 {
		return s, fmt.Errorf("cannot Summarize: %w", errs.Errorf(errs.InvalidArgument, "no point to evaluate"))
	}

	values := make(stats.Float64Data, len(xs))
	for i, x := range xs {
		if values[i], err = pp.Evaluate(x); err != nil {
			return s, fmt.Errorf("cannot Summarize: %w", err)
		}
	}

	s.Count = len(values)

	if s.Min, err = values.Min(); err != nil {
		return s, fmt.Errorf("cannot Summarize: %w", err)
	}

	if s.Max, err = values.Max(); err != nil {
		return s, fmt.Errorf("cannot Summarize: %w", err)
	}

	if s.Mean, err = values.Mean(); err != nil {
		return s, fmt.Errorf("cannot Summarize: %w", err)
	}

	if s.Median, err = values.Median(); err != nil {
		return s, fmt.Errorf("cannot Summarize: %w", err)
	}

	if s.StdDev, err = values.StandardDeviation(); err != nil {
		return s, fmt.Errorf("cannot Summarize: %w", err)
	}

	return
}

// Linspace returns n evenly spaced points of [from, to], both included.
// A single point is from.
func Linspace(from, to float64, n int) (xs []float64) {
	if n <= 0 {
		return nil
	}
	xs = make([]float64, n)
	if n == 1 {
		xs[0] = from
		return
	}
	step := (to - from) / float64(n-1)
	for i := range xs {
		xs[i] = from + float64(i)*step
	}
	xs[n-1] = to
	return
}
