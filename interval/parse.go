package interval

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tuneinsight/polyrange/utils/errs"
)

// ParseRange parses the rendering of a Range[float64], e.g. "[-1,2.5)" or
// "(-inf, 0]". Spaces are allowed around the bounds, NaN bounds are not.
// Malformed text returns an error wrapping a *errs.ParseError.
func ParseRange(s string) (Range[float64], error) {
	r, err := parseRange(s)
	if err != nil {
		return Range[float64]{}, fmt.Errorf("cannot ParseRange: %w", err)
	}
	return r, nil
}

func parseRange(s string) (r Range[float64], err error) {

	begin, end := 0, len(s)
	for begin < end && s[begin] == ' ' {
		begin++
	}
	for end > begin && s[end-1] == ' ' {
		end--
	}

	if begin == end {
		return r, errs.NewParseError("parsing empty range", s, begin)
	}

	switch s[begin] {
	case '[':
		r.IncludedLeft = true
	case '(':
	default:
		return r, errs.NewParseError("expect '[' or '('", s, begin)
	}

	switch s[end-1] {
	case ']':
		r.IncludedRight = true
	case ')':
	default:
		return r, errs.NewParseError("expect ']' or ')'", s, end-1)
	}

	comma := strings.IndexByte(s[begin+1:end-1], ',')
	if comma < 0 {
		return r, errs.NewParseError("expect ','", s, end-1)
	}
	comma += begin + 1

	if r.Left, err = parseBound(s, begin+1, comma); err != nil {
		return
	}

	if r.Right, err = parseBound(s, comma+1, end-1); err != nil {
		return
	}

	return r, nil
}

func parseBound(s string, begin, end int) (float64, error) {

	for begin < end && s[begin] == ' ' {
		begin++
	}
	for end > begin && s[end-1] == ' ' {
		end--
	}

	if begin == end {
		return 0, errs.NewParseError("expect a bound", s, begin)
	}

	v, err := strconv.ParseFloat(s[begin:end], 64)
	if err != nil || math.IsNaN(v) {
		return 0, errs.NewParseError("invalid bound", s, begin)
	}

	return v, nil
}
