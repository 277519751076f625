package precrec

import "fmt"

// DefaultThresholds is the number of thresholds swept when none is given.
// With the zero threshold excluded it yields steps of 1/99.
const DefaultThresholds = 99

// Thresholds returns n evenly spaced thresholds in decreasing order.
//
// Without includeZero the grid is 1, 1-1/n, ..., 1/n, covering (0,1].
// With includeZero it runs from 1 down to 0 inclusive and needs n >= 2.
//
// Each point is a single correctly rounded k/d division, so a grid point
// such as 0.57 is the same float64 that parsing "0.57" yields and a score
// written at that value clears it.
func Thresholds(n int, includeZero bool) ([]float64, error) {
	switch {
	case n < 1:
		return nil, fmt.Errorf("%w: %d", ErrInvalidThresholds, n)
	case n == 1 && includeZero:
		return nil, fmt.Errorf("%w: zero threshold needs at least 2 points", ErrInvalidThresholds)
	}

	d := n
	if includeZero {
		d = n - 1
	}
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = float64(d-i) / float64(d)
	}
	return ts, nil
}
