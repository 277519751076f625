package precrec

// HarmonicMean returns 2pr/(p+r), or 0 when p+r is 0.
func HarmonicMean(p, r float64) float64 {
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// Best is the operating point that attains Fmax.
type Best struct {
	Index     int // position in the sweep, -1 for an empty curve
	Threshold float64
	Precision float64
	Recall    float64
	F         float64
}

// SelectFmax returns the point with the largest harmonic mean. Ties keep the
// earliest point, which in sweep order is the highest threshold.
func SelectFmax(points []Point) Best {
	best := Best{Index: -1}
	for i, p := range points {
		f := p.F()
		if best.Index >= 0 && f <= best.F {
			continue
		}
		best = Best{
			Index:     i,
			Threshold: p.Threshold,
			Precision: p.Precision,
			Recall:    p.Recall,
			F:         f,
		}
	}
	return best
}
