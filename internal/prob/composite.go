package prob

// WeightTable maps attribute names to their share of a composite.
// Weights need not sum to 1; Composite normalizes over the attributes
// actually present.
type WeightTable map[string]float64

// Composite computes the weighted mean of the named attributes,
// returning a score in [0,100]. Attributes missing from attrs are
// skipped and excluded from the weight sum, never treated as zero.
func Composite(attrs map[string]int, weights WeightTable) float64 {
	var sum, wsum float64
	for name, w := range weights {
		if w <= 0 {
			continue
		}
		v, ok := attrs[name]
		if !ok {
			continue
		}
		sum += float64(v) * w
		wsum += w
	}
	if wsum == 0 {
		return 0
	}
	c := sum / wsum
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
