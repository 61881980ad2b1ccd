package check

// SecondaryPriority ranks contrast failures by how far the measured ratio
// falls short of the required one. It reports false for results that carry
// no ratio.
func SecondaryPriority(r Result) (float64, bool) {
	switch r.ID {
	case ResultContrastNotSufficient,
		ResultHeuristicContrastNotSufficient,
		ResultHeuristicContrastBorderline,
		ResultUpperBoundContrastNotSufficient,
		ResultLowerBoundContrastNotSufficient:
		return shortfall(r.Metadata, KeyRequiredContrastRatio), true
	case ResultCustomUpperBoundNotSufficient,
		ResultCustomLowerBoundNotSufficient,
		ResultCustomHeuristicContrastNotSufficient:
		return shortfall(r.Metadata, KeyCustomHeuristicRatio), true
	default:
		return 0, false
	}
}

func shortfall(md Metadata, requiredKey string) float64 {
	required, _ := md.Float(requiredKey)
	measured, _ := md.Float(KeyContrastRatio)
	return required - measured
}
