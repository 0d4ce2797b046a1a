package airfield

// VantageScore flags a spot whose target runways are in use.
type VantageScore struct {
	VantagePoint
	HighOpportunity bool       `json:"highOpportunity"`
	Matched         []RunwayID `json:"matched,omitempty"`
}

// Score marks each vantage point as high-opportunity when one of its targets
// covers an active runway. Order follows points.
func Score(points []VantagePoint, active []RunwayID) []VantageScore {
	out := make([]VantageScore, 0, len(points))
	for _, vp := range points {
		score := VantageScore{VantagePoint: vp}
		for _, rwy := range active {
			for _, target := range vp.Targets {
				if target.Covers(rwy) {
					score.Matched = append(score.Matched, rwy)
					break
				}
			}
		}
		score.HighOpportunity = len(score.Matched) > 0
		out = append(out, score)
	}
	return out
}
