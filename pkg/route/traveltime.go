package route

// minSpeedMultiplier floors the risk-adjusted speed so a fully risky segment
// still yields a finite traversal time.
const minSpeedMultiplier = 0.05

// TravelTime estimates traversal time over a path. Higher risk means slower
// assumed movement: per-segment speed = baseSpeed * (1 - segmentRisk), with
// the multiplier floored at minSpeedMultiplier. Fails with ErrInvalidSpeed
// when baseSpeed is not positive.
func TravelTime(p Path, baseSpeed float64) (TravelEstimate, error) {
	if baseSpeed <= 0 {
		return TravelEstimate{}, ErrInvalidSpeed
	}
	if len(p.Segments) == 0 {
		return TravelEstimate{}, ErrEmptyPath
	}

	est := TravelEstimate{Segments: make([]SegmentTime, 0, len(p.Segments))}
	for _, seg := range p.Segments {
		multiplier := 1 - seg.Risk
		if multiplier < minSpeedMultiplier {
			multiplier = minSpeedMultiplier
		}
		speed := baseSpeed * multiplier
		seconds := seg.Distance / speed
		est.Segments = append(est.Segments, SegmentTime{
			From:     seg.From,
			To:       seg.To,
			Distance: seg.Distance,
			Risk:     seg.Risk,
			Speed:    speed,
			Seconds:  seconds,
		})
		est.TotalDistance += seg.Distance
		est.TotalSeconds += seconds
	}
	if est.TotalSeconds > 0 {
		est.AvgSpeed = est.TotalDistance / est.TotalSeconds
	}
	return est, nil
}
