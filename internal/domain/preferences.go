package domain

// Priority constants - ranking modes for candidate scoring
const (
	PriorityBalanced Priority = "balanced"
	PriorityBudget   Priority = "budget"
	PriorityPopular  Priority = "popular"
	PriorityRating   Priority = "rating"
)

// Pace constants - how densely a day is packed
const (
	PaceRelaxed Pace = "relaxed"
	PaceNormal  Pace = "normal"
	PacePacked  Pace = "packed"
)

type Priority string

func (p Priority) IsValid() bool {
	switch p {
	case PriorityBalanced, PriorityBudget, PriorityPopular, PriorityRating:
		return true
	}
	return false
}

type Pace string

func (p Pace) IsValid() bool {
	switch p {
	case PaceRelaxed, PaceNormal, PacePacked:
		return true
	}
	return false
}

// PaceCapacity bounds one day of the plan. Both limits are enforced;
// whichever is hit first ends the day.
type PaceCapacity struct {
	MaxStops         int
	MaxActiveMinutes int
}

// Capacity returns the day bound for the pace. Unknown values get the
// normal capacity.
func (p Pace) Capacity() PaceCapacity {
	switch p {
	case PaceRelaxed:
		return PaceCapacity{MaxStops: 3, MaxActiveMinutes: 420}
	case PacePacked:
		return PaceCapacity{MaxStops: 7, MaxActiveMinutes: 660}
	default:
		return PaceCapacity{MaxStops: 5, MaxActiveMinutes: 540}
	}
}

// ScoreWeights control the balanced composite. Zero value means equal
// thirds; see DefaultScoreWeights.
type ScoreWeights struct {
	Rating     float64
	Cost       float64
	Popularity float64
}

func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{Rating: 1.0 / 3, Cost: 1.0 / 3, Popularity: 1.0 / 3}
}
