package usecase

import (
	"sort"

	"github.com/itinerary-engine/internal/domain"
)

// soloWeight is the share of the composite taken by solo-friendliness
// when solo mode is on.
const soloWeight = 0.25

// ScoredDestination pairs a candidate with its computed rank.
type ScoredDestination struct {
	Destination *domain.Destination
	Score       float64
}

// Scorer ranks a fixed candidate pool. Normalization bounds are computed
// once over the pool, so identical inputs always produce identical ranks.
type Scorer struct {
	pool    []*domain.Destination
	weights domain.ScoreWeights

	minRating, maxRating float64
	minCost, maxCost     float64
	minCrowd, maxCrowd   float64
}

func NewScorer(pool []*domain.Destination, weights domain.ScoreWeights) *Scorer {
	if weights == (domain.ScoreWeights{}) {
		weights = domain.DefaultScoreWeights()
	}

	s := &Scorer{pool: pool, weights: weights}
	for i, d := range pool {
		cost := d.EstimatedVisitorCost()
		crowd := float64(d.PeakCrowdLevel())
		if i == 0 {
			s.minRating, s.maxRating = d.Rating, d.Rating
			s.minCost, s.maxCost = cost, cost
			s.minCrowd, s.maxCrowd = crowd, crowd
			continue
		}
		s.minRating = min(s.minRating, d.Rating)
		s.maxRating = max(s.maxRating, d.Rating)
		s.minCost = min(s.minCost, cost)
		s.maxCost = max(s.maxCost, cost)
		s.minCrowd = min(s.minCrowd, crowd)
		s.maxCrowd = max(s.maxCrowd, crowd)
	}
	return s
}

// Score computes the rank of one destination for a priority mode.
// Higher is always better, including for the budget mode where cheaper
// candidates score higher.
func (s *Scorer) Score(d *domain.Destination, priority domain.Priority, soloMode bool) float64 {
	var base float64
	switch priority {
	case domain.PriorityRating:
		base = d.Rating / 5
	case domain.PriorityPopular:
		base = normalize(float64(d.PeakCrowdLevel()), s.minCrowd, s.maxCrowd)
	case domain.PriorityBudget:
		base = 1 - normalize(d.EstimatedVisitorCost(), s.minCost, s.maxCost)
	default: // balanced
		base = s.weights.Rating*normalize(d.Rating, s.minRating, s.maxRating) +
			s.weights.Cost*(1-normalize(d.EstimatedVisitorCost(), s.minCost, s.maxCost)) +
			s.weights.Popularity*normalize(float64(d.PeakCrowdLevel()), s.minCrowd, s.maxCrowd)
	}

	if soloMode {
		base = (1-soloWeight)*base + soloWeight*float64(d.SoloScore)/5
	}
	return base
}

// Rank returns the pool sorted by descending score, ties broken by
// ascending destination id for determinism.
func (s *Scorer) Rank(priority domain.Priority, soloMode bool) []ScoredDestination {
	ranked := make([]ScoredDestination, 0, len(s.pool))
	for _, d := range s.pool {
		ranked = append(ranked, ScoredDestination{
			Destination: d,
			Score:       s.Score(d, priority, soloMode),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Destination.ID < ranked[j].Destination.ID
	})
	return ranked
}

// normalize maps v into [0,1] over the observed range. A degenerate
// range maps everything to the midpoint.
func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}
