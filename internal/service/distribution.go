package service

import "holland-test/internal/domain"

// ComputeDistribution turns scores into percentage shares of their total,
// listed in order. nameOf may be nil, in which case slices are named by code.
func ComputeDistribution(snapshot []domain.TraitScore, order []domain.TraitCode, nameOf func(domain.TraitCode) string) (domain.Distribution, error) {
	if len(snapshot) == 0 {
		return domain.Distribution{}, ErrIncompleteAggregate
	}
	ordered := orderScores(snapshot, order)

	total := 0
	for _, s := range ordered {
		total += s.Score
	}
	if total <= 0 {
		return domain.Distribution{}, ErrZeroTotal
	}

	dist := domain.Distribution{
		Slices: make([]domain.Slice, 0, len(ordered)),
		Total:  total,
	}
	for _, s := range ordered {
		name := string(s.Code)
		if nameOf != nil {
			name = nameOf(s.Code)
		}
		dist.Slices = append(dist.Slices, domain.Slice{
			Code:       s.Code,
			Name:       name,
			Score:      s.Score,
			Percentage: 100 * float64(s.Score) / float64(total),
		})
	}
	return dist, nil
}
