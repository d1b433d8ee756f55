package service

import (
	"sync"

	"holland-test/internal/domain"
)

// ScoreAggregator maps trait codes to scores. Entries are never removed and
// keep the position of their first insertion.
type ScoreAggregator struct {
	mu     sync.RWMutex
	order  []domain.TraitCode
	scores map[domain.TraitCode]int
}

func NewScoreAggregator() *ScoreAggregator {
	return &ScoreAggregator{
		scores: make(map[domain.TraitCode]int),
	}
}

// Set writes score under code, overwriting any previous value.
func (a *ScoreAggregator) Set(code domain.TraitCode, score int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.scores[code]; !ok {
		a.order = append(a.order, code)
	}
	a.scores[code] = score
}

// Snapshot returns the current entries in insertion order.
func (a *ScoreAggregator) Snapshot() []domain.TraitScore {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]domain.TraitScore, 0, len(a.order))
	for _, code := range a.order {
		out = append(out, domain.TraitScore{Code: code, Score: a.scores[code]})
	}
	return out
}

func (a *ScoreAggregator) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.scores)
}

func (a *ScoreAggregator) Has(code domain.TraitCode) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.scores[code]
	return ok
}
