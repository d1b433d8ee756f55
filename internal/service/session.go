package service

import (
	"fmt"
	"time"

	"holland-test/internal/catalog"
	"holland-test/internal/domain"
)

// Session is one assessment run: one aggregator shared by one collector per trait.
type Session struct {
	ID        string
	Mode      string
	CreatedAt time.Time

	order      []domain.TraitCode
	aggregator *ScoreAggregator
	collectors map[domain.TraitCode]*ResponseCollector
}

func newSession(id, mode string, cat *catalog.Catalog, createdAt time.Time) *Session {
	s := &Session{
		ID:         id,
		Mode:       mode,
		CreatedAt:  createdAt,
		order:      cat.Order(),
		aggregator: NewScoreAggregator(),
		collectors: make(map[domain.TraitCode]*ResponseCollector),
	}
	for _, trait := range cat.Traits() {
		s.collectors[trait.Code] = NewResponseCollector(trait, s.aggregator)
	}
	return s
}

// Collector returns the collector for code.
func (s *Session) Collector(code domain.TraitCode) (*ResponseCollector, error) {
	c, ok := s.collectors[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTrait, code)
	}
	return c, nil
}

// Collectors returns every collector in catalog order.
func (s *Session) Collectors() []*ResponseCollector {
	out := make([]*ResponseCollector, 0, len(s.order))
	for _, code := range s.order {
		out = append(out, s.collectors[code])
	}
	return out
}

func (s *Session) Aggregator() *ScoreAggregator {
	return s.aggregator
}

// Ready reports whether every trait has a score.
func (s *Session) Ready() bool {
	return s.aggregator.Len() == len(s.order)
}

// Missing lists the traits without a score, in catalog order.
func (s *Session) Missing() []domain.TraitCode {
	var missing []domain.TraitCode
	for _, code := range s.order {
		if !s.aggregator.Has(code) {
			missing = append(missing, code)
		}
	}
	return missing
}

// Progress summarises collector states and readiness.
func (s *Session) Progress() domain.Progress {
	p := domain.Progress{
		SessionID:  s.ID,
		Mode:       s.Mode,
		Collectors: make(map[domain.TraitCode]domain.CollectorState, len(s.order)),
		Missing:    s.Missing(),
		Ready:      s.Ready(),
		CreatedAt:  s.CreatedAt,
	}
	for _, code := range s.order {
		p.Collectors[code] = s.collectors[code].State()
	}
	for _, entry := range s.aggregator.Snapshot() {
		p.Submitted = append(p.Submitted, entry.Code)
	}
	return p
}
