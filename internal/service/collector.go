package service

import (
	"fmt"
	"sync"

	"holland-test/internal/domain"
)

// ResponseCollector gathers the answers for one trait and writes the trait
// score into a shared aggregator exactly once. It does not own the aggregator.
type ResponseCollector struct {
	trait      domain.Trait
	aggregator *ScoreAggregator

	mu         sync.Mutex
	selections []domain.Level
	touched    []bool
	state      domain.CollectorState
}

// NewResponseCollector opens a collector whose selections all start at the lowest level.
func NewResponseCollector(trait domain.Trait, aggregator *ScoreAggregator) *ResponseCollector {
	return &ResponseCollector{
		trait:      trait,
		aggregator: aggregator,
		selections: make([]domain.Level, len(trait.Statements)),
		touched:    make([]bool, len(trait.Statements)),
		state:      domain.CollectorOpen,
	}
}

func (c *ResponseCollector) Trait() domain.Trait {
	return c.trait
}

func (c *ResponseCollector) State() domain.CollectorState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Select records level for the statement at index.
func (c *ResponseCollector) Select(index int, level domain.Level) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Closed() {
		return fmt.Errorf("%w: trait %s is %s", ErrCollectorClosed, c.trait.Code, c.state)
	}
	if index < 0 || index >= len(c.selections) {
		return fmt.Errorf("%w: statement index %d out of range", ErrInvalidResponse, index)
	}
	if !level.Valid() {
		return fmt.Errorf("%w: level %d out of range", ErrInvalidResponse, level)
	}
	c.selections[index] = level
	c.touched[index] = true
	c.state = domain.CollectorAnswering
	return nil
}

// Selections returns the current level of every statement.
func (c *ResponseCollector) Selections() []domain.Level {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Level, len(c.selections))
	copy(out, c.selections)
	return out
}

// Submit sums the selections, stores the score and closes the collector.
// Statements never selected count as the lowest level.
func (c *ResponseCollector) Submit() (domain.SubmitResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Closed() {
		return domain.SubmitResult{}, fmt.Errorf("%w: trait %s is %s", ErrCollectorClosed, c.trait.Code, c.state)
	}

	res := domain.SubmitResult{Code: c.trait.Code}
	for i, level := range c.selections {
		res.Score += int(level)
		if !c.touched[i] {
			res.Defaulted++
		}
	}
	c.aggregator.Set(c.trait.Code, res.Score)
	c.state = domain.CollectorSubmitted
	return res, nil
}

// Close discards the answers without scoring. The trait stays out of the aggregate.
func (c *ResponseCollector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Closed() {
		return fmt.Errorf("%w: trait %s is %s", ErrCollectorClosed, c.trait.Code, c.state)
	}
	c.state = domain.CollectorAbandoned
	return nil
}
