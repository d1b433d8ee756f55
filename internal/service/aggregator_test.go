package service

import (
	"sync"
	"testing"

	"holland-test/internal/domain"
)

func TestScoreAggregatorSetOverwritesWithoutDuplicating(t *testing.T) {
	a := NewScoreAggregator()
	if a.Len() != 0 || len(a.Snapshot()) != 0 {
		t.Fatalf("expected empty aggregator")
	}

	a.Set(domain.TraitSocial, 4)
	a.Set(domain.TraitRealistic, 7)
	a.Set(domain.TraitSocial, 9)

	snap := a.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(snap))
	}
	if snap[0].Code != domain.TraitSocial || snap[0].Score != 9 {
		t.Fatalf("expected overwrite to keep first insertion slot, got %+v", snap[0])
	}
	if snap[1].Code != domain.TraitRealistic || snap[1].Score != 7 {
		t.Fatalf("unexpected second entry %+v", snap[1])
	}
	if !a.Has(domain.TraitSocial) || a.Has(domain.TraitArtistic) {
		t.Fatalf("unexpected Has results")
	}
}

func TestScoreAggregatorSnapshotIsACopy(t *testing.T) {
	a := NewScoreAggregator()
	a.Set(domain.TraitArtistic, 3)
	snap := a.Snapshot()
	snap[0].Score = 12
	if got := a.Snapshot()[0].Score; got != 3 {
		t.Fatalf("expected snapshot mutation not to leak, got %d", got)
	}
}

func TestScoreAggregatorConcurrentWriters(t *testing.T) {
	a := NewScoreAggregator()
	var wg sync.WaitGroup
	for _, code := range domain.CanonicalOrder {
		wg.Add(1)
		go func(code domain.TraitCode) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				a.Set(code, i%13)
				_ = a.Snapshot()
			}
		}(code)
	}
	wg.Wait()
	if a.Len() != 6 {
		t.Fatalf("expected 6 entries, got %d", a.Len())
	}
}
