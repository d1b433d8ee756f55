package service

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"holland-test/internal/domain"
)

func scenarioSnapshot() []domain.TraitScore {
	return []domain.TraitScore{
		{Code: domain.TraitRealistic, Score: 10},
		{Code: domain.TraitInvestigative, Score: 3},
		{Code: domain.TraitArtistic, Score: 5},
		{Code: domain.TraitSocial, Score: 8},
		{Code: domain.TraitEnterprising, Score: 2},
		{Code: domain.TraitConventional, Score: 1},
	}
}

func TestComputeDistributionScenario(t *testing.T) {
	dist, err := ComputeDistribution(scenarioSnapshot(), domain.CanonicalOrder, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if dist.Total != 29 {
		t.Fatalf("expected total 29, got %d", dist.Total)
	}
	if len(dist.Slices) != 6 {
		t.Fatalf("expected 6 slices, got %d", len(dist.Slices))
	}
	r := dist.Slices[0]
	if r.Code != domain.TraitRealistic || r.Name != "R" {
		t.Fatalf("expected R slice first named by code, got %+v", r)
	}
	if got := fmt.Sprintf("%.1f", r.Percentage); got != "34.5" {
		t.Fatalf("expected R share 34.5, got %s", got)
	}

	sum := 0.0
	for _, s := range dist.Slices {
		sum += s.Percentage
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("expected percentages to sum to 100, got %v", sum)
	}
}

func TestComputeDistributionFollowsOrder(t *testing.T) {
	snap := []domain.TraitScore{
		{Code: domain.TraitConventional, Score: 2},
		{Code: domain.TraitArtistic, Score: 2},
	}
	names := map[domain.TraitCode]string{domain.TraitArtistic: "Artistic", domain.TraitConventional: "Conventional"}
	dist, err := ComputeDistribution(snap, domain.CanonicalOrder, func(c domain.TraitCode) string { return names[c] })
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if dist.Slices[0].Name != "Artistic" || dist.Slices[1].Name != "Conventional" {
		t.Fatalf("expected catalog order, got %+v", dist.Slices)
	}
	if dist.Slices[0].Percentage != 50 {
		t.Fatalf("expected 50%%, got %v", dist.Slices[0].Percentage)
	}
}

func TestComputeDistributionRejectsEmptyAndZeroTotals(t *testing.T) {
	if _, err := ComputeDistribution(nil, domain.CanonicalOrder, nil); !errors.Is(err, ErrIncompleteAggregate) {
		t.Fatalf("expected ErrIncompleteAggregate, got %v", err)
	}
	zeros := []domain.TraitScore{{Code: domain.TraitRealistic}, {Code: domain.TraitSocial}}
	if _, err := ComputeDistribution(zeros, domain.CanonicalOrder, nil); !errors.Is(err, ErrZeroTotal) {
		t.Fatalf("expected ErrZeroTotal, got %v", err)
	}
}
