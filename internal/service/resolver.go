package service

import (
	"fmt"
	"strings"

	"holland-test/internal/domain"
)

// ResolveDominant returns the entry with the highest score. Ties go to the
// code that appears first in order; codes missing from order are considered
// after it, in snapshot order.
func ResolveDominant(snapshot []domain.TraitScore, order []domain.TraitCode) (domain.TraitScore, error) {
	if len(snapshot) == 0 {
		return domain.TraitScore{}, ErrIncompleteAggregate
	}
	ordered := orderScores(snapshot, order)
	best := ordered[0]
	for _, s := range ordered[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best, nil
}

// BuildReport formats the summary for the dominant trait.
func BuildReport(trait domain.Trait, score int) domain.Report {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Your Holland Personality Type is: %s\n", trait.Name))
	b.WriteString(fmt.Sprintf("Description: %s\n\n", trait.Description))
	b.WriteString("Recommended Careers:\n")
	b.WriteString(strings.Join(trait.Careers, "\n"))

	return domain.Report{
		Dominant:    trait.Code,
		Name:        trait.Name,
		Description: trait.Description,
		Careers:     append([]string(nil), trait.Careers...),
		Score:       score,
		Text:        b.String(),
	}
}

func orderScores(snapshot []domain.TraitScore, order []domain.TraitCode) []domain.TraitScore {
	byCode := make(map[domain.TraitCode]int, len(snapshot))
	for _, s := range snapshot {
		byCode[s.Code] = s.Score
	}
	out := make([]domain.TraitScore, 0, len(snapshot))
	seen := make(map[domain.TraitCode]struct{}, len(snapshot))
	for _, code := range order {
		score, ok := byCode[code]
		if !ok {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, domain.TraitScore{Code: code, Score: score})
	}
	for _, s := range snapshot {
		if _, ok := seen[s.Code]; ok {
			continue
		}
		seen[s.Code] = struct{}{}
		out = append(out, domain.TraitScore{Code: s.Code, Score: byCode[s.Code]})
	}
	return out
}
