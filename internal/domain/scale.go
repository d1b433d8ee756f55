package domain

import (
	"strconv"
	"strings"
)

// Level is one answer on the agreement scale.
type Level int

const (
	LevelStronglyDisagree Level = iota
	LevelDisagree
	LevelNeutral
	LevelAgree
	LevelStronglyAgree
)

const (
	MinLevel = LevelStronglyDisagree
	MaxLevel = LevelStronglyAgree

	// MaxTraitScore is the highest sum a single trait can reach.
	MaxTraitScore = int(MaxLevel) * StatementsPerTrait
)

var scaleLabels = []string{
	"Strongly Disagree",
	"Disagree",
	"Neutral",
	"Agree",
	"Strongly Agree",
}

// ScaleLabels returns the option labels ordered by level.
func ScaleLabels() []string {
	out := make([]string, len(scaleLabels))
	copy(out, scaleLabels)
	return out
}

func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

func (l Level) String() string {
	if !l.Valid() {
		return "Unknown"
	}
	return scaleLabels[l]
}

// ParseLevel reads a level from its number (0-4) or its label, ignoring case
// and surrounding spaces.
func ParseLevel(raw string) (Level, bool) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		l := Level(n)
		return l, l.Valid()
	}
	for i, label := range scaleLabels {
		if strings.EqualFold(raw, label) {
			return Level(i), true
		}
	}
	return 0, false
}
