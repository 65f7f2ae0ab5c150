package models

import "strings"

// Difficulty is the word-pool tier a chat plays with
type Difficulty string

const (
	// DifficultyEasy is the default tier
	DifficultyEasy Difficulty = "easy"

	// DifficultyHard holds longer and rarer words
	DifficultyHard Difficulty = "hard"

	// DifficultyAdult holds words for grown-up groups
	DifficultyAdult Difficulty = "adult"
)

// Difficulties lists every tier in display order
var Difficulties = []Difficulty{DifficultyEasy, DifficultyHard, DifficultyAdult}

// IsValid reports whether d is one of the known tiers
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyHard, DifficultyAdult:
		return true
	}
	return false
}

// String implements fmt.Stringer
func (d Difficulty) String() string {
	return string(d)
}

// ParseDifficulty converts user input into a tier, ignoring case and surrounding spaces
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", false
	}
	return d, true
}
