package domain

import "strings"

// Difficulty is the closed set of difficulty levels a flashcard can carry.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DefaultCount is the number of flashcards generated when a request does not
// specify one.
const DefaultCount = 3

// MaxCount is the largest batch a single request may ask for. Requests above
// it are rejected rather than clamped.
const MaxCount = 10

// Placeholder text substituted for flashcard fields the generator left empty.
// A record is never dropped for an empty field.
const (
	FallbackQuestion = "Soru üretilemedi"
	FallbackAnswer   = "Cevap üretilemedi"
)

// Flashcard is a single generated study card. Cards are not persisted; the
// ID is unique only within one response batch (a base timestamp plus the
// card's index in the batch).
type Flashcard struct {
	ID         int64      `json:"id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Category   string     `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	Subject    string     `json:"subject"`
}

// IsValid reports whether d is one of the three enumerated levels.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// NormalizeDifficulty maps free-form generator output onto the Difficulty
// enum, defaulting to medium for anything absent or unrecognized.
func NormalizeDifficulty(s string) Difficulty {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d.IsValid() {
		return d
	}
	return DifficultyMedium
}
