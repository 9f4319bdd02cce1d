package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/businessfurkan/eylulakademi-api/internal/domain"
)

// rawCard is the loosely-typed shape of a single element in the generated
// array. Every field is optional; Normalize fills the gaps.
type rawCard struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Subject    string `json:"subject"`
}

// Normalize coerces the assistant's raw text into a bounded batch of
// flashcards. The parse is staged: the text is tried as-is, then with code
// fences stripped, then with the outermost bracketed segment extracted.
// Instruction-following models reliably wrap JSON in prose or fences despite
// explicit formatting instructions, so a rigid single-attempt parse would
// fail most real responses.
//
// The batch is truncated to at most requestedCount elements; fewer elements
// than requested are accepted silently. Missing or empty question/answer
// fields get fixed placeholder text, category defaults to fallbackTopic,
// subject to fallbackSubject, and difficulty to medium.
//
// Errors are ErrParseFailed or ErrShapeMismatch, never both: valid JSON that
// is not an array is a shape mismatch at whichever stage it surfaces.
func Normalize(rawText string, requestedCount int, fallbackTopic, fallbackSubject string) ([]domain.Flashcard, error) {
	text := strings.TrimSpace(rawText)

	elems, err := decodeElements(text)
	if errors.Is(err, ErrParseFailed) {
		elems, err = decodeElements(stripCodeFences(text))
	}
	if errors.Is(err, ErrParseFailed) {
		if segment, ok := bracketedSegment(text); ok {
			elems, err = decodeElements(segment)
		}
	}
	if err != nil {
		return nil, err
	}

	// Never pad: the upstream may return more cards than asked, but fewer is
	// reflected in the response's actual count, not treated as an error.
	if len(elems) > requestedCount {
		elems = elems[:requestedCount]
	}

	base := time.Now().UnixMilli()
	cards := make([]domain.Flashcard, 0, len(elems))
	for i, elem := range elems {
		var rc rawCard
		// Non-object elements fall back wholesale to the defaults below.
		_ = json.Unmarshal(elem, &rc)

		cards = append(cards, domain.Flashcard{
			ID:         base + int64(i),
			Question:   stringOr(rc.Question, domain.FallbackQuestion),
			Answer:     stringOr(rc.Answer, domain.FallbackAnswer),
			Category:   stringOr(rc.Category, fallbackTopic),
			Difficulty: domain.NormalizeDifficulty(rc.Difficulty),
			Subject:    stringOr(rc.Subject, fallbackSubject),
		})
	}

	return cards, nil
}

// decodeElements parses text as a JSON array of arbitrary elements. It
// distinguishes text that is not JSON at all (ErrParseFailed) from valid
// JSON whose top level is not an array (ErrShapeMismatch).
func decodeElements(text string) ([]json.RawMessage, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elems); err == nil {
		return elems, nil
	}

	var probe any
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	return nil, fmt.Errorf("%w: top-level value is %T", ErrShapeMismatch, probe)
}

// stripCodeFences removes a leading triple-backtick fence (with an optional
// language tag such as ```json) and the matching trailing fence. Text
// without fences is returned trimmed but otherwise untouched.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop the language tag occupying the rest of the fence line.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// bracketedSegment extracts the outermost [...] span from text that wraps
// its array in leading or trailing prose.
func bracketedSegment(s string) (string, bool) {
	start := strings.IndexByte(s, '[')
	end := strings.LastIndexByte(s, ']')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func stringOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
