package grader

import (
	"regexp"
	"strings"

	"github.com/britizen/backend/internal/domain/questionbank"
)

// Verdict is the outcome of evaluating one submitted answer. Both display
// strings are ready for the feedback panel; the correct answer always joins
// the expected answers with ". ".
type Verdict struct {
	IsCorrect            bool
	UserAnswerDisplay    string
	CorrectAnswerDisplay string
}

const blankDisplay = "(blank)"

// answerJoin separates answer texts in display strings and splits typed
// multi-answer submissions.
const answerJoin = ". "

// EvaluateChoice judges a choice-mode submission. Correct iff the selected
// option ids equal the question's correct ids as sets. Order is irrelevant
// and there is no partial credit.
func EvaluateChoice(q questionbank.Question, selected []questionbank.ID) Verdict {
	return Verdict{
		IsCorrect:            equalIDSets(q.CorrectOptionIDs, selected),
		UserAnswerDisplay:    formatChoiceAnswer(q, selected),
		CorrectAnswerDisplay: strings.Join(q.CorrectAnswers, answerJoin),
	}
}

// EvaluateTyped judges a typed-mode submission. Single-answer questions
// require normalized equality with the one expected answer. Multi-answer
// questions split the submission on "." and require the normalized parts to
// match the normalized expected answers as equal-cardinality sets; the
// cardinality check runs before duplicates collapse, so typing the same
// answer twice never passes.
func EvaluateTyped(q questionbank.Question, typed string) Verdict {
	multi := q.IsMultiSelect()
	parts := normalizeAll(parseTypedParts(typed, multi))
	expected := normalizeAll(q.CorrectAnswers)

	correct := false
	if multi {
		correct = len(parts) == len(expected) && equalStringSets(parts, expected)
	} else {
		correct = len(parts) == 1 && len(expected) > 0 && parts[0] == expected[0]
	}

	display := strings.TrimSpace(typed)
	if display == "" {
		display = blankDisplay
	}
	return Verdict{
		IsCorrect:            correct,
		UserAnswerDisplay:    display,
		CorrectAnswerDisplay: strings.Join(q.CorrectAnswers, answerJoin),
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeAnswerText lowercases, collapses internal whitespace runs to one
// space, and trims.
func NormalizeAnswerText(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(strings.ToLower(s), " "))
}

// parseTypedParts splits a typed submission into its answer parts. Single
// answer submissions are one part; multi-answer submissions split on the
// literal "." delimiter, dropping blank parts.
func parseTypedParts(input string, multi bool) []string {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return nil
	}
	if !multi {
		return []string{raw}
	}

	var parts []string
	for _, p := range strings.Split(raw, ".") {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func normalizeAll(in []string) []string {
	var out []string
	for _, s := range in {
		if n := NormalizeAnswerText(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func formatChoiceAnswer(q questionbank.Question, selected []questionbank.ID) string {
	var parts []string
	for _, id := range selected {
		if text := q.OptionText(id); strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return blankDisplay
	}
	return strings.Join(parts, answerJoin)
}

func equalIDSets(a, b []questionbank.ID) bool {
	as := make(map[questionbank.ID]struct{}, len(a))
	for _, id := range a {
		as[id] = struct{}{}
	}
	bs := make(map[questionbank.ID]struct{}, len(b))
	for _, id := range b {
		bs[id] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for id := range as {
		if _, ok := bs[id]; !ok {
			return false
		}
	}
	return true
}

func equalStringSets(a, b []string) bool {
	as := make(map[string]struct{}, len(a))
	for _, s := range a {
		as[s] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	for _, s := range b {
		bs[s] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for s := range as {
		if _, ok := bs[s]; !ok {
			return false
		}
	}
	return true
}
