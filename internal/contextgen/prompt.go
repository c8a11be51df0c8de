package contextgen

import (
	"fmt"
	"strings"

	"github.com/britizen/backend/internal/domain/questionbank"
)

// buildContextPrompt asks for short, learner-friendly context on one
// question. Kept directive and under-spec'd on format so small (4-8B)
// models keep the output plain text rather than drifting into markdown
// tables or JSON.
func buildContextPrompt(q questionbank.Question) string {
	var options []string
	for i, opt := range q.PossibleAnswers {
		options = append(options, fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(opt.Text)))
	}

	pickHint := "This is single-answer MCQ."
	if q.IsMultiSelect() {
		pickHint = "This is multi-select (two answers)."
	}

	var b strings.Builder
	b.WriteString("Create concise learning context for a UK citizenship practice question.\n\n")
	fmt.Fprintf(&b, "Question ID: %s\n", q.QuestionID)
	fmt.Fprintf(&b, "Topic: %s\n", strings.TrimSpace(q.TopicName))
	b.WriteString(pickHint + "\n")
	fmt.Fprintf(&b, "Question: %s\n\n", strings.TrimSpace(q.Question))
	b.WriteString("Options:\n")
	b.WriteString(strings.Join(options, "\n"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Correct answer(s): %s\n", strings.Join(q.CorrectAnswers, ", "))
	b.WriteString("Official explanation:\n")
	b.WriteString(strings.TrimSpace(q.Explanation))
	b.WriteString("\n\n")
	b.WriteString("Write a learner-friendly context in plain text:\n")
	b.WriteString("- 2-4 short bullet points.\n")
	b.WriteString("- Explain why the correct answer(s) are right.\n")
	b.WriteString("- Mention one common confusion to avoid.\n")
	b.WriteString("- Add one memory hook.\n")
	b.WriteString("Keep it under 130 words.")
	return b.String()
}
