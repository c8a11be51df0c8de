package grader_test

import (
	"testing"

	"github.com/britizen/backend/internal/domain/questionbank"
	"github.com/britizen/backend/internal/grader"
)

func monarchQuestion(correct ...string) questionbank.Question {
	q := questionbank.Question{
		QuestionID: "q1",
		Question:   "Which monarchs reigned?",
		PossibleAnswers: []questionbank.AnswerOption{
			{OptionID: "1", Text: "Elizabeth II"},
			{OptionID: "2", Text: "James I"},
			{OptionID: "3", Text: "Henry VIII"},
			{OptionID: "4", Text: "Queen Victoria"},
		},
	}
	for _, c := range correct {
		q.CorrectOptionIDs = append(q.CorrectOptionIDs, questionbank.ID(c))
		q.CorrectAnswers = append(q.CorrectAnswers, q.OptionText(questionbank.ID(c)))
	}
	return q
}

func TestEvaluateChoice_SetEquality(t *testing.T) {
	q := monarchQuestion("1", "2")

	tests := []struct {
		name     string
		selected []questionbank.ID
		want     bool
	}{
		{"exact order", []questionbank.ID{"1", "2"}, true},
		{"reversed order", []questionbank.ID{"2", "1"}, true},
		{"missing one", []questionbank.ID{"1"}, false},
		{"extra option", []questionbank.ID{"1", "2", "3"}, false},
		{"wrong pair", []questionbank.ID{"3", "4"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := grader.EvaluateChoice(q, tt.selected)
			if v.IsCorrect != tt.want {
				t.Errorf("IsCorrect = %v, want %v", v.IsCorrect, tt.want)
			}
		})
	}
}

func TestEvaluateChoice_Displays(t *testing.T) {
	q := monarchQuestion("1", "2")

	v := grader.EvaluateChoice(q, []questionbank.ID{"2", "3"})
	if v.UserAnswerDisplay != "James I. Henry VIII" {
		t.Errorf("user display = %q", v.UserAnswerDisplay)
	}
	if v.CorrectAnswerDisplay != "Elizabeth II. James I" {
		t.Errorf("correct display = %q", v.CorrectAnswerDisplay)
	}

	v = grader.EvaluateChoice(q, nil)
	if v.UserAnswerDisplay != "(blank)" {
		t.Errorf("empty selection display = %q", v.UserAnswerDisplay)
	}

	// Unknown ids contribute nothing to the display.
	v = grader.EvaluateChoice(q, []questionbank.ID{"99"})
	if v.UserAnswerDisplay != "(blank)" {
		t.Errorf("unknown id display = %q", v.UserAnswerDisplay)
	}
}

func TestEvaluateTyped_SingleAnswer(t *testing.T) {
	q := questionbank.Question{
		QuestionID:       "q1",
		CorrectOptionIDs: []questionbank.ID{"1"},
		CorrectAnswers:   []string{"Magna Carta"},
	}

	tests := []struct {
		name  string
		typed string
		want  bool
	}{
		{"exact", "Magna Carta", true},
		{"case insensitive", "magna carta", true},
		{"extra whitespace", "  Magna   Carta  ", true},
		{"wrong", "Bill of Rights", false},
		{"blank", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := grader.EvaluateTyped(q, tt.typed)
			if v.IsCorrect != tt.want {
				t.Errorf("EvaluateTyped(%q).IsCorrect = %v, want %v", tt.typed, v.IsCorrect, tt.want)
			}
		})
	}
}

func TestEvaluateTyped_MultiAnswer(t *testing.T) {
	q := questionbank.Question{
		QuestionID:       "q1",
		CorrectOptionIDs: []questionbank.ID{"1", "2"},
		CorrectAnswers:   []string{"Elizabeth II", "James I"},
	}

	tests := []struct {
		name  string
		typed string
		want  bool
	}{
		{"in order", "Elizabeth II. James I", true},
		{"reversed", "james i. elizabeth ii", true},
		{"trailing delimiter", "Elizabeth II. James I.", true},
		{"messy spacing", "  elizabeth   II .  JAMES I ", true},
		{"only one answer", "Elizabeth II", false},
		{"duplicate answer", "Elizabeth II. Elizabeth II", false},
		{"one wrong", "Elizabeth II. Henry VIII", false},
		{"three parts", "Elizabeth II. James I. Henry VIII", false},
		{"blank", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := grader.EvaluateTyped(q, tt.typed)
			if v.IsCorrect != tt.want {
				t.Errorf("EvaluateTyped(%q).IsCorrect = %v, want %v", tt.typed, v.IsCorrect, tt.want)
			}
		})
	}
}

func TestEvaluateTyped_Displays(t *testing.T) {
	q := questionbank.Question{
		QuestionID:       "q1",
		CorrectOptionIDs: []questionbank.ID{"1", "2"},
		CorrectAnswers:   []string{"Elizabeth II", "James I"},
	}

	v := grader.EvaluateTyped(q, "  whatever I typed  ")
	if v.UserAnswerDisplay != "whatever I typed" {
		t.Errorf("user display = %q, want the trimmed original text", v.UserAnswerDisplay)
	}
	if v.CorrectAnswerDisplay != "Elizabeth II. James I" {
		t.Errorf("correct display = %q", v.CorrectAnswerDisplay)
	}

	v = grader.EvaluateTyped(q, "")
	if v.UserAnswerDisplay != "(blank)" {
		t.Errorf("blank display = %q", v.UserAnswerDisplay)
	}
}

func TestNormalizeAnswerText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Magna Carta", "magna carta"},
		{"  MAGNA\t\tCARTA  ", "magna carta"},
		{"a  b   c", "a b c"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := grader.NormalizeAnswerText(tt.in); got != tt.want {
			t.Errorf("NormalizeAnswerText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
