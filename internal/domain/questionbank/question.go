package questionbank

import "encoding/json"

// ID is an identifier coming from the export JSON. The exporter is not
// consistent about types (question and option ids show up as both numbers
// and strings), so every id is folded to its string form on decode.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// AnswerOption is one selectable answer of a question.
type AnswerOption struct {
	OptionID ID     `json:"option_id"`
	Text     string `json:"text"`
}

// Question is a single entry of the exported question bank.
// Questions are immutable once loaded; sessions hold references, never copies
// of the option or answer slices.
type Question struct {
	QuestionID       ID             `json:"question_id"`
	TopicID          ID             `json:"topic_id"`
	TopicName        string         `json:"topic_name"`
	Question         string         `json:"question"`
	PossibleAnswers  []AnswerOption `json:"possible_answers"`
	CorrectOptionIDs []ID           `json:"correct_option_ids"`
	CorrectAnswers   []string       `json:"correct_answers"`
	Explanation      string         `json:"explanation"`
	SourceQuizSlugs  []string       `json:"source_quiz_slugs"`
}

// IsMultiSelect reports whether the question expects more than one option.
func (q Question) IsMultiSelect() bool {
	return len(q.CorrectOptionIDs) > 1
}

// OptionText returns the display text for an option id, or "" if the id is
// not one of the question's options.
func (q Question) OptionText(id ID) string {
	for _, opt := range q.PossibleAnswers {
		if opt.OptionID == id {
			return opt.Text
		}
	}
	return ""
}
