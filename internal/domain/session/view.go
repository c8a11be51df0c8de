package session

import (
	"fmt"

	"github.com/britizen/backend/internal/domain/questionbank"
)

// OptionView is one answer option with its render flags. Correct and Wrong
// are only revealed once the current record is submitted.
type OptionView struct {
	OptionID questionbank.ID `json:"option_id"`
	Text     string          `json:"text"`
	Selected bool            `json:"selected"`
	Correct  bool            `json:"correct"`
	Wrong    bool            `json:"wrong"`
}

// QuestionView is the current question as the renderer needs it.
type QuestionView struct {
	QuestionID  questionbank.ID `json:"question_id"`
	Prompt      string          `json:"prompt"`
	TypeText    string          `json:"type_text"`
	MultiSelect bool            `json:"multi_select"`
	Options     []OptionView    `json:"options"`
	TypedAnswer string          `json:"typed_answer"`
}

// FeedbackView is the feedback panel for a submitted record.
type FeedbackView struct {
	IsCorrect     bool   `json:"is_correct"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
	Context       string `json:"context"`
}

// PreviousView summarizes the most recent submitted question behind the
// current one.
type PreviousView struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// ProgressView carries the derived progress numbers.
type ProgressView struct {
	Current   int `json:"current"`
	Total     int `json:"total"`
	Answered  int `json:"answered"`
	Score     int `json:"score"`
	Remaining int `json:"remaining"`
	Percent   int `json:"percent"`
}

// View is the read-only snapshot exposed after every state change: enough
// for a renderer to draw the session without touching engine internals.
type View struct {
	Mode        Mode          `json:"mode"`
	AnswerMode  AnswerMode    `json:"answer_mode"`
	Title       string        `json:"title"`
	Pill        string        `json:"pill"`
	Index       int           `json:"index"`
	Complete    bool          `json:"complete"`
	Question    *QuestionView `json:"question,omitempty"`
	Summary     string        `json:"summary,omitempty"`
	Progress    ProgressView  `json:"progress"`
	Feedback    *FeedbackView `json:"feedback,omitempty"`
	Previous    *PreviousView `json:"previous,omitempty"`
	TimerText   string        `json:"timer_text,omitempty"`
	CanSubmit   bool          `json:"can_submit"`
	CanNext     bool          `json:"can_next"`
	CanPrevious bool          `json:"can_previous"`
}

// View builds the snapshot for the engine's current state.
func (e *Engine) View() View {
	v := View{
		Mode:       e.mode,
		AnswerMode: e.answerMode,
		Title:      e.title,
		Pill:       e.pill,
		Index:      e.index,
		Complete:   e.complete,
		Progress:   e.progress(),
		Previous:   e.previousView(),
	}
	if e.mode == ModeRapid {
		v.TimerText = FormatDuration(e.Elapsed())
	}

	if e.complete {
		v.Summary = fmt.Sprintf("Final score: %d/%d", e.Score(), len(e.questions))
		if e.mode == ModeRapid {
			v.Summary += " | Time: " + FormatDuration(e.Elapsed())
		}
		v.CanPrevious = len(e.questions) > 0
		return v
	}

	q, _ := e.currentQuestion()
	r := e.record(e.index)

	v.Question = e.questionView(q, r)
	if r.Submitted {
		v.Feedback = &FeedbackView{
			IsCorrect:     r.IsCorrect,
			UserAnswer:    r.UserAnswerDisplay,
			CorrectAnswer: r.CorrectAnswerDisplay,
			Explanation:   q.Explanation,
			Context:       e.contexts.Lookup(q.QuestionID),
		}
	}

	v.CanSubmit = !r.Submitted && e.hasDraft(r)
	v.CanNext = r.Submitted
	v.CanPrevious = e.index > 0
	return v
}

func (e *Engine) questionView(q questionbank.Question, r *AnswerRecord) *QuestionView {
	selected := make(map[questionbank.ID]bool, len(r.SelectedOptionIDs))
	for _, id := range r.SelectedOptionIDs {
		selected[id] = true
	}
	correct := make(map[questionbank.ID]bool, len(q.CorrectOptionIDs))
	for _, id := range q.CorrectOptionIDs {
		correct[id] = true
	}

	options := make([]OptionView, len(q.PossibleAnswers))
	for i, opt := range q.PossibleAnswers {
		options[i] = OptionView{
			OptionID: opt.OptionID,
			Text:     opt.Text,
			Selected: selected[opt.OptionID],
		}
		if r.Submitted {
			options[i].Correct = correct[opt.OptionID]
			options[i].Wrong = selected[opt.OptionID] && !correct[opt.OptionID]
		}
	}

	return &QuestionView{
		QuestionID:  q.QuestionID,
		Prompt:      q.Question,
		TypeText:    e.questionTypeText(q.IsMultiSelect()),
		MultiSelect: q.IsMultiSelect(),
		Options:     options,
		TypedAnswer: r.TypedAnswer,
	}
}

func (e *Engine) questionTypeText(multi bool) string {
	if e.answerMode == AnswerModeTyped {
		if multi {
			return "Type both answers exactly and separate with a full stop"
		}
		return "Type the exact answer (case-insensitive)"
	}
	if multi {
		return "Select two answers"
	}
	return "Select one answer"
}

// progress derives the display numbers. The percentage tracks answered
// questions, not position, and is clamped to [0,100].
func (e *Engine) progress() ProgressView {
	total := len(e.questions)
	answered := e.Answered()

	current := e.index + 1
	if e.complete {
		current = total
	} else if current > total {
		current = total
	}

	safeTotal := total
	if safeTotal == 0 {
		safeTotal = 1
	}
	percent := (answered*100 + safeTotal/2) / safeTotal
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return ProgressView{
		Current:   current,
		Total:     total,
		Answered:  answered,
		Score:     e.Score(),
		Remaining: max(0, total-answered),
		Percent:   percent,
	}
}

// previousView reports the question just behind the current index (or the
// last question once complete), but only if it was submitted.
func (e *Engine) previousView() *PreviousView {
	prev := e.index - 1
	if e.complete && e.index >= len(e.questions) {
		prev = len(e.questions) - 1
	}
	if prev < 0 || prev >= len(e.questions) {
		return nil
	}
	r, ok := e.records[prev]
	if !ok || !r.Submitted {
		return nil
	}
	return &PreviousView{
		Question:      e.questions[prev].Question,
		UserAnswer:    r.UserAnswerDisplay,
		CorrectAnswer: r.CorrectAnswerDisplay,
		IsCorrect:     r.IsCorrect,
	}
}
