package session

import (
	"strings"
	"time"

	"github.com/britizen/backend/internal/domain/questionbank"
	"github.com/britizen/backend/internal/grader"
)

// Mode distinguishes a topic set run from a rapid-fire run.
type Mode string

const (
	ModeTopic Mode = "topic"
	ModeRapid Mode = "rapid"
)

// AnswerMode is the submission modality, fixed at session start.
type AnswerMode string

const (
	AnswerModeChoice AnswerMode = "choice"
	AnswerModeTyped  AnswerMode = "typed"
)

// AnswerRecord is the per-question-index answer state: a mutable draft until
// Submit freezes it. Records are created lazily and never deleted within a
// session.
type AnswerRecord struct {
	SelectedOptionIDs    []questionbank.ID
	TypedAnswer          string
	Submitted            bool
	IsCorrect            bool
	UserAnswerDisplay    string
	CorrectAnswerDisplay string
}

// Config describes one session at start time.
type Config struct {
	Mode       Mode
	AnswerMode AnswerMode
	Title      string
	Pill       string
	Questions  []questionbank.Question
	Contexts   questionbank.ContextIndex
	Clock      func() time.Time // nil means time.Now; tests inject a fake
}

// Engine is the state machine for one practice session. It is not safe for
// concurrent use; callers serialize access to a given engine.
//
// Invalid transitions (submit with an empty draft, next before submit,
// previous at index zero) are silent no-ops: they correspond to clicks on
// actions a renderer should have disabled, and the engine defends against
// them rather than erroring.
type Engine struct {
	mode       Mode
	answerMode AnswerMode
	title      string
	pill       string
	questions  []questionbank.Question
	contexts   questionbank.ContextIndex
	index      int
	records    map[int]*AnswerRecord
	complete   bool
	timer      *Timer
}

// New creates an engine positioned at the first question. Rapid-fire
// sessions start their timer immediately.
func New(cfg Config) *Engine {
	e := &Engine{
		mode:       cfg.Mode,
		answerMode: cfg.AnswerMode,
		title:      cfg.Title,
		pill:       cfg.Pill,
		questions:  cfg.Questions,
		contexts:   cfg.Contexts,
		records:    make(map[int]*AnswerRecord),
		timer:      NewTimer(cfg.Clock),
	}
	if len(e.questions) == 0 {
		e.complete = true
	} else if e.mode == ModeRapid {
		e.timer.Start()
	}
	return e
}

// record returns the answer record for an index, creating it on first use.
func (e *Engine) record(index int) *AnswerRecord {
	r, ok := e.records[index]
	if !ok {
		r = &AnswerRecord{}
		e.records[index] = r
	}
	return r
}

func (e *Engine) currentQuestion() (questionbank.Question, bool) {
	if e.index < 0 || e.index >= len(e.questions) {
		return questionbank.Question{}, false
	}
	return e.questions[e.index], true
}

// SelectOption updates the choice draft for the current question: toggles
// the option on multi-select questions, replaces the selection otherwise.
// No-op after submit, outside choice mode, or once complete.
func (e *Engine) SelectOption(id questionbank.ID) {
	q, ok := e.currentQuestion()
	if !ok || e.complete || e.answerMode != AnswerModeChoice {
		return
	}
	r := e.record(e.index)
	if r.Submitted {
		return
	}

	if !q.IsMultiSelect() {
		r.SelectedOptionIDs = []questionbank.ID{id}
		return
	}
	for i, existing := range r.SelectedOptionIDs {
		if existing == id {
			r.SelectedOptionIDs = append(r.SelectedOptionIDs[:i], r.SelectedOptionIDs[i+1:]...)
			return
		}
	}
	r.SelectedOptionIDs = append(r.SelectedOptionIDs, id)
}

// SetTypedAnswer updates the typed draft for the current question. No-op
// after submit, outside typed mode, or once complete.
func (e *Engine) SetTypedAnswer(text string) {
	if _, ok := e.currentQuestion(); !ok || e.complete || e.answerMode != AnswerModeTyped {
		return
	}
	r := e.record(e.index)
	if r.Submitted {
		return
	}
	r.TypedAnswer = text
}

// hasDraft reports whether the record holds a submittable draft for the
// session's answer mode.
func (e *Engine) hasDraft(r *AnswerRecord) bool {
	if e.answerMode == AnswerModeTyped {
		return strings.TrimSpace(r.TypedAnswer) != ""
	}
	return len(r.SelectedOptionIDs) > 0
}

// Submit evaluates and freezes the current draft. Only valid while the
// current record is unsubmitted and the draft is non-empty.
func (e *Engine) Submit() {
	q, ok := e.currentQuestion()
	if !ok || e.complete {
		return
	}
	r := e.record(e.index)
	if r.Submitted || !e.hasDraft(r) {
		return
	}

	var verdict grader.Verdict
	if e.answerMode == AnswerModeTyped {
		verdict = grader.EvaluateTyped(q, r.TypedAnswer)
	} else {
		verdict = grader.EvaluateChoice(q, r.SelectedOptionIDs)
	}

	r.Submitted = true
	r.IsCorrect = verdict.IsCorrect
	r.UserAnswerDisplay = verdict.UserAnswerDisplay
	r.CorrectAnswerDisplay = verdict.CorrectAnswerDisplay
}

// Next advances past a submitted question. Advancing past the last question
// completes the session and stops the timer.
func (e *Engine) Next() {
	if e.complete {
		return
	}
	r := e.record(e.index)
	if !r.Submitted {
		return
	}

	e.index++
	if e.index >= len(e.questions) {
		e.complete = true
		e.timer.Stop()
	}
}

// Previous steps back one question. From the completed state it instead
// re-enters the last question, a one-way recovery that never alters the
// stored records or the derived score.
func (e *Engine) Previous() {
	if e.complete && e.index >= len(e.questions) {
		if len(e.questions) == 0 {
			return
		}
		e.index = len(e.questions) - 1
		e.complete = false
		return
	}
	if e.index <= 0 {
		return
	}
	e.index--
}

// Score counts submitted correct answers. Always derived from the records,
// never incremented, so it cannot drift.
func (e *Engine) Score() int {
	n := 0
	for _, r := range e.records {
		if r.Submitted && r.IsCorrect {
			n++
		}
	}
	return n
}

// Answered counts submitted answers.
func (e *Engine) Answered() int {
	n := 0
	for _, r := range e.records {
		if r.Submitted {
			n++
		}
	}
	return n
}

// Complete reports whether the engine is in the completed state.
func (e *Engine) Complete() bool {
	return e.complete
}

// Index returns the current question index.
func (e *Engine) Index() int {
	return e.index
}

// Elapsed returns the timer value; only meaningful in rapid mode.
func (e *Engine) Elapsed() time.Duration {
	return e.timer.Elapsed()
}

// StopTimer freezes the timer, used when the session is abandoned.
func (e *Engine) StopTimer() {
	e.timer.Stop()
}
