package store

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// GeneratedContext is one cached learner-context entry.
type GeneratedContext struct {
	QuestionID  string
	TopicID     string
	TopicName   string
	Model       string
	Context     string
	GeneratedAt time.Time
}

// GenerationFailure records the most recent failed attempt for a question.
type GenerationFailure struct {
	QuestionID  string
	TopicID     string
	TopicName   string
	Error       string
	AttemptedAt time.Time
}
