package contextgen

import (
	"encoding/json"
	"os"
	"time"

	"github.com/britizen/backend/internal/store"
)

// Document is the context file consumed by the practice server: a contexts
// mapping keyed by question id, plus per-question error records and some
// provenance metadata.
type Document struct {
	Meta     Meta                  `json:"meta"`
	Contexts map[string]Entry      `json:"contexts"`
	Errors   map[string]ErrorEntry `json:"errors"`
}

type Meta struct {
	GeneratedAtUTC string `json:"generated_at_utc"`
	Generator      string `json:"generator"`
	Method         string `json:"method"`
	Model          string `json:"model"`
}

type Entry struct {
	QuestionID     string `json:"question_id"`
	TopicID        string `json:"topic_id"`
	TopicName      string `json:"topic_name"`
	Model          string `json:"model"`
	GeneratedAtUTC string `json:"generated_at_utc"`
	Context        string `json:"context"`
}

type ErrorEntry struct {
	QuestionID     string `json:"question_id"`
	TopicID        string `json:"topic_id"`
	TopicName      string `json:"topic_name"`
	Error          string `json:"error"`
	AttemptedAtUTC string `json:"attempted_at_utc"`
}

// BuildDocument assembles the export document from everything cached in the
// store.
func BuildDocument(s *store.ContextStore, model string) (Document, error) {
	contexts, err := s.ListContexts()
	if err != nil {
		return Document{}, err
	}
	failures, err := s.ListFailures()
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		Meta: Meta{
			GeneratedAtUTC: time.Now().UTC().Format("2006-01-02T15:04:05Z"),
			Generator:      "cmd/contextgen",
			Method:         "OpenAI-compatible chat completion",
			Model:          model,
		},
		Contexts: make(map[string]Entry, len(contexts)),
		Errors:   make(map[string]ErrorEntry, len(failures)),
	}

	for _, gc := range contexts {
		doc.Contexts[gc.QuestionID] = Entry{
			QuestionID:     gc.QuestionID,
			TopicID:        gc.TopicID,
			TopicName:      gc.TopicName,
			Model:          gc.Model,
			GeneratedAtUTC: gc.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
			Context:        gc.Context,
		}
	}
	for _, f := range failures {
		doc.Errors[f.QuestionID] = ErrorEntry{
			QuestionID:     f.QuestionID,
			TopicID:        f.TopicID,
			TopicName:      f.TopicName,
			Error:          f.Error,
			AttemptedAtUTC: f.AttemptedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	return doc, nil
}

// WriteFile writes the document as indented JSON.
func (d Document) WriteFile(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
