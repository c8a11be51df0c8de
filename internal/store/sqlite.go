// internal/store/sqlite.go
package store

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS contexts (
    question_id TEXT PRIMARY KEY,
    topic_id TEXT NOT NULL,
    topic_name TEXT NOT NULL,
    model TEXT NOT NULL,
    context TEXT NOT NULL,
    generated_at_utc TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS failures (
    question_id TEXT PRIMARY KEY,
    topic_id TEXT NOT NULL,
    topic_name TEXT NOT NULL,
    error TEXT NOT NULL,
    attempted_at_utc TEXT NOT NULL
);
`

// ContextStore caches generated question contexts so reruns of the
// generator skip questions that already have one instead of re-paying the
// LLM call.
type ContextStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*ContextStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &ContextStore{db: db}, nil
}

func (s *ContextStore) Close() error {
	return s.db.Close()
}

// SaveContext upserts a generated context and clears any recorded failure
// for the same question.
func (s *ContextStore) SaveContext(gc GeneratedContext) error {
	_, err := s.db.Exec(`
		INSERT INTO contexts (question_id, topic_id, topic_name, model, context, generated_at_utc)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(question_id) DO UPDATE SET
			topic_id = excluded.topic_id,
			topic_name = excluded.topic_name,
			model = excluded.model,
			context = excluded.context,
			generated_at_utc = excluded.generated_at_utc`,
		gc.QuestionID, gc.TopicID, gc.TopicName, gc.Model, gc.Context,
		gc.GeneratedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}
	_, err = s.db.Exec("DELETE FROM failures WHERE question_id = ?", gc.QuestionID)
	return err
}

func (s *ContextStore) GetContext(questionID string) (GeneratedContext, error) {
	var gc GeneratedContext
	var generatedAt string
	err := s.db.QueryRow(`
		SELECT question_id, topic_id, topic_name, model, context, generated_at_utc
		FROM contexts WHERE question_id = ?`, questionID).
		Scan(&gc.QuestionID, &gc.TopicID, &gc.TopicName, &gc.Model, &gc.Context, &generatedAt)
	if err == sql.ErrNoRows {
		return GeneratedContext{}, ErrNotFound
	}
	if err != nil {
		return GeneratedContext{}, err
	}
	gc.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)
	return gc, nil
}

// HasContext reports whether a non-empty context is cached for a question.
func (s *ContextStore) HasContext(questionID string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM contexts WHERE question_id = ? AND TRIM(context) != ''",
		questionID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *ContextStore) ListContexts() ([]GeneratedContext, error) {
	rows, err := s.db.Query(`
		SELECT question_id, topic_id, topic_name, model, context, generated_at_utc
		FROM contexts ORDER BY question_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GeneratedContext
	for rows.Next() {
		var gc GeneratedContext
		var generatedAt string
		if err := rows.Scan(&gc.QuestionID, &gc.TopicID, &gc.TopicName, &gc.Model, &gc.Context, &generatedAt); err != nil {
			return nil, err
		}
		gc.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)
		out = append(out, gc)
	}
	return out, rows.Err()
}

// SaveFailure upserts the latest failed attempt for a question.
func (s *ContextStore) SaveFailure(f GenerationFailure) error {
	_, err := s.db.Exec(`
		INSERT INTO failures (question_id, topic_id, topic_name, error, attempted_at_utc)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(question_id) DO UPDATE SET
			topic_id = excluded.topic_id,
			topic_name = excluded.topic_name,
			error = excluded.error,
			attempted_at_utc = excluded.attempted_at_utc`,
		f.QuestionID, f.TopicID, f.TopicName, f.Error,
		f.AttemptedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *ContextStore) ListFailures() ([]GenerationFailure, error) {
	rows, err := s.db.Query(`
		SELECT question_id, topic_id, topic_name, error, attempted_at_utc
		FROM failures ORDER BY question_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GenerationFailure
	for rows.Next() {
		var f GenerationFailure
		var attemptedAt string
		if err := rows.Scan(&f.QuestionID, &f.TopicID, &f.TopicName, &f.Error, &attemptedAt); err != nil {
			return nil, err
		}
		f.AttemptedAt, _ = time.Parse(time.RFC3339, attemptedAt)
		out = append(out, f)
	}
	return out, rows.Err()
}
