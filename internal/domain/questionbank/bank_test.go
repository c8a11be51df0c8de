package questionbank_test

import (
	"testing"

	"github.com/britizen/backend/internal/domain/questionbank"
)

func TestLoad_ParsesQuestions(t *testing.T) {
	raw := []byte(`{
		"unique_questions": [
			{"question_id": 1, "topic_id": 10, "topic_name": "History", "question": "Q1"},
			{"question_id": "2", "topic_id": "10", "topic_name": "History", "question": "Q2"}
		],
		"counts": {"unique_question_count": 2, "quiz_count": 5}
	}`)

	bank, err := questionbank.Load(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bank.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(bank.Questions))
	}
	if bank.Counts.QuizCount != 5 {
		t.Errorf("expected quiz_count 5, got %d", bank.Counts.QuizCount)
	}

	// Numeric and string ids fold to the same string form.
	if bank.Questions[0].QuestionID != "1" || bank.Questions[1].QuestionID != "2" {
		t.Errorf("expected ids \"1\" and \"2\", got %q and %q",
			bank.Questions[0].QuestionID, bank.Questions[1].QuestionID)
	}
	if bank.Questions[0].TopicID != bank.Questions[1].TopicID {
		t.Error("expected numeric and string topic ids to fold together")
	}
}

func TestLoad_MissingQuestionsDegradesToEmpty(t *testing.T) {
	for _, raw := range []string{
		`{}`,
		`{"unique_questions": "not a list"}`,
		`{"unique_questions": 42}`,
	} {
		bank, err := questionbank.Load([]byte(raw))
		if err != nil {
			t.Fatalf("Load(%s): unexpected error: %v", raw, err)
		}
		if len(bank.Questions) != 0 {
			t.Errorf("Load(%s): expected empty bank, got %d questions", raw, len(bank.Questions))
		}
	}
}

func TestLoad_InvalidJSONIsAnError(t *testing.T) {
	if _, err := questionbank.Load([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func makeQuestion(qid, topicID questionbank.ID, topicName string) questionbank.Question {
	return questionbank.Question{QuestionID: qid, TopicID: topicID, TopicName: topicName}
}

func TestGroupByTopic_LargestFirst(t *testing.T) {
	questions := []questionbank.Question{
		makeQuestion("1", "a", "Small"),
		makeQuestion("2", "b", "Big"),
		makeQuestion("3", "b", "Big"),
		makeQuestion("4", "b", "Big"),
		makeQuestion("5", "c", "Medium"),
		makeQuestion("6", "c", "Medium"),
	}

	topics := questionbank.GroupByTopic(questions)

	if len(topics) != 3 {
		t.Fatalf("expected 3 topics, got %d", len(topics))
	}
	if topics[0].TopicName != "Big" || topics[1].TopicName != "Medium" || topics[2].TopicName != "Small" {
		t.Errorf("expected Big, Medium, Small; got %s, %s, %s",
			topics[0].TopicName, topics[1].TopicName, topics[2].TopicName)
	}
	if len(topics[0].Questions) != 3 {
		t.Errorf("expected 3 questions in Big, got %d", len(topics[0].Questions))
	}
}

func TestGroupByTopic_StableAmongEqualCounts(t *testing.T) {
	questions := []questionbank.Question{
		makeQuestion("1", "x", "First"),
		makeQuestion("2", "y", "Second"),
		makeQuestion("3", "x", "First"),
		makeQuestion("4", "y", "Second"),
	}

	topics := questionbank.GroupByTopic(questions)

	if topics[0].TopicName != "First" || topics[1].TopicName != "Second" {
		t.Errorf("expected first-seen order among equal counts, got %s then %s",
			topics[0].TopicName, topics[1].TopicName)
	}
}

func TestGroupByTopic_KeepsFirstSeenName(t *testing.T) {
	questions := []questionbank.Question{
		makeQuestion("1", "x", "Original"),
		makeQuestion("2", "x", "Renamed"),
	}

	topics := questionbank.GroupByTopic(questions)
	if topics[0].TopicName != "Original" {
		t.Errorf("expected first-seen topic name, got %q", topics[0].TopicName)
	}
}

func TestTopicByID(t *testing.T) {
	bank, err := questionbank.Load([]byte(`{
		"unique_questions": [{"question_id": 1, "topic_id": 7, "topic_name": "Law"}]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := bank.TopicByID("7"); !ok {
		t.Error("expected topic 7 to exist")
	}
	if _, ok := bank.TopicByID("8"); ok {
		t.Error("expected topic 8 to be absent")
	}
}
