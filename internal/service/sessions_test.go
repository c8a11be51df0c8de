package service_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/britizen/backend/internal/domain/questionbank"
	"github.com/britizen/backend/internal/domain/session"
	"github.com/britizen/backend/internal/service"
)

func testBank(topicSizes map[string]int) *questionbank.Bank {
	var questions []questionbank.Question
	for topicID, n := range topicSizes {
		for i := 0; i < n; i++ {
			questions = append(questions, questionbank.Question{
				QuestionID: questionbank.ID(fmt.Sprintf("%s-%d", topicID, i)),
				TopicID:    questionbank.ID(topicID),
				TopicName:  "Topic " + topicID,
				Question:   "prompt",
				PossibleAnswers: []questionbank.AnswerOption{
					{OptionID: "a", Text: "Right"},
					{OptionID: "b", Text: "Wrong"},
				},
				CorrectOptionIDs: []questionbank.ID{"a"},
				CorrectAnswers:   []string{"Right"},
			})
		}
	}
	return &questionbank.Bank{
		Questions: questions,
		Topics:    questionbank.GroupByTopic(questions),
	}
}

func newService(bank *questionbank.Bank) *service.SessionService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewSessionService(bank, nil, logger, nil)
}

func TestStart_TopicSessionRunsToCompletion(t *testing.T) {
	svc := newService(testBank(map[string]int{"t1": 22}))

	sessionID, view, err := svc.Start(service.StartRequest{
		Mode:       session.ModeTopic,
		AnswerMode: session.AnswerModeChoice,
		TopicID:    "t1",
		BatchSize:  25,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if view.Title != "Practice: Topic t1 | Set 1" {
		t.Errorf("title = %q", view.Title)
	}
	if view.Progress.Total != 22 {
		t.Fatalf("total = %d, want the full topic in one set", view.Progress.Total)
	}

	for i := 0; i < 22; i++ {
		if _, err := svc.SelectOption(sessionID, "a"); err != nil {
			t.Fatalf("SelectOption %d: %v", i, err)
		}
		if _, err := svc.Submit(sessionID); err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
		if view, err = svc.Next(sessionID); err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
	}

	if !view.Complete {
		t.Fatal("session should be complete after the last question")
	}
	if view.Summary != "Final score: 22/22" {
		t.Errorf("summary = %q", view.Summary)
	}
}

func TestStart_SetIndexClamped(t *testing.T) {
	svc := newService(testBank(map[string]int{"t1": 53}))

	// 53 questions chunk into sets of 25, 25, 3; an out-of-range index lands
	// on the last set.
	_, view, err := svc.Start(service.StartRequest{
		Mode:       session.ModeTopic,
		AnswerMode: session.AnswerModeChoice,
		TopicID:    "t1",
		SetIndex:   10,
		BatchSize:  25,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if view.Progress.Total != 3 {
		t.Errorf("total = %d, want the last short set", view.Progress.Total)
	}
	if view.Title != "Practice: Topic t1 | Set 3" {
		t.Errorf("title = %q", view.Title)
	}

	_, view, err = svc.Start(service.StartRequest{
		Mode:       session.ModeTopic,
		AnswerMode: session.AnswerModeChoice,
		TopicID:    "t1",
		SetIndex:   -4,
		BatchSize:  25,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if view.Title != "Practice: Topic t1 | Set 1" {
		t.Errorf("negative index must clamp to the first set, got %q", view.Title)
	}
}

func TestStart_UnknownTopic(t *testing.T) {
	svc := newService(testBank(map[string]int{"t1": 5}))

	_, _, err := svc.Start(service.StartRequest{
		Mode:       session.ModeTopic,
		AnswerMode: session.AnswerModeChoice,
		TopicID:    "missing",
		BatchSize:  25,
	})
	if !errors.Is(err, service.ErrTopicNotFound) {
		t.Fatalf("err = %v, want ErrTopicNotFound", err)
	}
}

func TestStart_UnknownMode(t *testing.T) {
	svc := newService(testBank(map[string]int{"t1": 5}))

	_, _, err := svc.Start(service.StartRequest{
		Mode:       session.Mode("marathon"),
		AnswerMode: session.AnswerModeChoice,
	})
	if !errors.Is(err, service.ErrUnknownMode) {
		t.Fatalf("err = %v, want ErrUnknownMode", err)
	}
}

func TestStart_RapidFireDrawsTen(t *testing.T) {
	svc := newService(testBank(map[string]int{"t1": 30, "t2": 30}))

	_, view, err := svc.Start(service.StartRequest{
		Mode:       session.ModeRapid,
		AnswerMode: session.AnswerModeChoice,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if view.Progress.Total != service.RapidFireCount {
		t.Errorf("total = %d, want %d", view.Progress.Total, service.RapidFireCount)
	}
	if view.Title != "Rapid Fire: 10 Random Questions" {
		t.Errorf("title = %q", view.Title)
	}
	if view.TimerText == "" {
		t.Error("rapid-fire view must carry a timer")
	}
}

func TestStart_RapidFireSmallBank(t *testing.T) {
	svc := newService(testBank(map[string]int{"t1": 4}))

	_, view, err := svc.Start(service.StartRequest{
		Mode:       session.ModeRapid,
		AnswerMode: session.AnswerModeChoice,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if view.Progress.Total != 4 {
		t.Errorf("total = %d, want every available question", view.Progress.Total)
	}
}

func TestStart_RapidFireEmptyBank(t *testing.T) {
	svc := newService(testBank(nil))

	_, _, err := svc.Start(service.StartRequest{
		Mode:       session.ModeRapid,
		AnswerMode: session.AnswerModeChoice,
	})
	if !errors.Is(err, service.ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

func TestRestart_ClearsProgress(t *testing.T) {
	svc := newService(testBank(map[string]int{"t1": 22}))

	sessionID, _, err := svc.Start(service.StartRequest{
		Mode:       session.ModeTopic,
		AnswerMode: session.AnswerModeChoice,
		TopicID:    "t1",
		BatchSize:  25,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	for i := 0; i < 3; i++ {
		svc.SelectOption(sessionID, "a")
		svc.Submit(sessionID)
		svc.Next(sessionID)
	}

	view, err := svc.Restart(sessionID)
	if err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if view.Index != 0 {
		t.Errorf("index = %d after restart, want 0", view.Index)
	}
	if view.Progress.Answered != 0 || view.Progress.Score != 0 {
		t.Errorf("restart must clear progress, got answered=%d score=%d",
			view.Progress.Answered, view.Progress.Score)
	}
	if view.Complete {
		t.Error("restarted session must not be complete")
	}

	// The id survives the restart.
	if _, err := svc.View(sessionID); err != nil {
		t.Fatalf("View after restart: %v", err)
	}
}

func TestAbandon_RemovesSession(t *testing.T) {
	svc := newService(testBank(map[string]int{"t1": 22}))

	sessionID, _, err := svc.Start(service.StartRequest{
		Mode:       session.ModeTopic,
		AnswerMode: session.AnswerModeChoice,
		TopicID:    "t1",
		BatchSize:  25,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := svc.Abandon(sessionID); err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	if _, err := svc.View(sessionID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
	if err := svc.Abandon(sessionID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Fatalf("second Abandon err = %v, want ErrSessionNotFound", err)
	}
}

func TestTransitions_UnknownSession(t *testing.T) {
	svc := newService(testBank(map[string]int{"t1": 22}))

	if _, err := svc.Submit("nope"); !errors.Is(err, service.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestNoOpTransitionsReturnSnapshot(t *testing.T) {
	svc := newService(testBank(map[string]int{"t1": 22}))

	sessionID, before, err := svc.Start(service.StartRequest{
		Mode:       session.ModeTopic,
		AnswerMode: session.AnswerModeChoice,
		TopicID:    "t1",
		BatchSize:  25,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Next without a submitted answer and Previous at the first question are
	// both no-ops; the snapshot comes back unchanged.
	after, err := svc.Next(sessionID)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if after.Index != before.Index || after.Complete {
		t.Error("next before submit must not move the session")
	}

	after, err = svc.Previous(sessionID)
	if err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if after.Index != 0 {
		t.Error("previous at the first question must not move the session")
	}
}
