package service

import (
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/britizen/backend/internal/domain/practiceset"
	"github.com/britizen/backend/internal/domain/questionbank"
	"github.com/britizen/backend/internal/domain/session"
	"github.com/britizen/backend/internal/id"
)

// RapidFireCount is the fixed size of a rapid-fire draw.
const RapidFireCount = 10

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTopicNotFound   = errors.New("topic not found")
	ErrNoQuestions     = errors.New("no questions available")
	ErrUnknownMode     = errors.New("unknown session mode")
)

// StartRequest captures one session-start request. It is kept verbatim so
// Restart can re-run it; a rapid restart re-draws, a topic restart replays
// the same topic and set with a fresh shuffle when enabled.
type StartRequest struct {
	Mode       session.Mode
	AnswerMode session.AnswerMode
	TopicID    questionbank.ID
	SetIndex   int
	BatchSize  float64
	Shuffle    bool
}

// liveSession pairs an engine with the request that created it. The mutex
// serializes every mutation of the engine: the engine itself is single
// threaded by design, so all access from handler goroutines funnels through
// here.
type liveSession struct {
	mu     sync.Mutex
	engine *session.Engine
	start  StartRequest
}

// SessionService owns the loaded bank and every live session.
type SessionService struct {
	bank     *questionbank.Bank
	contexts questionbank.ContextIndex
	logger   *slog.Logger
	clock    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

// NewSessionService creates a SessionService. A nil clock means time.Now.
func NewSessionService(bank *questionbank.Bank, contexts questionbank.ContextIndex, logger *slog.Logger, clock func() time.Time) *SessionService {
	return &SessionService{
		bank:     bank,
		contexts: contexts,
		logger:   logger,
		clock:    clock,
		sessions: make(map[string]*liveSession),
	}
}

// Start begins a new session and returns its id plus the first snapshot.
func (s *SessionService) Start(req StartRequest) (string, session.View, error) {
	engine, err := s.build(req)
	if err != nil {
		return "", session.View{}, err
	}

	sessionID := id.GenerateID()
	s.mu.Lock()
	s.sessions[sessionID] = &liveSession{engine: engine, start: req}
	s.mu.Unlock()

	s.logger.Info("session started",
		"session_id", sessionID,
		"mode", req.Mode,
		"answer_mode", req.AnswerMode,
	)
	return sessionID, engine.View(), nil
}

// build runs one start request into a fresh engine.
func (s *SessionService) build(req StartRequest) (*session.Engine, error) {
	switch req.Mode {
	case session.ModeTopic:
		return s.buildTopicSet(req)
	case session.ModeRapid:
		return s.buildRapidFire(req)
	default:
		return nil, ErrUnknownMode
	}
}

func (s *SessionService) buildTopicSet(req StartRequest) (*session.Engine, error) {
	topic, ok := s.bank.TopicByID(req.TopicID)
	if !ok {
		return nil, ErrTopicNotFound
	}

	sets, _ := practiceset.Partition(topic.Questions, req.BatchSize)
	if len(sets) == 0 {
		return nil, ErrNoQuestions
	}
	setIndex := req.SetIndex
	if setIndex < 0 {
		setIndex = 0
	}
	if setIndex > len(sets)-1 {
		setIndex = len(sets) - 1
	}
	set := sets[setIndex]

	questions := make([]questionbank.Question, len(set.Questions))
	copy(questions, set.Questions)
	if req.Shuffle {
		rand.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}

	return session.New(session.Config{
		Mode:       session.ModeTopic,
		AnswerMode: req.AnswerMode,
		Title:      "Practice: " + topic.TopicName + " | " + set.Label,
		Pill:       topic.TopicName + " | " + set.Label,
		Questions:  questions,
		Contexts:   s.contexts,
		Clock:      s.clock,
	}), nil
}

// buildRapidFire draws RapidFireCount questions across the whole bank. The
// draw is always shuffled regardless of the shuffle setting.
func (s *SessionService) buildRapidFire(req StartRequest) (*session.Engine, error) {
	if len(s.bank.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	drawn := make([]questionbank.Question, len(s.bank.Questions))
	copy(drawn, s.bank.Questions)
	rand.Shuffle(len(drawn), func(i, j int) {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	})
	if len(drawn) > RapidFireCount {
		drawn = drawn[:RapidFireCount]
	}

	return session.New(session.Config{
		Mode:       session.ModeRapid,
		AnswerMode: req.AnswerMode,
		Title:      "Rapid Fire: 10 Random Questions",
		Pill:       "Rapid Fire",
		Questions:  drawn,
		Contexts:   s.contexts,
		Clock:      s.clock,
	}), nil
}

func (s *SessionService) get(sessionID string) (*liveSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ls, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return ls, nil
}

// View returns the current snapshot of a session.
func (s *SessionService) View(sessionID string) (session.View, error) {
	ls, err := s.get(sessionID)
	if err != nil {
		return session.View{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.engine.View(), nil
}

// apply runs one transition under the session's lock and returns the
// resulting snapshot.
func (s *SessionService) apply(sessionID string, fn func(*session.Engine)) (session.View, error) {
	ls, err := s.get(sessionID)
	if err != nil {
		return session.View{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	fn(ls.engine)
	return ls.engine.View(), nil
}

// SelectOption updates the choice draft of the current question.
func (s *SessionService) SelectOption(sessionID string, optionID questionbank.ID) (session.View, error) {
	return s.apply(sessionID, func(e *session.Engine) { e.SelectOption(optionID) })
}

// SetTypedAnswer updates the typed draft of the current question.
func (s *SessionService) SetTypedAnswer(sessionID, text string) (session.View, error) {
	return s.apply(sessionID, func(e *session.Engine) { e.SetTypedAnswer(text) })
}

// Submit freezes the current draft.
func (s *SessionService) Submit(sessionID string) (session.View, error) {
	return s.apply(sessionID, func(e *session.Engine) { e.Submit() })
}

// Next advances past a submitted question.
func (s *SessionService) Next(sessionID string) (session.View, error) {
	return s.apply(sessionID, func(e *session.Engine) { e.Next() })
}

// Previous steps back one question.
func (s *SessionService) Previous(sessionID string) (session.View, error) {
	return s.apply(sessionID, func(e *session.Engine) { e.Previous() })
}

// Restart re-runs the session's original start request under the same id:
// all records cleared, index back to zero, timer reset, and a fresh draw for
// rapid-fire sessions.
func (s *SessionService) Restart(sessionID string) (session.View, error) {
	ls, err := s.get(sessionID)
	if err != nil {
		return session.View{}, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	engine, err := s.build(ls.start)
	if err != nil {
		return session.View{}, err
	}
	ls.engine.StopTimer()
	ls.engine = engine
	return engine.View(), nil
}

// Abandon stops a session's timer and drops it from the registry.
func (s *SessionService) Abandon(sessionID string) error {
	ls, err := s.get(sessionID)
	if err != nil {
		return err
	}

	ls.mu.Lock()
	ls.engine.StopTimer()
	ls.mu.Unlock()

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	s.logger.Info("session abandoned", "session_id", sessionID)
	return nil
}
