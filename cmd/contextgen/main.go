// contextgen generates learner context for every question in the bank via
// an OpenAI-compatible LLM endpoint and writes the context document the
// practice server loads. Generated contexts are cached in sqlite, so an
// interrupted or partial run resumes where it left off.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/britizen/backend/internal/contextgen"
	"github.com/britizen/backend/internal/domain/questionbank"
	"github.com/britizen/backend/internal/infrastructure/config"
	"github.com/britizen/backend/internal/store"
	"github.com/britizen/backend/internal/worker"
)

type genResult struct {
	question questionbank.Question
	context  string
	err      error
}

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var (
		bankPath = flag.String("bank", cfg.BankPath, "question bank export JSON")
		output   = flag.String("output", cfg.ContextPath, "context document to write")
		dbPath   = flag.String("db", cfg.ContextDBPath, "sqlite cache for generated contexts")
		model    = flag.String("model", cfg.LLMModel, "LLM model name")
		limit    = flag.Int("limit", 0, "stop after this many questions (0 = all)")
		topics   = flag.String("topics", "", "comma-separated topic ids to restrict to")
		force    = flag.Bool("force", false, "regenerate questions that already have a cached context")
		workers  = flag.Int("workers", 3, "concurrent LLM calls")
		dryRun   = flag.Bool("dry-run", false, "list what would be generated and exit")
	)
	flag.Parse()

	bankRaw, err := os.ReadFile(*bankPath)
	if err != nil {
		logger.Error("failed to load question bank", "path", *bankPath, "error", err)
		os.Exit(1)
	}
	bank, err := questionbank.Load(bankRaw)
	if err != nil {
		logger.Error("failed to parse question bank", "path", *bankPath, "error", err)
		os.Exit(1)
	}

	db, err := store.NewSQLite(*dbPath)
	if err != nil {
		logger.Error("failed to open context cache", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	todo, err := pickQuestions(bank.Questions, db, wantedTopics(*topics), *force, *limit)
	if err != nil {
		logger.Error("failed to select questions", "error", err)
		os.Exit(1)
	}

	logger.Info("questions queued for context generation", "count", len(todo))
	if *dryRun {
		return
	}

	llm := contextgen.NewOllamaClient(cfg.LLMURL, *model)
	pool := worker.NewPool[genResult](*workers, len(todo)+1)

	for _, q := range todo {
		question := q
		pool.Submit(string(question.QuestionID), func() genResult {
			text, err := llm.GenerateContext(context.Background(), question)
			return genResult{question: question, context: text, err: err}
		})
	}
	pool.Close()

	generated, failed := 0, 0
	for i := 0; i < len(todo); i++ {
		result := (<-pool.Results()).Output
		q := result.question

		if result.err != nil {
			failed++
			logger.Error("generation failed", "question_id", q.QuestionID, "error", result.err)
			if err := db.SaveFailure(store.GenerationFailure{
				QuestionID:  string(q.QuestionID),
				TopicID:     string(q.TopicID),
				TopicName:   q.TopicName,
				Error:       result.err.Error(),
				AttemptedAt: time.Now(),
			}); err != nil {
				logger.Error("failed to record failure", "question_id", q.QuestionID, "error", err)
			}
			continue
		}

		generated++
		logger.Info("context generated", "question_id", q.QuestionID, "progress", generated+failed, "total", len(todo))
		if err := db.SaveContext(store.GeneratedContext{
			QuestionID:  string(q.QuestionID),
			TopicID:     string(q.TopicID),
			TopicName:   q.TopicName,
			Model:       *model,
			Context:     result.context,
			GeneratedAt: time.Now(),
		}); err != nil {
			logger.Error("failed to cache context", "question_id", q.QuestionID, "error", err)
		}
	}

	doc, err := contextgen.BuildDocument(db, *model)
	if err != nil {
		logger.Error("failed to build context document", "error", err)
		os.Exit(1)
	}
	if err := doc.WriteFile(*output); err != nil {
		logger.Error("failed to write context document", "path", *output, "error", err)
		os.Exit(1)
	}

	logger.Info("finished",
		"output", *output,
		"generated", generated,
		"failed", failed,
		"total_cached", len(doc.Contexts),
	)
}

func wantedTopics(raw string) map[questionbank.ID]bool {
	wanted := make(map[questionbank.ID]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			wanted[questionbank.ID(part)] = true
		}
	}
	return wanted
}

// pickQuestions selects the questions still needing context, in numeric
// question-id order, skipping cached ones unless forced.
func pickQuestions(questions []questionbank.Question, db *store.ContextStore, wanted map[questionbank.ID]bool, force bool, limit int) ([]questionbank.Question, error) {
	sorted := make([]questionbank.Question, len(questions))
	copy(sorted, questions)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, _ := strconv.Atoi(string(sorted[i].QuestionID))
		b, _ := strconv.Atoi(string(sorted[j].QuestionID))
		return a < b
	})

	var todo []questionbank.Question
	for _, q := range sorted {
		if len(wanted) > 0 && !wanted[q.TopicID] {
			continue
		}
		if !force {
			cached, err := db.HasContext(string(q.QuestionID))
			if err != nil {
				return nil, err
			}
			if cached {
				continue
			}
		}
		todo = append(todo, q)
		if limit > 0 && len(todo) >= limit {
			break
		}
	}
	return todo, nil
}
