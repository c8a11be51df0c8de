package api

import (
	"net/http"
	"strconv"

	"github.com/britizen/backend/internal/domain/practiceset"
)

// GET /bank
type BankResponse struct {
	UniqueQuestionCount int `json:"unique_question_count"`
	QuizCount           int `json:"quiz_count"`
	TopicCount          int `json:"topic_count"`
	ContextCount        int `json:"context_count"`
}

func (h *Handler) getBank(w http.ResponseWriter, r *http.Request) {
	counts := h.bank.Counts
	uniqueCount := counts.UniqueQuestionCount
	if uniqueCount == 0 {
		uniqueCount = len(h.bank.Questions)
	}

	respondJSON(w, http.StatusOK, BankResponse{
		UniqueQuestionCount: uniqueCount,
		QuizCount:           counts.QuizCount,
		TopicCount:          len(h.bank.Topics),
		ContextCount:        h.contexts.Count(),
	})
}

// GET /topics?batch_size=25
type SetSummary struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	QuestionCount int    `json:"question_count"`
}

type TopicResponse struct {
	TopicID       string       `json:"topic_id"`
	TopicName     string       `json:"topic_name"`
	QuestionCount int          `json:"question_count"`
	Method        string       `json:"method"`
	Sets          []SetSummary `json:"sets"`
}

func (h *Handler) listTopics(w http.ResponseWriter, r *http.Request) {
	batchSize := parseBatchSize(r.URL.Query().Get("batch_size"))

	response := make([]TopicResponse, len(h.bank.Topics))
	for i, topic := range h.bank.Topics {
		sets, method := practiceset.Partition(topic.Questions, batchSize)

		summaries := make([]SetSummary, len(sets))
		for j, set := range sets {
			summaries[j] = SetSummary{
				ID:            set.ID,
				Label:         set.Label,
				QuestionCount: len(set.Questions),
			}
		}
		response[i] = TopicResponse{
			TopicID:       string(topic.TopicID),
			TopicName:     topic.TopicName,
			QuestionCount: len(topic.Questions),
			Method:        string(method),
			Sets:          summaries,
		}
	}

	respondJSON(w, http.StatusOK, response)
}

// parseBatchSize treats anything unparseable as "no preference"; the
// partitioner clamps the rest.
func parseBatchSize(raw string) float64 {
	if raw == "" {
		return practiceset.DefaultSetSize
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return practiceset.DefaultSetSize
	}
	return v
}
