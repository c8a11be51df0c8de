package questionbank

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Counts carries the informational totals of the export document.
type Counts struct {
	UniqueQuestionCount int `json:"unique_question_count"`
	QuizCount           int `json:"quiz_count"`
}

// Topic groups the questions sharing a topic_id, in bank order.
type Topic struct {
	TopicID   ID
	TopicName string
	Questions []Question
}

// Bank is the loaded, read-only question bank.
type Bank struct {
	Questions []Question
	Counts    Counts
	Topics    []Topic
}

// Load parses an export document. A document that fails to parse as JSON is
// an error; a document whose unique_questions key is missing or not a list
// degrades to an empty bank instead.
func Load(raw []byte) (*Bank, error) {
	var doc struct {
		UniqueQuestions json.RawMessage `json:"unique_questions"`
		Counts          Counts          `json:"counts"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}

	var questions []Question
	if len(doc.UniqueQuestions) > 0 {
		if err := json.Unmarshal(doc.UniqueQuestions, &questions); err != nil {
			questions = nil
		}
	}

	return &Bank{
		Questions: questions,
		Counts:    doc.Counts,
		Topics:    GroupByTopic(questions),
	}, nil
}

// GroupByTopic groups questions by topic_id, keeping the first-seen topic
// name and the bank order within each topic. The result is ordered by
// question count, largest topic first; topics with equal counts keep their
// first-seen order.
func GroupByTopic(questions []Question) []Topic {
	index := make(map[ID]int)
	var topics []Topic

	for _, q := range questions {
		i, ok := index[q.TopicID]
		if !ok {
			i = len(topics)
			index[q.TopicID] = i
			topics = append(topics, Topic{TopicID: q.TopicID, TopicName: q.TopicName})
		}
		topics[i].Questions = append(topics[i].Questions, q)
	}

	sort.SliceStable(topics, func(i, j int) bool {
		return len(topics[i].Questions) > len(topics[j].Questions)
	})
	return topics
}

// TopicByID finds a topic in the bank.
func (b *Bank) TopicByID(id ID) (*Topic, bool) {
	for i := range b.Topics {
		if b.Topics[i].TopicID == id {
			return &b.Topics[i], true
		}
	}
	return nil, false
}
