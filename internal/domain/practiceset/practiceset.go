package practiceset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/britizen/backend/internal/domain/questionbank"
)

const (
	MinSetSize     = 20
	MaxSetSize     = 30
	DefaultSetSize = 25
)

// Set is one practice set: an ordered slice of a topic's questions.
type Set struct {
	ID        string
	Label     string
	Questions []questionbank.Question
}

// Method names which partitioning strategy produced the sets.
type Method string

const (
	MethodExisting Method = "existing" // source quiz grouping reused as-is
	MethodAuto     Method = "auto"     // consecutive chunks of the batch size
)

// Partition splits a topic's questions into practice sets. The source-quiz
// subdivision is preferred whenever it is valid; otherwise the questions are
// chunked to the clamped batch size. The result is recomputed on every call,
// so a batch-size change only moves topics that chunk.
func Partition(questions []questionbank.Question, batchSize float64) ([]Set, Method) {
	if sets, ok := tryExistingSubdivision(questions); ok {
		return sets, MethodExisting
	}
	return chunk(questions, batchSize), MethodAuto
}

// ClampBatchSize rounds the preferred size to the nearest integer and clamps
// it into [MinSetSize, MaxSetSize]. Non-finite input falls back to the
// default.
func ClampBatchSize(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultSetSize
	}
	n := int(math.Round(v))
	if n < MinSetSize {
		return MinSetSize
	}
	if n > MaxSetSize {
		return MaxSetSize
	}
	return n
}

// tryExistingSubdivision groups questions by their single source quiz slug.
// The grouping is rejected (second return false) when any question has zero
// or multiple slugs, a slug trims to empty, fewer than two groups result, or
// any group's size falls outside [MinSetSize, MaxSetSize].
func tryExistingSubdivision(questions []questionbank.Question) ([]Set, bool) {
	type group struct {
		slug      string
		questions []questionbank.Question
	}
	index := make(map[string]int)
	var groups []group

	for _, q := range questions {
		if len(q.SourceQuizSlugs) != 1 {
			return nil, false
		}
		slug := strings.TrimSpace(q.SourceQuizSlugs[0])
		if slug == "" {
			return nil, false
		}
		i, ok := index[slug]
		if !ok {
			i = len(groups)
			index[slug] = i
			groups = append(groups, group{slug: slug})
		}
		groups[i].questions = append(groups[i].questions, q)
	}

	if len(groups) < 2 {
		return nil, false
	}

	// Numeric slugs sort ascending; non-numeric slugs sort after every
	// numeric one and keep their first-seen order among themselves.
	sort.SliceStable(groups, func(i, j int) bool {
		a, aok := slugNumber(groups[i].slug)
		b, bok := slugNumber(groups[j].slug)
		switch {
		case aok && bok:
			return a < b
		case aok:
			return true
		default:
			return false
		}
	})

	sets := make([]Set, len(groups))
	for i, g := range groups {
		if len(g.questions) < MinSetSize || len(g.questions) > MaxSetSize {
			return nil, false
		}
		sets[i] = Set{
			ID:        "quiz-" + g.slug,
			Label:     "Quiz " + g.slug,
			Questions: g.questions,
		}
	}
	return sets, true
}

func slugNumber(slug string) (float64, bool) {
	v, err := strconv.ParseFloat(slug, 64)
	return v, err == nil
}

// chunk slices the questions into consecutive sets of the clamped batch
// size; only the last set may be shorter.
func chunk(questions []questionbank.Question, batchSize float64) []Set {
	size := ClampBatchSize(batchSize)
	var sets []Set
	for start := 0; start < len(questions); start += size {
		end := min(start+size, len(questions))
		n := len(sets) + 1
		sets = append(sets, Set{
			ID:        fmt.Sprintf("set-%d", n),
			Label:     fmt.Sprintf("Set %d", n),
			Questions: questions[start:end],
		})
	}
	return sets
}
