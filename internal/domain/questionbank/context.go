package questionbank

import (
	"encoding/json"
	"strings"
)

// ContextIndex maps question ids (as strings) to generated learner context.
type ContextIndex map[string]string

// Fallback keys tried, in order, when a context value is an object rather
// than a plain string.
var contextValueKeys = []string{"context", "text", "llm_context", "content"}

// NormalizeContexts parses a context document into a flat index. The
// document is either a flat {question_id: value} mapping or wrapped as
// {"contexts": {...}}; each value is a string or an object carrying one of
// the fallback keys. Anything unparseable degrades to an empty index;
// missing context is never an error.
func NormalizeContexts(raw []byte) ContextIndex {
	out := ContextIndex{}
	if len(raw) == 0 {
		return out
	}

	input := map[string]json.RawMessage{}
	var doc struct {
		Contexts map[string]json.RawMessage `json:"contexts"`
	}
	if err := json.Unmarshal(raw, &doc); err == nil && doc.Contexts != nil {
		input = doc.Contexts
	} else if err := json.Unmarshal(raw, &input); err != nil {
		return out
	}

	for qid, value := range input {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			out[qid] = s
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(value, &obj); err != nil {
			continue
		}
		out[qid] = ""
		for _, key := range contextValueKeys {
			if text, ok := obj[key].(string); ok && text != "" {
				out[qid] = text
				break
			}
		}
	}
	return out
}

// Lookup returns the trimmed context for a question, or "" when absent.
func (c ContextIndex) Lookup(id ID) string {
	return strings.TrimSpace(c[string(id)])
}

// Count reports how many questions carry a non-blank context.
func (c ContextIndex) Count() int {
	n := 0
	for _, v := range c {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}
