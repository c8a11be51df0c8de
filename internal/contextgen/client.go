package contextgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/britizen/backend/internal/domain/questionbank"
)

// Client generates learner context for a question. Implementations may call
// an LLM or return canned text (for tests).
type Client interface {
	GenerateContext(ctx context.Context, q questionbank.Question) (string, error)
}

// OllamaClient calls an OpenAI-compatible LLM endpoint (Ollama, LM Studio,
// vLLM, etc.).
type OllamaClient struct {
	url    string       // e.g. "http://localhost:1234"
	model  string       // e.g. "llama3.1:8b"
	client *http.Client // reused across calls
}

// Compile-time check: *OllamaClient satisfies the Client interface.
var _ Client = (*OllamaClient)(nil)

// GenerateError is returned when generation fails so the caller can
// distinguish "LLM produced nothing usable" from "LLM was unreachable."
type GenerateError struct {
	Reason  string
	Wrapped error
}

func (e *GenerateError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("context generation failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("context generation failed: %s", e.Reason)
}

func (e *GenerateError) Unwrap() error {
	return e.Wrapped
}

// NewOllamaClient creates a client against the given LLM endpoint.
func NewOllamaClient(url, model string) *OllamaClient {
	return &OllamaClient{
		url:   url,
		model: model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

const maxRetries = 2

// GenerateContext asks the LLM for learner context on one question and
// returns the plain-text answer. It retries once, since small models
// occasionally return an empty completion.
func (c *OllamaClient) GenerateContext(ctx context.Context, q questionbank.Question) (string, error) {
	prompt := buildContextPrompt(q)

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		result, err := c.callLLM(ctx, prompt)
		if err != nil {
			lastErr = err
			continue
		}
		result = strings.TrimSpace(result)
		if result == "" {
			lastErr = &GenerateError{Reason: "LLM returned empty answer"}
			continue
		}
		return result, nil
	}

	return "", &GenerateError{
		Reason:  fmt.Sprintf("failed after %d attempts", maxRetries),
		Wrapped: lastErr,
	}
}

type llmRequest struct {
	Model       string       `json:"model"`
	Messages    []llmMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// callLLM sends a single request to the LLM and returns the raw text response.
func (c *OllamaClient) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := llmRequest{
		Model: c.model,
		Messages: []llmMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("LLM request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM returned status %d", resp.StatusCode)
	}

	var llmResp llmResponse
	if err := json.NewDecoder(resp.Body).Decode(&llmResp); err != nil {
		return "", fmt.Errorf("failed to decode LLM response: %w", err)
	}

	if len(llmResp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}

	return llmResp.Choices[0].Message.Content, nil
}
