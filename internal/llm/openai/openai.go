package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"market-pulse/internal/llm"
	"market-pulse/internal/store"
	"market-pulse/internal/trace"
	"market-pulse/internal/types"
)

// OpenAISummarizer calls any OpenAI-compatible chat completions endpoint.
// The default base URL points at Groq, which serves the same wire format.
type OpenAISummarizer struct {
	cfg     *store.Config
	baseURL string
}

func NewOpenAISummarizer(cfg *store.Config) *OpenAISummarizer {
	baseURL := cfg.LLM.BaseURL
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	return &OpenAISummarizer{cfg: cfg, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, item types.NewsItem, body, focus string) (types.ArticleSummary, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return types.ArticleSummary{}, errors.New("OPENAI_API_KEY missing")
	}

	reqBody := map[string]any{
		"model": s.cfg.LLM.Model,
		"messages": []map[string]string{
			{"role": "system", "content": llm.SystemPrompt},
			{"role": "user", "content": llm.BuildUserPrompt(item, body, focus)},
		},
		"temperature": s.cfg.LLM.Temperature,
		"max_tokens":  s.cfg.LLM.MaxTokens,
	}
	bb, _ := json.Marshal(reqBody)

	req, _ := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewReader(bb))
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return types.ArticleSummary{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return types.ArticleSummary{}, fmt.Errorf("openai http %d", resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return types.ArticleSummary{}, err
	}

	if len(r.Choices) == 0 {
		return types.ArticleSummary{}, errors.New("no choices")
	}

	return llm.ParseSummary(item, r.Choices[0].Message.Content)
}
