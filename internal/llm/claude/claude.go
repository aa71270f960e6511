package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"market-pulse/internal/llm"
	"market-pulse/internal/store"
	"market-pulse/internal/trace"
	"market-pulse/internal/types"
)

// ClaudeSummarizer implements the Summarizer interface using the Anthropic API
type ClaudeSummarizer struct {
	cfg      *store.Config
	endpoint string
}

// NewClaudeSummarizer creates a new Claude-based summarizer
func NewClaudeSummarizer(cfg *store.Config) *ClaudeSummarizer {
	// default messages endpoint (public Anthropic)
	endpoint := "https://api.anthropic.com/v1/messages"
	// If you use a proxy/bedrock/vertex, set endpoint via CLAUDE_API_ENDPOINT env var
	if ep := os.Getenv("CLAUDE_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &ClaudeSummarizer{cfg: cfg, endpoint: endpoint}
}

func (s *ClaudeSummarizer) Summarize(ctx context.Context, item types.NewsItem, body, focus string) (types.ArticleSummary, error) {
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	apiKey := os.Getenv("CLAUDE_API_KEY")
	if apiKey == "" {
		return types.ArticleSummary{}, errors.New("CLAUDE_API_KEY missing")
	}

	reqBody := map[string]any{
		"model":      s.cfg.LLM.Model,
		"max_tokens": s.cfg.LLM.MaxTokens,
		"system":     llm.SystemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": llm.BuildUserPrompt(item, body, focus)},
		},
	}
	bb, _ := json.Marshal(reqBody)

	req, _ := http.NewRequestWithContext(ctx, "POST", s.endpoint, bytes.NewReader(bb))
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return types.ArticleSummary{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return types.ArticleSummary{}, fmt.Errorf("claude http %d: %s", resp.StatusCode, string(b))
	}

	var r struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return types.ArticleSummary{}, err
	}

	if len(r.Content) == 0 {
		return types.ArticleSummary{}, errors.New("no content")
	}

	return llm.ParseSummary(item, r.Content[0].Text)
}
