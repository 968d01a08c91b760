package reply

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ignite/support-triage/internal/pkg/httpretry"
)

const (
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"
	openAIEndpoint    = "https://api.openai.com/v1/chat/completions"

	defaultAnthropicModel = "claude-sonnet-4-20250514"
	defaultOpenAIModel    = "gpt-4o-mini"

	llmMaxTokens = 400
)

// LLMDrafter delegates reply composition to a hosted language model over
// plain HTTP. Anthropic is preferred when both keys are configured, with
// OpenAI as the secondary provider. Callers must wrap an LLMDrafter in a
// FallbackDrafter so generation unavailability never drops a record.
type LLMDrafter struct {
	anthropicKey string
	openaiKey    string
	model        string
	client       httpretry.HTTPDoer
}

// NewLLMDrafter creates an LLM-backed drafter. model may be empty, in which
// case a provider default is used. timeout bounds each generation call;
// transient provider errors are retried within that bound.
func NewLLMDrafter(anthropicKey, openaiKey, model string, timeout time.Duration) *LLMDrafter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &LLMDrafter{
		anthropicKey: anthropicKey,
		openaiKey:    openaiKey,
		model:        model,
		client:       httpretry.NewRetryClient(&http.Client{Timeout: timeout}, 2),
	}
}

// Draft generates a reply from the same five inputs the template strategy
// consumes. The call is bounded by the client timeout and the context.
func (d *LLMDrafter) Draft(ctx context.Context, req DraftRequest) (string, error) {
	if d.anthropicKey == "" && d.openaiKey == "" {
		return "", fmt.Errorf("reply: no LLM API key configured")
	}

	prompt := buildPrompt(req)

	var (
		out string
		err error
	)
	if d.anthropicKey != "" {
		out, err = d.callAnthropic(ctx, prompt)
		if err != nil && d.openaiKey != "" {
			out, err = d.callOpenAI(ctx, prompt)
		}
	} else {
		out, err = d.callOpenAI(ctx, prompt)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func buildPrompt(req DraftRequest) string {
	var b strings.Builder
	b.WriteString("You are a professional, friendly support agent. Write a concise, empathetic reply.\n")
	fmt.Fprintf(&b, "Subject: %s\n", req.Subject)
	fmt.Fprintf(&b, "Category: %s\n", req.Category)
	fmt.Fprintf(&b, "Sentiment: %s\n", req.Sentiment)
	fmt.Fprintf(&b, "Priority: %s\n", req.Priority)
	if req.ProductHint != "" {
		fmt.Fprintf(&b, "Product: %s\n", req.ProductHint)
	}
	fmt.Fprintf(&b, "Body:\n%s\n\n", req.Body)
	b.WriteString("If a product is mentioned, reference it. Keep it polite and action-oriented.")
	return b.String()
}

func (d *LLMDrafter) callAnthropic(ctx context.Context, prompt string) (string, error) {
	model := d.model
	if model == "" {
		model = defaultAnthropicModel
	}
	reqBody := map[string]any{
		"model":      model,
		"max_tokens": llmMaxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	body, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", d.anthropicKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic error: %s", string(respBody))
	}

	var parsed struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse anthropic response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("empty anthropic response")
	}
	return parsed.Content[0].Text, nil
}

func (d *LLMDrafter) callOpenAI(ctx context.Context, prompt string) (string, error) {
	model := d.model
	if model == "" {
		model = defaultOpenAIModel
	}
	reqBody := map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.4,
		"max_tokens":  llmMaxTokens,
	}

	body, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+d.openaiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai error: %s", string(respBody))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse openai response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty openai response")
	}
	return parsed.Choices[0].Message.Content, nil
}
