// Groq API client for cloud LLM access. Groq serves an OpenAI-compatible
// API at https://api.groq.com/openai/v1 with chat completions and function
// calling.
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/calbot-ai/calbot/internal/errors"
)

// GroqConfig configures the Groq client.
type GroqConfig struct {
	APIKey     string
	BaseURL    string // Default: https://api.groq.com/openai/v1
	Model      string // e.g., "llama-3.3-70b-versatile"
	Timeout    time.Duration
	MaxRetries int
}

// DefaultGroqConfig returns default configuration for Groq.
func DefaultGroqConfig(apiKey string) *GroqConfig {
	return &GroqConfig{
		APIKey:     apiKey,
		BaseURL:    "https://api.groq.com/openai/v1",
		Model:      "llama-3.3-70b-versatile",
		Timeout:    60 * time.Second,
		MaxRetries: 3,
	}
}

// GroqClient implements ChatModel using the Groq API.
type GroqClient struct {
	cfg            *GroqConfig
	client         *http.Client
	circuitBreaker *errors.CircuitBreaker
	retryPolicy    *errors.Policy
}

// NewGroqClient creates a new Groq client.
func NewGroqClient(cfg *GroqConfig) *GroqClient {
	if cfg == nil {
		return nil
	}

	retryPolicy := &errors.Policy{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
		RetryIf: func(err error) bool {
			category := errors.GetCategory(err)
			return category == errors.CategoryTemporary || category == errors.CategoryRateLimit
		},
	}

	cbConfig := &errors.CircuitBreakerConfig{
		MaxFailures:      5,
		ResetTimeout:     60 * time.Second,
		HalfOpenAttempts: 2,
	}

	return &GroqClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		circuitBreaker: errors.NewCircuitBreaker("groq", cbConfig),
		retryPolicy:    retryPolicy,
	}
}

// Complete sends the conversation to Groq and returns the model's next step.
func (c *GroqClient) Complete(ctx context.Context, req *Request) (*Response, error) {
	if c == nil {
		return nil, errors.New(errors.CodeModelUnavailable, "Groq client not initialized", errors.CategorySystem)
	}

	if !c.IsAvailable() {
		return nil, errors.NewBuilder(errors.CodeModelUnavailable, "Groq API key not configured").
			User().
			WithSuggestion("Set GROQ_API_KEY environment variable or configure in config.toml").
			WithSuggestion("Get an API key from https://console.groq.com").
			Build()
	}

	var result *Response
	var err error

	err = c.circuitBreaker.Execute(func() error {
		result, err = c.completeWithRetry(ctx, req)
		return err
	})

	return result, err
}

// completeWithRetry implements the actual API call with retry logic.
func (c *GroqClient) completeWithRetry(ctx context.Context, req *Request) (*Response, error) {
	body := map[string]any{
		"model":    c.cfg.Model,
		"messages": encodeMessages(req.Messages),
	}

	if req.MaxTokens > 0 {
		body["max_tokens"] = req.MaxTokens
	} else {
		body["max_tokens"] = 4096
	}

	if req.Temperature > 0 {
		body["temperature"] = req.Temperature
	}

	// Add tools for function calling (OpenAI format)
	if len(req.Tools) > 0 {
		tools := []map[string]any{}
		for _, tool := range req.Tools {
			tools = append(tools, map[string]any{
				"type": "function",
				"function": map[string]any{
					"name":        tool.Name,
					"description": tool.Description,
					"parameters":  tool.Parameters,
				},
			})
		}
		body["tools"] = tools
		body["tool_choice"] = "auto"
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeModelInvalidResponse, "failed to marshal request", errors.CategoryPermanent)
	}

	type apiResult struct {
		respBody []byte
	}

	apiRes, retryErr := errors.DoWithResult(ctx, c.retryPolicy, func() (apiResult, error) {
		httpReq, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/chat/completions", bytes.NewReader(jsonBody))
		if err != nil {
			return apiResult{}, errors.Wrap(err, errors.CodeNetworkUnavailable, "failed to create HTTP request", errors.CategoryTemporary)
		}

		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

		r, err := c.client.Do(httpReq)
		if err != nil {
			return apiResult{}, errors.Wrap(err, errors.CodeNetworkUnavailable, "network request failed", errors.CategoryTemporary)
		}

		b, readErr := io.ReadAll(r.Body)
		r.Body.Close()

		if readErr != nil {
			return apiResult{}, errors.Wrap(readErr, errors.CodeNetworkUnavailable, "failed to read response body", errors.CategoryTemporary)
		}

		switch r.StatusCode {
		case http.StatusOK:
			return apiResult{respBody: b}, nil
		case http.StatusTooManyRequests:
			return apiResult{}, rateLimitError(r)
		case http.StatusUnauthorized:
			return apiResult{}, errors.NewBuilder(errors.CodeModelUnavailable, "invalid API key").
				User().
				WithSuggestion("Check your GROQ_API_KEY").
				Build()
		case http.StatusBadRequest:
			return apiResult{}, errors.NewBuilder(errors.CodeModelInvalidResponse, "bad request - check model name and parameters").
				Permanent().
				Wrap(fmt.Errorf("response: %s", string(b))).
				Build()
		case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
			return apiResult{}, errors.Temporary(errors.CodeModelUnavailable, fmt.Sprintf("API unavailable: %s", r.Status))
		default:
			return apiResult{}, errors.Temporary(errors.CodeModelUnavailable, fmt.Sprintf("API error (status %d): %s", r.StatusCode, string(b)))
		}
	})

	if retryErr != nil {
		return nil, retryErr
	}

	// Parse response (OpenAI-compatible format)
	var groqResp groqResponse
	if err := json.Unmarshal(apiRes.respBody, &groqResp); err != nil {
		return nil, errors.NewBuilder(errors.CodeModelParseError, "failed to parse API response").
			Permanent().
			Wrap(err).
			Build()
	}

	if len(groqResp.Choices) == 0 {
		return nil, errors.New(errors.CodeModelInvalidResponse, "API response contained no choices", errors.CategoryPermanent)
	}

	modelResp := &Response{
		Text:       groqResp.Choices[0].Message.Content,
		TokensUsed: groqResp.Usage.TotalTokens,
		Model:      groqResp.Model,
	}

	for _, tc := range groqResp.Choices[0].Message.ToolCalls {
		if tc.Type != "function" {
			continue
		}
		var args map[string]any
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			args = map[string]any{"raw": tc.Function.Arguments}
		}
		modelResp.ToolCalls = append(modelResp.ToolCalls, ToolCall{
			ID:    tc.ID,
			Name:  tc.Function.Name,
			Input: args,
		})
	}

	return modelResp, nil
}

// encodeMessages converts conversation history to the OpenAI wire format.
// Assistant tool-call messages carry their tool_calls array with arguments
// re-encoded as JSON strings; tool results carry tool_call_id.
func encodeMessages(messages []Message) []map[string]any {
	encoded := make([]map[string]any, 0, len(messages))
	for _, msg := range messages {
		m := map[string]any{
			"role":    string(msg.Role),
			"content": msg.Content,
		}
		if len(msg.ToolCalls) > 0 {
			calls := make([]map[string]any, 0, len(msg.ToolCalls))
			for _, tc := range msg.ToolCalls {
				args, err := json.Marshal(tc.Input)
				if err != nil {
					args = []byte("{}")
				}
				calls = append(calls, map[string]any{
					"id":   tc.ID,
					"type": "function",
					"function": map[string]any{
						"name":      tc.Name,
						"arguments": string(args),
					},
				})
			}
			m["tool_calls"] = calls
		}
		if msg.ToolCallID != "" {
			m["tool_call_id"] = msg.ToolCallID
		}
		encoded = append(encoded, m)
	}
	return encoded
}

// rateLimitError builds a rate limit error honoring the Retry-After header.
func rateLimitError(r *http.Response) error {
	retryAfter := 5 * time.Second
	if header := r.Header.Get("Retry-After"); header != "" {
		if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
			retryAfter = time.Duration(secs) * time.Second
		}
	}
	return errors.RateLimit(errors.CodeModelRateLimit, "rate limit exceeded", retryAfter)
}

// IsAvailable checks if the client is configured.
func (c *GroqClient) IsAvailable() bool {
	return c != nil && c.cfg != nil && c.cfg.APIKey != ""
}

// Name returns the model name.
func (c *GroqClient) Name() string {
	if c.cfg != nil {
		return c.cfg.Model
	}
	return "groq"
}

// ============================================================
// Groq API Types (OpenAI-compatible)
// ============================================================

type groqResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role      string         `json:"role"`
			Content   string         `json:"content"`
			ToolCalls []groqToolCall `json:"tool_calls,omitempty"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type groqToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}
