// Package orchestrator dispatches a prepared task to an OpenAI-compatible
// chat completion endpoint described by a model configuration.
package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aide-ai/aide/internal/config"
)

// Task is one unit of work bound to a concrete model.
type Task struct {
	Model       config.ModelConfig
	Prompt      string
	Files       []string
	TaskType    string
	SearchQuery string   // steers attention toward matching input content
	Temperature *float64 // overrides the model default when set
	MaxTokens   *int
	Timeout     *int // seconds
}

// Result is the outcome of a completed task.
type Result struct {
	ModelName  string        `json:"model"`
	Output     string        `json:"output"`
	TokensUsed int           `json:"tokens_used"`
	Duration   time.Duration `json:"duration_ns"`
}

// Orchestrator executes tasks against remote model providers.
type Orchestrator struct {
	client *http.Client
	logger *slog.Logger
}

// New builds an orchestrator. A nil client falls back to a default.
func New(client *http.Client, logger *slog.Logger) *Orchestrator {
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{client: client, logger: logger}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Execute runs one task, retrying transient failures up to the model's
// configured retry count.
func (o *Orchestrator) Execute(ctx context.Context, task Task) (*Result, error) {
	mc := task.Model
	if !mc.Enabled {
		return nil, fmt.Errorf("model %q is disabled", mc.Name)
	}

	body, err := o.buildRequest(task)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(mc.Timeout) * time.Second
	if task.Timeout != nil {
		timeout = time.Duration(*task.Timeout) * time.Second
	}

	attempts := mc.Retries
	if attempts < 1 {
		attempts = 1
	}

	start := time.Now()
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			o.logger.Warn("retrying task", "model", mc.Name, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
		resp, err := o.send(ctx, mc, body, timeout)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Duration = time.Since(start)
		return resp, nil
	}
	return nil, fmt.Errorf("task failed after %d attempts: %w", attempts, lastErr)
}

func (o *Orchestrator) buildRequest(task Task) ([]byte, error) {
	messages := []chatMessage{
		{Role: "system", Content: systemPrompt(task.TaskType)},
	}
	for _, path := range task.Files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read input file: %w", err)
		}
		messages = append(messages, chatMessage{
			Role:    "user",
			Content: fmt.Sprintf("File %s:\n```\n%s\n```", filepath.Base(path), data),
		})
	}
	if task.SearchQuery != "" {
		messages = append(messages, chatMessage{
			Role:    "user",
			Content: "Prioritize content relevant to: " + task.SearchQuery,
		})
	}
	messages = append(messages, chatMessage{Role: "user", Content: task.Prompt})

	req := chatRequest{
		Model:       task.Model.Model,
		Messages:    messages,
		Temperature: task.Model.Temperature,
		MaxTokens:   task.Model.MaxTokens,
	}
	if task.Temperature != nil {
		req.Temperature = *task.Temperature
	}
	if task.MaxTokens != nil {
		req.MaxTokens = *task.MaxTokens
	}
	return json.Marshal(req)
}

func (o *Orchestrator) send(ctx context.Context, mc config.ModelConfig, body []byte, timeout time.Duration) (*Result, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := strings.TrimRight(mc.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+mc.APIKey)

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("provider returned no choices")
	}
	return &Result{
		ModelName:  mc.Name,
		Output:     parsed.Choices[0].Message.Content,
		TokensUsed: parsed.Usage.TotalTokens,
	}, nil
}

func systemPrompt(taskType string) string {
	switch taskType {
	case "coding":
		return "You are an expert software engineer. Produce working, idiomatic code."
	case "analysis":
		return "You are a code analyst. Explain structure, behavior, and risks."
	case "review":
		return "You are a code reviewer. Point out defects and concrete improvements."
	case "research":
		return "You are a research assistant. Answer with cited, verifiable detail."
	default:
		return "You are a helpful software assistant."
	}
}
