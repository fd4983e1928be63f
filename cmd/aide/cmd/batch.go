package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aide-ai/aide/internal/command"
	"github.com/aide-ai/aide/internal/config"
	"github.com/aide-ai/aide/internal/logging"
	"github.com/aide-ai/aide/internal/orchestrator"
	"github.com/aide-ai/aide/internal/session"
	"github.com/aide-ai/aide/internal/ui"
)

// runBatch executes a single one-shot request end to end.
func runBatch(ctx context.Context, store *config.Store, req *command.Request, f *ui.Formatter, logger *logging.Logger) error {
	mc, err := resolveModel(store, req.Model, req.TaskType)
	if err != nil {
		return err
	}

	task := orchestrator.Task{
		Model:       mc,
		Prompt:      req.Prompt,
		Files:       req.Files,
		TaskType:    req.TaskType,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Timeout:     req.Timeout,
	}

	if req.DryRun {
		printPlan(task, req, f)
		return nil
	}

	log := logger.WithModel(mc.Name)
	log.Info("dispatching task", "task_type", req.TaskType, "files", len(req.Files))

	result, err := orchestrator.New(nil, log.Logger).Execute(ctx, task)
	if err != nil {
		return err
	}
	log.Info("task complete", "tokens", result.TokensUsed, "duration", result.Duration)

	if !req.Quiet {
		fmt.Println(result.Output)
	}
	if req.OutputDir != "" {
		path, err := writeResult(req.OutputDir, req.Format, result)
		if err != nil {
			return err
		}
		if !req.Quiet {
			fmt.Println(f.Muted("saved " + path))
		}
	}

	if req.SaveSession || store.UI().AutoSaveSessions {
		if err := saveSession(ctx, store, req, mc.Name); err != nil {
			log.Warn("session save failed", "error", err)
		}
	}
	return nil
}

// resolveModel maps an explicit model name or "auto" task routing to a
// concrete registry entry.
func resolveModel(store *config.Store, name, taskType string) (config.ModelConfig, error) {
	if name != "" && name != "auto" {
		mc, ok := store.Model(name)
		if !ok {
			return config.ModelConfig{}, fmt.Errorf("model %q not registered", name)
		}
		return mc, nil
	}
	mc, ok := store.BestModelForTask(taskType)
	if !ok {
		return config.ModelConfig{}, fmt.Errorf("no enabled model available, run 'aide --config-check'")
	}
	return mc, nil
}

func printPlan(task orchestrator.Task, req *command.Request, f *ui.Formatter) {
	fmt.Println(f.Header("Dry Run"))
	fmt.Printf("  model:     %s (%s)\n", task.Model.Name, task.Model.Model)
	fmt.Printf("  task type: %s\n", task.TaskType)
	fmt.Printf("  format:    %s\n", req.Format)
	if task.Prompt != "" {
		fmt.Printf("  prompt:    %s\n", truncate(task.Prompt, 80))
	}
	for _, file := range task.Files {
		fmt.Printf("  file:      %s\n", file)
	}
	fmt.Println(f.Muted("nothing executed"))
}

// writeResult persists a result into the output directory and returns the
// written path.
func writeResult(dir, format string, result *orchestrator.Result) (string, error) {
	var (
		ext  string
		data []byte
	)
	switch format {
	case command.FormatJSON:
		ext = "json"
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", err
		}
		data = encoded
	case command.FormatMarkdown:
		ext = "md"
		data = []byte(fmt.Sprintf("# Result (%s)\n\n%s\n", result.ModelName, result.Output))
	default:
		ext = "txt"
		data = []byte(result.Output)
	}
	path := filepath.Join(dir, fmt.Sprintf("aide_%s.%s", time.Now().Format("20060102_150405"), ext))
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", err
	}
	return path, nil
}

func saveSession(ctx context.Context, store *config.Store, req *command.Request, model string) error {
	db, err := session.Open(store.ResolvePath(store.Database().Path))
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Save(ctx, &session.Session{
		Model:    model,
		TaskType: req.TaskType,
		Prompt:   req.Prompt,
		Files:    req.Files,
	})
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
