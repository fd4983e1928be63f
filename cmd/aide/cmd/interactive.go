package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"gopkg.in/yaml.v3"

	"github.com/aide-ai/aide/internal/command"
	"github.com/aide-ai/aide/internal/config"
	"github.com/aide-ai/aide/internal/logging"
	"github.com/aide-ai/aide/internal/orchestrator"
	"github.com/aide-ai/aide/internal/ui"
)

// replState carries the mutable interactive session settings.
type replState struct {
	model       string
	temperature *float64
	files       []string
	search      string // pending query, consumed by the next task
}

// runInteractive drives the readline REPL until quit, EOF, or context
// cancellation.
func runInteractive(ctx context.Context, store *config.Store, req *command.Request, f *ui.Formatter, logger *logging.Logger) error {
	fmt.Println(f.Header("aide " + appVersion))
	fmt.Println("Type 'help' for commands, 'exit' to quit.")
	fmt.Println()

	homeDir, _ := os.UserHomeDir()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "aide> ",
		HistoryFile:       filepath.Join(homeDir, ".aide_history"),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdin:             readline.NewCancelableStdin(os.Stdin),
		Stdout:            os.Stdout,
		Stderr:            os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("initialize readline: %w", err)
	}
	defer rl.Close()

	// Cancellation (SIGTERM, or Ctrl+C outside a read) unblocks Readline.
	go func() {
		<-ctx.Done()
		rl.Close()
	}()

	// Watch for document changes. The watcher only queues notifications;
	// the re-Load happens on this goroutine between iterations, so nothing
	// touches the Store while the loop is reading it.
	var reloads <-chan string
	if watcher, werr := config.WatchDir(store.Dir(), logger.Logger); werr == nil {
		defer watcher.Close()
		reloads = watcher.Events()
	}

	interp := &command.Interpreter{KnownModels: store.ModelNames}
	state := &replState{model: req.Model, temperature: req.Temperature, files: req.Files}

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		}
		if err == io.EOF || ctx.Err() != nil {
			break
		}
		if err != nil {
			return err
		}

		applyPendingReloads(reloads, store, f, logger)

		action := interp.Interpret(line)
		if action.Kind == command.ActionQuit {
			break
		}
		dispatch(ctx, action, state, store, f, logger)
	}
	fmt.Println("Goodbye!")
	return nil
}

// applyPendingReloads drains queued change notifications and re-Loads the
// store at most once. Called only from the REPL goroutine, which keeps the
// Store under its single-writer discipline.
func applyPendingReloads(reloads <-chan string, store *config.Store, f *ui.Formatter, logger *logging.Logger) {
	var changed []string
	for {
		select {
		case doc, ok := <-reloads:
			if !ok {
				return
			}
			changed = append(changed, doc)
			continue
		default:
		}
		break
	}
	if len(changed) == 0 {
		return
	}
	if err := store.Load(); err != nil {
		logger.Warn("configuration reload failed", "docs", changed, "error", err)
		return
	}
	fmt.Println(f.Info("reloaded " + strings.Join(changed, ", ")))
}

func dispatch(ctx context.Context, action command.Action, state *replState, store *config.Store, f *ui.Formatter, logger *logging.Logger) {
	switch action.Kind {
	case command.ActionNone:
	case command.ActionHelp:
		printHelp(f)
	case command.ActionClear:
		fmt.Print("\033[2J\033[H")
	case command.ActionShowConfig:
		printConfig(store, f)
	case command.ActionListModels:
		printModels(store, f)
	case command.ActionShowStatus:
		printStatus(state, store, f)
	case command.ActionSetModel:
		state.model = action.Value
		fmt.Println(f.Success("model set to " + action.Value))
	case command.ActionSetTemperature:
		temp := action.Temperature
		state.temperature = &temp
		fmt.Println(f.Success(fmt.Sprintf("temperature set to %.2f", temp)))
	case command.ActionLoadFile:
		state.files = append(state.files, action.Value)
		fmt.Println(f.Success("loaded " + action.Value))
	case command.ActionListFiles:
		if len(state.files) == 0 {
			fmt.Println(f.Muted("no files loaded"))
			return
		}
		for _, file := range state.files {
			fmt.Println("  " + file)
		}
	case command.ActionSearch:
		state.search = action.Value
		fmt.Println(f.Info("search query queued for next task: " + action.Value))
	case command.ActionExecuteTask:
		executeInteractive(ctx, action.Value, state, store, f, logger)
	case command.ActionUnknown, command.ActionError:
		fmt.Println(f.Error(action.Message))
	}
}

func executeInteractive(ctx context.Context, prompt string, state *replState, store *config.Store, f *ui.Formatter, logger *logging.Logger) {
	mc, err := resolveModel(store, state.model, "auto")
	if err != nil {
		fmt.Println(f.Error(err.Error()))
		return
	}
	search := state.search
	state.search = ""

	log := logger.WithModel(mc.Name)
	result, err := orchestrator.New(nil, log.Logger).Execute(ctx, orchestrator.Task{
		Model:       mc,
		Prompt:      prompt,
		Files:       state.files,
		TaskType:    "auto",
		Temperature: state.temperature,
		SearchQuery: search,
	})
	if err != nil {
		fmt.Println(f.Error(err.Error()))
		return
	}
	fmt.Println(result.Output)
	fmt.Println(f.Muted(fmt.Sprintf("[%s, %d tokens]", result.ModelName, result.TokensUsed)))
}

func printHelp(f *ui.Formatter) {
	fmt.Println(f.Header("Commands"))
	for _, row := range [][2]string{
		{"help", "show this help"},
		{"clear", "clear the screen"},
		{"config", "show current configuration"},
		{"models", "list available models"},
		{"status", "show session state"},
		{"set model <name>", "select a model"},
		{"set temp <0..2>", "set sampling temperature"},
		{"load <file>", "add a file to the session"},
		{"files", "list loaded files"},
		{"task <prompt>", "run a task"},
		{"search <query>", "enable web search for the next task"},
		{"exit", "quit"},
	} {
		fmt.Printf("  %-20s %s\n", row[0], f.Muted(row[1]))
	}
}

func printConfig(store *config.Store, f *ui.Formatter) {
	data, err := yaml.Marshal(store.Export())
	if err != nil {
		fmt.Println(f.Error(err.Error()))
		return
	}
	// Keys only; api keys must not hit the terminal.
	fmt.Print(redactSecrets(string(data)))
}

func redactSecrets(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "api_key:") || strings.HasPrefix(trimmed, "apikey:") {
			idx := strings.Index(line, ":")
			if value := strings.TrimSpace(line[idx+1:]); value != "" && value != `""` {
				line = line[:idx] + ": \"[REDACTED]\""
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func printStatus(state *replState, store *config.Store, f *ui.Formatter) {
	model := state.model
	if model == "" || model == "auto" {
		if mc, ok := store.BestModelForTask("auto"); ok {
			model = mc.Name + " (auto)"
		} else {
			model = "none available"
		}
	}
	fmt.Println(f.Header("Session"))
	fmt.Printf("  model:       %s\n", model)
	if state.temperature != nil {
		fmt.Printf("  temperature: %.2f\n", *state.temperature)
	} else {
		fmt.Printf("  temperature: %s\n", f.Muted("model default"))
	}
	fmt.Printf("  files:       %d\n", len(state.files))
	if state.search != "" {
		fmt.Printf("  search:      %s\n", state.search)
	}
	fmt.Printf("  enabled:     %d/%d models\n", len(store.EnabledModels()), len(store.ModelNames()))
}
