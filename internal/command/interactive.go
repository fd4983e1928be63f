package command

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ActionKind tags the variants of an interactive action.
type ActionKind int

const (
	// ActionNone is the successful no-op for an empty line.
	ActionNone ActionKind = iota
	ActionHelp
	ActionClear
	ActionShowConfig
	ActionListModels
	ActionShowStatus
	ActionSetModel
	ActionSetTemperature
	ActionLoadFile
	ActionListFiles
	ActionExecuteTask
	ActionSearch
	ActionQuit
	ActionUnknown
	ActionError
)

// Action is the normalized result of interpreting one interactive line.
type Action struct {
	Kind        ActionKind
	Value       string  // model name, file path, prompt, or query
	Temperature float64 // set for ActionSetTemperature
	Message     string  // human-readable text for ActionUnknown/ActionError
}

// Interpreter interprets interactive command lines. Interpret is total:
// every input resolves to an action, never a panic or error return.
type Interpreter struct {
	// KnownModels supplies registry names for `set model` validation.
	// Nil disables the check.
	KnownModels func() []string
}

var interactiveCommands = []string{
	"help", "clear", "config", "models", "status",
	"set", "load", "files", "task", "search", "exit", "quit",
}

// Interpret tokenizes one line and maps it to an action.
func (i *Interpreter) Interpret(line string) Action {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Action{Kind: ActionNone}
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		return Action{Kind: ActionHelp}
	case "clear":
		return Action{Kind: ActionClear}
	case "config":
		return Action{Kind: ActionShowConfig}
	case "models":
		return Action{Kind: ActionListModels}
	case "status":
		return Action{Kind: ActionShowStatus}
	case "exit", "quit", "q":
		return Action{Kind: ActionQuit}
	case "set":
		return i.interpretSet(args)
	case "load":
		if len(args) == 0 {
			return errorAction("usage: load <file>")
		}
		path := strings.Join(args, " ")
		if _, err := os.Stat(path); err != nil {
			return errorAction("file not found: %s", path)
		}
		return Action{Kind: ActionLoadFile, Value: path}
	case "files":
		return Action{Kind: ActionListFiles}
	case "task":
		if len(args) == 0 {
			return errorAction("usage: task <prompt>")
		}
		return Action{Kind: ActionExecuteTask, Value: strings.Join(args, " ")}
	case "search":
		if len(args) == 0 {
			return errorAction("usage: search <query>")
		}
		return Action{Kind: ActionSearch, Value: strings.Join(args, " ")}
	default:
		return i.unknown(cmd)
	}
}

func (i *Interpreter) interpretSet(args []string) Action {
	if len(args) < 2 {
		return errorAction("usage: set model <name> | set temp <value>")
	}
	setting := strings.ToLower(args[0])
	value := strings.Join(args[1:], " ")

	switch setting {
	case "model":
		if i.KnownModels != nil {
			known := i.KnownModels()
			if !contains(known, value) {
				return errorAction("invalid model %q, available: %s", value, strings.Join(known, ", "))
			}
		}
		return Action{Kind: ActionSetModel, Value: value}
	case "temp", "temperature":
		temp, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return errorAction("invalid temperature value %q", value)
		}
		// Negated form so NaN is rejected too.
		if !(temp >= 0.0 && temp <= 2.0) {
			return errorAction("temperature must be between 0.0 and 2.0, got %v", temp)
		}
		return Action{Kind: ActionSetTemperature, Temperature: temp}
	default:
		return errorAction("unknown setting %q, expected model or temp", setting)
	}
}

func (i *Interpreter) unknown(cmd string) Action {
	msg := fmt.Sprintf("unknown command %q, type \"help\" for available commands", cmd)
	if matches := fuzzy.Find(cmd, interactiveCommands); len(matches) > 0 {
		msg += fmt.Sprintf(" (did you mean %q?)", matches[0].Str)
	}
	return Action{Kind: ActionUnknown, Message: msg}
}

func errorAction(format string, args ...interface{}) Action {
	return Action{Kind: ActionError, Message: fmt.Sprintf(format, args...)}
}
