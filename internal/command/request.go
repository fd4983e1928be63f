package command

import (
	"fmt"
	"os"
	"strings"
)

// Output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

var outputFormats = []string{FormatText, FormatJSON, FormatMarkdown}

// Task types for model selection.
var taskTypes = []string{"coding", "analysis", "review", "generation", "research", "auto"}

// Request is a normalized one-shot invocation. It is produced by Parse and
// read-only from then on.
type Request struct {
	// Input
	Files  []string
	Prompt string
	Stdin  bool

	// Model selection
	Model       string
	Temperature *float64
	MaxTokens   *int

	// Output
	OutputDir   string
	Format      string
	SaveSession bool

	// Task shaping
	TaskType string
	Parallel bool
	Memory   bool
	Search   bool

	// Sandbox
	Sandbox bool
	Timeout *int

	// Code quality
	Lint       bool
	FormatCode bool
	Test       bool

	// Browser
	Browser  bool
	Headless bool

	// Interaction
	Interactive bool
	NoColor     bool
	Quiet       bool

	// Configuration meta
	ConfigCheck bool
	ListModels  bool
	ConfigFile  string
	ResetConfig bool

	// Diagnostics
	Debug   bool
	LogFile string
	DryRun  bool
}

// validate checks the structural constraints of a parsed request.
// knownModels is the model registry name set; nil disables the model check.
func (r *Request) validate(knownModels []string) error {
	if r.Interactive && (len(r.Files) > 0 || r.Prompt != "") {
		return validationErr("interactive mode cannot be used with input files or prompts")
	}

	if r.Model != "" && r.Model != "auto" && knownModels != nil {
		if !contains(knownModels, r.Model) {
			return validationErr("invalid model %q, available: %s", r.Model, strings.Join(knownModels, ", "))
		}
	}

	if r.Temperature != nil && (*r.Temperature < 0.0 || *r.Temperature > 2.0) {
		return validationErr("temperature %v out of range [0.0, 2.0]", *r.Temperature)
	}
	if r.MaxTokens != nil && *r.MaxTokens <= 0 {
		return validationErr("max tokens must be positive, got %d", *r.MaxTokens)
	}
	if r.Timeout != nil && *r.Timeout <= 0 {
		return validationErr("timeout must be positive, got %d", *r.Timeout)
	}

	if !contains(outputFormats, r.Format) {
		return validationErr("invalid format %q, available: %s", r.Format, strings.Join(outputFormats, ", "))
	}
	if !contains(taskTypes, r.TaskType) {
		return validationErr("invalid task type %q, available: %s", r.TaskType, strings.Join(taskTypes, ", "))
	}

	if r.OutputDir != "" {
		if err := os.MkdirAll(r.OutputDir, 0o750); err != nil {
			return &Error{
				Kind:    KindValidationFailure,
				Message: fmt.Sprintf("cannot create output directory %q", r.OutputDir),
				Err:     err,
			}
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
