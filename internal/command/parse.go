package command

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// Parser turns argument vectors into validated requests. The zero value is
// usable; collaborators are optional.
type Parser struct {
	// KnownModels supplies the model registry names for validation.
	// Nil disables the model-name check.
	KnownModels func() []string
	// ValidateFile is an external per-file acceptance predicate.
	// Nil accepts every existing regular file.
	ValidateFile FileValidator
	// Stdin is read when --stdin is set. Defaults to os.Stdin.
	Stdin io.Reader
	// Logger receives per-item warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// RegisterFlags defines the full command-line surface on fs. The same set
// backs both the cobra command and standalone parsing.
func RegisterFlags(fs *pflag.FlagSet) {
	// Input
	fs.StringArrayP("files", "f", nil, "input files (paths or glob patterns)")
	fs.StringP("prompt", "p", "", "task prompt or instruction")
	fs.Bool("stdin", false, "read prompt from stdin")

	// Model
	fs.StringP("model", "m", "auto", "model to use (auto or a configured model name)")
	fs.Float64("temperature", 0, "model temperature (0.0-2.0)")
	fs.Int("max-tokens", 0, "maximum tokens to generate")

	// Output
	fs.StringP("output", "o", "./output", "output directory")
	fs.String("format", FormatText, "output format (text, json, markdown)")
	fs.Bool("save-session", false, "save session for later resume")

	// Task
	fs.String("task-type", "auto", "task type for model selection (coding, analysis, review, generation, research, auto)")
	fs.Bool("parallel", false, "enable parallel task execution")
	fs.Bool("memory", false, "enable memory and context retention")
	fs.Bool("search", false, "enable semantic search in input files")

	// Sandbox
	fs.Bool("sandbox", true, "enable sandbox execution")
	fs.Bool("no-sandbox", false, "disable sandbox execution (dangerous)")
	fs.Int("timeout", 0, "task timeout in seconds")

	// Code quality
	fs.Bool("lint", false, "enable code linting")
	fs.Bool("format-code", false, "auto-format generated code")
	fs.Bool("test", false, "generate and run tests")

	// Browser
	fs.Bool("browser", false, "enable browser automation for research")
	fs.Bool("headless", true, "run browser in headless mode")

	// Interaction
	fs.BoolP("interactive", "i", false, "start in interactive mode")
	fs.Bool("no-color", false, "disable colored output")
	fs.Bool("quiet", false, "quiet mode, minimal output")

	// Configuration meta
	fs.Bool("config-check", false, "check configuration and model connectivity")
	fs.Bool("list-models", false, "list available models and their capabilities")
	fs.String("config-file", "", "custom configuration directory")
	fs.Bool("reset-config", false, "reset configuration to defaults")

	// Diagnostics
	fs.Bool("debug", false, "enable debug logging")
	fs.String("log-file", "", "custom log file path")
	fs.Bool("dry-run", false, "show what would be done without executing")
}

// Parse parses a raw argument vector into a validated request. An empty
// vector maps to an interactive request, the default mode.
func (p *Parser) Parse(argv []string) (*Request, error) {
	if len(argv) == 0 {
		req := defaultRequest()
		req.Interactive = true
		return req, nil
	}

	fs := pflag.NewFlagSet("aide", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	RegisterFlags(fs)
	if err := fs.Parse(argv); err != nil {
		if err == pflag.ErrHelp {
			return nil, err
		}
		return nil, &Error{Kind: KindParseFailure, Err: err}
	}
	return p.FromFlags(fs)
}

// FromFlags builds a request from an already-parsed flag set, then runs
// stdin substitution, request validation, and file resolution.
func (p *Parser) FromFlags(fs *pflag.FlagSet) (*Request, error) {
	req := defaultRequest()

	req.Files, _ = fs.GetStringArray("files")
	req.Prompt, _ = fs.GetString("prompt")
	req.Stdin, _ = fs.GetBool("stdin")

	req.Model, _ = fs.GetString("model")
	if fs.Changed("temperature") {
		t, _ := fs.GetFloat64("temperature")
		req.Temperature = &t
	}
	if fs.Changed("max-tokens") {
		n, _ := fs.GetInt("max-tokens")
		req.MaxTokens = &n
	}

	req.OutputDir, _ = fs.GetString("output")
	req.Format, _ = fs.GetString("format")
	req.SaveSession, _ = fs.GetBool("save-session")

	req.TaskType, _ = fs.GetString("task-type")
	req.Parallel, _ = fs.GetBool("parallel")
	req.Memory, _ = fs.GetBool("memory")
	req.Search, _ = fs.GetBool("search")

	req.Sandbox, _ = fs.GetBool("sandbox")
	if noSandbox, _ := fs.GetBool("no-sandbox"); noSandbox {
		req.Sandbox = false
	}
	if fs.Changed("timeout") {
		n, _ := fs.GetInt("timeout")
		req.Timeout = &n
	}

	req.Lint, _ = fs.GetBool("lint")
	req.FormatCode, _ = fs.GetBool("format-code")
	req.Test, _ = fs.GetBool("test")

	req.Browser, _ = fs.GetBool("browser")
	req.Headless, _ = fs.GetBool("headless")

	req.Interactive, _ = fs.GetBool("interactive")
	req.NoColor, _ = fs.GetBool("no-color")
	req.Quiet, _ = fs.GetBool("quiet")

	req.ConfigCheck, _ = fs.GetBool("config-check")
	req.ListModels, _ = fs.GetBool("list-models")
	req.ConfigFile, _ = fs.GetString("config-file")
	req.ResetConfig, _ = fs.GetBool("reset-config")

	req.Debug, _ = fs.GetBool("debug")
	req.LogFile, _ = fs.GetString("log-file")
	req.DryRun, _ = fs.GetBool("dry-run")

	if req.Stdin {
		p.readPromptFromStdin(req)
	}

	var known []string
	if p.KnownModels != nil {
		known = p.KnownModels()
	}
	if err := req.validate(known); err != nil {
		return nil, err
	}

	if len(req.Files) > 0 {
		resolved, err := p.resolveFiles(req.Files)
		if err != nil {
			return nil, err
		}
		req.Files = resolved
	}
	return req, nil
}

// readPromptFromStdin overwrites the prompt with stdin contents. A read
// failure degrades to a warning; the flag-supplied prompt is kept.
func (p *Parser) readPromptFromStdin(req *Request) {
	in := p.Stdin
	if in == nil {
		in = os.Stdin
	}
	data, err := io.ReadAll(in)
	if err != nil {
		p.logger().Warn("could not read from stdin", "error", err)
		return
	}
	if content := strings.TrimSpace(string(data)); content != "" {
		req.Prompt = content
	}
}

func (p *Parser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func defaultRequest() *Request {
	return &Request{
		Model:     "auto",
		OutputDir: "./output",
		Format:    FormatText,
		TaskType:  "auto",
		Sandbox:   true,
		Headless:  true,
	}
}
