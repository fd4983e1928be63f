package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aide-ai/aide/internal/command"
	"github.com/aide-ai/aide/internal/config"
	"github.com/aide-ai/aide/internal/diagnostics"
	"github.com/aide-ai/aide/internal/logging"
	"github.com/aide-ai/aide/internal/ui"
)

// Version info - set via SetVersion()
var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "aide",
	Short: "Multi-model AI assistant CLI",
	Long: `aide routes tasks to externally hosted language-model providers.

It manages a layered configuration (model registry, sandbox, memory,
security, UI) and parses one-shot or interactive commands, handing
validated actions to the task orchestrator.

Running 'aide' without arguments starts interactive mode.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion injects build-time version information.
func SetVersion(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("aide %s (commit %s, built %s)\n", version, commit, date))
}

func init() {
	command.RegisterFlags(rootCmd.Flags())

	viper.SetEnvPrefix("AIDE")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("no_color", rootCmd.Flags().Lookup("no-color"))
	_ = viper.BindPFlag("quiet", rootCmd.Flags().Lookup("quiet"))
	_ = viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
}

func run(cmd *cobra.Command, _ []string) error {
	fs := cmd.Flags()

	// Bound keys resolve flag > AIDE_* env > default through viper.
	debug := viper.GetBool("debug")
	quiet := viper.GetBool("quiet")
	noColor := viper.GetBool("no_color")
	logFile, _ := fs.GetString("log-file")

	level := "info"
	if debug {
		level = "debug"
	}
	if quiet && !debug {
		level = "error"
	}
	logger := logging.New(logging.Config{Level: level, Format: "auto", Output: os.Stderr, File: logFile})
	formatter := ui.NewFormatter(noColor)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgDir, _ := fs.GetString("config-file")
	if cfgDir == "" {
		cfgDir = defaultConfigDir()
	}
	store := config.New(cfgDir).WithLogger(logger.Logger)

	if reset, _ := fs.GetBool("reset-config"); reset {
		if err := store.Reset(); err != nil {
			return err
		}
		fmt.Println(formatter.Success("configuration reset to defaults in " + cfgDir))
	}

	if err := store.Load(); err != nil {
		return err
	}

	if report := diagnostics.CheckSystem(); !report.OK() && !quiet {
		for _, warning := range report.Warnings {
			logger.Warn(warning)
		}
	}

	parser := &command.Parser{
		KnownModels:  store.ModelNames,
		ValidateFile: fileValidator(store.Sandbox()),
		Logger:       logger.Logger,
	}
	req, err := parser.FromFlags(fs)
	if err != nil {
		return err
	}
	// Env-resolved interaction settings win over the flag defaults.
	req.Debug, req.Quiet, req.NoColor = debug, quiet, noColor

	switch {
	case req.ConfigCheck:
		return runConfigCheck(ctx, store, formatter)
	case req.ListModels:
		printModels(store, formatter)
		return nil
	case interactiveMode(req):
		return runInteractive(ctx, store, req, formatter, logger)
	default:
		return runBatch(ctx, store, req, formatter, logger)
	}
}

// interactiveMode reports whether the request selects the default
// interactive mode: no prompt, no files, no meta query.
func interactiveMode(req *command.Request) bool {
	return req.Interactive || (req.Prompt == "" && len(req.Files) == 0)
}

func defaultConfigDir() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "aide")
	}
	return "./config"
}

// fileValidator rejects input files larger than the sandbox file limit.
func fileValidator(sandbox config.SandboxConfig) command.FileValidator {
	maxBytes := int64(sandbox.MaxFileSizeMB) << 20
	return func(path string) bool {
		info, err := os.Stat(path)
		if err != nil {
			return false
		}
		return maxBytes <= 0 || info.Size() <= maxBytes
	}
}
