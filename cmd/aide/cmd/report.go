package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aide-ai/aide/internal/config"
	"github.com/aide-ai/aide/internal/ui"
)

// taskTypesForReport drives the recommendation table in list-models output.
var taskTypesForReport = []string{"coding", "analysis", "review", "generation", "research"}

// runConfigCheck prints a full configuration report and returns an error
// when any check fails, so the process exits non-zero.
func runConfigCheck(ctx context.Context, store *config.Store, f *ui.Formatter) error {
	fmt.Println(f.Header("Configuration Check"))
	fmt.Printf("config directory: %s\n\n", store.Dir())

	var problems []string

	sandbox := store.Sandbox()
	fmt.Println(f.Info("Directories"))
	for _, dir := range []string{sandbox.WorkspaceDir, store.Memory().IndexPath, store.Logging().LogDir} {
		if dir == "" {
			continue
		}
		dir = store.ResolvePath(dir)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			problems = append(problems, fmt.Sprintf("directory %s is missing", dir))
			fmt.Printf("  %s %s\n", f.Error("MISSING"), dir)
		} else {
			fmt.Printf("  %s %s\n", f.Success("ok"), dir)
		}
	}

	fmt.Println()
	names := store.ModelNames()
	fmt.Println(f.Info(fmt.Sprintf("Models (%d configured, %d enabled)", len(names), len(store.EnabledModels()))))
	if len(names) == 0 {
		problems = append(problems, "model registry is empty")
	}
	reachable := store.CheckConnectivity(ctx)
	for _, name := range names {
		mc, _ := store.Model(name)
		switch {
		case !mc.Enabled:
			fmt.Printf("  %s %s (%s)\n", f.Muted("disabled"), name, mc.Model)
		case reachable[name]:
			fmt.Printf("  %s %s (%s)\n", f.Success("reachable"), name, mc.Model)
		default:
			problems = append(problems, fmt.Sprintf("model %s is enabled but unreachable", name))
			fmt.Printf("  %s %s (%s)\n", f.Error("UNREACHABLE"), name, mc.Model)
		}
	}

	fmt.Println()
	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Println(f.Error(p))
		}
		return errors.New("configuration check failed")
	}
	fmt.Println(f.Success("all checks passed"))
	return nil
}

// printModels lists the registry and the model each task type resolves to.
func printModels(store *config.Store, f *ui.Formatter) {
	fmt.Println(f.Header("Available Models"))
	for _, name := range store.ModelNames() {
		mc, _ := store.Model(name)
		state := f.Success("enabled")
		if !mc.Enabled {
			state = f.Muted("disabled")
		}
		fmt.Printf("  %-20s %-10s %s\n", name, state, mc.Model)
		fmt.Printf("  %-20s %s\n", "",
			f.Muted(fmt.Sprintf("max_tokens=%d temperature=%.1f timeout=%ds", mc.MaxTokens, mc.Temperature, mc.Timeout)))
		if len(mc.Capabilities) > 0 {
			caps := append([]string(nil), mc.Capabilities...)
			sort.Strings(caps)
			fmt.Printf("  %-20s %s\n", "", f.Muted(strings.Join(caps, ", ")))
		}
	}

	fmt.Println()
	fmt.Println(f.Header("Task Routing"))
	for _, task := range taskTypesForReport {
		if mc, ok := store.BestModelForTask(task); ok {
			fmt.Printf("  %-12s -> %s\n", task, mc.Name)
		} else {
			fmt.Printf("  %-12s -> %s\n", task, f.Muted("no enabled model"))
		}
	}
}
