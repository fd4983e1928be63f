// Package diagnostics runs best-effort host checks before the assistant
// starts. Problems degrade to warnings; the CLI never refuses to run
// because the machine is busy.
package diagnostics

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Minimum comfortable resources for local task execution.
const (
	minAvailableMemMB = 512
	minFreeDiskMB     = 1024
)

// Report summarizes a system compatibility check.
type Report struct {
	GoOS       string
	GoArch     string
	CPUCores   int
	MemTotalMB uint64
	MemFreeMB  uint64
	DiskFreeMB uint64
	Warnings   []string
}

// OK reports whether the check produced no warnings.
func (r *Report) OK() bool { return len(r.Warnings) == 0 }

// CheckSystem collects host metrics and flags shortfalls. Metric collection
// failures are themselves reported as warnings, never as errors.
func CheckSystem() *Report {
	report := &Report{
		GoOS:     runtime.GOOS,
		GoArch:   runtime.GOARCH,
		CPUCores: runtime.NumCPU(),
	}

	if counts, err := cpu.Counts(true); err == nil && counts > 0 {
		report.CPUCores = counts
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("cannot read memory stats: %v", err))
	} else {
		report.MemTotalMB = vm.Total / (1 << 20)
		report.MemFreeMB = vm.Available / (1 << 20)
		if report.MemFreeMB < minAvailableMemMB {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("low available memory: %d MB (recommended at least %d MB)", report.MemFreeMB, minAvailableMemMB))
		}
	}

	if usage, err := disk.Usage("."); err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("cannot read disk stats: %v", err))
	} else {
		report.DiskFreeMB = usage.Free / (1 << 20)
		if report.DiskFreeMB < minFreeDiskMB {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("low free disk space: %d MB (recommended at least %d MB)", report.DiskFreeMB, minFreeDiskMB))
		}
	}

	return report
}
