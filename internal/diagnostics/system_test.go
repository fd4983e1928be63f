package diagnostics

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSystem(t *testing.T) {
	report := CheckSystem()
	require.NotNil(t, report)

	assert.Equal(t, runtime.GOOS, report.GoOS)
	assert.Equal(t, runtime.GOARCH, report.GoArch)
	assert.Greater(t, report.CPUCores, 0)
	assert.Equal(t, len(report.Warnings) == 0, report.OK())
}
