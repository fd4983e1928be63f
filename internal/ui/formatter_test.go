package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatter_PlainMarkers(t *testing.T) {
	f := NewFormatter(true)

	assert.Equal(t, "== Models ==", f.Header("Models"))
	assert.Equal(t, "OK saved", f.Success("saved"))
	assert.Equal(t, "ERROR bad input", f.Error("bad input"))
	assert.Equal(t, "WARN disk low", f.Warning("disk low"))
	assert.Equal(t, "detail", f.Info("detail"))
	assert.Equal(t, "detail", f.Muted("detail"))
}

func TestFormatter_ColorKeepsText(t *testing.T) {
	f := NewFormatter(false)

	for _, render := range []func(string) string{
		f.Header, f.Success, f.Error, f.Warning, f.Info, f.Muted,
	} {
		assert.Contains(t, render("payload"), "payload")
	}
}
