package command

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParser(t *testing.T) *Parser {
	t.Helper()
	return &Parser{
		KnownModels: func() []string {
			return []string{"devstral_small", "phi_4_reasoning", "deepseek_v3"}
		},
	}
}

// args prefixes every vector with an output directory inside the test's
// temp dir so validation never writes into the working directory.
func args(t *testing.T, rest ...string) []string {
	t.Helper()
	return append([]string{"-o", t.TempDir()}, rest...)
}

func TestParse_EmptyArgvIsInteractive(t *testing.T) {
	req, err := testParser(t).Parse(nil)
	require.NoError(t, err)
	assert.True(t, req.Interactive)
	assert.Equal(t, "auto", req.Model)
	assert.Equal(t, FormatText, req.Format)
	assert.True(t, req.Sandbox)
	assert.True(t, req.Headless)
}

func TestParse_InteractiveExcludesPrompt(t *testing.T) {
	_, err := testParser(t).Parse(args(t, "-i", "-p", "hello"))
	require.Error(t, err)

	var cmdErr *Error
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, KindValidationFailure, cmdErr.Kind)
}

func TestParse_TemperatureBounds(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"0.0", true},
		{"2.0", true},
		{"1.0", true},
		{"-0.001", false},
		{"2.001", false},
	}
	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			req, err := testParser(t).Parse(args(t, "-p", "x", "--temperature", tc.value))
			if tc.ok {
				require.NoError(t, err)
				require.NotNil(t, req.Temperature)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "temperature")
			}
		})
	}
}

func TestParse_TemperatureUnsetStaysNil(t *testing.T) {
	req, err := testParser(t).Parse(args(t, "-p", "x"))
	require.NoError(t, err)
	assert.Nil(t, req.Temperature)
	assert.Nil(t, req.MaxTokens)
	assert.Nil(t, req.Timeout)
}

func TestParse_UnknownModelEnumeratesKnown(t *testing.T) {
	_, err := testParser(t).Parse(args(t, "-p", "x", "-m", "gpt_99"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gpt_99")
	assert.Contains(t, err.Error(), "devstral_small")
	assert.Contains(t, err.Error(), "deepseek_v3")
}

func TestParse_ModelAutoSkipsRegistryCheck(t *testing.T) {
	req, err := testParser(t).Parse(args(t, "-p", "x", "-m", "auto"))
	require.NoError(t, err)
	assert.Equal(t, "auto", req.Model)
}

func TestParse_NoSandboxWins(t *testing.T) {
	req, err := testParser(t).Parse(args(t, "-p", "x", "--sandbox", "--no-sandbox"))
	require.NoError(t, err)
	assert.False(t, req.Sandbox)
}

func TestParse_InvalidFormat(t *testing.T) {
	_, err := testParser(t).Parse(args(t, "-p", "x", "--format", "yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml")
	assert.Contains(t, err.Error(), "markdown")
}

func TestParse_InvalidTaskType(t *testing.T) {
	_, err := testParser(t).Parse(args(t, "-p", "x", "--task-type", "poetry"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "poetry")
}

func TestParse_UnknownFlagIsParseFailure(t *testing.T) {
	_, err := testParser(t).Parse([]string{"--frobnicate"})
	require.Error(t, err)

	var cmdErr *Error
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, KindParseFailure, cmdErr.Kind)
}

func TestParse_NonPositiveNumericLimits(t *testing.T) {
	_, err := testParser(t).Parse(args(t, "-p", "x", "--max-tokens", "0"))
	require.Error(t, err)

	_, err = testParser(t).Parse(args(t, "-p", "x", "--timeout", "-5"))
	require.Error(t, err)
}

func TestParse_StdinSubstitutesPrompt(t *testing.T) {
	p := testParser(t)
	p.Stdin = strings.NewReader("  prompt from a pipe\n")

	req, err := p.Parse(args(t, "--stdin", "-p", "ignored"))
	require.NoError(t, err)
	assert.Equal(t, "prompt from a pipe", req.Prompt)
}

func TestParse_EmptyStdinKeepsFlagPrompt(t *testing.T) {
	p := testParser(t)
	p.Stdin = strings.NewReader("   \n")

	req, err := p.Parse(args(t, "--stdin", "-p", "fallback"))
	require.NoError(t, err)
	assert.Equal(t, "fallback", req.Prompt)
}

func TestParse_OutputDirCreated(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "out")
	_, err := testParser(t).Parse([]string{"-p", "x", "-o", out})
	require.NoError(t, err)
	assert.DirExists(t, out)
}
