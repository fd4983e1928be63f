package command

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))
}

func TestResolveFiles_GlobExpansion(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.py"))
	touch(t, filepath.Join(dir, "b.py"))
	touch(t, filepath.Join(dir, "c.txt"))

	p := testParser(t)
	resolved, err := p.resolveFiles([]string{filepath.Join(dir, "*.py")})
	require.NoError(t, err)
	require.Len(t, resolved, 2)

	for _, path := range resolved {
		assert.True(t, filepath.IsAbs(path), "path %q should be absolute", path)
		assert.True(t, strings.HasSuffix(path, ".py"))
	}
	assert.True(t, sort.StringsAreSorted(resolved))
}

func TestResolveFiles_MissingEntriesDegradeToWarnings(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "real.go"))

	p := testParser(t)
	resolved, err := p.resolveFiles([]string{
		filepath.Join(dir, "real.go"),
		filepath.Join(dir, "missing.go"),
	})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.True(t, strings.HasSuffix(resolved[0], "real.go"))
}

func TestResolveFiles_EmptyTokenListIsNotAnError(t *testing.T) {
	resolved, err := testParser(t).resolveFiles(nil)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestResolveFiles_NothingValidIsError(t *testing.T) {
	dir := t.TempDir()

	p := testParser(t)
	_, err := p.resolveFiles([]string{filepath.Join(dir, "*.rs")})
	require.Error(t, err)

	var cmdErr *Error
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, KindNoValidFiles, cmdErr.Kind)
}

func TestResolveFiles_DirectoriesRejected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o750))
	touch(t, filepath.Join(dir, "keep.go"))

	p := testParser(t)
	resolved, err := p.resolveFiles([]string{
		filepath.Join(dir, "sub"),
		filepath.Join(dir, "keep.go"),
	})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
}

func TestResolveFiles_ValidatorFilters(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "small.go"))
	touch(t, filepath.Join(dir, "huge.go"))

	p := testParser(t)
	p.ValidateFile = func(path string) bool {
		return !strings.HasSuffix(path, "huge.go")
	}

	resolved, err := p.resolveFiles([]string{filepath.Join(dir, "*.go")})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.True(t, strings.HasSuffix(resolved[0], "small.go"))
}
