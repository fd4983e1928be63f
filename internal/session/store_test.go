package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	sess := &Session{
		Model:    "deepseek_v3",
		TaskType: "coding",
		Prompt:   "refactor the loader",
		Files:    []string{"/tmp/a.go", "/tmp/b.go"},
	}
	require.NoError(t, s.Save(ctx, sess))
	assert.NotEmpty(t, sess.ID, "Save should assign an id")
	assert.False(t, sess.CreatedAt.IsZero(), "Save should assign a timestamp")

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.Model, got.Model)
	assert.Equal(t, sess.TaskType, got.TaskType)
	assert.Equal(t, sess.Prompt, got.Prompt)
	assert.Equal(t, sess.Files, got.Files)
	assert.WithinDuration(t, sess.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestGet_NotFound(t *testing.T) {
	s := openStore(t)

	_, err := s.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Save(ctx, &Session{
			ID:        string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Model:     "m",
			TaskType:  "auto",
		}))
	}

	got, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestSave_UpsertsById(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	sess := &Session{Model: "m", TaskType: "auto", Prompt: "first"}
	require.NoError(t, s.Save(ctx, sess))

	sess.Prompt = "second"
	require.NoError(t, s.Save(ctx, sess))

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "second", all[0].Prompt)
}
