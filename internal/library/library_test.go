package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orgball2608/reddit-videogen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostIDFromFileName(t *testing.T) {
	tests := map[string]string{
		"2024-01-01-abc123.mp4":  "abc123",
		"2024-01-01-abc123.json": "abc123",
		"prefix-xyz":             "xyz",
		"noseparator.mp4":        "noseparator",
		"trailing-.mp4":          "",
	}
	for name, want := range tests {
		assert.Equal(t, want, PostIDFromFileName(name), name)
	}
}

func TestExistingPostIDs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2024-01-01-abc123.mp4"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2024-01-02-def456.json"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "2024-01-03-ghi789"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2024-01-03-ghi789", "2024-01-03-nested.mp4"), nil, 0o644))

	ids, err := ExistingPostIDs(dir)
	require.NoError(t, err)

	assert.Equal(t, map[string]struct{}{"abc123": {}, "def456": {}}, ids)
}

func TestExistingPostIDs_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	ids, err := ExistingPostIDs(dir)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.DirExists(t, dir)
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	script := &domain.Script{
		FileName:      "2024-01-01-abc123",
		PostID:        "abc123",
		URL:           "https://www.reddit.com/r/x/comments/abc123/",
		Title:         "Title",
		TitleAudio:    &domain.AudioClip{Path: "Voiceovers/2024-01-01-abc123-title.wav", Duration: 2 * time.Second},
		TotalDuration: 8 * time.Second,
		Scenes: []*domain.Scene{
			{Text: "hello", CommentID: "c1", Audio: &domain.AudioClip{Duration: 6 * time.Second}, Screenshot: "Screenshots/p-t1_c1.png"},
		},
	}

	path, err := WriteManifest(context.Background(), dir, script)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024-01-01-abc123.json"), path)

	got, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, script, got)

	ids, err := ExistingPostIDs(dir)
	require.NoError(t, err)
	assert.Contains(t, ids, "abc123")
}

func TestWriteManifest_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WriteManifest(ctx, t.TempDir(), &domain.Script{FileName: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
