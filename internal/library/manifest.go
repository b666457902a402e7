package library

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/orgball2608/reddit-videogen/internal/domain"
)

const manifestExt = ".json"

// WriteManifest atomically stores script as <dir>/<fileName>.json. Once it
// exists the post counts as converted.
func WriteManifest(ctx context.Context, dir string, script *domain.Script) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(script, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}

	path := filepath.Join(dir, script.FileName+manifestExt)
	if err := renameio.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write manifest %s: %w", path, err)
	}
	return path, nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*domain.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var script domain.Script
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	return &script, nil
}
