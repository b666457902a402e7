// Package library tracks what has already been generated in the output directory.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PostIDFromFileName recovers the post id from names shaped like
// <anything>-<postId>.<ext>.
func PostIDFromFileName(name string) string {
	if i := strings.LastIndex(name, "-"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ExistingPostIDs scans dir (non-recursively) and returns the ids embedded in
// the names of its plain files. The directory is created when missing.
func ExistingPostIDs(dir string) (map[string]struct{}, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list output directory: %w", err)
	}

	ids := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if id := PostIDFromFileName(entry.Name()); id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}
