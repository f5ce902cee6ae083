package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandevgo/provostbot/pkg/log"
)

// pageRecord is the slice of a scraped-page file we care about.
type pageRecord struct {
	Metadata struct {
		SourceURL string `json:"sourceURL"`
	} `json:"metadata"`
}

// BuildIndex scans a directory of scraped-page JSON records and maps each
// filename to the sourceURL found in its metadata. Records without a
// sourceURL or with invalid JSON are skipped, not fatal.
func BuildIndex(ctx context.Context, dir string) (map[string]string, error) {
	logger := log.FromCtx(ctx)

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .json files found in %s", dir)
	}

	index := make(map[string]string, len(paths))
	for _, path := range paths {
		name := filepath.Base(path)

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn().Err(err).Str("file", name).Msg("skipping unreadable page record")
			continue
		}

		var rec pageRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			logger.Warn().Err(err).Str("file", name).Msg("skipping invalid page record")
			continue
		}
		if rec.Metadata.SourceURL == "" {
			logger.Warn().Str("file", name).Msg("skipping page record without sourceURL")
			continue
		}

		index[name] = rec.Metadata.SourceURL
	}

	logger.Info().Int("files", len(paths)).Int("indexed", len(index)).Msg("scanned page records")
	return index, nil
}

// WriteIndex persists the index as pretty-printed JSON.
func WriteIndex(path string, index map[string]string) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog index: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write catalog index: %w", err)
	}
	return nil
}
