package verifier

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const exportFileName = "manual_review.csv"

var exportHeader = []string{"artist_name", "song_name", "channel_url"}

// ReviewExport appends verification rejections to a CSV file consumed by the
// manual-review collaborator. Appends are serialized so concurrent workers
// never interleave rows.
type ReviewExport struct {
	mu   sync.Mutex
	path string
}

// NewReviewExport creates an export writing into the given directory.
func NewReviewExport(dir string) *ReviewExport {
	return &ReviewExport{path: filepath.Join(dir, exportFileName)}
}

// Path returns the export file path.
func (e *ReviewExport) Path() string {
	return e.path
}

// Append writes one rejection row, creating the file with a header row on
// first use.
func (e *ReviewExport) Append(artist, song, channelURL string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, statErr := os.Stat(e.path)
	writeHeader := errors.Is(statErr, fs.ErrNotExist)

	file, err := os.OpenFile(e.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open review export: %w", err)
	}

	writer := csv.NewWriter(file)
	if writeHeader {
		if err := writer.Write(exportHeader); err != nil {
			_ = file.Close()
			return fmt.Errorf("write export header: %w", err)
		}
	}
	if err := writer.Write([]string{artist, song, channelURL}); err != nil {
		_ = file.Close()
		return fmt.Errorf("write export row: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return fmt.Errorf("flush review export: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close review export: %w", err)
	}
	return nil
}
