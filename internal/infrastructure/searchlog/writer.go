package searchlog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/domain"
)

// FileWriter appends search log records to a JSON-lines file
type FileWriter struct {
	path string
	mu   sync.Mutex
}

// NewFileWriter creates a writer for path. The file is created on first write.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Path returns the log file location
func (w *FileWriter) Path() string {
	return w.path
}

// Append writes record as one newline-terminated JSON object.
// Appends are serialized so concurrent callers never interleave lines.
func (w *FileWriter) Append(record domain.SearchLogRecord) error {
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: encode record: %v", domain.ErrLogWrite, err)
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLogWrite, err)
	}

	if _, err := f.Write(line); err != nil {
		f.Close()
		return fmt.Errorf("%w: %v", domain.ErrLogWrite, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLogWrite, err)
	}

	return nil
}
