package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/domain"
)

// Loader reads menu items from a CSV catalog source
type Loader struct {
	logger *logrus.Entry
}

// NewLoader creates a new catalog loader
func NewLoader(logger *logrus.Entry) *Loader {
	if logger == nil {
		logger = logrus.WithField("component", "catalog_loader")
	}
	return &Loader{logger: logger}
}

// LoadFile opens path and loads every catalog row from it
func (l *Loader) LoadFile(path string) ([]domain.CatalogItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer f.Close()

	items, err := l.Load(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	l.logger.WithFields(logrus.Fields{"path": path, "items": len(items)}).Info("catalog loaded")
	return items, nil
}

// Load parses a CSV stream with a header row.
// Returns domain.ErrCorpusSchema when required columns are missing and
// domain.ErrEmptyCorpus when the header is followed by no rows.
func (l *Loader) Load(r io.Reader) ([]domain.CatalogItem, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrEmptyCorpus
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var items []domain.CatalogItem
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(items)+1, err)
		}

		item, warnings := columns.mapRow(record)
		for _, w := range warnings {
			l.logger.WithFields(logrus.Fields{"row": len(items) + 1, "item": item.Name}).Warn(w)
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, domain.ErrEmptyCorpus
	}

	return items, nil
}
