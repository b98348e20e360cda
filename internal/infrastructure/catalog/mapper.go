package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/domain"
)

// utf8BOM is stripped from the first header cell when present
const utf8BOM = "\uFEFF"

// columnIndex maps each required column to its position in a row
type columnIndex map[string]int

// resolveColumns trims header names and locates every required column
func resolveColumns(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	columns := make(columnIndex, len(domain.RequiredColumns))
	var missing []string
	for _, required := range domain.RequiredColumns {
		pos, ok := positions[required]
		if !ok {
			missing = append(missing, required)
			continue
		}
		columns[required] = pos
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", domain.ErrCorpusSchema, strings.Join(missing, ", "))
	}

	return columns, nil
}

// field returns the cell for column, or "" when the row is short
func (c columnIndex) field(record []string, column string) string {
	pos := c[column]
	if pos >= len(record) {
		return ""
	}
	return record[pos]
}

// mapRow converts a CSV record to a CatalogItem.
// Unparseable numbers become 0 and are reported as warnings.
func (c columnIndex) mapRow(record []string) (domain.CatalogItem, []string) {
	var warnings []string

	price, err := parseNumber(c.field(record, domain.ColumnPrice))
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("invalid %s: %v", domain.ColumnPrice, err))
	}

	rating, err := parseNumber(c.field(record, domain.ColumnRating))
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("invalid %s: %v", domain.ColumnRating, err))
	}

	return domain.CatalogItem{
		Name:        c.field(record, domain.ColumnName),
		Description: c.field(record, domain.ColumnDescription),
		Price:       price,
		Category:    c.field(record, domain.ColumnCategory),
		ImageURL:    c.field(record, domain.ColumnImageURL),
		Restaurant:  c.field(record, domain.ColumnRestaurant),
		Rating:      rating,
	}, warnings
}

// parseNumber parses a decimal cell. Empty cells are 0 without a warning.
func parseNumber(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, nil
	}

	v, err := cast.ToFloat64E(cell)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", cell)
	}

	return v, nil
}
