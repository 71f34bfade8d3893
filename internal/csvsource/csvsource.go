// Package csvsource acquires datasets from CSV files. It is the
// upstream collaborator of the grid core: it produces a column set with
// stable, unique identifiers and records keyed by exactly those
// identifiers. Malformed input is surfaced here, never by the core.
package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-runewidth"

	"gridview/internal/domain"
)

// widthSampleRows is how many leading records seed the column widths
const widthSampleRows = 100

// Options control CSV acquisition
type Options struct {
	Delimiter rune // 0 means comma
	MinWidth  int  // column width lower bound
	MaxWidth  int  // column width upper bound
}

// Load reads a CSV file into a dataset and a matching column set
func Load(path string, opts Options) (*domain.Dataset, []domain.Column, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, cols, err := LoadReader(f, filepath.Base(path), opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return ds, cols, nil
}

// LoadReader reads CSV content into a dataset. The first row is the
// header and becomes the column identifier set, insertion order
// preserved. Records missing trailing fields get empty values; they are
// not an error.
func LoadReader(r io.Reader, name string, opts Options) (*domain.Dataset, []domain.Column, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1 // ragged rows handled below

	header, err := reader.Read()
	if err == io.EOF {
		return &domain.Dataset{Name: name}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	ids := uniqueIDs(header)

	var records []domain.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read record %d: %w", len(records)+2, err)
		}

		fields := make(map[string]domain.FieldValue, len(ids))
		for i, id := range ids {
			if i < len(row) {
				fields[id] = Infer(row[i])
			} else {
				fields[id] = domain.EmptyValue()
			}
		}
		records = append(records, domain.Record{Fields: fields})
	}

	ds := &domain.Dataset{Name: name, Records: records}
	cols := buildColumns(ids, header, records, opts)
	return ds, cols, nil
}

// buildColumns seeds each column's width from the header and a sample of
// the content, clamped into the configured bounds
func buildColumns(ids, titles []string, records []domain.Record, opts Options) []domain.Column {
	min := opts.MinWidth
	if min < 1 {
		min = 4
	}
	max := opts.MaxWidth
	if max < min {
		max = 80
	}

	cols := make([]domain.Column, len(ids))
	for i, id := range ids {
		width := runewidth.StringWidth(titles[i])
		sample := len(records)
		if sample > widthSampleRows {
			sample = widthSampleRows
		}
		for r := 0; r < sample; r++ {
			if w := runewidth.StringWidth(records[r].Get(id).Raw); w > width {
				width = w
			}
		}
		width += 2 // cell padding

		if width < min {
			width = min
		}
		if width > max {
			width = max
		}

		cols[i] = domain.Column{
			ID:        id,
			Title:     titles[i],
			Width:     width,
			MinWidth:  min,
			MaxWidth:  max,
			Resizable: true,
			Sortable:  true,
		}
	}
	return cols
}

// uniqueIDs derives stable unique identifiers from header cells,
// suffixing duplicates and naming blank headers positionally. A
// generated suffix is re-checked against earlier ids, so a header that
// already contains "a_2" cannot collide with the suffix for a second "a".
func uniqueIDs(header []string) []string {
	taken := make(map[string]bool, len(header))
	ids := make([]string, len(header))
	for i, h := range header {
		id := h
		if id == "" {
			id = fmt.Sprintf("column_%d", i+1)
		}
		if taken[id] {
			base := id
			for n := 2; ; n++ {
				id = fmt.Sprintf("%s_%d", base, n)
				if !taken[id] {
					break
				}
			}
		}
		taken[id] = true
		ids[i] = id
	}
	return ids
}
