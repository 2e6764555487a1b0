package collection

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Write emits the enriched table: the original columns verbatim, then the
// enrichment columns in their stable order. attrs maps Key.String() to the
// resolved attributes; rows whose key is absent get empty enrichment columns.
//
// The output always has exactly one row per input record, in input order.
func Write(w io.Writer, col *Collection, attrs map[string]Attributes) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(col.Columns)+len(EnrichmentColumns()))
	header = append(header, col.Columns...)
	header = append(header, EnrichmentColumns()...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range col.Records {
		a := attrs[KeyFor(r).String()]
		row := make([]string, 0, len(header))
		row = append(row, r.Fields...)
		row = append(row, a.columns()...)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the enriched table to path, creating parent directories
// as needed.
func WriteFile(path string, col *Collection, attrs map[string]Attributes) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := Write(f, col, attrs); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
