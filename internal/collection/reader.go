package collection

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names recognized in the input export. Matching is case-insensitive
// against trimmed header cells.
const (
	ColumnName            = "Name"
	ColumnQuantity        = "Quantity"
	ColumnSetCode         = "Set code"
	ColumnCollectorNumber = "Collector number"
	ColumnScryfallID      = "Scryfall ID"
)

// ValidationError reports a structurally invalid input table: missing
// required columns or rows that cannot be interpreted. It is fatal and is
// raised before any network activity.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Msg
}

// Load reads and validates an input CSV from disk.
func Load(path string) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	col, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return col, nil
}

// Read parses an input CSV. The header row is required; Name and Quantity
// columns are required; all columns are preserved verbatim for pass-through.
func Read(r io.Reader) (*Collection, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ValidationError{Msg: "empty file"}
	}
	if err != nil {
		return nil, &ValidationError{Msg: fmt.Sprintf("read header: %v", err)}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	idx := columnIndex(header)
	var missing []string
	for _, required := range []string{ColumnName, ColumnQuantity} {
		if _, ok := idx[strings.ToLower(required)]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Msg: "missing required columns: " + strings.Join(missing, ", ")}
	}

	get := func(rec []string, name string) string {
		i, ok := idx[strings.ToLower(name)]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	col := &Collection{Columns: header}
	row := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ValidationError{Msg: fmt.Sprintf("row %d: %v", row+1, err)}
		}
		row++

		// A row wider than the header has no column mapping; silently
		// dropping the extra cells would lose pass-through data.
		if len(rec) > len(header) {
			return nil, &ValidationError{Msg: fmt.Sprintf("row %d: %d fields, header has %d columns", row, len(rec), len(header))}
		}

		name := get(rec, ColumnName)
		if name == "" {
			return nil, &ValidationError{Msg: fmt.Sprintf("row %d: empty card name", row)}
		}
		qty, err := parseQuantity(get(rec, ColumnQuantity))
		if err != nil {
			return nil, &ValidationError{Msg: fmt.Sprintf("row %d: %v", row, err)}
		}

		// Pad so pass-through writes stay aligned with the header.
		fields := make([]string, len(header))
		copy(fields, rec)

		col.Records = append(col.Records, Record{
			Fields:          fields,
			Name:            name,
			SetCode:         get(rec, ColumnSetCode),
			CollectorNumber: get(rec, ColumnCollectorNumber),
			ScryfallID:      get(rec, ColumnScryfallID),
			Quantity:        qty,
		})
	}
	return col, nil
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, exists := idx[key]; !exists {
			idx[key] = i
		}
	}
	return idx
}

func parseQuantity(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("quantity %q is not a number", raw)
	}
	if qty < 0 {
		return 0, fmt.Errorf("quantity %d is negative", qty)
	}
	return qty, nil
}
