package collection

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Card is one row of an already-enriched collection CSV, as consumed by the
// filter and suggestion commands.
type Card struct {
	Name     string
	Quantity int
	Attributes
}

// ManaValue returns the parsed cmc column. Unparsable or empty values report
// ok=false so filters can skip rather than guess.
func (c Card) ManaValue() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(c.CMC), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// LoadEnriched reads an enriched collection CSV from disk.
func LoadEnriched(path string) ([]Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open collection: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	cards, err := ReadEnriched(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cards, nil
}

// ReadEnriched parses an enriched CSV. The Name column and every enrichment
// column must be present; extra columns are ignored.
func ReadEnriched(r io.Reader) ([]Card, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, &ValidationError{Msg: fmt.Sprintf("read header: %v", err)}
	}
	idx := columnIndex(header)

	var missing []string
	for _, required := range append([]string{ColumnName}, EnrichmentColumns()...) {
		if _, ok := idx[strings.ToLower(required)]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Msg: "not an enriched collection, missing columns: " + strings.Join(missing, ", ")}
	}

	get := func(rec []string, name string) string {
		i, ok := idx[strings.ToLower(name)]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var cards []Card
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return cards, nil
		}
		if err != nil {
			return nil, &ValidationError{Msg: fmt.Sprintf("read row: %v", err)}
		}

		qty := 1
		if raw := get(rec, ColumnQuantity); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				qty = parsed
			}
		}

		cards = append(cards, Card{
			Name:     get(rec, ColumnName),
			Quantity: qty,
			Attributes: Attributes{
				ManaCost:        get(rec, "mana_cost"),
				TypeLine:        get(rec, "type_line"),
				OracleText:      get(rec, "oracle_text"),
				Power:           get(rec, "power"),
				Toughness:       get(rec, "toughness"),
				CMC:             get(rec, "cmc"),
				Colors:          get(rec, "colors"),
				ColorIdentity:   get(rec, "color_identity"),
				Rarity:          get(rec, "rarity"),
				Loyalty:         get(rec, "loyalty"),
				SetName:         get(rec, "set_name"),
				CollectorNumber: get(rec, "collector_number"),
				ImageURIs:       get(rec, "image_uris"),
			},
		})
	}
}
