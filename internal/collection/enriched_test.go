package collection

import (
	"errors"
	"strings"
	"testing"
)

func enrichedCSV() string {
	header := append([]string{"Name", "Quantity"}, EnrichmentColumns()...)
	row := func(fields map[string]string) string {
		out := make([]string, len(header))
		for i, col := range header {
			out[i] = fields[col]
		}
		return strings.Join(out, ",")
	}
	return strings.Join([]string{
		strings.Join(header, ","),
		row(map[string]string{"Name": "Island", "Quantity": "12", "type_line": "Basic Land — Island", "cmc": "0"}),
		row(map[string]string{"Name": "Counterspell", "Quantity": "1", "type_line": "Instant", "cmc": "2", "colors": "U"}),
	}, "\n")
}

func TestReadEnriched(t *testing.T) {
	t.Parallel()

	cards, err := ReadEnriched(strings.NewReader(enrichedCSV()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].Name != "Island" || cards[0].Quantity != 12 || cards[0].TypeLine != "Basic Land — Island" {
		t.Fatalf("unexpected first card: %#v", cards[0])
	}
	if cards[1].Colors != "U" {
		t.Fatalf("unexpected second card: %#v", cards[1])
	}
}

func TestReadEnriched_RejectsUnenrichedCSV(t *testing.T) {
	t.Parallel()

	_, err := ReadEnriched(strings.NewReader("Name,Quantity\nIsland,12\n"))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(ve.Error(), "type_line") {
		t.Fatalf("error should name missing columns: %v", ve)
	}
}

func TestManaValue(t *testing.T) {
	t.Parallel()

	if v, ok := (Card{Attributes: Attributes{CMC: "2"}}).ManaValue(); !ok || v != 2 {
		t.Fatalf("got %v, %v", v, ok)
	}
	if v, ok := (Card{Attributes: Attributes{CMC: "0.5"}}).ManaValue(); !ok || v != 0.5 {
		t.Fatalf("got %v, %v", v, ok)
	}
	if _, ok := (Card{}).ManaValue(); ok {
		t.Fatal("empty cmc must report ok=false")
	}
	if _, ok := (Card{Attributes: Attributes{CMC: "n/a"}}).ManaValue(); ok {
		t.Fatal("unparsable cmc must report ok=false")
	}
}
