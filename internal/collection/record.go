// Package collection models a ManaBox-style card inventory: the raw rows as
// exported, the canonical attributes fetched from the card reference API, and
// the merged enriched rows written back out.
package collection

import (
	"strings"
)

// Record is one input row. Fields holds the original columns verbatim, in
// header order; the parsed identity fields and quantity are extracted at load
// time. Records are never mutated after Read returns them.
type Record struct {
	// Fields is the raw row exactly as read, padded to the header width.
	Fields []string

	Name            string
	SetCode         string
	CollectorNumber string
	ScryfallID      string
	Quantity        int
}

// Key identifies a card for reference lookups. Rows representing multiple
// copies of the same printing share a Key, so each distinct Key is resolved
// at most once per run.
//
// The explicit Scryfall ID wins when the export carries one; otherwise the
// key is the normalized name plus whatever printing identity is available.
// Non-identity columns (foil flag, condition, price) never participate.
type Key struct {
	ScryfallID      string
	Name            string
	SetCode         string
	CollectorNumber string
}

// KeyFor derives the lookup key for a record.
func KeyFor(r Record) Key {
	if id := strings.TrimSpace(r.ScryfallID); id != "" {
		return Key{ScryfallID: strings.ToLower(id)}
	}
	return Key{
		Name:            normalizeName(r.Name),
		SetCode:         strings.ToLower(strings.TrimSpace(r.SetCode)),
		CollectorNumber: strings.ToLower(strings.TrimSpace(r.CollectorNumber)),
	}
}

// String returns the canonical form used for dedup maps and the progress file.
func (k Key) String() string {
	if k.ScryfallID != "" {
		return "id:" + k.ScryfallID
	}
	return "name:" + k.Name + "|" + k.SetCode + "|" + k.CollectorNumber
}

// ByID reports whether the key resolves through the direct ID endpoint.
func (k Key) ByID() bool {
	return k.ScryfallID != ""
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Attributes is the flat set of canonical card fields extracted from a
// reference lookup. Everything is a string to keep the CSV contract simple
// and stable; optional fields (power, toughness, loyalty) are empty when the
// card type does not carry them, which is a valid state rather than an error.
type Attributes struct {
	ManaCost        string `json:"mana_cost"`
	TypeLine        string `json:"type_line"`
	OracleText      string `json:"oracle_text"`
	Power           string `json:"power"`
	Toughness       string `json:"toughness"`
	CMC             string `json:"cmc"`
	Colors          string `json:"colors"`
	ColorIdentity   string `json:"color_identity"`
	Rarity          string `json:"rarity"`
	Loyalty         string `json:"loyalty"`
	SetName         string `json:"set_name"`
	CollectorNumber string `json:"collector_number"`
	ImageURIs       string `json:"image_uris"`
}

// EnrichmentColumns returns the stable ordering of the appended output
// columns.
func EnrichmentColumns() []string {
	return []string{
		"mana_cost",
		"type_line",
		"oracle_text",
		"power",
		"toughness",
		"cmc",
		"colors",
		"color_identity",
		"rarity",
		"loyalty",
		"set_name",
		"collector_number",
		"image_uris",
	}
}

func (a Attributes) columns() []string {
	return []string{
		a.ManaCost,
		a.TypeLine,
		a.OracleText,
		a.Power,
		a.Toughness,
		a.CMC,
		a.Colors,
		a.ColorIdentity,
		a.Rarity,
		a.Loyalty,
		a.SetName,
		a.CollectorNumber,
		a.ImageURIs,
	}
}

// Collection is the in-memory input table: the original header plus every
// row in file order.
type Collection struct {
	Columns []string
	Records []Record
}

// DistinctKeys returns the lookup keys in first-appearance order, paired
// with a display name for reporting.
func (c *Collection) DistinctKeys() []KeyRef {
	seen := make(map[string]struct{}, len(c.Records))
	out := make([]KeyRef, 0, len(c.Records))
	for _, r := range c.Records {
		k := KeyFor(r)
		s := k.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, KeyRef{Key: k, DisplayName: r.Name})
	}
	return out
}

// KeyRef is a distinct lookup key plus the card name it was derived from.
type KeyRef struct {
	Key         Key
	DisplayName string
}
