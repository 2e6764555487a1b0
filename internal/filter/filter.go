// Package filter applies pure in-memory predicates to an already-enriched
// collection. No I/O, no network.
package filter

import (
	"sort"
	"strings"

	"deckbuilder/internal/collection"
)

// Criteria is the set of predicates to apply. Zero-valued fields match
// everything; non-zero fields are combined with AND, multi-valued fields
// match any-of.
type Criteria struct {
	// Colors matches cards whose colors column contains any of the given
	// single-letter color codes (W, U, B, R, G).
	Colors []string
	// CMCMin/CMCMax bound the mana value, inclusive. Cards without a
	// parsable cmc never match a bounded query.
	CMCMin *float64
	CMCMax *float64
	// Types matches type_line substrings, case-insensitive.
	Types []string
	// Rarities matches the rarity column exactly (common, uncommon, rare,
	// mythic).
	Rarities []string
	// Sets matches set_name substrings, case-insensitive.
	Sets []string
	// NameSearch matches a card-name substring, case-insensitive.
	NameSearch string
}

// Apply returns the cards matching every predicate, sorted by name for
// stable output.
func Apply(cards []collection.Card, c Criteria) []collection.Card {
	out := make([]collection.Card, 0, len(cards))
	for _, card := range cards {
		if c.matches(card) {
			out = append(out, card)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c Criteria) matches(card collection.Card) bool {
	if len(c.Colors) > 0 && !containsAny(card.Colors, c.Colors, false) {
		return false
	}
	if c.CMCMin != nil || c.CMCMax != nil {
		v, ok := card.ManaValue()
		if !ok {
			return false
		}
		if c.CMCMin != nil && v < *c.CMCMin {
			return false
		}
		if c.CMCMax != nil && v > *c.CMCMax {
			return false
		}
	}
	if len(c.Types) > 0 && !containsAny(card.TypeLine, c.Types, true) {
		return false
	}
	if len(c.Rarities) > 0 && !equalsAny(card.Rarity, c.Rarities) {
		return false
	}
	if len(c.Sets) > 0 && !containsAny(card.SetName, c.Sets, true) {
		return false
	}
	if c.NameSearch != "" && !strings.Contains(strings.ToLower(card.Name), strings.ToLower(c.NameSearch)) {
		return false
	}
	return true
}

func containsAny(haystack string, needles []string, fold bool) bool {
	if fold {
		haystack = strings.ToLower(haystack)
	}
	for _, n := range needles {
		if fold {
			n = strings.ToLower(n)
		}
		if n != "" && strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func equalsAny(value string, wanted []string) bool {
	for _, w := range wanted {
		if strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(w)) {
			return true
		}
	}
	return false
}
