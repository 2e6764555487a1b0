package filter

import (
	"strings"

	"deckbuilder/internal/collection"
)

// CardTypes are the major type buckets reported by Summarize, in display
// order.
var CardTypes = []string{"Creature", "Instant", "Sorcery", "Enchantment", "Artifact", "Planeswalker", "Land"}

// ColorCodes are the five colors in WUBRG order.
var ColorCodes = []string{"W", "U", "B", "R", "G"}

// CurveBuckets is the number of mana-value buckets; the last bucket is
// "CurveBuckets-1 or more".
const CurveBuckets = 8

// Stats summarizes an enriched collection.
type Stats struct {
	Total   int
	ByType  map[string]int
	ByColor map[string]int
	// Curve[i] counts cards with mana value i; the final bucket absorbs
	// everything above it.
	Curve [CurveBuckets]int
}

// Summarize computes collection statistics over distinct rows (quantities
// are not multiplied in, matching how the export lists one row per
// printing).
func Summarize(cards []collection.Card) Stats {
	s := Stats{
		ByType:  make(map[string]int, len(CardTypes)),
		ByColor: make(map[string]int, len(ColorCodes)),
	}
	s.Total = len(cards)

	for _, card := range cards {
		typeLine := strings.ToLower(card.TypeLine)
		for _, t := range CardTypes {
			if strings.Contains(typeLine, strings.ToLower(t)) {
				s.ByType[t]++
			}
		}
		for _, c := range ColorCodes {
			if strings.Contains(card.Colors, c) {
				s.ByColor[c]++
			}
		}
		if v, ok := card.ManaValue(); ok {
			bucket := int(v)
			if bucket < 0 {
				bucket = 0
			}
			if bucket >= CurveBuckets {
				bucket = CurveBuckets - 1
			}
			s.Curve[bucket]++
		}
	}
	return s
}
