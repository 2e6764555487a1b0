package suggest

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"deckbuilder/internal/collection"
)

const (
	// complementPoolSize bounds the candidate list embedded in a
	// complements prompt.
	complementPoolSize = 50
	// comboPoolSize bounds the candidate list for pair/triplet discovery.
	comboPoolSize = 100

	oracleSnippetLen = 100
)

// spells keeps the card types worth suggesting: creatures and the
// spell-like permanents, skipping lands and blanks.
func spells(cards []collection.Card) []collection.Card {
	out := make([]collection.Card, 0, len(cards))
	for _, c := range cards {
		tl := strings.ToLower(c.TypeLine)
		switch {
		case strings.Contains(tl, "creature"),
			strings.Contains(tl, "instant"),
			strings.Contains(tl, "sorcery"),
			strings.Contains(tl, "enchantment"),
			strings.Contains(tl, "artifact"),
			strings.Contains(tl, "planeswalker"):
			out = append(out, c)
		}
	}
	return out
}

// samplePool picks up to n cards at random so prompts stay bounded on large
// collections.
func samplePool(cards []collection.Card, n int) []collection.Card {
	if len(cards) <= n {
		return cards
	}
	pool := make([]collection.Card, len(cards))
	copy(pool, cards)
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:n]
}

// describeSeeds resolves seed names against the collection
// (case-insensitive) and renders one descriptive line per found card.
func describeSeeds(cards []collection.Card, seedNames []string) (found []string, missing []string) {
	byName := make(map[string]collection.Card, len(cards))
	for _, c := range cards {
		byName[strings.ToLower(c.Name)] = c
	}
	for _, name := range seedNames {
		c, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			missing = append(missing, name)
			continue
		}
		found = append(found, cardLine(c, oracleSnippetLen))
	}
	return found, missing
}

func cardLine(c collection.Card, snippet int) string {
	oracle := c.OracleText
	// Truncate on rune boundaries; oracle text is full of em dashes and
	// mana symbols that a byte slice would split.
	if r := []rune(oracle); len(r) > snippet {
		oracle = string(r[:snippet]) + "..."
	}
	line := c.Name
	if c.ManaCost != "" {
		line += " (" + c.ManaCost + ")"
	}
	if c.TypeLine != "" {
		line += " / " + c.TypeLine
	}
	if oracle != "" {
		line += ": " + oracle
	}
	return line
}

func cardList(cards []collection.Card) string {
	lines := make([]string, 0, len(cards))
	for _, c := range cards {
		lines = append(lines, "- "+cardLine(c, oracleSnippetLen))
	}
	return strings.Join(lines, "\n")
}

func buildComplementsPrompt(seeds []string, pool []collection.Card, n int) string {
	var b strings.Builder
	b.WriteString("You are an expert Magic: the Gathering deck-builder. ")
	b.WriteString("Given seed cards, suggest cards that synergize with them to form a coherent strategy. ")
	b.WriteString("You must ONLY suggest cards from the provided list of available cards.\n\n")
	b.WriteString("I'm building around these cards:\n")
	for _, s := range seeds {
		b.WriteString("- " + s + "\n")
	}
	b.WriteString("\nAvailable cards in my collection:\n")
	b.WriteString(cardList(pool))
	fmt.Fprintf(&b, "\n\nSuggest %d cards from the available list that complement the seed cards. ", n)
	b.WriteString("For each suggestion give the exact card name from the list and a one-sentence rationale.")
	return b.String()
}

func buildComboPrompt(pool []collection.Card, n, size int) string {
	group := "pairs"
	if size == 3 {
		group = "triplets"
	}
	var b strings.Builder
	b.WriteString("You are an expert Magic: the Gathering deck-builder. ")
	fmt.Fprintf(&b, "Find synergistic card %s that work exceptionally well together: strong interactions, combo potential, or synergistic engines. ", group)
	b.WriteString("You must ONLY use cards from the provided list.\n\n")
	b.WriteString("Available cards in my collection:\n")
	b.WriteString(cardList(pool))
	fmt.Fprintf(&b, "\n\nFind %d synergistic %s of exactly %d cards each. ", n, group, size)
	b.WriteString("For each, give the exact card names from the list and a brief explanation of the synergy.")
	return b.String()
}

// filterOwnedSuggestions drops suggestions naming cards outside the
// collection and rewrites names to the exact owned casing.
func filterOwnedSuggestions(suggestions []Suggestion, cards []collection.Card) []Suggestion {
	owned := ownedNames(cards)
	out := make([]Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		exact, ok := owned[strings.ToLower(strings.TrimSpace(s.Name))]
		if !ok {
			continue
		}
		s.Name = exact
		out = append(out, s)
	}
	return out
}

// filterOwnedCombos keeps combos of the requested size whose cards are all
// owned.
func filterOwnedCombos(combos []Combo, cards []collection.Card, size int) []Combo {
	owned := ownedNames(cards)
	out := make([]Combo, 0, len(combos))
	for _, combo := range combos {
		if len(combo.Cards) != size {
			continue
		}
		names := make([]string, 0, size)
		ok := true
		for _, name := range combo.Cards {
			exact, found := owned[strings.ToLower(strings.TrimSpace(name))]
			if !found {
				ok = false
				break
			}
			names = append(names, exact)
		}
		if ok {
			combo.Cards = names
			out = append(out, combo)
		}
	}
	return out
}

func ownedNames(cards []collection.Card) map[string]string {
	owned := make(map[string]string, len(cards))
	for _, c := range cards {
		owned[strings.ToLower(c.Name)] = c.Name
	}
	return owned
}
