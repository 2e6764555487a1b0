package suggest

import (
	"strings"
	"testing"

	"deckbuilder/internal/filter"
)

func TestBuildAnalysisPrompt(t *testing.T) {
	t.Parallel()

	cards := ownedCards()
	stats := filter.Summarize(cards)
	prompt := buildAnalysisPrompt(stats, spells(cards))

	if !strings.Contains(prompt, "Deck size: 4 cards") {
		t.Fatalf("prompt missing deck size:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- Instant: 1") || !strings.Contains(prompt, "- Artifact: 1") {
		t.Fatalf("prompt missing type breakdown:\n%s", prompt)
	}
	// Zero-count types are omitted to keep the prompt tight.
	if strings.Contains(prompt, "Planeswalker") {
		t.Fatalf("zero-count types should be omitted:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Mana curve:") || !strings.Contains(prompt, "- 7+:") {
		t.Fatalf("prompt missing mana curve:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Counterspell") || !strings.Contains(prompt, "Sol Ring") {
		t.Fatalf("prompt missing card list:\n%s", prompt)
	}
	if strings.Contains(prompt, "- Island") {
		t.Fatalf("lands should be excluded from the card list:\n%s", prompt)
	}
}
