package suggest

import (
	"strings"
	"testing"
	"unicode/utf8"

	"deckbuilder/internal/collection"
)

func ownedCards() []collection.Card {
	return []collection.Card{
		{Name: "Island", Attributes: collection.Attributes{TypeLine: "Basic Land — Island"}},
		{Name: "Counterspell", Attributes: collection.Attributes{
			ManaCost: "{U}{U}", TypeLine: "Instant", OracleText: "Counter target spell.",
		}},
		{Name: "Grizzly Bears", Attributes: collection.Attributes{
			ManaCost: "{1}{G}", TypeLine: "Creature — Bear",
		}},
		{Name: "Sol Ring", Attributes: collection.Attributes{
			ManaCost: "{1}", TypeLine: "Artifact", OracleText: "{T}: Add {C}{C}.",
		}},
	}
}

func TestSpells_DropsLands(t *testing.T) {
	t.Parallel()

	got := spells(ownedCards())
	if len(got) != 3 {
		t.Fatalf("expected 3 non-land cards, got %d", len(got))
	}
	for _, c := range got {
		if c.Name == "Island" {
			t.Fatal("lands must be excluded from suggestion pools")
		}
	}
}

func TestSamplePool_Bounds(t *testing.T) {
	t.Parallel()

	cards := ownedCards()
	if got := samplePool(cards, 10); len(got) != len(cards) {
		t.Fatalf("small collections pass through, got %d", len(got))
	}
	if got := samplePool(cards, 2); len(got) != 2 {
		t.Fatalf("pool must be capped at 2, got %d", len(got))
	}
	// The input slice is never reordered.
	if cards[0].Name != "Island" || cards[3].Name != "Sol Ring" {
		t.Fatal("samplePool must not mutate its input")
	}
}

func TestDescribeSeeds(t *testing.T) {
	t.Parallel()

	found, missing := describeSeeds(ownedCards(), []string{"counterspell", " Sol Ring ", "Black Lotus"})
	if len(found) != 2 {
		t.Fatalf("expected 2 found seeds, got %d: %v", len(found), found)
	}
	if !strings.Contains(found[0], "Counterspell") || !strings.Contains(found[0], "{U}{U}") {
		t.Fatalf("seed line missing card details: %q", found[0])
	}
	if len(missing) != 1 || missing[0] != "Black Lotus" {
		t.Fatalf("unexpected missing list: %v", missing)
	}
}

func TestCardLine_TruncatesOracleText(t *testing.T) {
	t.Parallel()

	c := collection.Card{Name: "Wall of Text", Attributes: collection.Attributes{
		OracleText: strings.Repeat("x", 300),
	}}
	line := cardLine(c, oracleSnippetLen)
	if !strings.HasSuffix(line, "...") {
		t.Fatalf("long oracle text should be truncated: %q", line)
	}
	if got := utf8.RuneCountInString(line); got > utf8.RuneCountInString("Wall of Text: ")+oracleSnippetLen+3 {
		t.Fatalf("line too long: %d runes", got)
	}
}

func TestCardLine_TruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	// An em dash straddling the cutoff must not be split mid-rune.
	oracle := strings.Repeat("x", oracleSnippetLen-1) + "— more rules text follows"
	c := collection.Card{Name: "Edge Case", Attributes: collection.Attributes{OracleText: oracle}}
	line := cardLine(c, oracleSnippetLen)
	if !utf8.ValidString(line) {
		t.Fatalf("truncation produced invalid UTF-8: %q", line)
	}
	if !strings.HasSuffix(line, "—...") {
		t.Fatalf("expected the dash to survive truncation: %q", line)
	}
}

func TestBuildComplementsPrompt(t *testing.T) {
	t.Parallel()

	prompt := buildComplementsPrompt([]string{"Counterspell (Instant)"}, spells(ownedCards()), 5)
	if !strings.Contains(prompt, "Counterspell (Instant)") {
		t.Fatal("prompt must include the seed description")
	}
	if !strings.Contains(prompt, "Grizzly Bears") || !strings.Contains(prompt, "Sol Ring") {
		t.Fatal("prompt must list the candidate pool")
	}
	if !strings.Contains(prompt, "Suggest 5 cards") {
		t.Fatal("prompt must state the requested count")
	}
}

func TestBuildComboPrompt_GroupWording(t *testing.T) {
	t.Parallel()

	pool := spells(ownedCards())
	if p := buildComboPrompt(pool, 4, 2); !strings.Contains(p, "4 synergistic pairs of exactly 2 cards") {
		t.Fatalf("pair prompt wording: %q", p)
	}
	if p := buildComboPrompt(pool, 3, 3); !strings.Contains(p, "3 synergistic triplets of exactly 3 cards") {
		t.Fatalf("triplet prompt wording: %q", p)
	}
}

func TestFilterOwnedSuggestions(t *testing.T) {
	t.Parallel()

	got := filterOwnedSuggestions([]Suggestion{
		{Name: "counterspell", Rationale: "counter magic"},
		{Name: "Black Lotus", Rationale: "not owned"},
		{Name: " Sol Ring ", Rationale: "ramp"},
	}, ownedCards())
	if len(got) != 2 {
		t.Fatalf("expected 2 owned suggestions, got %d: %#v", len(got), got)
	}
	// Names are rewritten to the exact owned casing.
	if got[0].Name != "Counterspell" || got[1].Name != "Sol Ring" {
		t.Fatalf("names not normalized to owned casing: %#v", got)
	}
}

func TestFilterOwnedCombos(t *testing.T) {
	t.Parallel()

	got := filterOwnedCombos([]Combo{
		{Cards: []string{"counterspell", "sol ring"}, Explanation: "good"},
		{Cards: []string{"Counterspell", "Black Lotus"}, Explanation: "half owned"},
		{Cards: []string{"Counterspell"}, Explanation: "wrong size"},
	}, ownedCards(), 2)
	if len(got) != 1 {
		t.Fatalf("expected 1 valid combo, got %d: %#v", len(got), got)
	}
	if got[0].Cards[0] != "Counterspell" || got[0].Cards[1] != "Sol Ring" {
		t.Fatalf("names not normalized: %#v", got[0].Cards)
	}
}
