package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"deckbuilder/internal/collection"
	"deckbuilder/internal/filter"
)

// Report is the LLM's strategic read of a collection or deck.
type Report struct {
	Strategy    string   `json:"strategy"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

var reportSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"strategy":    {Type: genai.TypeString},
		"strengths":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"weaknesses":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"suggestions": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"strategy", "strengths", "weaknesses", "suggestions"},
}

// Analyze summarizes the deck's structure and asks the model for a strategy
// report: what the deck is trying to do, where it is strong, where it is
// thin, and what to change.
func (s *Suggester) Analyze(ctx context.Context, cards []collection.Card) (Report, error) {
	if len(cards) == 0 {
		return Report{}, fmt.Errorf("nothing to analyze: the collection is empty")
	}

	stats := filter.Summarize(cards)
	pool := samplePool(spells(cards), comboPoolSize)
	prompt := buildAnalysisPrompt(stats, pool)

	text, err := s.generate(ctx, prompt, reportSchema)
	if err != nil {
		return Report{}, err
	}

	var report Report
	if err := json.Unmarshal([]byte(text), &report); err != nil {
		return Report{}, fmt.Errorf("analyze: parse structured json: %w", err)
	}
	return report, nil
}

// buildAnalysisPrompt renders the structural breakdown the model reasons
// over: counts by type and color, the mana curve, and a sample of the cards
// themselves.
func buildAnalysisPrompt(stats filter.Stats, pool []collection.Card) string {
	var b strings.Builder
	b.WriteString("You are an expert Magic: the Gathering deck analyst. ")
	b.WriteString("Analyze the deck below and report its overall strategy, strengths, weaknesses, and concrete improvement suggestions.\n\n")

	fmt.Fprintf(&b, "Deck size: %d cards\n\n", stats.Total)

	b.WriteString("Cards by type:\n")
	for _, t := range filter.CardTypes {
		if n := stats.ByType[t]; n > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", t, n)
		}
	}

	b.WriteString("\nCards by color:\n")
	for _, c := range filter.ColorCodes {
		if n := stats.ByColor[c]; n > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", c, n)
		}
	}

	b.WriteString("\nMana curve:\n")
	for i, n := range stats.Curve {
		label := strconv.Itoa(i)
		if i == filter.CurveBuckets-1 {
			label += "+"
		}
		fmt.Fprintf(&b, "- %s: %d\n", label, n)
	}

	b.WriteString("\nCards:\n")
	b.WriteString(cardList(pool))
	b.WriteString("\n\nKeep the strategy to a short paragraph and each strength, weakness, and suggestion to one sentence.")
	return b.String()
}
