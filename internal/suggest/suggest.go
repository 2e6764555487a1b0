// Package suggest is the LLM-backed deck-building collaborator: it proposes
// complements for seed cards and discovers synergistic pairs and triplets,
// always constrained to cards the collection actually owns.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"

	"google.golang.org/genai"

	"deckbuilder/internal/collection"
	"deckbuilder/internal/enrich"
)

// Config configures the Gemini backend.
type Config struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API base URL. Useful for proxies/testing.
	BaseURL string
}

// Suggester wraps the Gemini client.
type Suggester struct {
	client *genai.Client
	model  string
	retry  enrich.RetryOptions
}

// New constructs a Suggester.
func New(ctx context.Context, cfg Config) (*Suggester, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini api key is required (set GEMINI_API_KEY or gemini.api_key)")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("gemini model is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &Suggester{
		client: client,
		model:  strings.TrimSpace(cfg.Model),
		retry:  enrich.RetryOptions{MaxAttempts: 3},
	}, nil
}

// Suggestion is one complement proposal.
type Suggestion struct {
	Name      string `json:"name"`
	Rationale string `json:"rationale"`
}

// Combo is a synergistic group of owned cards.
type Combo struct {
	Cards       []string `json:"cards"`
	Explanation string   `json:"explanation"`
}

var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"suggestions": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":      {Type: genai.TypeString},
					"rationale": {Type: genai.TypeString},
				},
				Required: []string{"name", "rationale"},
			},
		},
	},
	Required: []string{"suggestions"},
}

var comboSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"combos": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"cards":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"explanation": {Type: genai.TypeString},
				},
				Required: []string{"cards", "explanation"},
			},
		},
	},
	Required: []string{"combos"},
}

// Complements suggests up to n owned cards that pair well with the seed
// card names. Suggestions naming cards outside the collection are dropped.
func (s *Suggester) Complements(ctx context.Context, cards []collection.Card, seedNames []string, n int) ([]Suggestion, error) {
	seeds, missing := describeSeeds(cards, seedNames)
	if len(seeds) == 0 {
		return nil, fmt.Errorf("none of the seed cards are in the collection: %s", strings.Join(missing, ", "))
	}

	pool := samplePool(spells(cards), complementPoolSize)
	prompt := buildComplementsPrompt(seeds, pool, n)

	text, err := s.generate(ctx, prompt, suggestionSchema)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("suggest: parse structured json: %w", err)
	}

	return filterOwnedSuggestions(parsed.Suggestions, cards), nil
}

// Pairs finds up to n synergistic two-card groups from the collection.
func (s *Suggester) Pairs(ctx context.Context, cards []collection.Card, n int) ([]Combo, error) {
	return s.combos(ctx, cards, n, 2)
}

// Triplets finds up to n synergistic three-card groups from the collection.
func (s *Suggester) Triplets(ctx context.Context, cards []collection.Card, n int) ([]Combo, error) {
	return s.combos(ctx, cards, n, 3)
}

func (s *Suggester) combos(ctx context.Context, cards []collection.Card, n, size int) ([]Combo, error) {
	pool := samplePool(spells(cards), comboPoolSize)
	if len(pool) == 0 {
		return nil, errors.New("collection has no spell cards to combine")
	}
	prompt := buildComboPrompt(pool, n, size)

	text, err := s.generate(ctx, prompt, comboSchema)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Combos []Combo `json:"combos"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("suggest: parse structured json: %w", err)
	}

	return filterOwnedCombos(parsed.Combos, cards, size), nil
}

// generate calls Gemini with structured JSON output, retrying transient API
// failures through the same bounded driver the enrichment loop uses.
func (s *Suggester) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	var text string
	err := enrich.Do(ctx, s.retry, func(ctx context.Context) error {
		resp, err := s.client.Models.GenerateContent(
			ctx,
			s.model,
			genai.Text(prompt),
			&genai.GenerateContentConfig{
				CandidateCount:   1,
				ResponseMIMEType: "application/json",
				ResponseSchema:   schema,
			},
		)
		if err != nil {
			return classifyErr(err)
		}
		text = resp.Text()
		return nil
	})
	return text, err
}

// classifyErr wraps throttling and server-side failures so the retry driver
// backs off instead of giving up.
func classifyErr(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Code/100 == 5 {
			return &enrich.TransientError{Err: err}
		}
		return err
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &enrich.TransientError{Err: err}
	}
	return err
}
