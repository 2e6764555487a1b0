package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"deckbuilder/internal/collection"
	"deckbuilder/internal/suggest"
)

func newSuggestCommand(cctx *commandContext) *cobra.Command {
	var (
		collectionPath string
		seedCards      []string
		count          int
		model          string
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest owned cards that complement a set of seed cards",
		Long: `Suggest asks the configured Gemini model for cards that synergize with the
given seed cards, restricted to cards already in the enriched collection.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("model") {
				cfg.Gemini.Model = model
			}

			cards, err := collection.LoadEnriched(collectionPath)
			if err != nil {
				return err
			}

			suggester, err := suggest.New(cmd.Context(), suggest.Config{
				APIKey: cfg.Gemini.APIKey,
				Model:  cfg.Gemini.Model,
			})
			if err != nil {
				return err
			}

			suggestions, err := suggester.Complements(cmd.Context(), cards, seedCards, count)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(suggestions) == 0 {
				_, _ = fmt.Fprintln(out, "No usable suggestions returned.")
				return nil
			}
			rows := make([][]string, 0, len(suggestions))
			for _, s := range suggestions {
				rows = append(rows, []string{s.Name, s.Rationale})
			}
			_, _ = fmt.Fprintf(out, "Suggestions for %s:\n", strings.Join(seedCards, ", "))
			_, _ = fmt.Fprintln(out, renderTable(
				[]string{"Card", "Rationale"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&collectionPath, "collection", "enriched.csv", "Path to the enriched collection CSV")
	cmd.Flags().StringArrayVar(&seedCards, "card", nil, "Seed card name (repeatable)")
	cmd.Flags().IntVarP(&count, "count", "n", 8, "Number of suggestions to request")
	cmd.Flags().StringVar(&model, "model", "", "Gemini model name override")
	_ = cmd.MarkFlagRequired("card")

	return cmd
}
