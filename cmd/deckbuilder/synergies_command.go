package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"deckbuilder/internal/collection"
	"deckbuilder/internal/suggest"
)

func newSynergiesCommand(cctx *commandContext) *cobra.Command {
	var (
		collectionPath string
		size           int
		count          int
		model          string
	)

	cmd := &cobra.Command{
		Use:   "synergies",
		Short: "Find synergistic card pairs or triplets in the collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			if size != 2 && size != 3 {
				return fmt.Errorf("--size must be 2 or 3, got %d", size)
			}

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

			var combos []suggest.Combo
			if size == 2 {
				combos, err = suggester.Pairs(cmd.Context(), cards, count)
			} else {
				combos, err = suggester.Triplets(cmd.Context(), cards, count)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(combos) == 0 {
				_, _ = fmt.Fprintln(out, "No usable synergies returned.")
				return nil
			}
			rows := make([][]string, 0, len(combos))
			for _, combo := range combos {
				rows = append(rows, []string{strings.Join(combo.Cards, " + "), combo.Explanation})
			}
			_, _ = fmt.Fprintln(out, renderTable(
				[]string{"Cards", "Synergy"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&collectionPath, "collection", "enriched.csv", "Path to the enriched collection CSV")
	cmd.Flags().IntVar(&size, "size", 2, "Group size: 2 for pairs, 3 for triplets")
	cmd.Flags().IntVarP(&count, "count", "n", 5, "Number of groups to request")
	cmd.Flags().StringVar(&model, "model", "", "Gemini model name override")

	return cmd
}
