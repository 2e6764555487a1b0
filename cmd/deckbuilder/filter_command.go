package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"deckbuilder/internal/collection"
	"deckbuilder/internal/filter"
)

func newFilterCommand(cctx *commandContext) *cobra.Command {
	var (
		collectionPath string
		colors         []string
		cmcMin         float64
		cmcMax         float64
		types          []string
		rarities       []string
		sets           []string
		search         string
		limit          int
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter an enriched collection by color, cost, type, rarity, or set",
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := collection.LoadEnriched(collectionPath)
			if err != nil {
				return err
			}

			criteria := filter.Criteria{
				Colors:     colors,
				Types:      types,
				Rarities:   rarities,
				Sets:       sets,
				NameSearch: search,
			}
			if cmd.Flags().Changed("cmc-min") {
				criteria.CMCMin = &cmcMin
			}
			if cmd.Flags().Changed("cmc-max") {
				criteria.CMCMax = &cmcMax
			}

			matched := filter.Apply(cards, criteria)
			out := cmd.OutOrStdout()
			if len(matched) == 0 {
				_, _ = fmt.Fprintln(out, "No cards found matching the criteria.")
				return nil
			}

			shown := matched
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}
			rows := make([][]string, 0, len(shown))
			for _, c := range shown {
				rows = append(rows, []string{c.Name, c.ManaCost, c.TypeLine, c.CMC, c.Rarity, strconv.Itoa(c.Quantity)})
			}

			_, _ = fmt.Fprintf(out, "Found %d cards:\n", len(matched))
			_, _ = fmt.Fprintln(out, renderTable(
				[]string{"Name", "Cost", "Type", "CMC", "Rarity", "Qty"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight},
			))
			if len(matched) > len(shown) {
				_, _ = fmt.Fprintf(out, "... and %d more cards\n", len(matched)-len(shown))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&collectionPath, "collection", "enriched.csv", "Path to the enriched collection CSV")
	cmd.Flags().StringSliceVar(&colors, "colors", nil, "Filter by colors (W, U, B, R, G)")
	cmd.Flags().Float64Var(&cmcMin, "cmc-min", 0, "Minimum mana value")
	cmd.Flags().Float64Var(&cmcMax, "cmc-max", 0, "Maximum mana value")
	cmd.Flags().StringSliceVarP(&types, "types", "t", nil, "Filter by card types (Creature, Instant, ...)")
	cmd.Flags().StringSliceVarP(&rarities, "rarities", "r", nil, "Filter by rarities (common, uncommon, rare, mythic)")
	cmd.Flags().StringSliceVarP(&sets, "sets", "s", nil, "Filter by set names")
	cmd.Flags().StringVar(&search, "search", "", "Search by card name")
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of results to show")

	return cmd
}
