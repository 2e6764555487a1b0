package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"deckbuilder/internal/collection"
	"deckbuilder/internal/filter"
)

func newStatsCommand(cctx *commandContext) *cobra.Command {
	var collectionPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics by type, color, and mana value",
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := collection.LoadEnriched(collectionPath)
			if err != nil {
				return err
			}
			stats := filter.Summarize(cards)
			out := cmd.OutOrStdout()

			_, _ = fmt.Fprintf(out, "Collection statistics (%d cards)\n\n", stats.Total)

			typeRows := make([][]string, 0, len(filter.CardTypes))
			for _, t := range filter.CardTypes {
				typeRows = append(typeRows, []string{t, strconv.Itoa(stats.ByType[t])})
			}
			_, _ = fmt.Fprintln(out, renderTable(
				[]string{"Type", "Cards"},
				typeRows,
				[]columnAlignment{alignLeft, alignRight},
			))

			colorRows := make([][]string, 0, len(filter.ColorCodes))
			for _, c := range filter.ColorCodes {
				colorRows = append(colorRows, []string{c, strconv.Itoa(stats.ByColor[c])})
			}
			_, _ = fmt.Fprintln(out, renderTable(
				[]string{"Color", "Cards"},
				colorRows,
				[]columnAlignment{alignLeft, alignRight},
			))

			curveRows := make([][]string, 0, filter.CurveBuckets)
			for i, count := range stats.Curve {
				label := strconv.Itoa(i)
				if i == filter.CurveBuckets-1 {
					label += "+"
				}
				curveRows = append(curveRows, []string{label, strconv.Itoa(count)})
			}
			_, _ = fmt.Fprintln(out, renderTable(
				[]string{"Mana value", "Cards"},
				curveRows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&collectionPath, "collection", "enriched.csv", "Path to the enriched collection CSV")

	return cmd
}
