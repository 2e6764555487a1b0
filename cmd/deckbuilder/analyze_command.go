package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"deckbuilder/internal/collection"
	"deckbuilder/internal/filter"
	"deckbuilder/internal/suggest"
)

func newAnalyzeCommand(cctx *commandContext) *cobra.Command {
	var (
		collectionPath string
		model          string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze deck structure and get an LLM strategy report",
		Long: `Analyze breaks down an enriched collection by type, color, and mana curve,
then asks the configured Gemini model for a strategy report: what the deck
is trying to do, its strengths and weaknesses, and what to improve.`,
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

			out := cmd.OutOrStdout()
			stats := filter.Summarize(cards)
			_, _ = fmt.Fprintf(out, "Deck composition (%d cards):\n", stats.Total)
			typeRows := make([][]string, 0, len(filter.CardTypes))
			for _, t := range filter.CardTypes {
				typeRows = append(typeRows, []string{t, strconv.Itoa(stats.ByType[t])})
			}
			_, _ = fmt.Fprintln(out, renderTable(
				[]string{"Type", "Cards"},
				typeRows,
				[]columnAlignment{alignLeft, alignRight},
			))

			suggester, err := suggest.New(cmd.Context(), suggest.Config{
				APIKey: cfg.Gemini.APIKey,
				Model:  cfg.Gemini.Model,
			})
			if err != nil {
				return err
			}

			report, err := suggester.Analyze(cmd.Context(), cards)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, "\nStrategy:\n%s\n", report.Strategy)
			printReportSection(out, "Strengths", report.Strengths)
			printReportSection(out, "Weaknesses", report.Weaknesses)
			printReportSection(out, "Suggestions", report.Suggestions)
			return nil
		},
	}

	cmd.Flags().StringVar(&collectionPath, "collection", "enriched.csv", "Path to the enriched collection CSV")
	cmd.Flags().StringVar(&model, "model", "", "Gemini model name override")

	return cmd
}

func printReportSection(out io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	_, _ = fmt.Fprintf(out, "\n%s:\n", title)
	for _, item := range items {
		_, _ = fmt.Fprintf(out, "- %s\n", item)
	}
}
