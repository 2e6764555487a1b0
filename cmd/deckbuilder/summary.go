package main

import (
	"fmt"
	"io"
	"strconv"

	"deckbuilder/internal/enrich"
)

// printSummary renders the per-key outcome counts and lists failed keys by
// identity so the user can inspect or re-run them.
func printSummary(w io.Writer, sum enrich.Summary) {
	_, _ = fmt.Fprintln(w, renderTable(
		[]string{"Outcome", "Keys"},
		[][]string{
			{"resolved", strconv.Itoa(sum.Resolved)},
			{"not_found", strconv.Itoa(sum.NotFound)},
			{"failed", strconv.Itoa(sum.Failed)},
			{"skipped", strconv.Itoa(sum.Skipped)},
		},
		[]columnAlignment{alignLeft, alignRight},
	))

	if len(sum.FailedKeys) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, "\nFailed lookups (eligible for retry on the next run):")
	rows := make([][]string, 0, len(sum.FailedKeys))
	for _, fk := range sum.FailedKeys {
		rows = append(rows, []string{fk.Name, fk.Key, fk.Reason})
	}
	_, _ = fmt.Fprintln(w, renderTable(
		[]string{"Card", "Key", "Reason"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
}
