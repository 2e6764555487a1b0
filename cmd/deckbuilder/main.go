// Command deckbuilder enriches a ManaBox collection export with canonical
// card data from Scryfall and explores the result: filtering, statistics,
// and LLM-backed deck suggestions.
package main

import (
	"fmt"
	"os"

	"deckbuilder/internal/redact"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %s\n", redact.Secrets(err.Error()))
		os.Exit(1)
	}
}
