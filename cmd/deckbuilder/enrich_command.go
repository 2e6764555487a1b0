package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"deckbuilder/internal/collection"
	"deckbuilder/internal/enrich"
	"deckbuilder/internal/logging"
	"deckbuilder/internal/progress"
	"deckbuilder/internal/scryfall"
)

func newEnrichCommand(cctx *commandContext) *cobra.Command {
	var (
		inputPath      string
		outputPath     string
		resume         bool
		progressFile   string
		rateLimit      float64
		maxRetries     int
		requestTimeout float64
		apiBaseURL     string
		cleanProgress  bool
	)

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Enrich a ManaBox CSV export with Scryfall card data",
		Long: `Enrich reads a collection export, resolves each distinct card against the
Scryfall API (rate-limited and retried), and writes the original rows back
out with canonical card attributes appended.

Progress is checkpointed after every card, so an interrupted run can pick up
where it left off with --resume. Individual lookup failures are reported in
the final summary and never abort the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.loadConfig(cmd)
			if err != nil {
				return err
			}
			fl := cmd.Flags()
			if fl.Changed("rate-limit") {
				cfg.RateLimitSeconds = rateLimit
			}
			if fl.Changed("max-retries") {
				cfg.MaxRetries = maxRetries
			}
			if fl.Changed("request-timeout") {
				cfg.RequestTimeoutSeconds = requestTimeout
			}
			if fl.Changed("progress-file") {
				cfg.ProgressFile = progressFile
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, closeLog, err := logging.Setup(logging.Options{
				Level:    cfg.LogLevel,
				FilePath: cfg.LogFile,
			})
			if err != nil {
				return err
			}
			defer func() {
				_ = closeLog()
			}()

			col, err := collection.Load(inputPath)
			if err != nil {
				return err
			}

			var store *progress.Store
			if resume {
				store, err = progress.Open(cfg.ProgressFile)
				if err != nil {
					return fmt.Errorf("cannot resume: %w", err)
				}
				logger.Info("resuming from checkpoint", "progress_file", cfg.ProgressFile, "keys", store.Len())
			} else {
				store = progress.Fresh(cfg.ProgressFile)
			}

			client := scryfall.NewClient(
				scryfall.WithBaseURL(apiBaseURL),
				scryfall.WithRateInterval(cfg.RateInterval()),
				scryfall.WithRequestTimeout(cfg.RequestTimeout()),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			enricher := enrich.New(client, store, logger, enrich.Options{
				Retry: enrich.RetryOptions{MaxAttempts: cfg.MaxRetries},
			})

			attrs, sum, err := enricher.Run(ctx, col)
			if err != nil {
				return fmt.Errorf("enrichment interrupted, progress saved to %s; rerun with --resume: %w", cfg.ProgressFile, err)
			}

			if err := collection.WriteFile(outputPath, col, attrs); err != nil {
				return err
			}
			logger.Info("wrote enriched collection", "path", outputPath, "rows", len(col.Records))

			printSummary(cmd.OutOrStdout(), sum)

			// The checkpoint file is kept by default, even after a clean
			// run: a rerun with --resume must skip every completed key
			// instead of re-fetching the collection from scratch.
			switch {
			case !sum.Clean():
				logger.Warn("some lookups failed; rerun with --resume to retry them",
					"failed", sum.Failed, "progress_file", cfg.ProgressFile)
			case cleanProgress:
				if err := store.Remove(); err != nil {
					logger.Warn("could not remove progress file", "error", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input ManaBox CSV file path")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output enriched CSV file path")
	cmd.Flags().BoolVar(&resume, "resume", false, "Resume from the progress file of a previous run")
	cmd.Flags().StringVar(&progressFile, "progress-file", "", "Progress checkpoint file path")
	cmd.Flags().Float64Var(&rateLimit, "rate-limit", 0, "Minimum delay between API requests, in seconds")
	cmd.Flags().IntVar(&maxRetries, "max-retries", 0, "Total attempts per card for transient failures")
	cmd.Flags().Float64Var(&requestTimeout, "request-timeout", 0, "Per-request timeout, in seconds")
	cmd.Flags().BoolVar(&cleanProgress, "clean-progress", false, "Delete the progress file after a run with no failed lookups")
	cmd.Flags().StringVar(&apiBaseURL, "api-base-url", "", "Override the Scryfall API base URL")
	_ = cmd.Flags().MarkHidden("api-base-url")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
