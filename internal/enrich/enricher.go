// Package enrich drives the per-card enrichment loop: deduplicating lookups,
// retrying transient failures, checkpointing every outcome, and merging
// resolved attributes back onto the input rows.
package enrich

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"deckbuilder/internal/collection"
	"deckbuilder/internal/progress"
)

// Resolver translates a lookup key into canonical card attributes. The error
// is nil, *NotFoundError, *TransientError, or terminal.
type Resolver interface {
	Resolve(ctx context.Context, key collection.Key) (collection.Attributes, error)
}

// Options configures a run.
type Options struct {
	Retry RetryOptions
}

// FailedKey identifies a key whose retries were exhausted, for the run
// summary.
type FailedKey struct {
	Key    string
	Name   string
	Reason string
}

// Summary reports per-key outcomes for one run. Skipped counts keys reused
// from the checkpoint; the other counters cover keys processed this run.
type Summary struct {
	Resolved   int
	NotFound   int
	Failed     int
	Skipped    int
	FailedKeys []FailedKey
}

// Clean reports whether every key ended resolved or not-found, i.e. there is
// nothing left for a retry run to do.
func (s Summary) Clean() bool {
	return s.Failed == 0
}

// Enricher owns the in-memory result table for the duration of a run. The
// progress store is the only state that outlives it.
type Enricher struct {
	resolver Resolver
	store    *progress.Store
	logger   *slog.Logger
	opts     Options
}

// New constructs an Enricher. The resolver is passed in explicitly; there is
// no package-level client.
func New(resolver Resolver, store *progress.Store, logger *slog.Logger, opts Options) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{resolver: resolver, store: store, logger: logger, opts: opts}
}

// Run processes every distinct lookup key once, in first-appearance order,
// and returns the attribute table keyed by Key.String(). Individual lookup
// failures are recorded and never abort the run; the returned error is
// non-nil only on cancellation, in which case progress already checkpointed
// remains valid.
func (e *Enricher) Run(ctx context.Context, col *collection.Collection) (map[string]collection.Attributes, Summary, error) {
	keys := col.DistinctKeys()
	attrs := make(map[string]collection.Attributes, len(keys))
	var sum Summary

	e.logger.Info("starting enrichment",
		"rows", len(col.Records),
		"distinct_keys", len(keys),
		"checkpointed", e.store.Len(),
	)

	for _, ref := range keys {
		keyStr := ref.Key.String()

		if entry, ok := e.store.Get(keyStr); ok {
			switch entry.Status {
			case progress.StatusResolved:
				if entry.Attributes != nil {
					attrs[keyStr] = *entry.Attributes
				}
				sum.Skipped++
				continue
			case progress.StatusNotFound:
				sum.Skipped++
				continue
			case progress.StatusFailed:
				// Eligible for retry; fall through and re-attempt.
			}
		}

		if err := ctx.Err(); err != nil {
			return attrs, sum, err
		}

		var resolved collection.Attributes
		err := Do(ctx, e.opts.Retry, func(ctx context.Context) error {
			a, err := e.resolver.Resolve(ctx, ref.Key)
			if err != nil {
				return err
			}
			resolved = a
			return nil
		})

		switch {
		case err == nil:
			attrs[keyStr] = resolved
			sum.Resolved++
			e.record(keyStr, progress.Entry{
				Status:     progress.StatusResolved,
				Attributes: &resolved,
				UpdatedAt:  time.Now().UTC(),
			})
			e.logger.Debug("resolved", "card", ref.DisplayName, "key", keyStr)

		case isNotFound(err):
			sum.NotFound++
			e.record(keyStr, progress.Entry{
				Status:    progress.StatusNotFound,
				UpdatedAt: time.Now().UTC(),
			})
			e.logger.Warn("card not found", "card", ref.DisplayName, "key", keyStr)

		case ctx.Err() != nil:
			// Interrupted mid-key. Everything checkpointed so far stays valid.
			return attrs, sum, ctx.Err()

		default:
			sum.Failed++
			sum.FailedKeys = append(sum.FailedKeys, FailedKey{
				Key:    keyStr,
				Name:   ref.DisplayName,
				Reason: err.Error(),
			})
			e.record(keyStr, progress.Entry{
				Status:    progress.StatusFailed,
				Reason:    err.Error(),
				UpdatedAt: time.Now().UTC(),
			})
			e.logger.Error("lookup failed", "card", ref.DisplayName, "key", keyStr, "error", err)
		}
	}

	e.logger.Info("enrichment complete",
		"resolved", sum.Resolved,
		"not_found", sum.NotFound,
		"failed", sum.Failed,
		"skipped", sum.Skipped,
	)
	return attrs, sum, nil
}

// record checkpoints one outcome. A checkpoint write failure degrades the
// resume guarantee but not the run itself, so it is logged and swallowed.
func (e *Enricher) record(key string, entry progress.Entry) {
	if err := e.store.Record(key, entry); err != nil {
		e.logger.Error("could not save progress", "key", key, "error", err)
	}
}

func isNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
