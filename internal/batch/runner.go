package batch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/honei/prospect-cli/internal/history"
	"github.com/honei/prospect-cli/internal/model"
)

// AbortedError wraps the failure of one entry that stopped the batch.
// Entries completed before it remain persisted in history.
type AbortedError struct {
	Entry int // 1-based position of the failing entry
	Name  string
	Err   error
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("batch: el procesamiento falló en la entrada %d (%s): %v", e.Entry, e.Name, e.Err)
}

func (e *AbortedError) Unwrap() error {
	return e.Err
}

// Fetcher is the single-profile operation the runner drives.
type Fetcher interface {
	Fetch(ctx context.Context, businessName, city string) (*model.BusinessProfile, error)
}

// Event is one element of the progress stream. Exactly one of Profile or
// Err is set; an Err event is terminal.
type Event struct {
	Current int
	Total   int
	Profile *model.BusinessProfile
	Err     error
}

// Runner processes targets strictly sequentially: one fetch in flight at a
// time, each success upserted into history before the next fetch starts.
type Runner struct {
	fetcher Fetcher
	store   *history.Store
}

// NewRunner creates a batch runner over the given fetcher and history store.
func NewRunner(fetcher Fetcher, store *history.Store) *Runner {
	return &Runner{fetcher: fetcher, store: store}
}

// Run starts the batch and returns its event stream. The channel is closed
// when the batch completes, aborts, or the context is cancelled.
// Cancellation stops before the next fetch and never rolls back entries
// already persisted.
func (r *Runner) Run(ctx context.Context, targets []Target, fallbackCity string) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		runID := uuid.New().String()[:8]
		log := zap.L().With(zap.String("batch_run", runID))
		total := len(targets)
		log.Info("starting batch", zap.Int("targets", total))

		for i, target := range targets {
			if err := ctx.Err(); err != nil {
				events <- Event{Current: i, Total: total, Err: eris.Wrap(err, "batch: cancelado")}
				return
			}

			city := ResolveCity(target, fallbackCity)
			profile, err := r.fetcher.Fetch(ctx, target.Name, city)
			if err != nil {
				log.Warn("batch aborted",
					zap.Int("entry", i+1),
					zap.String("name", target.Name),
					zap.Error(err),
				)
				events <- Event{Current: i, Total: total, Err: &AbortedError{Entry: i + 1, Name: target.Name, Err: err}}
				return
			}

			if err := r.store.Upsert(ctx, *profile); err != nil {
				events <- Event{Current: i, Total: total, Err: &AbortedError{Entry: i + 1, Name: target.Name, Err: err}}
				return
			}

			events <- Event{Current: i + 1, Total: total, Profile: profile}
		}

		log.Info("batch complete", zap.Int("targets", total))
	}()

	return events
}
