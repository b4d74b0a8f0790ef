package submission

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/johnquangdev/minutemind/pkg/jobcontext"
)

// CreateFunc persists one record and returns the created ID.
type CreateFunc[R any] func(ctx context.Context, record R) (string, error)

// Outcome is the result of submitting one record.
type Outcome[R any] struct {
	Index    int    `json:"index"`
	Record   R      `json:"record"`
	ID       string `json:"id,omitempty"`
	Err      error  `json:"-"`
	Error    string `json:"error,omitempty"`
	Attempts int    `json:"attempts"`
}

// OK reports whether the record was created.
func (o Outcome[R]) OK() bool {
	return o.Err == nil
}

// Report holds one Outcome per dispatched record, in input order.
type Report[R any] struct {
	Outcomes []Outcome[R] `json:"outcomes"`
}

// Succeeded counts created records.
func (r Report[R]) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Failed counts records that could not be created.
func (r Report[R]) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// Options tune Dispatch.
type Options struct {
	// Concurrency bounds in-flight create calls. Zero means 4.
	Concurrency int
	// MaxAttempts per record, including the first. Zero means 3.
	MaxAttempts int
	// InitialInterval is the first retry delay. Zero means 200ms.
	InitialInterval time.Duration
	// Retryable decides whether a failed attempt is retried.
	// Defaults to jobcontext.IsRetryableError.
	Retryable func(error) bool
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = 4
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.InitialInterval <= 0 {
		o.InitialInterval = 200 * time.Millisecond
	}
	if o.Retryable == nil {
		o.Retryable = jobcontext.IsRetryableError
	}
	return o
}

// Dispatch submits every record independently. A failing record never
// cancels or hides the others; each one gets its own Outcome.
func Dispatch[R any](ctx context.Context, records []R, create CreateFunc[R], opts Options) Report[R] {
	opts = opts.withDefaults()
	outcomes := make([]Outcome[R], len(records))

	var g errgroup.Group
	g.SetLimit(opts.Concurrency)

	for i, rec := range records {
		g.Go(func() error {
			outcomes[i] = submitOne(ctx, i, rec, create, opts)
			return nil
		})
	}
	_ = g.Wait()

	return Report[R]{Outcomes: outcomes}
}

func submitOne[R any](ctx context.Context, index int, record R, create CreateFunc[R], opts Options) Outcome[R] {
	out := Outcome[R]{Index: index, Record: record}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = opts.InitialInterval
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 0

	operation := func() error {
		out.Attempts++
		id, err := create(ctx, record)
		if err != nil {
			if ctx.Err() != nil || !opts.Retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		out.ID = id
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(opts.MaxAttempts-1)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Err
		}
		out.Err = err
		out.Error = err.Error()
	}
	return out
}
