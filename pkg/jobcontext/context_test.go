package jobcontext

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobBegin_Metadata(t *testing.T) {
	id := uuid.New()
	ctx, cancel := JobBegin(context.Background(), id, "analysis", 2, Settings{MaxRetries: 5})
	defer cancel()

	meta := GetJobMetadata(ctx)
	assert.Equal(t, id, meta.JobID)
	assert.Equal(t, "analysis", meta.JobType)
	assert.Equal(t, 2, meta.WorkerID)
	assert.Equal(t, 5, meta.MaxRetries)
	assert.False(t, meta.StartTime.IsZero())

	_, hasDeadline := ctx.Deadline()
	assert.True(t, hasDeadline)
}

func TestJobEnd_RetriesThenSucceeds(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), uuid.New(), "transcription", 0, Settings{})
	defer cancel()

	calls := 0
	err := JobEnd(ctx, time.Millisecond, func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("connection reset by peer")
		}
		assert.Equal(t, 1, GetRetryAttempt(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestJobEnd_NonRetryable(t *testing.T) {
	calls := 0
	err := JobEnd(context.Background(), time.Millisecond, func(context.Context) error {
		calls++
		return errors.New("bad request")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-retryable")
	assert.Equal(t, 1, calls)
}

func TestJobEnd_RecoversPanic(t *testing.T) {
	err := JobEnd(context.Background(), time.Millisecond, func(context.Context) error {
		panic("boom")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic recovered: boom")
}

func TestJobEnd_ExhaustsRetries(t *testing.T) {
	ctx := SetMaxRetries(context.Background(), 2)
	calls := 0
	err := JobEnd(ctx, time.Millisecond, func(context.Context) error {
		calls++
		return errors.New("503 service unavailable")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries (2) exceeded")
	assert.Equal(t, 2, calls)
}

type statusErr int

func (e statusErr) Error() string   { return fmt.Sprintf("request failed: status %d (job 500)", int(e)) }
func (e statusErr) HTTPStatus() int { return int(e) }

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.DeadlineExceeded, true},
		{errors.New("dial tcp: connection refused"), true},
		{errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"), true},
		{errors.New("groq: status 502 bad gateway"), true},
		{errors.New("upstream returned status 429"), true},
		{errors.New("record not found"), false},
		{errors.New("status 404: meeting 4291 not found"), false},
		{errors.New("invalid id 5f0c-429a: status 400"), false},
		{fmt.Errorf("create task: %w", statusErr(http.StatusServiceUnavailable)), true},
		{statusErr(http.StatusTooManyRequests), true},
		{statusErr(http.StatusNotFound), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRetryableError(tt.err), "%v", tt.err)
	}
}

func TestCalculateBackoff(t *testing.T) {
	assert.Equal(t, 5*time.Second, CalculateBackoff(0, 5*time.Second))
	assert.Equal(t, 20*time.Second, CalculateBackoff(2, 5*time.Second))
	assert.Equal(t, 60*time.Second, CalculateBackoff(10, 5*time.Second))
	assert.Equal(t, 60*time.Second, CalculateBackoff(100, time.Second))
}
