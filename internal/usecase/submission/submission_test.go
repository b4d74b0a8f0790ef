package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/minutemind/internal/usecase/extraction"
)

type fakeGuard struct {
	mu   sync.Mutex
	seen map[string]bool
	err  error
}

func (g *fakeGuard) Claim(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return false, g.err
	}
	if g.seen == nil {
		g.seen = map[string]bool{}
	}
	if g.seen[key] {
		return false, nil
	}
	g.seen[key] = true
	return true, nil
}

func (g *fakeGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	delete(g.seen, key)
	return nil
}

type recordingSink struct {
	mu        sync.Mutex
	tasks     []TaskDraft
	conflicts []ConflictDraft
	failTask  string
}

func (s *recordingSink) CreateTask(_ context.Context, d TaskDraft) (string, error) {
	if d.Task == s.failTask {
		return "", errors.New("validation failed: task rejected")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, d)
	return fmt.Sprintf("task-%d", len(s.tasks)), nil
}

func (s *recordingSink) CreateConflict(_ context.Context, d ConflictDraft) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conflicts = append(s.conflicts, d)
	return fmt.Sprintf("conflict-%d", len(s.conflicts)), nil
}

func TestSession_ClaimOnce(t *testing.T) {
	ctx := context.Background()
	s := NewSession("k", nil)

	ok, err := s.ClaimTasks(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.ClaimTasks(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.ClaimConflicts(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, s.Done(KindTasks))
	assert.True(t, s.Done(KindConflicts))
}

func TestSession_ConcurrentClaims(t *testing.T) {
	s := NewSession("k", nil)
	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := s.ClaimTasks(context.Background()); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, wins.Load())
}

func TestSession_DurableGuardAcrossSessions(t *testing.T) {
	guard := &fakeGuard{}
	ctx := context.Background()

	first := NewSession("meeting-1", guard)
	ok, err := first.ClaimTasks(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	second := NewSession("meeting-1", guard)
	ok, err = second.ClaimTasks(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSession_GuardErrorReleasesFlag(t *testing.T) {
	guard := &fakeGuard{err: errors.New("redis down")}
	s := NewSession("k", guard)

	ok, err := s.ClaimTasks(context.Background())
	require.Error(t, err)
	assert.False(t, ok)
	assert.False(t, s.Done(KindTasks))

	guard.err = nil
	ok, err = s.ClaimTasks(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSessionKey_Stable(t *testing.T) {
	a := SessionKey("m1", "analysis\n")
	b := SessionKey("m1", "  analysis")
	c := SessionKey("m2", "analysis")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestDispatch_ContinuesPastFailures(t *testing.T) {
	records := []string{"a", "bad", "c", "d"}
	create := func(_ context.Context, r string) (string, error) {
		if r == "bad" {
			return "", errors.New("invalid record")
		}
		return "id-" + r, nil
	}

	report := Dispatch(context.Background(), records, create, Options{Concurrency: 2})

	require.Len(t, report.Outcomes, 4)
	assert.Equal(t, 3, report.Succeeded())
	assert.Equal(t, 1, report.Failed())
	for i, o := range report.Outcomes {
		assert.Equal(t, i, o.Index)
		assert.Equal(t, records[i], o.Record)
	}
	assert.Equal(t, "id-d", report.Outcomes[3].ID)
	assert.EqualError(t, report.Outcomes[1].Err, "invalid record")
	assert.Equal(t, 1, report.Outcomes[1].Attempts)
}

func TestDispatch_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	create := func(_ context.Context, r int) (string, error) {
		if calls.Add(1) < 3 {
			return "", errors.New("connection refused")
		}
		return "ok", nil
	}

	report := Dispatch(context.Background(), []int{1}, create, Options{InitialInterval: time.Millisecond})

	require.Len(t, report.Outcomes, 1)
	assert.True(t, report.Outcomes[0].OK())
	assert.Equal(t, 3, report.Outcomes[0].Attempts)
}

func TestDispatch_GivesUpAfterMaxAttempts(t *testing.T) {
	create := func(_ context.Context, r int) (string, error) {
		return "", errors.New("service unavailable")
	}

	report := Dispatch(context.Background(), []int{1}, create, Options{MaxAttempts: 2, InitialInterval: time.Millisecond})

	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 2, report.Outcomes[0].Attempts)
}

func TestDispatch_Empty(t *testing.T) {
	report := Dispatch(context.Background(), nil, func(context.Context, int) (string, error) { return "", nil }, Options{})
	assert.Empty(t, report.Outcomes)
	assert.Equal(t, 0, report.Failed())
}

func TestSubmitter_SubmitsOncePerSession(t *testing.T) {
	sink := &recordingSink{failTask: "Broken task"}
	sub := NewSubmitter(sink, sink, Options{}, zap.NewNop())
	session := NewSession("m1", nil)
	result := extraction.Result{
		Tasks: []extraction.TaskRecord{
			{Task: "Write summary", Person: "Ann"},
			{Task: "Broken task"},
			{Task: "Plan retro", Deadline: "Friday"},
		},
		Conflicts: []extraction.ConflictRecord{
			{Issue: "Budget split", Severity: extraction.SeverityHigh},
		},
	}

	summary, err := sub.Submit(context.Background(), session, "m1", result)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Tasks.Succeeded())
	assert.Equal(t, 1, summary.Tasks.Failed())
	assert.Equal(t, 1, summary.Conflicts.Succeeded())
	assert.False(t, summary.TasksSkipped)

	require.Len(t, sink.conflicts, 1)
	assert.Equal(t, DefaultRaisedBy, sink.conflicts[0].RaisedBy)
	assert.Equal(t, "High", sink.conflicts[0].Severity)

	again, err := sub.Submit(context.Background(), session, "m1", result)
	require.NoError(t, err)
	assert.True(t, again.TasksSkipped)
	assert.True(t, again.ConflictsSkipped)
	assert.Len(t, sink.tasks, 2)
	assert.Len(t, sink.conflicts, 1)
}

func TestSubmitter_TotalFailureReleasesClaim(t *testing.T) {
	ctx := context.Background()
	guard := &fakeGuard{}
	sink := &recordingSink{failTask: "Ship release"}
	sub := NewSubmitter(sink, sink, Options{MaxAttempts: 1}, zap.NewNop())
	result := extraction.Result{
		Tasks:     []extraction.TaskRecord{{Task: "Ship release", Person: "Ann"}},
		Conflicts: []extraction.ConflictRecord{{Issue: "Release date", Severity: extraction.SeverityLow}},
	}

	first, err := sub.Submit(ctx, NewSession("m1:abc", guard), "m1", result)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Tasks.Succeeded())
	assert.Equal(t, 1, first.Tasks.Failed())
	assert.True(t, first.TasksReleased)
	assert.Equal(t, 1, first.Conflicts.Succeeded())
	assert.False(t, first.ConflictsReleased)

	sink.failTask = ""
	second, err := sub.Submit(ctx, NewSession("m1:abc", guard), "m1", result)
	require.NoError(t, err)
	assert.False(t, second.TasksSkipped)
	assert.Equal(t, 1, second.Tasks.Succeeded())
	assert.True(t, second.ConflictsSkipped)
	assert.Len(t, sink.tasks, 1)
	assert.Len(t, sink.conflicts, 1)
}

func TestSubmitter_PartialFailureKeepsClaim(t *testing.T) {
	ctx := context.Background()
	guard := &fakeGuard{}
	sink := &recordingSink{failTask: "Broken task"}
	sub := NewSubmitter(sink, sink, Options{MaxAttempts: 1}, nil)
	result := extraction.Result{Tasks: []extraction.TaskRecord{{Task: "Broken task"}, {Task: "Write notes"}}}

	first, err := sub.Submit(ctx, NewSession("m1:abc", guard), "m1", result)
	require.NoError(t, err)
	assert.False(t, first.TasksReleased)

	second, err := sub.Submit(ctx, NewSession("m1:abc", guard), "m1", result)
	require.NoError(t, err)
	assert.True(t, second.TasksSkipped)
	assert.Len(t, sink.tasks, 1)
}

func TestSession_Release(t *testing.T) {
	ctx := context.Background()
	guard := &fakeGuard{}
	s := NewSession("k", guard)

	ok, err := s.ClaimTasks(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, s.Release(ctx, KindTasks))
	assert.False(t, s.Done(KindTasks))

	ok, err = s.ClaimTasks(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Error(t, s.Release(ctx, Kind("notes")))
}

func TestSubmitter_EmptyKindLeftUnclaimed(t *testing.T) {
	sink := &recordingSink{}
	sub := NewSubmitter(sink, sink, Options{}, nil)
	session := NewSession("m1", nil)

	_, err := sub.Submit(context.Background(), session, "m1", extraction.Result{
		Conflicts: []extraction.ConflictRecord{{Issue: "Scope", Severity: extraction.SeverityLow}},
	})
	require.NoError(t, err)

	assert.False(t, session.Done(KindTasks))
	assert.True(t, session.Done(KindConflicts))
}

func TestSubmitter_GuardError(t *testing.T) {
	sink := &recordingSink{}
	sub := NewSubmitter(sink, sink, Options{}, nil)
	session := NewSession("m1", &fakeGuard{err: errors.New("boom")})

	_, err := sub.Submit(context.Background(), session, "m1", extraction.Result{
		Tasks: []extraction.TaskRecord{{Task: "Anything at all"}},
	})
	require.Error(t, err)
	assert.Empty(t, sink.tasks)
}

func TestTaskDrafts_Defaults(t *testing.T) {
	drafts := TaskDrafts("m1", []extraction.TaskRecord{{}, {Task: "Do it", Person: "Bo", Deadline: "Mon"}})

	assert.Equal(t, TaskDraft{
		MeetingID: "m1",
		Person:    DefaultPerson,
		Task:      DefaultTask,
		Deadline:  DefaultDeadline,
		Status:    StatusPending,
		Source:    SourceExtracted,
	}, drafts[0])
	assert.Equal(t, "Bo", drafts[1].Person)
	assert.Equal(t, "Mon", drafts[1].Deadline)
}

func TestConflictDrafts_InvalidSeverityBecomesMedium(t *testing.T) {
	drafts := ConflictDrafts("", []extraction.ConflictRecord{{Issue: "x", Severity: "Critical"}})
	assert.Equal(t, "Medium", drafts[0].Severity)
}
