package meeting

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
	"github.com/johnquangdev/minutemind/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/minutemind/internal/usecase/errors"
	"github.com/johnquangdev/minutemind/internal/usecase/extraction"
	"github.com/johnquangdev/minutemind/internal/usecase/submission"
)

const sampleAnalysis = `## Summary
Budget review.

## Task Assignment
| Task | Owner | Deadline |
|------|-------|----------|
| Draft the budget | Alice | Friday |
| Book the venue | Bob | |

## Conflict Detection
{"Name of speaker1": "Carol", "Name of speaker2": "Bob", "conflict type (Orig_type)": "negative", "conflict description": "Venue cost too high"}
`

type fakeMeetingRepo struct {
	mu       sync.Mutex
	meetings map[uuid.UUID]*entities.Meeting
	updates  int
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{meetings: map[uuid.UUID]*entities.Meeting{}}
}

func (r *fakeMeetingRepo) Create(_ context.Context, m *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meetings[m.ID] = m
	return nil
}

func (r *fakeMeetingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMeetingRepo) Update(_ context.Context, m *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	r.meetings[m.ID] = m
	return nil
}

func (r *fakeMeetingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.meetings, id)
	return nil
}

func (r *fakeMeetingRepo) List(_ context.Context, f repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Meeting, 0, len(r.meetings))
	for _, m := range r.meetings {
		out = append(out, m)
	}
	total := int64(len(out))
	if f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, total, nil
}

type fakeRecordRepo struct {
	tasks []*entities.Task
}

func (r *fakeRecordRepo) Create(context.Context, *entities.Task) error { return nil }
func (r *fakeRecordRepo) FindByID(context.Context, uuid.UUID) (*entities.Task, error) {
	return nil, nil
}
func (r *fakeRecordRepo) Update(context.Context, *entities.Task) error       { return nil }
func (r *fakeRecordRepo) Delete(context.Context, uuid.UUID) (bool, error)    { return false, nil }
func (r *fakeRecordRepo) DeleteByMeetingID(context.Context, uuid.UUID) error { return nil }
func (r *fakeRecordRepo) List(_ context.Context, f repositories.TaskFilters) ([]*entities.Task, error) {
	var out []*entities.Task
	for _, t := range r.tasks {
		if f.MeetingID != nil && (t.MeetingID == nil || *t.MeetingID != *f.MeetingID) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

type fakeConflictRepo struct {
	conflicts []*entities.Conflict
}

func (r *fakeConflictRepo) Create(context.Context, *entities.Conflict) error { return nil }
func (r *fakeConflictRepo) FindByID(context.Context, uuid.UUID) (*entities.Conflict, error) {
	return nil, nil
}
func (r *fakeConflictRepo) Update(context.Context, *entities.Conflict) error   { return nil }
func (r *fakeConflictRepo) Delete(context.Context, uuid.UUID) (bool, error)    { return false, nil }
func (r *fakeConflictRepo) DeleteByMeetingID(context.Context, uuid.UUID) error { return nil }
func (r *fakeConflictRepo) List(_ context.Context, f repositories.ConflictFilters) ([]*entities.Conflict, error) {
	var out []*entities.Conflict
	for _, c := range r.conflicts {
		if f.MeetingID != nil && (c.MeetingID == nil || *c.MeetingID != *f.MeetingID) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type recordingSinks struct {
	mu        sync.Mutex
	tasks     []submission.TaskDraft
	conflicts []submission.ConflictDraft
}

func (s *recordingSinks) CreateTask(_ context.Context, d submission.TaskDraft) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, d)
	return uuid.NewString(), nil
}

func (s *recordingSinks) CreateConflict(_ context.Context, d submission.ConflictDraft) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conflicts = append(s.conflicts, d)
	return uuid.NewString(), nil
}

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

type fakeStore struct {
	objects map[string]string
	err     error
}

func (s *fakeStore) UploadText(_ context.Context, name, content string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.objects == nil {
		s.objects = map[string]string{}
	}
	s.objects[name] = content
	return name, nil
}

type fixture struct {
	svc       *MeetingService
	meetings  *fakeMeetingRepo
	tasks     *fakeRecordRepo
	conflicts *fakeConflictRepo
	sinks     *recordingSinks
	guard     *fakeGuard
	store     *fakeStore
}

func newFixture() *fixture {
	f := &fixture{
		meetings:  newFakeMeetingRepo(),
		tasks:     &fakeRecordRepo{},
		conflicts: &fakeConflictRepo{},
		sinks:     &recordingSinks{},
		guard:     &fakeGuard{},
		store:     &fakeStore{},
	}
	submitter := submission.NewSubmitter(f.sinks, f.sinks, submission.Options{Concurrency: 2, MaxAttempts: 1}, nil)
	f.svc = NewMeetingService(f.meetings, f.tasks, f.conflicts, submitter, f.guard, f.store, nil)
	return f
}

func TestMeetingService_CreateDefaults(t *testing.T) {
	f := newFixture()

	m, err := f.svc.Create(context.Background(), CreateInput{Title: "  ", Host: "Dana"})
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultMeetingTitle, m.Title)
	assert.NotEmpty(t, m.Date)
	assert.Equal(t, "Dana", m.Host)
}

func TestMeetingService_GetIncludesRecords(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	m, err := f.svc.Create(ctx, CreateInput{Title: "Standup"})
	require.NoError(t, err)
	other := uuid.New()
	f.tasks.tasks = []*entities.Task{
		entities.NewTask(&m.ID, "Alice", "Write notes", ""),
		entities.NewTask(&other, "Bob", "Elsewhere", ""),
	}
	f.conflicts.conflicts = []*entities.Conflict{entities.NewConflict(&m.ID, "Scope", "Carol", "")}

	detail, err := f.svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standup", detail.Title)
	require.Len(t, detail.Tasks, 1)
	assert.Equal(t, "Alice", detail.Tasks[0].Person)
	require.Len(t, detail.Conflicts, 1)
}

func TestMeetingService_NotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, usecaseErrors.ErrMeetingNotFound)

	err = f.svc.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, usecaseErrors.ErrMeetingNotFound)

	_, err = f.svc.IngestAnalysis(ctx, uuid.New(), sampleAnalysis)
	assert.ErrorIs(t, err, usecaseErrors.ErrMeetingNotFound)
}

func TestMeetingService_ListClampsLimit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(ctx, CreateInput{})
		require.NoError(t, err)
	}

	meetings, total, err := f.svc.List(ctx, ListInput{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, meetings, 2)
	assert.EqualValues(t, 3, total)

	meetings, _, err = f.svc.List(ctx, ListInput{Limit: -1, Offset: -5})
	require.NoError(t, err)
	assert.Len(t, meetings, 3)
}

func TestMeetingService_Preview(t *testing.T) {
	f := newFixture()

	result := f.svc.Preview(sampleAnalysis)
	require.Len(t, result.Tasks, 2)
	assert.Equal(t, extraction.SourceTable, result.TaskSource)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, extraction.SeverityHigh, result.Conflicts[0].Severity)
	assert.Empty(t, f.sinks.tasks)
	assert.Zero(t, f.meetings.updates)
}

func TestMeetingService_IngestAnalysis(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	m, err := f.svc.Create(ctx, CreateInput{Title: "Budget"})
	require.NoError(t, err)

	res, err := f.svc.IngestAnalysis(ctx, m.ID, sampleAnalysis)
	require.NoError(t, err)

	assert.Equal(t, m.ID, res.MeetingID)
	assert.Equal(t, 2, res.Submission.Tasks.Succeeded())
	assert.Equal(t, 1, res.Submission.Conflicts.Succeeded())
	assert.Equal(t, extraction.SourceSection, res.ConflictSource)

	require.Len(t, f.sinks.tasks, 2)
	for _, d := range f.sinks.tasks {
		assert.Equal(t, m.ID.String(), d.MeetingID)
		assert.Equal(t, submission.StatusPending, d.Status)
	}

	stored, _ := f.meetings.FindByID(ctx, m.ID)
	assert.Equal(t, sampleAnalysis, stored.Analysis)
	require.NotNil(t, stored.AnalysisObject)
	assert.Equal(t, sampleAnalysis, f.store.objects[*stored.AnalysisObject])
}

func TestMeetingService_IngestTwiceCreatesOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	m, err := f.svc.Create(ctx, CreateInput{})
	require.NoError(t, err)

	_, err = f.svc.IngestAnalysis(ctx, m.ID, sampleAnalysis)
	require.NoError(t, err)
	res, err := f.svc.IngestAnalysis(ctx, m.ID, sampleAnalysis)
	require.NoError(t, err)

	assert.True(t, res.Submission.TasksSkipped)
	assert.True(t, res.Submission.ConflictsSkipped)
	assert.Len(t, f.sinks.tasks, 2)
	assert.Len(t, f.sinks.conflicts, 1)
}

func TestMeetingService_IngestEmpty(t *testing.T) {
	f := newFixture()

	_, err := f.svc.IngestAnalysis(context.Background(), uuid.New(), " \n\t")
	assert.ErrorIs(t, err, usecaseErrors.ErrEmptyAnalysis)
}

func TestMeetingService_IngestStorageFailureDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.store.err = errors.New("bucket gone")
	ctx := context.Background()
	m, err := f.svc.Create(ctx, CreateInput{})
	require.NoError(t, err)

	res, err := f.svc.IngestAnalysis(ctx, m.ID, sampleAnalysis)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Submission.Tasks.Succeeded())

	stored, _ := f.meetings.FindByID(ctx, m.ID)
	assert.Nil(t, stored.AnalysisObject)
}

func TestMeetingService_IngestGuardFailure(t *testing.T) {
	f := newFixture()
	f.guard.err = errors.New("redis down")
	ctx := context.Background()
	m, err := f.svc.Create(ctx, CreateInput{})
	require.NoError(t, err)

	_, err = f.svc.IngestAnalysis(ctx, m.ID, sampleAnalysis)
	assert.ErrorIs(t, err, usecaseErrors.ErrSubmissionBlocked)
	assert.Empty(t, f.sinks.tasks)
}
