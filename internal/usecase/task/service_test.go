package task

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
	"github.com/johnquangdev/minutemind/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/minutemind/internal/usecase/errors"
	"github.com/johnquangdev/minutemind/internal/usecase/submission"
)

type memTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*entities.Task
}

func (r *memTaskRepo) Create(_ context.Context, t *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = t
	return nil
}

func (r *memTaskRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memTaskRepo) Update(_ context.Context, t *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = t
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tasks[id]
	delete(r.tasks, id)
	return ok, nil
}

func (r *memTaskRepo) List(_ context.Context, f repositories.TaskFilters) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Task
	for _, t := range r.tasks {
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *memTaskRepo) DeleteByMeetingID(context.Context, uuid.UUID) error { return nil }

type stubMeetingRepo struct {
	known map[uuid.UUID]bool
}

func (r *stubMeetingRepo) Create(context.Context, *entities.Meeting) error { return nil }
func (r *stubMeetingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	if !r.known[id] {
		return nil, nil
	}
	return &entities.Meeting{ID: id}, nil
}
func (r *stubMeetingRepo) Update(context.Context, *entities.Meeting) error { return nil }
func (r *stubMeetingRepo) Delete(context.Context, uuid.UUID) error         { return nil }
func (r *stubMeetingRepo) List(context.Context, repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	return nil, 0, nil
}

func newTestService(meetings ...uuid.UUID) (*TaskService, *memTaskRepo) {
	repo := &memTaskRepo{tasks: map[uuid.UUID]*entities.Task{}}
	known := map[uuid.UUID]bool{}
	for _, id := range meetings {
		known[id] = true
	}
	return NewTaskService(repo, &stubMeetingRepo{known: known}, nil), repo
}

func strPtr(s string) *string { return &s }

func TestTaskService_Create(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	task, err := svc.Create(ctx, CreateInput{Person: " Alice ", Task: "Ship it", Deadline: "Friday"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", task.Person)
	assert.Equal(t, entities.TaskStatusPending, task.Status)
	assert.Equal(t, entities.RecordSourceManual, task.Source)

	_, err = svc.Create(ctx, CreateInput{Person: "Alice"})
	assert.ErrorIs(t, err, usecaseErrors.ErrTaskFieldsMissing)

	_, err = svc.Create(ctx, CreateInput{Person: "Alice", Task: "x", Status: "Blocked"})
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidTaskStatus)

	missing := uuid.New()
	_, err = svc.Create(ctx, CreateInput{MeetingID: &missing, Person: "Alice", Task: "x"})
	assert.ErrorIs(t, err, usecaseErrors.ErrMeetingNotFound)
}

func TestTaskService_CreateTaskSink(t *testing.T) {
	meetingID := uuid.New()
	svc, repo := newTestService(meetingID)

	id, err := svc.CreateTask(context.Background(), submission.TaskDraft{
		MeetingID: meetingID.String(),
		Person:    "Bob",
		Task:      "Book the venue",
		Deadline:  submission.DefaultDeadline,
		Status:    submission.StatusPending,
		Source:    submission.SourceExtracted,
	})
	require.NoError(t, err)

	stored := repo.tasks[uuid.MustParse(id)]
	require.NotNil(t, stored)
	assert.Equal(t, meetingID, *stored.MeetingID)
	assert.Equal(t, entities.RecordSourceExtracted, stored.Source)

	_, err = svc.CreateTask(context.Background(), submission.TaskDraft{MeetingID: "nope", Person: "a", Task: "b"})
	assert.Error(t, err)
}

func TestTaskService_AdvanceCycles(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	task, err := svc.Create(ctx, CreateInput{Person: "Alice", Task: "Review"})
	require.NoError(t, err)

	want := []entities.TaskStatus{
		entities.TaskStatusInProgress,
		entities.TaskStatusDone,
		entities.TaskStatusPending,
	}
	for _, status := range want {
		task, err = svc.Advance(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, status, task.Status)
	}

	_, err = svc.Advance(ctx, uuid.New())
	assert.ErrorIs(t, err, usecaseErrors.ErrTaskNotFound)
}

func TestTaskService_Update(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	task, err := svc.Create(ctx, CreateInput{Person: "Alice", Task: "Review"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, task.ID, UpdateInput{Status: strPtr("Done"), Notes: strPtr("merged")})
	require.NoError(t, err)
	assert.Equal(t, entities.TaskStatusDone, updated.Status)
	assert.Equal(t, "merged", updated.Notes)
	assert.Equal(t, "Alice", updated.Person)

	_, err = svc.Update(ctx, task.ID, UpdateInput{Status: strPtr("done")})
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidTaskStatus)

	_, err = svc.Update(ctx, task.ID, UpdateInput{Person: strPtr("  ")})
	assert.ErrorIs(t, err, usecaseErrors.ErrTaskFieldsMissing)
}

func TestTaskService_ListAndDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	a, err := svc.Create(ctx, CreateInput{Person: "Alice", Task: "One"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Person: "Bob", Task: "Two", Status: "Done"})
	require.NoError(t, err)

	done := entities.TaskStatusDone
	tasks, err := svc.List(ctx, repositories.TaskFilters{Status: &done})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Bob", tasks[0].Person)

	bad := entities.TaskStatus("Later")
	_, err = svc.List(ctx, repositories.TaskFilters{Status: &bad})
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidTaskStatus)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), usecaseErrors.ErrTaskNotFound)
}
