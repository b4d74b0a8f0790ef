package submission

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/minutemind/internal/usecase/extraction"
)

const (
	DefaultPerson   = "Unassigned"
	DefaultTask     = "Untitled Task"
	DefaultDeadline = "Not Mentioned"
	DefaultRaisedBy = "Unattributed"

	StatusPending   = "Pending"
	SourceExtracted = "extracted"
)

// TaskDraft is a task ready to be created.
type TaskDraft struct {
	MeetingID string `json:"meeting_id,omitempty"`
	Person    string `json:"person"`
	Task      string `json:"task"`
	Deadline  string `json:"deadline"`
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
	Source    string `json:"source,omitempty"`
}

// ConflictDraft is a conflict ready to be created.
type ConflictDraft struct {
	MeetingID  string `json:"meeting_id,omitempty"`
	Issue      string `json:"issue"`
	RaisedBy   string `json:"raised_by"`
	Resolution string `json:"resolution"`
	Severity   string `json:"severity"`
	Source     string `json:"source,omitempty"`
}

// TaskSink creates tasks.
type TaskSink interface {
	CreateTask(ctx context.Context, draft TaskDraft) (string, error)
}

// ConflictSink creates conflicts.
type ConflictSink interface {
	CreateConflict(ctx context.Context, draft ConflictDraft) (string, error)
}

// Summary is what one Submit call did.
type Summary struct {
	Tasks            Report[TaskDraft]     `json:"tasks"`
	Conflicts        Report[ConflictDraft] `json:"conflicts"`
	TasksSkipped     bool                  `json:"tasks_skipped"`
	ConflictsSkipped bool                  `json:"conflicts_skipped"`

	// Released kinds had every record fail and may be submitted again.
	TasksReleased     bool `json:"tasks_released,omitempty"`
	ConflictsReleased bool `json:"conflicts_released,omitempty"`
}

// Submitter maps extracted records to drafts and dispatches them.
type Submitter struct {
	tasks     TaskSink
	conflicts ConflictSink
	opts      Options
	logger    *zap.Logger
}

// NewSubmitter builds a Submitter. logger may be nil.
func NewSubmitter(tasks TaskSink, conflicts ConflictSink, opts Options, logger *zap.Logger) *Submitter {
	return &Submitter{
		tasks:     tasks,
		conflicts: conflicts,
		opts:      opts,
		logger:    logger,
	}
}

// Submit creates the extracted records of result for meetingID. Each kind
// is submitted at most once per session; a kind without records is left
// unclaimed. Per-record failures are reported in the Summary and logged;
// the returned error is set only when the session guard itself fails.
func (s *Submitter) Submit(ctx context.Context, session *Session, meetingID string, result extraction.Result) (Summary, error) {
	summary := Summary{
		Tasks:     Report[TaskDraft]{Outcomes: []Outcome[TaskDraft]{}},
		Conflicts: Report[ConflictDraft]{Outcomes: []Outcome[ConflictDraft]{}},
	}

	if len(result.Tasks) > 0 {
		ok, err := session.ClaimTasks(ctx)
		if err != nil {
			return summary, err
		}
		if ok {
			drafts := TaskDrafts(meetingID, result.Tasks)
			summary.Tasks = Dispatch(ctx, drafts, s.tasks.CreateTask, s.opts)
			logFailuresOf(s.logger, "task", summary.Tasks.Outcomes, func(o Outcome[TaskDraft]) string { return o.Record.Task })
			if summary.Tasks.Succeeded() == 0 {
				summary.TasksReleased = s.release(ctx, session, KindTasks)
			}
		} else {
			summary.TasksSkipped = true
		}
	}

	if len(result.Conflicts) > 0 {
		ok, err := session.ClaimConflicts(ctx)
		if err != nil {
			return summary, err
		}
		if ok {
			drafts := ConflictDrafts(meetingID, result.Conflicts)
			summary.Conflicts = Dispatch(ctx, drafts, s.conflicts.CreateConflict, s.opts)
			logFailuresOf(s.logger, "conflict", summary.Conflicts.Outcomes, func(o Outcome[ConflictDraft]) string { return o.Record.Issue })
			if summary.Conflicts.Succeeded() == 0 {
				summary.ConflictsReleased = s.release(ctx, session, KindConflicts)
			}
		} else {
			summary.ConflictsSkipped = true
		}
	}

	if s.logger != nil {
		s.logger.Info("📥 Analysis records submitted",
			zap.String("meeting_id", meetingID),
			zap.String("session", session.Key()),
			zap.Int("tasks_created", summary.Tasks.Succeeded()),
			zap.Int("tasks_failed", summary.Tasks.Failed()),
			zap.Int("conflicts_created", summary.Conflicts.Succeeded()),
			zap.Int("conflicts_failed", summary.Conflicts.Failed()),
			zap.Bool("tasks_skipped", summary.TasksSkipped),
			zap.Bool("conflicts_skipped", summary.ConflictsSkipped),
		)
	}

	return summary, nil
}

// release drops a kind's claim after every record of it failed. A failed
// release leaves the kind claimed until the guard TTL expires.
func (s *Submitter) release(ctx context.Context, session *Session, kind Kind) bool {
	if err := session.Release(context.WithoutCancel(ctx), kind); err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to release submission claim",
				zap.String("session", session.Key()),
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
		}
		return false
	}
	if s.logger != nil {
		s.logger.Warn("🔁 Every record failed, claim released",
			zap.String("session", session.Key()),
			zap.String("kind", string(kind)),
		)
	}
	return true
}

func logFailuresOf[R any](logger *zap.Logger, kind string, outcomes []Outcome[R], label func(Outcome[R]) string) {
	if logger == nil {
		return
	}
	for _, o := range outcomes {
		if o.OK() {
			continue
		}
		logger.Warn("⚠️ Failed to create "+kind,
			zap.Int("index", o.Index),
			zap.String("label", label(o)),
			zap.Int("attempts", o.Attempts),
			zap.Error(o.Err),
		)
	}
}

// TaskDrafts maps extracted tasks to drafts, filling blank fields with defaults.
func TaskDrafts(meetingID string, records []extraction.TaskRecord) []TaskDraft {
	drafts := make([]TaskDraft, 0, len(records))
	for _, r := range records {
		drafts = append(drafts, TaskDraft{
			MeetingID: meetingID,
			Person:    orDefault(r.Person, DefaultPerson),
			Task:      orDefault(r.Task, DefaultTask),
			Deadline:  orDefault(r.Deadline, DefaultDeadline),
			Status:    StatusPending,
			Source:    SourceExtracted,
		})
	}
	return drafts
}

// ConflictDrafts maps extracted conflicts to drafts.
func ConflictDrafts(meetingID string, records []extraction.ConflictRecord) []ConflictDraft {
	drafts := make([]ConflictDraft, 0, len(records))
	for _, r := range records {
		severity := r.Severity
		if !severity.Valid() {
			severity = extraction.SeverityMedium
		}
		drafts = append(drafts, ConflictDraft{
			MeetingID:  meetingID,
			Issue:      r.Issue,
			RaisedBy:   orDefault(r.RaisedBy, DefaultRaisedBy),
			Resolution: r.Resolution,
			Severity:   string(severity),
			Source:     SourceExtracted,
		})
	}
	return drafts
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
