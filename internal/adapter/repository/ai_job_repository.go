package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
	"github.com/johnquangdev/minutemind/internal/domain/repositories"
)

// AIJobRepository handles AI job data operations
type AIJobRepository struct {
	db *gorm.DB
}

var _ repositories.AIJobRepository = (*AIJobRepository)(nil)

// NewAIJobRepository creates a new AI job repository
func NewAIJobRepository(db *gorm.DB) *AIJobRepository {
	return &AIJobRepository{db: db}
}

func (r *AIJobRepository) CreateAIJob(ctx context.Context, job *entities.AIJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *AIJobRepository) GetAIJobByID(ctx context.Context, jobID uuid.UUID) (*entities.AIJob, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", jobID))
}

// GetAIJobByExternalID retrieves an AI job by AssemblyAI transcript ID
func (r *AIJobRepository) GetAIJobByExternalID(ctx context.Context, externalID string) (*entities.AIJob, error) {
	return r.first(r.db.WithContext(ctx).Where("external_job_id = ?", externalID))
}

// GetAIJobByMeetingID retrieves the latest AI job for a meeting
func (r *AIJobRepository) GetAIJobByMeetingID(ctx context.Context, meetingID uuid.UUID, jobType entities.AIJobType) (*entities.AIJob, error) {
	query := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID)
	if jobType != "" {
		query = query.Where("job_type = ?", jobType)
	}
	return r.first(query.Order("created_at DESC"))
}

func (r *AIJobRepository) first(query *gorm.DB) (*entities.AIJob, error) {
	var job entities.AIJob
	if err := query.First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// GetJobsForProcessing returns pending jobs and failed jobs with retries left, oldest first.
func (r *AIJobRepository) GetJobsForProcessing(ctx context.Context, limit int) ([]entities.AIJob, error) {
	var jobs []entities.AIJob
	if limit == 0 {
		limit = 10
	}
	if err := r.db.WithContext(ctx).
		Where("status = ? OR (status = ? AND retry_count < max_retries)", entities.AIJobStatusPending, entities.AIJobStatusFailed).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *AIJobRepository) ClaimJob(ctx context.Context, jobID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.AIJob{}).
		Where("id = ? AND (status = ? OR (status = ? AND retry_count < max_retries))",
			jobID, entities.AIJobStatusPending, entities.AIJobStatusFailed).
		Updates(map[string]interface{}{
			"status":     entities.AIJobStatusProcessing,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *AIJobRepository) TransitionJob(ctx context.Context, jobID uuid.UUID, from, to entities.AIJobStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.AIJob{}).
		Where("id = ? AND status = ?", jobID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *AIJobRepository) GetStaleSubmittedJobs(ctx context.Context, before time.Time, limit int) ([]entities.AIJob, error) {
	var jobs []entities.AIJob
	if limit == 0 {
		limit = 10
	}
	if err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ? AND external_job_id IS NOT NULL", entities.AIJobStatusSubmitted, before).
		Order("updated_at ASC").
		Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// MarkJobAsSubmitted marks a job as submitted with external ID
func (r *AIJobRepository) MarkJobAsSubmitted(ctx context.Context, jobID uuid.UUID, externalID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.AIJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":          entities.AIJobStatusSubmitted,
			"external_job_id": externalID,
			"started_at":      now,
			"updated_at":      now,
		}).Error
}

func (r *AIJobRepository) MarkJobAsCompleted(ctx context.Context, jobID uuid.UUID, metadata entities.AIJobMetadata) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.AIJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":       entities.AIJobStatusCompleted,
			"metadata":     metadata,
			"completed_at": now,
			"updated_at":   now,
		}).Error
}

// MarkJobAsFailed records the error and counts the attempt.
func (r *AIJobRepository) MarkJobAsFailed(ctx context.Context, jobID uuid.UUID, errMsg string) error {
	return r.db.WithContext(ctx).
		Model(&entities.AIJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":      entities.AIJobStatusFailed,
			"retry_count": gorm.Expr("retry_count + 1"),
			"last_error":  errMsg,
			"updated_at":  time.Now(),
		}).Error
}
