package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/minutemind/internal/usecase/errors"
	"github.com/johnquangdev/minutemind/pkg/jobcontext"
)

// StartWorkerPool starts the job dispatcher, the workers and the reconcile
// loop for transcripts whose webhook never arrived.
func (s *aiService) StartWorkerPool(ctx context.Context) error {
	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if s.isWorkerPoolRunning {
		return fmt.Errorf("worker pool already running")
	}

	s.isWorkerPoolRunning = true
	s.workerStopChan = make(chan struct{})
	s.jobs = make(chan entities.AIJob)

	if s.logger != nil {
		s.logger.Info("🚀 Starting AI worker pool",
			zap.Int("worker_count", s.opts.Workers),
			zap.Duration("poll_interval", s.opts.PollInterval),
		)
	}

	for i := 0; i < s.opts.Workers; i++ {
		s.workerWg.Add(1)
		go s.worker(ctx, i)
	}

	s.workerWg.Add(1)
	go s.pendingJobDispatcher(ctx)

	if s.transcriber != nil {
		s.workerWg.Add(1)
		go s.webhookTimeoutWorker(ctx)
	}

	return nil
}

// StopWorkerPool gracefully stops all worker goroutines
func (s *aiService) StopWorkerPool() error {
	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if !s.isWorkerPoolRunning {
		return fmt.Errorf("worker pool not running")
	}

	if s.logger != nil {
		s.logger.Info("🛑 Stopping AI worker pool...")
	}

	close(s.workerStopChan)
	s.workerWg.Wait()
	s.isWorkerPoolRunning = false

	if s.logger != nil {
		s.logger.Info("✅ AI worker pool stopped")
	}
	return nil
}

// pendingJobDispatcher polls for pending or retryable jobs, claims them and
// hands them to the workers.
func (s *aiService) pendingJobDispatcher(ctx context.Context) {
	defer s.workerWg.Done()

	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.workerStopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.dispatchPending(ctx)
		}
	}
}

func (s *aiService) dispatchPending(ctx context.Context) {
	jobs, err := s.aiJobRepo.GetJobsForProcessing(ctx, s.opts.Workers*2)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to poll pending jobs", zap.Error(err))
		}
		return
	}

	for _, job := range jobs {
		claimed, err := s.aiJobRepo.ClaimJob(ctx, job.ID)
		if err != nil {
			if s.logger != nil {
				s.logger.Error("❌ Failed to claim job", zap.String("job_id", job.ID.String()), zap.Error(err))
			}
			continue
		}
		if !claimed {
			continue
		}

		select {
		case s.jobs <- job:
		case <-s.workerStopChan:
			// Back to pending without spending a retry.
			if _, err := s.aiJobRepo.TransitionJob(context.WithoutCancel(ctx), job.ID, entities.AIJobStatusProcessing, entities.AIJobStatusPending); err != nil && s.logger != nil {
				s.logger.Error("❌ Failed to requeue job", zap.String("job_id", job.ID.String()), zap.Error(err))
			}
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *aiService) worker(ctx context.Context, workerID int) {
	defer s.workerWg.Done()

	if s.logger != nil {
		s.logger.Info("👷 Worker started", zap.Int("worker_id", workerID))
	}

	for {
		select {
		case <-s.workerStopChan:
			return
		case <-ctx.Done():
			return
		case job := <-s.jobs:
			s.runJob(ctx, workerID, job)
		}
	}
}

func (s *aiService) runJob(ctx context.Context, workerID int, job entities.AIJob) {
	if s.logger != nil {
		s.logger.Info("👷 Worker claimed job",
			zap.Int("worker_id", workerID),
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", string(job.JobType)),
			zap.Int("retry_count", job.RetryCount),
		)
	}

	jobCtx, cancel := jobcontext.JobBegin(ctx, job.ID, string(job.JobType), workerID, jobcontext.Settings{
		Timeout:    s.opts.JobTimeout,
		MaxRetries: s.opts.MaxRetries,
		BaseDelay:  s.opts.RetryDelay,
	})
	defer cancel()

	err := jobcontext.JobEnd(jobCtx, s.opts.RetryDelay, func(ctx context.Context) error {
		return s.processJob(ctx, &job)
	})
	if err != nil {
		s.markFailed(ctx, job.ID, err)
	}
}

func (s *aiService) processJob(ctx context.Context, job *entities.AIJob) error {
	switch job.JobType {
	case entities.AIJobTypeTranscription:
		return s.submitRecording(ctx, job)
	case entities.AIJobTypeAnalysis:
		return s.runAnalysis(ctx, job)
	default:
		return fmt.Errorf("unknown job type %q", job.JobType)
	}
}

// submitRecording streams the stored recording to AssemblyAI. The job stays
// submitted until the webhook or the reconcile loop completes it.
func (s *aiService) submitRecording(ctx context.Context, job *entities.AIJob) error {
	if s.transcriber == nil {
		return usecaseErrors.ErrAIDisabled
	}
	if s.store == nil {
		return usecaseErrors.ErrStorageDisabled
	}

	select {
	case s.uploadSemaphore <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.uploadSemaphore }()

	recording, err := s.store.Open(ctx, job.RecordingObject)
	if err != nil {
		return fmt.Errorf("failed to open recording: %w", err)
	}
	defer recording.Close()

	uploadURL, err := s.transcriber.Upload(ctx, recording)
	if err != nil {
		return err
	}
	transcriptID, err := s.transcriber.Submit(ctx, uploadURL)
	if err != nil {
		return err
	}

	if err := s.aiJobRepo.MarkJobAsSubmitted(ctx, job.ID, transcriptID); err != nil {
		return fmt.Errorf("failed to update external_job_id: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("✅ Transcription job submitted",
			zap.String("job_id", job.ID.String()),
			zap.String("meeting_id", job.MeetingID.String()),
			zap.String("transcript_id", transcriptID),
		)
	}
	return nil
}

func (s *aiService) runAnalysis(ctx context.Context, job *entities.AIJob) error {
	if s.analyzer == nil {
		return usecaseErrors.ErrAIDisabled
	}

	startTime := time.Now()
	transcript, err := s.transcriptRepo.GetTranscriptByMeetingID(ctx, job.MeetingID)
	if err != nil {
		return fmt.Errorf("failed to get transcript: %w", err)
	}
	if transcript == nil {
		return fmt.Errorf("transcript not found for meeting %s", job.MeetingID)
	}

	text := transcriptText(transcript)
	if strings.TrimSpace(text) == "" {
		return usecaseErrors.ErrEmptyTranscript
	}

	analysis, err := s.analyzer.AnalyzeTranscript(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to analyze transcript: %w", err)
	}

	result, err := s.ingester.IngestAnalysis(ctx, job.MeetingID, analysis)
	if err != nil {
		return err
	}

	metadata := job.Metadata
	metadata.SpeakerCount = transcript.SpeakerCount
	metadata.Language = transcript.Language
	metadata.ProcessingTimeMs = time.Since(startTime).Milliseconds()
	metadata.TasksCreated = result.Submission.Tasks.Succeeded()
	metadata.ConflictsCreated = result.Submission.Conflicts.Succeeded()

	if err := s.aiJobRepo.MarkJobAsCompleted(ctx, job.ID, metadata); err != nil {
		return fmt.Errorf("failed to complete AI job: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("✅ Meeting analysis completed",
			zap.String("job_id", job.ID.String()),
			zap.String("meeting_id", job.MeetingID.String()),
			zap.Int("tasks_created", metadata.TasksCreated),
			zap.Int("conflicts_created", metadata.ConflictsCreated),
			zap.Int64("processing_time_ms", metadata.ProcessingTimeMs),
		)
	}
	return nil
}

// webhookTimeoutWorker polls AssemblyAI for submitted jobs whose webhook is
// overdue.
func (s *aiService) webhookTimeoutWorker(ctx context.Context) {
	defer s.workerWg.Done()

	ticker := time.NewTicker(s.opts.ReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.workerStopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reconcileSubmitted(ctx)
		}
	}
}

func (s *aiService) reconcileSubmitted(ctx context.Context) {
	jobs, err := s.aiJobRepo.GetStaleSubmittedJobs(ctx, time.Now().Add(-s.opts.WebhookTimeout), 10)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to poll submitted jobs", zap.Error(err))
		}
		return
	}

	for i := range jobs {
		job := &jobs[i]
		if job.ExternalJobID == nil {
			continue
		}
		result, err := s.transcriber.Fetch(ctx, *job.ExternalJobID)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("⚠️ Failed to poll transcript", zap.String("job_id", job.ID.String()), zap.Error(err))
			}
			continue
		}
		if result.Status != transcriptStatusCompleted && result.Status != transcriptStatusError {
			continue
		}

		if s.logger != nil {
			s.logger.Info("🔁 Webhook overdue, completing from poll",
				zap.String("job_id", job.ID.String()),
				zap.String("status", result.Status),
			)
		}
		if err := s.completeTranscription(ctx, job, result); err != nil && s.logger != nil {
			s.logger.Error("❌ Failed to complete transcript", zap.String("job_id", job.ID.String()), zap.Error(err))
		}
	}
}
