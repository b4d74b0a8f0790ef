package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
	"github.com/johnquangdev/minutemind/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/minutemind/internal/usecase/errors"
	"github.com/johnquangdev/minutemind/internal/usecase/meeting"
	pkgai "github.com/johnquangdev/minutemind/pkg/ai"
	"github.com/johnquangdev/minutemind/pkg/config"
)

const (
	transcriptStatusCompleted = "completed"
	transcriptStatusError     = "error"
)

// Options tune the worker pool.
type Options struct {
	Workers           int
	PollInterval      time.Duration
	JobTimeout        time.Duration
	MaxRetries        int
	RetryDelay        time.Duration
	MaxConcurrent     int
	WebhookTimeout    time.Duration
	ReconcileInterval time.Duration
}

// OptionsFromConfig builds Options from the worker and AssemblyAI config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Workers:           cfg.Worker.Count,
		PollInterval:      cfg.Worker.PollInterval,
		JobTimeout:        cfg.Worker.JobTimeout,
		MaxRetries:        cfg.Worker.MaxRetries,
		RetryDelay:        cfg.Worker.RetryDelay,
		MaxConcurrent:     cfg.Assembly.MaxConcurrent,
		WebhookTimeout:    10 * time.Minute,
		ReconcileInterval: time.Minute,
	}
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 2
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 10 * time.Second
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = 3
	}
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = 2
	}
	if o.WebhookTimeout <= 0 {
		o.WebhookTimeout = 10 * time.Minute
	}
	if o.ReconcileInterval <= 0 {
		o.ReconcileInterval = time.Minute
	}
	return o
}

type aiService struct {
	meetingRepo    repositories.MeetingRepository
	aiJobRepo      repositories.AIJobRepository
	transcriptRepo repositories.TranscriptRepository
	transcriber    Transcriber
	analyzer       Analyzer
	store          RecordingStore
	ingester       AnalysisIngester
	opts           Options
	logger         *zap.Logger

	uploadSemaphore     chan struct{}
	jobs                chan entities.AIJob
	workerStopChan      chan struct{}
	workerWg            sync.WaitGroup
	isWorkerPoolRunning bool
	workerMutex         sync.Mutex
}

// NewAIService constructs a new AI service. transcriber, analyzer and store
// may be nil; the operations needing them then return ErrAIDisabled or
// ErrStorageDisabled.
func NewAIService(
	meetingRepo repositories.MeetingRepository,
	aiJobRepo repositories.AIJobRepository,
	transcriptRepo repositories.TranscriptRepository,
	transcriber Transcriber,
	analyzer Analyzer,
	store RecordingStore,
	ingester AnalysisIngester,
	opts Options,
	logger *zap.Logger,
) Service {
	opts = opts.withDefaults()
	return &aiService{
		meetingRepo:     meetingRepo,
		aiJobRepo:       aiJobRepo,
		transcriptRepo:  transcriptRepo,
		transcriber:     transcriber,
		analyzer:        analyzer,
		store:           store,
		ingester:        ingester,
		opts:            opts,
		logger:          logger,
		uploadSemaphore: make(chan struct{}, opts.MaxConcurrent),
	}
}

func (s *aiService) UploadRecording(ctx context.Context, meetingID uuid.UUID, input RecordingInput) (*entities.AIJob, error) {
	if s.store == nil {
		return nil, usecaseErrors.ErrStorageDisabled
	}
	if s.transcriber == nil {
		return nil, usecaseErrors.ErrAIDisabled
	}

	m, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectName := fmt.Sprintf("recordings/%s/%d%s", meetingID, time.Now().Unix(), strings.ToLower(filepath.Ext(input.Filename)))
	if _, err := s.store.UploadFile(ctx, objectName, input.Body, input.Size, contentType); err != nil {
		return nil, fmt.Errorf("failed to store recording: %w", err)
	}

	m.RecordingObject = &objectName
	if err := s.meetingRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}

	job := entities.NewAIJob(meetingID, entities.AIJobTypeTranscription, objectName)
	job.MaxRetries = s.opts.MaxRetries
	if err := s.aiJobRepo.CreateAIJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create AI job: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("🎙️ Recording stored, transcription queued",
			zap.String("meeting_id", meetingID.String()),
			zap.String("job_id", job.ID.String()),
			zap.String("object", objectName),
			zap.Int64("size", input.Size),
		)
	}
	return job, nil
}

func (s *aiService) AnalyzeTranscript(ctx context.Context, meetingID uuid.UUID, text string) (*meeting.IngestResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, usecaseErrors.ErrEmptyTranscript
	}
	if s.analyzer == nil {
		return nil, usecaseErrors.ErrAIDisabled
	}

	m, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	m.TranscriptText = text
	if err := s.meetingRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to store transcript: %w", err)
	}

	analysis, err := s.analyzer.AnalyzeTranscript(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecaseErrors.ErrAnalysisFailed, err)
	}
	return s.ingester.IngestAnalysis(ctx, meetingID, analysis)
}

func (s *aiService) HandleAssemblyAIWebhook(ctx context.Context, payload []byte, token string) error {
	if s.transcriber == nil {
		return usecaseErrors.ErrAIDisabled
	}
	if !s.transcriber.VerifyWebhook(token) {
		if s.logger != nil {
			s.logger.Warn("⚠️ Rejected AssemblyAI webhook with bad token")
		}
		return usecaseErrors.ErrInvalidWebhookToken
	}

	var body WebhookPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return fmt.Errorf("%w: %w", usecaseErrors.ErrInvalidWebhook, err)
	}
	if body.TranscriptID == "" {
		return fmt.Errorf("%w: transcript_id missing", usecaseErrors.ErrInvalidWebhook)
	}

	if s.logger != nil {
		s.logger.Info("📥 Received AssemblyAI webhook",
			zap.String("transcript_id", body.TranscriptID),
			zap.String("status", body.Status),
		)
	}

	job, err := s.aiJobRepo.GetAIJobByExternalID(ctx, body.TranscriptID)
	if err != nil {
		return fmt.Errorf("failed to find AI job: %w", err)
	}
	if job == nil {
		return usecaseErrors.ErrAIJobNotFound
	}

	switch body.Status {
	case transcriptStatusCompleted, transcriptStatusError:
		result, err := s.transcriber.Fetch(ctx, body.TranscriptID)
		if err != nil {
			return err
		}
		return s.completeTranscription(ctx, job, result)
	default:
		return nil
	}
}

// completeTranscription stores a finished transcript and queues the analysis
// job. Only the first caller for a submitted job does the work.
func (s *aiService) completeTranscription(ctx context.Context, job *entities.AIJob, result *pkgai.TranscriptResult) error {
	claimed, err := s.aiJobRepo.TransitionJob(ctx, job.ID, entities.AIJobStatusSubmitted, entities.AIJobStatusProcessing)
	if err != nil {
		return fmt.Errorf("failed to claim AI job: %w", err)
	}
	if !claimed {
		if s.logger != nil {
			s.logger.Info("⏭️ Transcript already handled", zap.String("job_id", job.ID.String()))
		}
		return nil
	}

	if result.Status == transcriptStatusError {
		s.markFailed(ctx, job.ID, fmt.Errorf("assemblyai error: %s", result.Error))
		return nil
	}

	segments := MergeSegments(SegmentsFromUtterances(result.Utterances), DefaultMergeGap)
	transcript := entities.NewTranscript(job.MeetingID, result.ID)
	transcript.Text = result.Text
	transcript.Language = result.Language
	transcript.ConfidenceScore = result.Confidence
	transcript.Segments = segments
	transcript.SpeakerCount = len(transcript.Speakers())

	if err := s.transcriptRepo.SaveTranscript(ctx, transcript); err != nil {
		s.markFailed(ctx, job.ID, err)
		return fmt.Errorf("failed to store transcript: %w", err)
	}

	if err := s.storeTranscriptOnMeeting(ctx, transcript); err != nil {
		s.markFailed(ctx, job.ID, err)
		return err
	}

	metadata := entities.AIJobMetadata{
		DurationSeconds: result.AudioDuration,
		Language:        result.Language,
		SpeakerCount:    transcript.SpeakerCount,
	}

	if strings.TrimSpace(transcriptText(transcript)) != "" {
		analysisJob := entities.NewAIJob(job.MeetingID, entities.AIJobTypeAnalysis, job.RecordingObject)
		analysisJob.MaxRetries = s.opts.MaxRetries
		if err := s.aiJobRepo.CreateAIJob(ctx, analysisJob); err != nil {
			s.markFailed(ctx, job.ID, err)
			return fmt.Errorf("failed to queue analysis: %w", err)
		}
	} else if s.logger != nil {
		s.logger.Warn("⚠️ Transcript is empty, skipping analysis", zap.String("meeting_id", job.MeetingID.String()))
	}

	if err := s.aiJobRepo.MarkJobAsCompleted(ctx, job.ID, metadata); err != nil {
		return fmt.Errorf("failed to complete AI job: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("✅ Transcript stored",
			zap.String("meeting_id", job.MeetingID.String()),
			zap.String("transcript_id", result.ID),
			zap.Int("segments", len(segments)),
			zap.Int("speakers", transcript.SpeakerCount),
		)
	}
	return nil
}

func (s *aiService) storeTranscriptOnMeeting(ctx context.Context, transcript *entities.Transcript) error {
	m, err := s.findMeeting(ctx, transcript.MeetingID)
	if err != nil {
		return err
	}
	speakers, err := json.Marshal(transcript.Speakers())
	if err != nil {
		return err
	}
	m.TranscriptText = transcriptText(transcript)
	m.Speakers = datatypes.JSON(speakers)
	if err := s.meetingRepo.Update(ctx, m); err != nil {
		return fmt.Errorf("failed to update meeting: %w", err)
	}
	return nil
}

// transcriptText prefers the speaker-labelled rendering over the raw text.
func transcriptText(t *entities.Transcript) string {
	if len(t.Segments) > 0 {
		return FormatTranscript(t.Segments)
	}
	return t.Text
}

func (s *aiService) markFailed(ctx context.Context, jobID uuid.UUID, cause error) {
	if err := s.aiJobRepo.MarkJobAsFailed(ctx, jobID, cause.Error()); err != nil && s.logger != nil {
		s.logger.Error("❌ Failed to mark job as failed", zap.String("job_id", jobID.String()), zap.Error(err))
	}
	if s.logger != nil {
		s.logger.Error("❌ AI job failed", zap.String("job_id", jobID.String()), zap.Error(cause))
	}
}

func (s *aiService) findMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	m, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	if m == nil {
		return nil, usecaseErrors.ErrMeetingNotFound
	}
	return m, nil
}
