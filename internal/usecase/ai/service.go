package ai

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
	"github.com/johnquangdev/minutemind/internal/usecase/meeting"
	pkgai "github.com/johnquangdev/minutemind/pkg/ai"
)

// Service defines AI orchestration methods
type Service interface {
	// UploadRecording stores the audio and queues a transcription job.
	UploadRecording(ctx context.Context, meetingID uuid.UUID, input RecordingInput) (*entities.AIJob, error)
	// AnalyzeTranscript runs the analysis step on a typed transcript and
	// ingests the result.
	AnalyzeTranscript(ctx context.Context, meetingID uuid.UUID, text string) (*meeting.IngestResult, error)
	HandleAssemblyAIWebhook(ctx context.Context, payload []byte, token string) error
	StartWorkerPool(ctx context.Context) error
	StopWorkerPool() error
}

var _ Service = (*aiService)(nil)

// Transcriber is the speech-to-text backend.
type Transcriber interface {
	Upload(ctx context.Context, audio io.Reader) (string, error)
	Submit(ctx context.Context, audioURL string) (string, error)
	Fetch(ctx context.Context, transcriptID string) (*pkgai.TranscriptResult, error)
	VerifyWebhook(token string) bool
}

// Analyzer turns a transcript into analysis text.
type Analyzer interface {
	AnalyzeTranscript(ctx context.Context, transcript string) (string, error)
}

// RecordingStore keeps uploaded recordings.
type RecordingStore interface {
	UploadFile(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, objectName string) (io.ReadCloser, error)
}

// AnalysisIngester stores analysis text and submits its records.
type AnalysisIngester interface {
	IngestAnalysis(ctx context.Context, id uuid.UUID, text string) (*meeting.IngestResult, error)
}

// RecordingInput is an uploaded audio file.
type RecordingInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// WebhookPayload is the body AssemblyAI posts when a transcript changes state.
type WebhookPayload struct {
	TranscriptID string `json:"transcript_id"`
	Status       string `json:"status"`
}
