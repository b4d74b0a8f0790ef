package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/minutemind/pkg/config"
)

// WebhookAuthHeader is the header AssemblyAI echoes back on webhook calls.
const WebhookAuthHeader = "X-Webhook-Token"

const submitRetries = 2

// AssemblyAIClient wraps the official AssemblyAI SDK
type AssemblyAIClient struct {
	sdk           *aai.Client
	webhookURL    string
	webhookSecret string
}

// TranscriptResult is the part of an AssemblyAI transcript the pipeline uses.
type TranscriptResult struct {
	ID            string
	Status        string
	Text          string
	Language      string
	Confidence    float64
	AudioDuration int
	Error         string
	Utterances    []Utterance
}

// Utterance is one speaker turn; times are in seconds.
type Utterance struct {
	Speaker string
	Text    string
	Start   float64
	End     float64
}

// NewAssemblyAIClient creates an AssemblyAI client. baseURL overrides the API
// endpoint and is only set by tests.
func NewAssemblyAIClient(cfg *config.AssemblyConfig, webhookURL string, baseURL string) *AssemblyAIClient {
	opts := []aai.ClientOption{
		aai.WithAPIKey(cfg.APIKey),
		aai.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
	}
	if baseURL != "" {
		opts = append(opts, aai.WithBaseURL(baseURL))
	}
	return &AssemblyAIClient{
		sdk:           aai.NewClientWithOptions(opts...),
		webhookURL:    webhookURL,
		webhookSecret: cfg.WebhookSecret,
	}
}

// Upload streams audio to AssemblyAI and returns the private upload URL.
func (c *AssemblyAIClient) Upload(ctx context.Context, audio io.Reader) (string, error) {
	uploadURL, err := c.sdk.Upload(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("failed to upload to AssemblyAI: %w", err)
	}
	return uploadURL, nil
}

// Submit queues a transcription with speaker labels and returns its id.
// Completion is reported through the webhook.
func (c *AssemblyAIClient) Submit(ctx context.Context, audioURL string) (string, error) {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels:     aai.Bool(true),
		LanguageDetection: aai.Bool(true),
	}
	if c.webhookURL != "" {
		params.WebhookURL = aai.String(c.webhookURL)
		if c.webhookSecret != "" {
			params.WebhookAuthHeaderName = aai.String(WebhookAuthHeader)
			params.WebhookAuthHeaderValue = aai.String(c.webhookSecret)
		}
	}

	var transcript aai.Transcript
	submit := func() error {
		var err error
		transcript, err = c.sdk.Transcripts.SubmitFromURL(ctx, audioURL, params)
		return err
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	if err := backoff.Retry(submit, backoff.WithContext(backoff.WithMaxRetries(b, submitRetries), ctx)); err != nil {
		return "", fmt.Errorf("failed to submit transcription: %w", err)
	}
	if transcript.ID == nil || *transcript.ID == "" {
		return "", fmt.Errorf("assemblyai returned no transcript id")
	}
	return *transcript.ID, nil
}

// Fetch loads a transcript and its utterances.
func (c *AssemblyAIClient) Fetch(ctx context.Context, transcriptID string) (*TranscriptResult, error) {
	transcript, err := c.sdk.Transcripts.Get(ctx, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript: %w", err)
	}

	result := &TranscriptResult{
		ID:       transcriptID,
		Status:   string(transcript.Status),
		Language: string(transcript.LanguageCode),
	}
	if transcript.Text != nil {
		result.Text = *transcript.Text
	}
	if transcript.Confidence != nil {
		result.Confidence = *transcript.Confidence
	}
	if transcript.AudioDuration != nil {
		result.AudioDuration = int(*transcript.AudioDuration)
	}
	if transcript.Error != nil {
		result.Error = *transcript.Error
	}

	result.Utterances = make([]Utterance, 0, len(transcript.Utterances))
	for _, utt := range transcript.Utterances {
		u := Utterance{}
		if utt.Speaker != nil {
			u.Speaker = *utt.Speaker
		}
		if utt.Text != nil {
			u.Text = *utt.Text
		}
		if utt.Start != nil {
			u.Start = float64(*utt.Start) / 1000.0
		}
		if utt.End != nil {
			u.End = float64(*utt.End) / 1000.0
		}
		result.Utterances = append(result.Utterances, u)
	}
	return result, nil
}

// VerifyWebhook checks the auth header value of a webhook call. Without a
// configured secret every call is accepted.
func (c *AssemblyAIClient) VerifyWebhook(token string) bool {
	if c.webhookSecret == "" {
		return true
	}
	return VerifyToken(c.webhookSecret, token)
}
