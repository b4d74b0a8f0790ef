package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/minutemind/internal/domain/entities"
	"github.com/johnquangdev/minutemind/internal/domain/repositories"
)

type transcriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository backed by GORM
func NewTranscriptRepository(db *gorm.DB) repositories.TranscriptRepository {
	return &transcriptRepository{db: db}
}

// SaveTranscript upserts the transcript of a meeting; a meeting keeps one transcript.
func (r *transcriptRepository) SaveTranscript(ctx context.Context, t *entities.Transcript) error {
	if t == nil {
		return errors.New("transcript cannot be nil")
	}
	segments, err := json.Marshal(t.Segments)
	if err != nil {
		return err
	}

	q := `INSERT INTO transcripts (id, meeting_id, external_id, text, language, segments, confidence_score, speaker_count, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?::jsonb, ?, ?, ?, ?)
        ON CONFLICT (meeting_id) DO UPDATE SET external_id = EXCLUDED.external_id, text = EXCLUDED.text, language = EXCLUDED.language, segments = EXCLUDED.segments, confidence_score = EXCLUDED.confidence_score, speaker_count = EXCLUDED.speaker_count, updated_at = NOW()`

	now := time.Now()
	return r.db.WithContext(ctx).Exec(q, t.ID, t.MeetingID, t.ExternalID, t.Text, t.Language, string(segments), t.ConfidenceScore, t.SpeakerCount, now, now).Error
}

func (r *transcriptRepository) GetTranscriptByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Transcript, error) {
	var transcript entities.Transcript
	if err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&transcript).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transcript, nil
}
