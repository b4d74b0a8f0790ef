package entities

import (
	"time"

	"github.com/google/uuid"
)

// Segment is a contiguous stretch of speech by one speaker, in seconds.
type Segment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker"`
}

// Transcript is the stored transcription of a meeting recording.
type Transcript struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID       uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	ExternalID      string    `json:"external_id,omitempty" gorm:"type:varchar(255);index"`
	Text            string    `json:"text" gorm:"type:text"`
	Language        string    `json:"language,omitempty" gorm:"type:varchar(20)"`
	Segments        []Segment `json:"segments,omitempty" gorm:"type:jsonb;serializer:json"`
	ConfidenceScore float64   `json:"confidence_score,omitempty"`
	SpeakerCount    int       `json:"speaker_count,omitempty"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Transcript) TableName() string {
	return "transcripts"
}

func NewTranscript(meetingID uuid.UUID, externalID string) *Transcript {
	now := time.Now()
	return &Transcript{
		ID:         uuid.New(),
		MeetingID:  meetingID,
		ExternalID: externalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Speakers returns the distinct speaker labels in order of first appearance.
func (t *Transcript) Speakers() []string {
	seen := make(map[string]bool)
	speakers := []string{}
	for _, s := range t.Segments {
		if s.Speaker == "" || seen[s.Speaker] {
			continue
		}
		seen[s.Speaker] = true
		speakers = append(speakers, s.Speaker)
	}
	return speakers
}
