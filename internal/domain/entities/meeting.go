package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const DefaultMeetingTitle = "Untitled Meeting"

// Meeting is a recorded or manually entered meeting and its minutes.
type Meeting struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title           string         `gorm:"type:varchar(255);not null" json:"title"`
	Summary         string         `gorm:"type:text" json:"summary"`
	Date            string         `gorm:"type:varchar(50)" json:"date"`
	Location        string         `gorm:"type:varchar(255)" json:"location"`
	Host            string         `gorm:"type:varchar(255)" json:"host"`
	Presentees      string         `gorm:"type:text" json:"presentees"`
	Absentees       string         `gorm:"type:text" json:"absentees"`
	Agenda          string         `gorm:"type:text" json:"agenda"`
	AdjournmentTime string         `gorm:"type:varchar(50)" json:"adjournment_time"`
	Analysis        string         `gorm:"type:text" json:"analysis,omitempty"`
	TranscriptText  string         `gorm:"type:text" json:"transcript_text,omitempty"`
	Speakers        datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"speakers,omitempty"`
	AnalysisObject  *string        `gorm:"type:varchar(500)" json:"analysis_object,omitempty"`
	RecordingObject *string        `gorm:"type:varchar(500)" json:"recording_object,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a meeting, defaulting the title and today's date.
func NewMeeting(title, date string) *Meeting {
	if strings.TrimSpace(title) == "" {
		title = DefaultMeetingTitle
	}
	if strings.TrimSpace(date) == "" {
		date = time.Now().Format("2006-01-02")
	}
	now := time.Now()
	return &Meeting{
		ID:        uuid.New(),
		Title:     title,
		Date:      date,
		Speakers:  datatypes.JSON("[]"),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MeetingDetail is a meeting together with its derived records.
type MeetingDetail struct {
	Meeting
	Tasks     []*Task     `json:"tasks"`
	Conflicts []*Conflict `json:"conflicts"`
}
