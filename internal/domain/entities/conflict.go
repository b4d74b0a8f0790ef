package entities

import (
	"time"

	"github.com/google/uuid"
)

type ConflictSeverity string

const (
	ConflictSeverityLow    ConflictSeverity = "Low"
	ConflictSeverityMedium ConflictSeverity = "Medium"
	ConflictSeverityHigh   ConflictSeverity = "High"
)

func (s ConflictSeverity) Valid() bool {
	switch s {
	case ConflictSeverityLow, ConflictSeverityMedium, ConflictSeverityHigh:
		return true
	}
	return false
}

// Conflict is a disagreement raised during a meeting.
type Conflict struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID  *uuid.UUID       `gorm:"type:uuid;index" json:"meeting_id,omitempty"`
	Issue      string           `gorm:"type:text;not null" json:"issue"`
	RaisedBy   string           `gorm:"type:varchar(255);not null" json:"raised_by"`
	Resolution string           `gorm:"type:text" json:"resolution"`
	Severity   ConflictSeverity `gorm:"type:varchar(10);not null;default:'Medium';index" json:"severity"`
	Source     RecordSource     `gorm:"type:varchar(20);not null;default:'manual'" json:"source"`
	CreatedAt  time.Time        `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Conflict) TableName() string {
	return "conflicts"
}

// NewConflict creates a conflict; an empty severity becomes Medium.
func NewConflict(meetingID *uuid.UUID, issue, raisedBy string, severity ConflictSeverity) *Conflict {
	if severity == "" {
		severity = ConflictSeverityMedium
	}
	now := time.Now()
	return &Conflict{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Issue:     issue,
		RaisedBy:  raisedBy,
		Severity:  severity,
		Source:    RecordSourceManual,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
