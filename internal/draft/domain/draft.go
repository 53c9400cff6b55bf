package domain

import (
	"time"

	emaildomain "email-planner-backend/internal/email/domain"
)

// Draft is an LLM-generated reply or forward. It weakly references its source
// email: the email can be deleted without destroying the draft.
type Draft struct {
	ID           string                 `json:"id" gorm:"primaryKey"`
	UserID       string                 `json:"user_id" gorm:"index;not null"`
	EmailID      *string                `json:"email_id,omitempty" gorm:"index"`
	Subject      string                 `json:"subject"`
	Recipients   emaildomain.StringList `json:"recipients" gorm:"type:text"`
	BodyText     string                 `json:"body_text" gorm:"type:text"`
	BodyHTML     string                 `json:"body_html,omitempty" gorm:"type:text"`
	IsSent       bool                   `json:"is_sent" gorm:"default:false"`
	GmailDraftID *string                `json:"gmail_draft_id,omitempty"`
	Version      int                    `json:"version" gorm:"default:1"`
	Mode         string                 `json:"mode"`             // "reply" or "forward"
	Prompt       string                 `json:"prompt,omitempty"` // user instructions used for generation
	Tone         string                 `json:"tone,omitempty"`
	Suggestions  emaildomain.StringList `json:"suggestions" gorm:"type:text"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Draft) TableName() string {
	return "drafts"
}
