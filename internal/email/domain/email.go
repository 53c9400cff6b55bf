package domain

import "time"

// Email is a locally mirrored Gmail message plus its LLM-derived metadata.
// (UserID, GmailID) is the dedup key — re-sync must never duplicate a row.
type Email struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"user_id" gorm:"uniqueIndex:idx_user_gmail;not null"`
	GmailID     string     `json:"gmail_id" gorm:"uniqueIndex:idx_user_gmail;index;not null"`
	ThreadID    string     `json:"thread_id" gorm:"index"`
	Subject     string     `json:"subject"`
	Sender      string     `json:"sender"`
	Recipients  StringList `json:"recipients" gorm:"type:text"`
	Snippet     string     `json:"snippet" gorm:"type:text"`
	BodyText    string     `json:"body_text,omitempty" gorm:"type:text"`
	BodyHTML    string     `json:"body_html,omitempty" gorm:"type:text"`
	Labels      StringList `json:"labels" gorm:"type:text"`
	IsRead      bool       `json:"is_read" gorm:"default:false"`
	IsImportant bool       `json:"is_important" gorm:"default:false"`
	CreatedAt   time.Time  `json:"created_at"`

	// Analysis fields, all empty until the enrichment pipeline runs.
	Category      *string    `json:"category,omitempty"`
	PriorityScore *int       `json:"priority_score,omitempty"`
	Sentiment     *string    `json:"sentiment,omitempty"`
	Summary       *string    `json:"summary,omitempty" gorm:"type:text"`
	ActionItems   StringList `json:"action_items" gorm:"type:text"`
	Tone          *string    `json:"tone,omitempty"`
}

// TableName specifies the table name for GORM
func (Email) TableName() string {
	return "emails"
}

// ProviderMessage is a fully fetched and decoded message as returned by the
// mail provider, before it is persisted locally.
type ProviderMessage struct {
	ID       string
	ThreadID string
	Subject  string
	Sender   string
	To       []string
	Snippet  string
	BodyText string
	BodyHTML string
	LabelIDs []string
}

// HasLabel reports whether the provider attached the given label to the message.
func (m *ProviderMessage) HasLabel(labelID string) bool {
	for _, l := range m.LabelIDs {
		if l == labelID {
			return true
		}
	}
	return false
}
