package usecase

import (
	"context"
	"errors"

	emaildomain "email-planner-backend/internal/email/domain"
	"email-planner-backend/internal/email/repository"
	"email-planner-backend/pkg/llm"
)

// ErrNotFound is returned when a referenced email does not exist or belongs
// to another user.
var ErrNotFound = errors.New("email not found")

// SyncResult is the envelope one sync invocation reports. Error is only set
// when Success is false.
type SyncResult struct {
	Success       bool   `json:"success"`
	EmailsSynced  int    `json:"emails_synced"`
	TotalMessages int    `json:"total_messages"`
	Error         string `json:"error,omitempty"`
}

// AnalyzeResult is the per-email outcome of an enrichment attempt.
type AnalyzeResult struct {
	EmailID  string        `json:"email_id"`
	Success  bool          `json:"success"`
	Analysis *llm.Analysis `json:"analysis,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// BatchResult reports a batch enrichment run: every attempted email gets an
// entry regardless of outcome.
type BatchResult struct {
	TotalProcessed int             `json:"total_processed"`
	Results        []AnalyzeResult `json:"results"`
}

// EmailPage is one page of a filtered listing.
type EmailPage struct {
	Total  int64                `json:"total"`
	Emails []*emaildomain.Email `json:"emails"`
}

// Analyzer derives structured metadata for one email.
type Analyzer interface {
	AnalyzeEmail(ctx context.Context, subject, sender, body string) (*llm.Analysis, error)
}

// EmailUsecase defines the email pipeline operations
type EmailUsecase interface {
	SyncEmails(ctx context.Context, userID string, limit int64) *SyncResult
	AnalyzeEmail(ctx context.Context, userID, emailID string) (*AnalyzeResult, error)
	AnalyzeBatch(ctx context.Context, userID string, limit int) (*BatchResult, error)
	ListEmails(userID string, f repository.ListFilter) (*EmailPage, error)
}
