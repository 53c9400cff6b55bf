package repository

import emaildomain "email-planner-backend/internal/email/domain"

// ListFilter narrows an email listing. Zero values mean "no filter".
type ListFilter struct {
	Category       string
	MinPriority    int
	Search         string
	Sender         string
	HasActionItems *bool
	Skip           int
	Limit          int
}

// EmailRepository defines the interface for email data access
type EmailRepository interface {
	// ExistsByGmailID checks the dedup key (user id, provider message id).
	ExistsByGmailID(userID, gmailID string) (bool, error)

	FindByID(id string) (*emaildomain.Email, error)

	// SaveSyncResults persists one sync invocation's outcome atomically:
	// all new email rows plus the user's last-sync timestamp, in a single
	// transaction. The timestamp is written even when emails is empty.
	SaveSyncResults(userID, syncedAt string, emails []*emaildomain.Email) error

	// ListUnanalyzed returns emails with no category assigned yet.
	ListUnanalyzed(userID string, limit int) ([]*emaildomain.Email, error)

	// UpdateAnalysis overwrites one email's analysis fields.
	UpdateAnalysis(email *emaildomain.Email) error

	// SaveAnalyses overwrites analysis fields for a batch in one transaction.
	SaveAnalyses(emails []*emaildomain.Email) error

	List(userID string, f ListFilter) ([]*emaildomain.Email, int64, error)
}
