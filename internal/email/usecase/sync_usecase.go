package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	authdomain "email-planner-backend/internal/auth/domain"
	emaildomain "email-planner-backend/internal/email/domain"
)

// inboxQuery restricts sync to inbox messages for now.
const inboxQuery = "in:inbox"

// SyncEmails mirrors up to limit inbox messages for the user into the local
// store. The invocation is all-or-nothing at the commit boundary: new rows and
// the last-sync timestamp land in one transaction, while per-message fetch
// failures are skipped without aborting the batch. It never returns an error
// past this boundary — every outcome is reported through the envelope.
func (u *emailUsecase) SyncEmails(ctx context.Context, userID string, limit int64) *SyncResult {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return &SyncResult{Success: false, Error: err.Error()}
	}
	if user == nil {
		return &SyncResult{Success: false, Error: "user not found"}
	}

	if user.GoogleCredentials == nil {
		// A missing or malformed blob is handled the same way as a revoked
		// grant: disable sync and ask for re-authentication.
		return u.failAuthentication(userID, errors.New("no stored Google credentials"))
	}

	onUpdate := func(creds *authdomain.GoogleCredentials) error {
		return u.userRepo.ReplaceCredentials(userID, creds)
	}

	ids, err := u.mailProvider.ListMessageIDs(ctx, user.GoogleCredentials, inboxQuery, limit, onUpdate)
	if err != nil {
		if errors.Is(err, emaildomain.ErrCredentialInvalid) {
			return u.failAuthentication(userID, err)
		}
		return &SyncResult{Success: false, Error: fmt.Sprintf("Gmail API error: %v", err)}
	}

	newEmails := make([]*emaildomain.Email, 0, len(ids))
	for _, id := range ids {
		exists, err := u.emailRepo.ExistsByGmailID(userID, id)
		if err != nil {
			return &SyncResult{Success: false, Error: err.Error()}
		}
		if exists {
			continue
		}

		msg, err := u.mailProvider.GetMessage(ctx, user.GoogleCredentials, id, onUpdate)
		if err != nil {
			// One bad message never aborts the batch.
			log.Printf("[WARN] Error fetching message %s: %v", id, err)
			continue
		}

		newEmails = append(newEmails, convertProviderMessage(userID, msg))
	}

	syncedAt := time.Now().UTC().Format(time.RFC3339)
	if err := u.emailRepo.SaveSyncResults(userID, syncedAt, newEmails); err != nil {
		return &SyncResult{Success: false, Error: err.Error()}
	}

	return &SyncResult{
		Success:       true,
		EmailsSynced:  len(newEmails),
		TotalMessages: len(ids),
	}
}

func (u *emailUsecase) failAuthentication(userID string, cause error) *SyncResult {
	if err := u.userRepo.DisableGmailSync(userID); err != nil {
		log.Printf("[ERROR] Failed to disable gmail sync for user %s: %v", userID, err)
	}
	return &SyncResult{
		Success: false,
		Error:   fmt.Sprintf("Authentication token expired or revoked. Please re-authenticate: %v", cause),
	}
}

func convertProviderMessage(userID string, msg *emaildomain.ProviderMessage) *emaildomain.Email {
	return &emaildomain.Email{
		UserID:      userID,
		GmailID:     msg.ID,
		ThreadID:    msg.ThreadID,
		Subject:     msg.Subject,
		Sender:      msg.Sender,
		Recipients:  emaildomain.StringList(msg.To),
		Snippet:     msg.Snippet,
		BodyText:    msg.BodyText,
		BodyHTML:    msg.BodyHTML,
		Labels:      emaildomain.StringList(msg.LabelIDs),
		IsRead:      !msg.HasLabel("UNREAD"),
		IsImportant: msg.HasLabel("IMPORTANT"),
	}
}
