package usecase

import (
	"context"
	"errors"
	"strings"

	draftdomain "email-planner-backend/internal/draft/domain"
	"email-planner-backend/internal/draft/repository"
	emaildomain "email-planner-backend/internal/email/domain"
	"email-planner-backend/pkg/llm"
)

// ErrEmailNotFound is returned when the source email does not exist or
// belongs to another user.
var ErrEmailNotFound = errors.New("email not found")

// EmailFetcher loads the source email a draft responds to.
type EmailFetcher interface {
	FindByID(id string) (*emaildomain.Email, error)
}

// Generator produces the draft body text.
type Generator interface {
	GenerateDraft(ctx context.Context, p llm.DraftPrompt) (string, error)
}

// DraftUsecase defines draft generation and retrieval
type DraftUsecase interface {
	GenerateDraft(ctx context.Context, userID, emailID, mode, instructions string) (*draftdomain.Draft, error)
	ListDrafts(userID string) ([]*draftdomain.Draft, error)
}

type draftUsecase struct {
	draftRepo repository.DraftRepository
	emails    EmailFetcher
	generator Generator
}

func NewDraftUsecase(draftRepo repository.DraftRepository, emails EmailFetcher, generator Generator) DraftUsecase {
	return &draftUsecase{
		draftRepo: draftRepo,
		emails:    emails,
		generator: generator,
	}
}

// GenerateDraft produces a reply or forward for the given email and persists
// it. Any mode other than "reply" drafts a forward. Regenerating against the
// same source email increments the stored version.
func (u *draftUsecase) GenerateDraft(ctx context.Context, userID, emailID, mode, instructions string) (*draftdomain.Draft, error) {
	email, err := u.emails.FindByID(emailID)
	if err != nil {
		return nil, err
	}
	if email == nil || email.UserID != userID {
		return nil, ErrEmailNotFound
	}

	if mode != "reply" {
		mode = "forward"
	}

	body := email.BodyText
	if body == "" {
		body = email.Snippet
	}

	prompt := llm.DraftPrompt{
		Subject:      email.Subject,
		Sender:       email.Sender,
		Body:         body,
		Mode:         mode,
		Instructions: instructions,
		ActionItems:  email.ActionItems,
	}
	if email.Category != nil {
		prompt.Category = *email.Category
	}
	if email.PriorityScore != nil {
		prompt.PriorityScore = *email.PriorityScore
	}

	text, err := u.generator.GenerateDraft(ctx, prompt)
	if err != nil {
		return nil, err
	}

	version, err := u.draftRepo.NextVersion(userID, emailID)
	if err != nil {
		return nil, err
	}

	draft := &draftdomain.Draft{
		UserID:     userID,
		EmailID:    &emailID,
		Subject:    draftSubject(email.Subject, mode),
		Recipients: draftRecipients(email, mode),
		BodyText:   text,
		Version:    version,
		Mode:       mode,
		Prompt:     instructions,
	}
	if email.Tone != nil {
		draft.Tone = *email.Tone
	}

	if err := u.draftRepo.Create(draft); err != nil {
		return nil, err
	}

	return draft, nil
}

func (u *draftUsecase) ListDrafts(userID string) ([]*draftdomain.Draft, error) {
	return u.draftRepo.ListByUser(userID)
}

func draftSubject(subject, mode string) string {
	prefix := "Fwd: "
	if mode == "reply" {
		prefix = "Re: "
	}
	if strings.HasPrefix(subject, prefix) {
		return subject
	}
	return prefix + subject
}

// draftRecipients defaults a reply to the original sender; forwards start
// with no recipients, the caller picks them later.
func draftRecipients(email *emaildomain.Email, mode string) emaildomain.StringList {
	if mode == "reply" && email.Sender != "" {
		return emaildomain.StringList{email.Sender}
	}
	return emaildomain.StringList{}
}
