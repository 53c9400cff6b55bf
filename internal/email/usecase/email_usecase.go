package usecase

import (
	authrepo "email-planner-backend/internal/auth/repository"
	emaildomain "email-planner-backend/internal/email/domain"
	"email-planner-backend/internal/email/repository"
)

// emailUsecase implements EmailUsecase interface
type emailUsecase struct {
	emailRepo    repository.EmailRepository
	userRepo     authrepo.UserRepository
	mailProvider emaildomain.MailProvider
	analyzer     Analyzer
}

// NewEmailUsecase creates a new instance of emailUsecase
func NewEmailUsecase(emailRepo repository.EmailRepository, userRepo authrepo.UserRepository, mailProvider emaildomain.MailProvider, analyzer Analyzer) EmailUsecase {
	return &emailUsecase{
		emailRepo:    emailRepo,
		userRepo:     userRepo,
		mailProvider: mailProvider,
		analyzer:     analyzer,
	}
}

func (u *emailUsecase) ListEmails(userID string, f repository.ListFilter) (*EmailPage, error) {
	emails, total, err := u.emailRepo.List(userID, f)
	if err != nil {
		return nil, err
	}
	return &EmailPage{Total: total, Emails: emails}, nil
}
