package usecase

import (
	"context"

	emaildomain "email-planner-backend/internal/email/domain"
	"email-planner-backend/pkg/llm"
)

// AnalyzeEmail enriches a single email and persists the result. A parser or
// transport failure leaves the stored fields untouched and comes back in the
// envelope, not as an error; only not-found and storage errors propagate.
func (u *emailUsecase) AnalyzeEmail(ctx context.Context, userID, emailID string) (*AnalyzeResult, error) {
	email, err := u.emailRepo.FindByID(emailID)
	if err != nil {
		return nil, err
	}
	if email == nil || email.UserID != userID {
		return nil, ErrNotFound
	}

	result := u.analyzeOne(ctx, email)
	if result.Success {
		if err := u.emailRepo.UpdateAnalysis(email); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// AnalyzeBatch enriches every email without a category yet, bounded by limit.
// Individual failures are recorded per email and do not stop the run; all
// successful analyses are committed together once the batch is done.
func (u *emailUsecase) AnalyzeBatch(ctx context.Context, userID string, limit int) (*BatchResult, error) {
	emails, err := u.emailRepo.ListUnanalyzed(userID, limit)
	if err != nil {
		return nil, err
	}

	results := make([]AnalyzeResult, 0, len(emails))
	updated := make([]*emaildomain.Email, 0, len(emails))

	for _, email := range emails {
		result := u.analyzeOne(ctx, email)
		results = append(results, *result)
		if result.Success {
			updated = append(updated, email)
		}
	}

	if err := u.emailRepo.SaveAnalyses(updated); err != nil {
		return nil, err
	}

	return &BatchResult{
		TotalProcessed: len(emails),
		Results:        results,
	}, nil
}

// analyzeOne runs one completion and applies the parsed analysis to the email
// in memory. Persistence is the caller's concern.
func (u *emailUsecase) analyzeOne(ctx context.Context, email *emaildomain.Email) *AnalyzeResult {
	body := email.BodyText
	if body == "" {
		body = email.Snippet
	}

	analysis, err := u.analyzer.AnalyzeEmail(ctx, email.Subject, email.Sender, body)
	if err != nil {
		return &AnalyzeResult{EmailID: email.ID, Success: false, Error: err.Error()}
	}

	applyAnalysis(email, analysis)
	return &AnalyzeResult{EmailID: email.ID, Success: true, Analysis: analysis}
}

func applyAnalysis(email *emaildomain.Email, analysis *llm.Analysis) {
	email.Category = &analysis.Category
	email.Sentiment = &analysis.Sentiment
	email.Summary = &analysis.Summary
	email.Tone = &analysis.Tone

	if n, ok := analysis.PriorityScore.Int(); ok {
		email.PriorityScore = &n
	} else {
		email.PriorityScore = nil
	}

	// Serialized even when empty, so "analyzed, nothing to do" is
	// distinguishable from "never analyzed".
	items := analysis.ActionItems
	if items == nil {
		items = []string{}
	}
	email.ActionItems = emaildomain.StringList(items)
}
