package usecase

import (
	"context"
	"errors"
	"testing"

	emaildomain "email-planner-backend/internal/email/domain"
	"email-planner-backend/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceAnalysis() *llm.Analysis {
	return &llm.Analysis{
		Category:      "Work",
		PriorityScore: llm.PriorityValue("4"),
		Sentiment:     "Neutral",
		Summary:       "Invoice #204 is due Friday.",
		ActionItems:   []string{"Pay invoice"},
		Tone:          "Formal",
	}
}

func storedEmail(id, subject string) *emaildomain.Email {
	return &emaildomain.Email{
		ID:       id,
		UserID:   "user-1",
		GmailID:  "g-" + id,
		Subject:  subject,
		Sender:   "billing@acme.com",
		BodyText: "Please pay invoice #204 by Friday.",
		Snippet:  "Please pay invoice #204...",
	}
}

func TestAnalyzeEmail_Success(t *testing.T) {
	email := storedEmail("e1", "Invoice #204")
	emailRepo := &fakeEmailRepo{byID: map[string]*emaildomain.Email{"e1": email}}
	analyzer := &fakeAnalyzer{analysis: invoiceAnalysis()}

	u := NewEmailUsecase(emailRepo, &fakeUserRepo{}, &fakeProvider{}, analyzer)
	result, err := u.AnalyzeEmail(context.Background(), "user-1", "e1")
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "e1", result.EmailID)

	require.NotNil(t, email.Category)
	assert.Equal(t, "Work", *email.Category)
	require.NotNil(t, email.PriorityScore)
	assert.Equal(t, 4, *email.PriorityScore)
	require.NotNil(t, email.Sentiment)
	assert.Equal(t, "Neutral", *email.Sentiment)
	assert.Equal(t, emaildomain.StringList{"Pay invoice"}, email.ActionItems)

	require.Len(t, emailRepo.updated, 1)
}

func TestAnalyzeEmail_NotFound(t *testing.T) {
	emailRepo := &fakeEmailRepo{byID: map[string]*emaildomain.Email{}}

	u := NewEmailUsecase(emailRepo, &fakeUserRepo{}, &fakeProvider{}, &fakeAnalyzer{})
	_, err := u.AnalyzeEmail(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnalyzeEmail_WrongOwner(t *testing.T) {
	email := storedEmail("e1", "Invoice #204")
	emailRepo := &fakeEmailRepo{byID: map[string]*emaildomain.Email{"e1": email}}

	u := NewEmailUsecase(emailRepo, &fakeUserRepo{}, &fakeProvider{}, &fakeAnalyzer{})
	_, err := u.AnalyzeEmail(context.Background(), "someone-else", "e1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnalyzeEmail_FailureLeavesFieldsUntouched(t *testing.T) {
	email := storedEmail("e1", "Invoice #204")
	emailRepo := &fakeEmailRepo{byID: map[string]*emaildomain.Email{"e1": email}}
	analyzer := &fakeAnalyzer{err: llm.ErrNotJSON}

	u := NewEmailUsecase(emailRepo, &fakeUserRepo{}, &fakeProvider{}, analyzer)
	result, err := u.AnalyzeEmail(context.Background(), "user-1", "e1")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Nil(t, email.Category)
	assert.Empty(t, emailRepo.updated)
}

func TestAnalyzeEmail_BodyFallsBackToSnippet(t *testing.T) {
	email := storedEmail("e1", "Invoice #204")
	email.BodyText = ""

	var gotBody string
	analyzer := &recordingAnalyzer{analysis: invoiceAnalysis(), bodyOut: &gotBody}
	emailRepo := &fakeEmailRepo{byID: map[string]*emaildomain.Email{"e1": email}}

	u := NewEmailUsecase(emailRepo, &fakeUserRepo{}, &fakeProvider{}, analyzer)
	_, err := u.AnalyzeEmail(context.Background(), "user-1", "e1")
	require.NoError(t, err)
	assert.Equal(t, email.Snippet, gotBody)
}

type recordingAnalyzer struct {
	analysis *llm.Analysis
	bodyOut  *string
}

func (r *recordingAnalyzer) AnalyzeEmail(ctx context.Context, subject, sender, body string) (*llm.Analysis, error) {
	*r.bodyOut = body
	return r.analysis, nil
}

func TestAnalyzeBatch_MixedOutcomes(t *testing.T) {
	good := storedEmail("e1", "Invoice #204")
	bad := storedEmail("e2", "Garbled")
	emailRepo := &fakeEmailRepo{unanalyzed: []*emaildomain.Email{good, bad}}
	analyzer := &fakeAnalyzer{
		analysis: invoiceAnalysis(),
		perEmail: map[string]error{"Garbled": errors.New("response is not valid JSON")},
	}

	u := NewEmailUsecase(emailRepo, &fakeUserRepo{}, &fakeProvider{}, analyzer)
	result, err := u.AnalyzeBatch(context.Background(), "user-1", 50)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalProcessed)
	require.Len(t, result.Results, 2)
	assert.True(t, result.Results[0].Success)
	assert.False(t, result.Results[1].Success)

	// Only the successful analysis is committed.
	require.Len(t, emailRepo.analyses, 1)
	assert.Equal(t, "e1", emailRepo.analyses[0].ID)
}

func TestAnalyzeBatch_Empty(t *testing.T) {
	emailRepo := &fakeEmailRepo{}

	u := NewEmailUsecase(emailRepo, &fakeUserRepo{}, &fakeProvider{}, &fakeAnalyzer{})
	result, err := u.AnalyzeBatch(context.Background(), "user-1", 50)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalProcessed)
	assert.Empty(t, result.Results)
}

func TestApplyAnalysis_EmptyActionItemsSerialized(t *testing.T) {
	email := storedEmail("e1", "FYI")
	a := invoiceAnalysis()
	a.ActionItems = nil

	applyAnalysis(email, a)

	// "Analyzed with nothing to do" must be distinguishable from "never
	// analyzed", so a nil list still stores as an empty list.
	require.NotNil(t, email.ActionItems)
	assert.Empty(t, email.ActionItems)
}

func TestApplyAnalysis_NonNumericPriorityStoresNil(t *testing.T) {
	email := storedEmail("e1", "FYI")
	a := invoiceAnalysis()
	a.PriorityScore = llm.PriorityValue("high")

	applyAnalysis(email, a)

	assert.Nil(t, email.PriorityScore)
	require.NotNil(t, email.Category)
	assert.Equal(t, "Work", *email.Category)
}
