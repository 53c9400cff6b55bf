package llm

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompleter records the last request and returns a canned response.
type fakeCompleter struct {
	last     CompletionRequest
	response string
	err      error
}

func (f *fakeCompleter) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.last = req
	return f.response, f.err
}

func TestService_AnalyzeEmail(t *testing.T) {
	fake := &fakeCompleter{response: "```json\n" + fullResponse + "\n```"}
	s := NewService(fake)

	a, err := s.AnalyzeEmail(context.Background(), "Invoice #204", "billing@acme.com", "Please pay invoice #204 by Friday.")
	require.NoError(t, err)
	assert.Equal(t, "Work", a.Category)
	assert.Equal(t, []string{"Pay invoice"}, a.ActionItems)

	assert.Equal(t, analysisSystemPrompt, fake.last.System)
	assert.Equal(t, 0.3, fake.last.Temperature)
	assert.Contains(t, fake.last.User, "Email Subject: Invoice #204")
	assert.Contains(t, fake.last.User, "From: billing@acme.com")
	assert.Contains(t, fake.last.User, `"priority_score": "1-5 number"`)
}

func TestService_AnalyzeEmail_TruncatesBody(t *testing.T) {
	fake := &fakeCompleter{response: fullResponse}
	s := NewService(fake)

	long := strings.Repeat("a", analysisBodyLimit+500)
	_, err := s.AnalyzeEmail(context.Background(), "s", "f", long)
	require.NoError(t, err)

	assert.Contains(t, fake.last.User, strings.Repeat("a", analysisBodyLimit))
	assert.NotContains(t, fake.last.User, strings.Repeat("a", analysisBodyLimit+1))
}

func TestTruncate_RuneBoundary(t *testing.T) {
	// A multi-byte rune straddling the cut must never be split mid-sequence.
	s := strings.Repeat("a", analysisBodyLimit-1) + strings.Repeat("é", 10)
	out := truncate(s, analysisBodyLimit)

	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, analysisBodyLimit, utf8.RuneCountInString(out))
	assert.True(t, strings.HasSuffix(out, "é"))

	// Non-ASCII bodies are measured in characters, not bytes.
	cyrillic := strings.Repeat("ж", analysisBodyLimit+5)
	out = truncate(cyrillic, analysisBodyLimit)
	assert.Equal(t, analysisBodyLimit, utf8.RuneCountInString(out))

	short := "under the limit é"
	assert.Equal(t, short, truncate(short, analysisBodyLimit))
}

func TestService_GenerateDraft_Reply(t *testing.T) {
	fake := &fakeCompleter{response: "Hi Alice,\n\nThanks for the update."}
	s := NewService(fake)

	body, err := s.GenerateDraft(context.Background(), DraftPrompt{
		Subject:       "Project update",
		Sender:        "alice@example.com",
		Body:          "Here is the latest status.",
		Category:      "Work",
		PriorityScore: 4,
		ActionItems:   []string{"Confirm deadline"},
		Mode:          "reply",
		Instructions:  "keep it short",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi Alice,\n\nThanks for the update.", body)

	assert.Equal(t, draftSystemPrompt, fake.last.System)
	assert.Equal(t, 0.7, fake.last.Temperature)
	assert.Equal(t, 1000, fake.last.MaxTokens)
	assert.Contains(t, fake.last.User, "Write a reply")
	assert.Contains(t, fake.last.User, "Priority: 4/5")
	assert.Contains(t, fake.last.User, "- Confirm deadline")
	assert.Contains(t, fake.last.User, "Additional instructions: keep it short")
}

func TestService_GenerateDraft_Forward(t *testing.T) {
	fake := &fakeCompleter{response: "FYI, see below."}
	s := NewService(fake)

	_, err := s.GenerateDraft(context.Background(), DraftPrompt{
		Subject: "Outage report",
		Sender:  "ops@example.com",
		Body:    "Systems were down for 20 minutes.",
		Mode:    "forward",
	})
	require.NoError(t, err)
	assert.Contains(t, fake.last.User, "Write a forward message")
	assert.NotContains(t, fake.last.User, "Action items")
}

func TestService_GenerateDraft_UnrecognizedModeDraftsForward(t *testing.T) {
	fake := &fakeCompleter{response: "x"}
	s := NewService(fake)

	_, err := s.GenerateDraft(context.Background(), DraftPrompt{Subject: "s", Sender: "f", Body: "b", Mode: "summarize"})
	require.NoError(t, err)
	assert.Contains(t, fake.last.User, "Write a forward message")
}
