package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

const analysisSystemPrompt = "You are an AI assistant that analyzes emails and provides structured information in JSON format. Always respond with valid JSON only, no other text."

const draftSystemPrompt = "You are an AI assistant that writes emails on the user's behalf. Match the tone of the conversation, cover every point that needs a response, and return only the email body text with no commentary."

// Maximum body characters embedded into prompts. Analysis only needs the
// opening of a message; drafts get more context to respond to.
const (
	analysisBodyLimit = 1000
	draftBodyLimit    = 1500
)

// DraftPrompt carries everything the draft prompt embeds about the source email.
type DraftPrompt struct {
	Subject       string
	Sender        string
	Body          string
	Category      string
	PriorityScore int
	ActionItems   []string
	Mode          string // "reply" or "forward"; anything else drafts a forward
	Instructions  string
}

// Service builds prompts, runs completions and parses the results.
type Service struct {
	client Completer
}

func NewService(client Completer) *Service {
	return &Service{client: client}
}

// AnalyzeEmail asks the model for structured metadata about one email and
// parses the constrained JSON response. Low temperature keeps the output
// consistent across runs.
func (s *Service) AnalyzeEmail(ctx context.Context, subject, sender, body string) (*Analysis, error) {
	prompt := fmt.Sprintf(`Analyze this email and provide structured information in JSON format. Your response should be ONLY valid JSON, no other text.

Email Subject: %s
From: %s
Content: %s

Required JSON format:
{
    "category": "Work|Personal|Newsletter|Promotional|Social|Other",
    "priority_score": "1-5 number",
    "sentiment": "Positive|Negative|Neutral",
    "summary": "1-2 sentence summary",
    "action_items": ["list", "of", "actions"],
    "tone": "Formal|Casual|Professional|Urgent"
}`, subject, sender, truncate(body, analysisBodyLimit))

	raw, err := s.client.Complete(ctx, CompletionRequest{
		System:      analysisSystemPrompt,
		User:        prompt,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, err
	}

	return ParseAnalysis(raw)
}

// GenerateDraft asks the model for a reply or forward body. The completion is
// returned trimmed and otherwise unmodified — drafts are freeform text, no
// structural validation applies.
func (s *Service) GenerateDraft(ctx context.Context, p DraftPrompt) (string, error) {
	var b strings.Builder

	if p.Mode == "reply" {
		b.WriteString("Write a reply to the email below. Start with an appropriate greeting, address the sender's points and any listed action items, and close politely.\n\n")
	} else {
		b.WriteString("Write a forward message for the email below. Add a short note explaining why it is being passed along, suitable to send to a third party.\n\n")
	}

	fmt.Fprintf(&b, "Email Subject: %s\n", p.Subject)
	fmt.Fprintf(&b, "From: %s\n", p.Sender)
	if p.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", p.Category)
	}
	if p.PriorityScore > 0 {
		fmt.Fprintf(&b, "Priority: %d/5\n", p.PriorityScore)
	}
	fmt.Fprintf(&b, "Content: %s\n", truncate(p.Body, draftBodyLimit))

	if len(p.ActionItems) > 0 {
		fmt.Fprintf(&b, "\nAction items to address:\n")
		for _, item := range p.ActionItems {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}

	if p.Instructions != "" {
		fmt.Fprintf(&b, "\nAdditional instructions: %s\n", p.Instructions)
	}

	return s.client.Complete(ctx, CompletionRequest{
		System:      draftSystemPrompt,
		User:        b.String(),
		Temperature: 0.7,
		MaxTokens:   1000,
	})
}

// truncate caps s at limit characters without splitting a multi-byte rune.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
