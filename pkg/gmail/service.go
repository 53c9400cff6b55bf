package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"strings"

	authdomain "email-planner-backend/internal/auth/domain"
	emaildomain "email-planner-backend/internal/email/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// CredentialUpdateFunc is a callback that persists refreshed token material.
type CredentialUpdateFunc = emaildomain.CredentialUpdateFunc

// Service wraps the Gmail REST API. It is stateless; per-user credentials are
// passed into every call and reconstructed into an authenticated client.
type Service struct {
	clientID     string
	clientSecret string
}

func NewService(clientID, clientSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// notifyTokenSource wraps an oauth2.TokenSource to detect token refreshes and
// hand the replacement credential blob to the persistence callback.
type notifyTokenSource struct {
	src      oauth2.TokenSource
	creds    *authdomain.GoogleCredentials
	callback CredentialUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.creds.Token != t.AccessToken {
		next := s.creds.WithToken(t.AccessToken, t.RefreshToken)
		if err := s.callback(next); err != nil {
			log.Printf("[WARN] Failed to update credentials: %v", err)
		} else {
			s.creds = next
		}
	}
	return t, nil
}

// gmailService builds an authenticated Gmail client from a stored credential blob.
func (s *Service) gmailService(ctx context.Context, creds *authdomain.GoogleCredentials, onUpdate CredentialUpdateFunc) (*gmail.Service, error) {
	if creds == nil || creds.Token == "" {
		return nil, fmt.Errorf("%w: no stored credentials", emaildomain.ErrCredentialInvalid)
	}

	token := &oauth2.Token{
		AccessToken:  creds.Token,
		RefreshToken: creds.RefreshToken,
		TokenType:    "Bearer",
	}

	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       creds.Scopes,
	}
	if creds.ClientID != "" {
		config.ClientID = creds.ClientID
	}
	if creds.ClientSecret != "" {
		config.ClientSecret = creds.ClientSecret
	}

	wrappedSource := &notifyTokenSource{
		src:      config.TokenSource(ctx, token),
		creds:    creds,
		callback: onUpdate,
	}

	client := oauth2.NewClient(ctx, wrappedSource)

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %v", err)
	}

	return srv, nil
}

// ListMessageIDs lists up to max message identifiers matching query, in the
// order the provider returns them (newest first).
func (s *Service) ListMessageIDs(ctx context.Context, creds *authdomain.GoogleCredentials, query string, max int64, onUpdate CredentialUpdateFunc) ([]string, error) {
	srv, err := s.gmailService(ctx, creds, onUpdate)
	if err != nil {
		return nil, err
	}

	call := srv.Users.Messages.List("me")
	if query != "" {
		call = call.Q(query)
	}
	if max > 0 {
		call = call.MaxResults(max)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, classifyError(err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		ids = append(ids, m.Id)
	}
	return ids, nil
}

// GetMessage fetches one full message payload and decodes it.
func (s *Service) GetMessage(ctx context.Context, creds *authdomain.GoogleCredentials, id string, onUpdate CredentialUpdateFunc) (*emaildomain.ProviderMessage, error) {
	srv, err := s.gmailService(ctx, creds, onUpdate)
	if err != nil {
		return nil, err
	}

	msg, err := srv.Users.Messages.Get("me", id).Format("full").Do()
	if err != nil {
		return nil, classifyError(err)
	}

	return convertMessage(msg), nil
}

// classifyError maps an invalidated-grant rejection to ErrCredentialInvalid so
// callers can distinguish it from transport failures.
func classifyError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "invalid_grant") || strings.Contains(msg, "Token has been expired or revoked") {
		return fmt.Errorf("%w: %v", emaildomain.ErrCredentialInvalid, err)
	}
	if gerr, ok := err.(*googleapi.Error); ok && gerr.Code == http.StatusUnauthorized {
		return fmt.Errorf("%w: %v", emaildomain.ErrCredentialInvalid, err)
	}
	return fmt.Errorf("gmail API error: %v", err)
}

func convertMessage(msg *gmail.Message) *emaildomain.ProviderMessage {
	subject := getHeader(msg.Payload.Headers, "Subject")
	if subject == "" {
		subject = "No Subject"
	}
	sender := getHeader(msg.Payload.Headers, "From")
	if sender == "" {
		sender = "Unknown"
	}

	to := []string{}
	if toHeader := getHeader(msg.Payload.Headers, "To"); toHeader != "" {
		to = []string{toHeader}
	}

	bodyText, bodyHTML := decodeBody(msg.Payload)

	return &emaildomain.ProviderMessage{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Subject:  subject,
		Sender:   sender,
		To:       to,
		Snippet:  msg.Snippet,
		BodyText: bodyText,
		BodyHTML: bodyHTML,
		LabelIDs: msg.LabelIds,
	}
}

func getHeader(headers []*gmail.MessagePartHeader, name string) string {
	for _, header := range headers {
		if strings.EqualFold(header.Name, name) {
			return header.Value
		}
	}
	return ""
}

// decodeBody extracts the plain-text and HTML bodies from a message payload.
// A direct body wins; otherwise the first text part of each kind found
// depth-first is used. Undecodable parts are skipped — a message with no
// readable body yields empty strings, never an error.
func decodeBody(payload *gmail.MessagePart) (plain, html string) {
	if payload.Body != nil && payload.Body.Data != "" {
		if data, err := base64.URLEncoding.DecodeString(payload.Body.Data); err == nil {
			if payload.MimeType == "text/html" {
				return "", string(data)
			}
			return string(data), ""
		}
	}

	var findBody func(parts []*gmail.MessagePart)
	findBody = func(parts []*gmail.MessagePart) {
		for _, part := range parts {
			if part.Body != nil && part.Body.Data != "" {
				data, err := base64.URLEncoding.DecodeString(part.Body.Data)
				if err == nil {
					switch part.MimeType {
					case "text/plain":
						if plain == "" {
							plain = string(data)
						}
					case "text/html":
						if html == "" {
							html = string(data)
						}
					}
				}
			}
			if len(part.Parts) > 0 {
				findBody(part.Parts)
			}
		}
	}
	findBody(payload.Parts)

	return plain, html
}
