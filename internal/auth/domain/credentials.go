package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// GoogleCredentials is the provider token material stored against a user.
// It is replaced as a whole value on every update — individual fields are
// never patched in place. Version increments on each replacement so that
// interleaved writers can be told apart in the logs.
type GoogleCredentials struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token"`
	TokenURI     string   `json:"token_uri"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	Scopes       []string `json:"scopes"`
	Version      int      `json:"version"`
}

// WithToken returns a new credential value carrying the refreshed token.
// The refresh token is kept when the provider omits it from the response.
func (c GoogleCredentials) WithToken(accessToken, refreshToken string) *GoogleCredentials {
	next := c
	next.Token = accessToken
	if refreshToken != "" {
		next.RefreshToken = refreshToken
	}
	next.Version = c.Version + 1
	return &next
}

func (c GoogleCredentials) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *GoogleCredentials) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for GoogleCredentials")
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("unable to decode stored credentials: %v", err)
	}
	return nil
}
