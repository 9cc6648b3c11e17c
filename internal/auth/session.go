package auth

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

// LoginPath is where the guard sends unauthenticated activations.
const LoginPath = "login"

type LoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type TokenResponse struct {
	IDToken string `json:"id_token"`
}

// Session holds the bearer token of the signed in user.
type Session struct {
	token string
}

func NewSession(token string) *Session {
	return &Session{token: token}
}

func (s *Session) Token() string {
	return s.token
}

// Authenticated reports whether the session carries an unexpired token.
func (s *Session) Authenticated() bool {
	if s.token == "" {
		return false
	}
	_, err := InspectToken(s.token)
	return err == nil
}

// Login exchanges credentials for a token at authenticateURL.
func (s *Session) Login(ctx context.Context, client *http.Client, authenticateURL string, req LoginRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding login: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, authenticateURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building login request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("authenticating: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("authenticating: unexpected status %d", resp.StatusCode)
	}

	var body TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding token: %w", err)
	}

	s.token = body.IDToken
	log.Debugf("signed in as %s", req.Username)

	return nil
}

func (s *Session) Logout() {
	s.token = ""
}
