package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = []byte("test-key")

func TestIssueAndParse(t *testing.T) {
	token, err := IssueToken(key, "admin", time.Hour, time.Now())
	require.NoError(t, err)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Login)
}

func TestParseRejectsWrongKey(t *testing.T) {
	token, err := IssueToken(key, "admin", time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ParseToken([]byte("other"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := IssueToken(key, "admin", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = ParseToken(key, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = InspectToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

type recordingNavigator struct {
	paths []string
}

func (n *recordingNavigator) Navigate(_ context.Context, path string) error {
	n.paths = append(n.paths, path)
	return nil
}

func TestGuard(t *testing.T) {
	token, err := IssueToken(key, "admin", time.Hour, time.Now())
	require.NoError(t, err)
	nav := &recordingNavigator{}

	ok, err := NewGuard(NewSession(token), nav).CanActivate(context.Background(), "credit-card")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, nav.paths)

	ok, err = NewGuard(NewSession(""), nav).CanActivate(context.Background(), "credit-card")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{LoginPath}, nav.paths)
}

func TestLogin(t *testing.T) {
	token, err := IssueToken(key, "admin", time.Hour, time.Now())
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "admin" || req.Password != "admin" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(TokenResponse{IDToken: token})
	}))
	defer srv.Close()

	session := NewSession("")
	err = session.Login(context.Background(), srv.Client(), srv.URL, LoginRequest{Username: "admin", Password: "wrong"})
	assert.Error(t, err)
	assert.False(t, session.Authenticated())

	err = session.Login(context.Background(), srv.Client(), srv.URL, LoginRequest{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	assert.True(t, session.Authenticated())
	assert.Equal(t, token, session.Token())

	session.Logout()
	assert.False(t, session.Authenticated())
}
