package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"bank-admin-go/internal/auth"
	"bank-admin-go/internal/entity"
	"bank-admin-go/internal/model"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves the credit card resource from memory.
type fakeAPI struct {
	mu      sync.Mutex
	records map[int64]model.Record
	nextID  int64
}

func newFakeAPI(t *testing.T, records ...model.Record) (*fakeAPI, *httptest.Server) {
	t.Helper()

	api := &fakeAPI{records: map[int64]model.Record{}}
	for _, r := range records {
		api.records[*r.ID] = r
		if *r.ID > api.nextID {
			api.nextID = *r.ID
		}
	}

	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	return api, srv
}

func (f *fakeAPI) handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/api/authenticate", func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password != "admin" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		token, _ := auth.IssueToken([]byte("test-key"), req.Username, time.Hour, time.Now())
		_ = json.NewEncoder(w).Encode(auth.TokenResponse{IDToken: token})
	}).Methods(http.MethodPost)

	router.HandleFunc("/api/credit-cards", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		ids := make([]int64, 0, len(f.records))
		for id := range f.records {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		records := []model.Record{}
		for _, id := range ids {
			records = append(records, f.records[id])
		}
		w.Header().Set(entity.TotalCountHeader, strconv.Itoa(len(records)))
		_ = json.NewEncoder(w).Encode(records)
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/credit-cards", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		var record model.Record
		_ = json.NewDecoder(r.Body).Decode(&record)
		f.nextID++
		record.ID = model.Int64(f.nextID)
		f.records[f.nextID] = record

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(record)
	}).Methods(http.MethodPost)

	router.HandleFunc("/api/credit-cards/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		record, ok := f.records[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(record)
		case http.MethodPut:
			_ = json.NewDecoder(r.Body).Decode(&record)
			f.records[id] = record
			_ = json.NewEncoder(w).Encode(record)
		case http.MethodDelete:
			delete(f.records, id)
			w.WriteHeader(http.StatusNoContent)
		}
	}).Methods(http.MethodGet, http.MethodPut, http.MethodDelete)

	return router
}

func (f *fakeAPI) record(id int64) (model.Record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	return r, ok
}

func signedIn(t *testing.T) string {
	t.Helper()
	token, err := auth.IssueToken([]byte("test-key"), "admin", time.Hour, time.Now())
	require.NoError(t, err)
	return token
}

func run(t *testing.T, srv *httptest.Server, token, input string, args ...string) (string, error) {
	t.Helper()

	cfg := &Config{
		APIURL:    srv.URL,
		Token:     token,
		TokenFile: filepath.Join(t.TempDir(), "token"),
		Timeout:   5 * time.Second,
		LogLevel:  "error",
	}

	var out strings.Builder
	cmd := newRootCommand(cfg, strings.NewReader(input), &out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func card(id int64, typ, number string) model.Record {
	return model.Record{ID: model.Int64(id), Type: model.String(typ), Number: model.String(number)}
}

func TestListCommand(t *testing.T) {
	_, srv := newFakeAPI(t, card(1, "VISA", "4111"), card(2, "AMEX", "3782"))

	out, err := run(t, srv, signedIn(t), "", "credit-card", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "4111")
	assert.Contains(t, out, "AMEX")
}

func TestCommandsNeedSignIn(t *testing.T) {
	_, srv := newFakeAPI(t, card(1, "VISA", "4111"))

	out, err := run(t, srv, "", "", "credit-card", "list")

	assert.ErrorIs(t, err, errNotSignedIn)
	assert.NotContains(t, out, "4111")
}

func TestViewCommand(t *testing.T) {
	_, srv := newFakeAPI(t, card(1, "VISA", "4111"))

	out, err := run(t, srv, signedIn(t), "", "credit-card", "view", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "4111")

	_, err = run(t, srv, signedIn(t), "", "credit-card", "view", "9")
	assert.ErrorIs(t, err, errNotFound)

	_, err = run(t, srv, signedIn(t), "", "credit-card", "view", "abc")
	assert.ErrorIs(t, err, errNotFound)
}

func TestNewCommand(t *testing.T) {
	api, srv := newFakeAPI(t)

	out, err := run(t, srv, signedIn(t), "", "credit-card", "new", "--type", "VISA", "--number", "4111")

	require.NoError(t, err)
	assert.Contains(t, out, "Saved creditCard")
	created, ok := api.record(1)
	require.True(t, ok)
	assert.Equal(t, "VISA", *created.Type)
	assert.Equal(t, "4111", *created.Number)
}

func TestEditCommandKeepsUnsetFields(t *testing.T) {
	api, srv := newFakeAPI(t, card(1, "VISA", "4111"))

	_, err := run(t, srv, signedIn(t), "", "credit-card", "edit", "1", "--number", "5500")

	require.NoError(t, err)
	updated, _ := api.record(1)
	assert.Equal(t, "VISA", *updated.Type)
	assert.Equal(t, "5500", *updated.Number)
}

func TestDeleteCommand(t *testing.T) {
	api, srv := newFakeAPI(t, card(1, "VISA", "4111"))

	out, err := run(t, srv, signedIn(t), "n\n", "credit-card", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "creditCard 1 dismissed")
	_, ok := api.record(1)
	assert.True(t, ok)

	out, err = run(t, srv, signedIn(t), "", "credit-card", "delete", "1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "creditCard 1 deleted")
	_, ok = api.record(1)
	assert.False(t, ok)
}

func TestLoginCommand(t *testing.T) {
	_, srv := newFakeAPI(t)
	tokenFile := filepath.Join(t.TempDir(), "token")

	cfg := &Config{APIURL: srv.URL, TokenFile: tokenFile, Timeout: 5 * time.Second, LogLevel: "error"}
	var out strings.Builder
	cmd := newRootCommand(cfg, strings.NewReader("admin\n"), &out)
	cmd.SetArgs([]string{"login", "--username", "admin"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "Signed in as admin")
	saved, err := os.ReadFile(tokenFile)
	require.NoError(t, err)
	_, err = auth.InspectToken(strings.TrimSpace(string(saved)))
	assert.NoError(t, err)
}
