package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bank-admin-go/internal/auth"
	"bank-admin-go/internal/database"
	"bank-admin-go/internal/metrics"
	"bank-admin-go/internal/model"
	"bank-admin-go/internal/notifications"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const applicationName = "bankAdminApp"

// Notifier is told about every entity created, updated or deleted.
type Notifier interface {
	SendEntityAlert(alert notifications.Alert) error
}

type ServerConfig struct {
	Port              int
	JWTKey            string
	TokenTTL          time.Duration
	RememberMeTTL     time.Duration
	AdminLogin        string
	AdminPasswordHash string
	Notifier          Notifier
	Metrics           *metrics.Metrics
	NewRelic          *newrelic.Application
}

type Server struct {
	port              int
	db                database.Client
	jwtKey            string
	tokenTTL          time.Duration
	rememberMeTTL     time.Duration
	adminLogin        string
	adminPasswordHash []byte
	notifier          Notifier
	metrics           *metrics.Metrics
	newRelic          *newrelic.Application
	httpServer        *http.Server
}

func NewServer(cfg ServerConfig, db database.Client) *Server {
	return &Server{
		port:              cfg.Port,
		db:                db,
		jwtKey:            cfg.JWTKey,
		tokenTTL:          cfg.TokenTTL,
		rememberMeTTL:     cfg.RememberMeTTL,
		adminLogin:        cfg.AdminLogin,
		adminPasswordHash: []byte(cfg.AdminPasswordHash),
		notifier:          cfg.Notifier,
		metrics:           cfg.Metrics,
		newRelic:          cfg.NewRelic,
	}
}

func (s *Server) Run() error {
	address := "0.0.0.0"

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%v:%v", address, s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening requests at %v:%v", address, s.port)

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Handler builds the full route table wrapped with recovery and access logging.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc(newrelic.WrapHandleFunc(s.newRelic, "/api/authenticate", s.authenticateUser)).Methods("POST")
	router.HandleFunc("/health", s.health).Methods("GET")
	if s.metrics != nil {
		router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}

	for _, meta := range model.All {
		s.mountEntity(router, meta)
	}

	var handler http.Handler = router
	handler = handlers.RecoveryHandler(handlers.RecoveryLogger(log.StandardLogger()))(handler)
	handler = handlers.CombinedLoggingHandler(log.StandardLogger().Writer(), handler)

	return handler
}

func (s *Server) mountEntity(router *mux.Router, meta model.Meta) {
	h := &entityHandler{server: s, meta: meta}
	collection := "/" + meta.Resource
	item := collection + "/{id}"

	router.Handle(newrelic.WrapHandle(s.newRelic, collection, handlers.MethodHandler{
		http.MethodGet:  s.authenticate(s.instrument(meta.Name, "query", h.list)),
		http.MethodPost: s.authenticate(s.instrument(meta.Name, "create", h.create)),
	}))
	router.Handle(newrelic.WrapHandle(s.newRelic, item, handlers.MethodHandler{
		http.MethodGet:    s.authenticate(s.instrument(meta.Name, "find", h.get)),
		http.MethodPut:    s.authenticate(s.instrument(meta.Name, "update", h.update)),
		http.MethodPatch:  s.authenticate(s.instrument(meta.Name, "partial_update", h.partialUpdate)),
		http.MethodDelete: s.authenticate(s.instrument(meta.Name, "delete", h.delete)),
	}))
}

func (s *Server) authenticateUser(w http.ResponseWriter, r *http.Request) {
	var request auth.LoginRequest
	err := json.NewDecoder(r.Body).Decode(&request)

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if request.Username != s.adminLogin || bcrypt.CompareHashAndPassword(s.adminPasswordHash, []byte(request.Password)) != nil {
		log.Warnf("failed sign in for %q", request.Username)
		http.Error(w, "Bad credentials", http.StatusUnauthorized)
		return
	}

	ttl := s.tokenTTL
	if request.RememberMe && s.rememberMeTTL > 0 {
		ttl = s.rememberMeTTL
	}

	token, err := auth.IssueToken([]byte(s.jwtKey), request.Username, ttl, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	writeJSON(w, http.StatusOK, auth.TokenResponse{IDToken: token})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "DOWN"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

func (s *Server) notify(alert notifications.Alert) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendEntityAlert(alert); err != nil {
		log.Errorf("sending %s alert for %s %d: %v", alert.Action, alert.Entity, alert.ID, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}
