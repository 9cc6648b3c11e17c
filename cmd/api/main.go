package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"bank-admin-go/internal/database"
	"bank-admin-go/internal/metrics"
	"bank-admin-go/internal/notifications"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sendgrid/sendgrid-go"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.Println("starting bank admin api")

	cfg, err := ReadConfig()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("parsing log level: %v", err)
	}
	log.SetLevel(level)

	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		log.Fatalf("converting port to integer: %v", err)
	}

	db, err := database.NewClient(cfg.DBCon)
	if err != nil {
		log.Fatalf("creating database client: %v", err)
	}
	defer db.Close()

	serverCfg := ServerConfig{
		Port:              port,
		JWTKey:            cfg.JWTKey,
		TokenTTL:          cfg.TokenTTL,
		RememberMeTTL:     cfg.RememberMeTTL,
		AdminLogin:        cfg.AdminLogin,
		AdminPasswordHash: cfg.AdminPasswordHash,
		Metrics:           metrics.New(),
	}

	if cfg.SendGridKey != "" && cfg.AlertTo != "" {
		serverCfg.Notifier = notifications.NewSender(sendgrid.NewSendClient(cfg.SendGridKey), cfg.AlertFrom, cfg.AlertTo)
	}

	if cfg.NewRelicLicense != "" {
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelicApp),
			newrelic.ConfigLicense(cfg.NewRelicLicense),
		)
		if err != nil {
			log.Fatalf("creating new relic application: %v", err)
		}
		defer app.Shutdown(5 * time.Second)
		serverCfg.NewRelic = app
	}

	server := NewServer(serverCfg, db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("shutting down server: %v", err)
		}
	}()

	if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("server stopped")
}
