package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/conf"
)

type Config struct {
	Port              string        `conf:"default:8080,env:PORT"`
	DBCon             string        `conf:"default:user=ps_user password=ps_password dbname=backend sslmode=disable host=localhost,env:DB_CONN"`
	JWTKey            string        `conf:"default:your_secret_key,env:JWT_KEY,noprint"`
	TokenTTL          time.Duration `conf:"default:24h,env:TOKEN_TTL"`
	RememberMeTTL     time.Duration `conf:"default:720h,env:REMEMBER_ME_TTL"`
	AdminLogin        string        `conf:"default:admin,env:ADMIN_LOGIN"`
	AdminPasswordHash string        `conf:"default:$2a$10$gSAhZrxMllrbgj/kkK9UceBPpChGWJA7SYIb1Mqo.n5aNLq1/oRrC,env:ADMIN_PASSWORD_HASH,noprint"`
	SendGridKey       string        `conf:"env:SENDGRID_API_KEY,noprint"`
	AlertFrom         string        `conf:"default:no-reply@companyemail.com,env:ALERT_FROM"`
	AlertTo           string        `conf:"env:ALERT_TO"`
	NewRelicApp       string        `conf:"default:bank-admin-api,env:NEW_RELIC_APP"`
	NewRelicLicense   string        `conf:"env:NEW_RELIC_LICENSE_KEY,noprint"`
	LogLevel          string        `conf:"default:info,env:LOG_LEVEL"`
}

func ReadConfig() (*Config, error) {
	var cfg Config
	help, err := conf.ParseOSArgs("APP", &cfg)

	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}
