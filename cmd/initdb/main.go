package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/segyhp/loan-ledger/internal/config"
	"github.com/segyhp/loan-ledger/internal/repository"
	"github.com/segyhp/loan-ledger/internal/service"
	customError "github.com/segyhp/loan-ledger/pkg/errors"
	"github.com/segyhp/loan-ledger/pkg/logger"
)

// initdb creates the schema and bootstraps the first operator account.
// ADMIN_PASSWORD must be provided; there is no default credential.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "json").WithError(err).Fatal("failed to load configuration")
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.URL)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		log.WithError(err).Fatal("failed to apply schema")
	}
	log.Info("schema applied")

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Warn("ADMIN_PASSWORD not set, no operator account created")
		return
	}

	// tokens are not issued here, so no session store is needed
	auth := service.NewAuthService(repository.NewUserRepository(db), nil, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	_, err = auth.Register(ctx, username, password)
	switch {
	case errors.Is(err, customError.ErrUserAlreadyExists):
		log.WithField("username", username).Info("operator account already exists")
	case err != nil:
		log.WithError(err).Fatal("failed to create operator account")
	}
}
