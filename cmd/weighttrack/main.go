package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"

	adapthttp "weighttrack/internal/adapter/http"
	"weighttrack/internal/adapter/postgres"
	"weighttrack/internal/adapter/sqlite"
	"weighttrack/internal/app"
	"weighttrack/internal/domain"
)

func main() {
	addr := env("ADDR", ":8080")

	var (
		entryRepo   domain.EntryRepository
		goalRepo    domain.GoalRepository
		userRepo    domain.UserRepository
		sessionRepo domain.SessionRepository
		closer      io.Closer
	)

	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		db, err := postgres.Open(connStr)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		entryRepo, goalRepo, userRepo = db, db, db
		sessionRepo = postgres.NewSessionRepo(db)
		closer = db
	} else {
		path := env("DB_PATH", "weighttrack.db")
		db, err := sqlite.Open(path)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		entryRepo, goalRepo, userRepo = db, db, db
		sessionRepo = sqlite.NewSessionRepo(db)
		closer = db
	}
	defer func() { _ = closer.Close() }()

	entrySvc := app.NewEntryService(entryRepo)
	reportSvc := app.NewReportService(entryRepo)
	goalSvc := app.NewGoalService(goalRepo)
	authSvc := app.NewAuthService(userRepo, sessionRepo)

	var oidcCfg adapthttp.OIDCConfig
	if issuer := os.Getenv("OIDC_ISSUER"); issuer != "" {
		cfg, err := adapthttp.NewOIDCConfig(context.Background(), issuer,
			os.Getenv("OIDC_CLIENT_ID"),
			os.Getenv("OIDC_CLIENT_SECRET"),
			os.Getenv("OIDC_REDIRECT_URL"))
		if err != nil {
			log.Fatalf("oidc setup: %v", err)
		}
		oidcCfg = cfg
	}

	h := adapthttp.New(entrySvc, reportSvc, goalSvc, authSvc, oidcCfg).Handler()
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
