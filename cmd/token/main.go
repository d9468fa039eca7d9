// Command token prints a bearer token for the API signed with AUTH_SECRET.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/internal/auth"
	"github.com/MrJamesThe3rd/tally/internal/config"
)

func main() {
	subject := flag.String("sub", "tally", "token subject")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.Secret == "" {
		slog.Error("AUTH_SECRET must be set")
		os.Exit(1)
	}

	token, expiresAt, err := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL).Issue(*subject)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		os.Exit(1)
	}

	fmt.Println(token)
	slog.Info("token issued", "subject", *subject, "expires_at", expiresAt)
}
