// Command token issues a session token for a user id, signed with the
// server's JWT_SECRET. Sign-up and login are handled outside this service.
//
// Usage:
//
//	token -user alice [-email alice@example.com] [-ttl 24h]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/config"
	"github.com/mmynk/settleup/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup()

	userID := flag.String("user", "", "user id to issue the token for (required)")
	email := flag.String("email", "", "email to embed in the token")
	ttl := flag.Duration("ttl", cfg.TokenTTL, "token lifetime")
	flag.Parse()

	if *userID == "" {
		flag.Usage()
		os.Exit(2)
	}
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	token, err := auth.NewSigner(cfg.JWTSecret, *ttl).Issue(*userID, *email)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
