// Command organizer-token mints a bearer token that grants the organizer role.
//
//	organizer-token -subject ops@example.com -ttl 720h
//
// The token is signed with JWT_SECRET from the environment (or .env).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"eventbooking/config"
	"eventbooking/internal/adapters/auth"
	"eventbooking/internal/domain"
)

func main() {
	subject := flag.String("subject", "", "token subject, usually the organizer's email")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "organizer-token: -subject is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	token, err := auth.NewJWT(cfg.JWTSecret).Issue(*subject, *subject, []string{domain.RoleOrganizer}, *ttl)
	if err != nil {
		slog.Error("failed to issue token", "err", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
