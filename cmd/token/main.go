// Command token mints a bearer token for the outfit studio API using the
// configured auth secret.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/yanqian/outfit-studio/internal/domain/auth"
	"github.com/yanqian/outfit-studio/internal/infra/config"
)

func main() {
	subject := flag.String("subject", "", "token subject, usually a user or client id")
	ttl := flag.Duration("ttl", 0, "token lifetime; defaults to auth.tokenTtl")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Auth.Secret == "" {
		log.Fatal("auth.secret is not configured")
	}
	tokenTTL := cfg.Auth.TokenTTL
	if *ttl > 0 {
		tokenTTL = *ttl
	}

	svc := auth.NewService(auth.Config{
		Secret:   cfg.Auth.Secret,
		Issuer:   cfg.Auth.Issuer,
		TokenTTL: tokenTTL,
	})
	token, err := svc.IssueToken(context.Background(), *subject)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}
	fmt.Fprintln(os.Stdout, token)
	fmt.Fprintf(os.Stderr, "expires %s\n", time.Now().Add(tokenTTL).UTC().Format(time.RFC3339))
}
