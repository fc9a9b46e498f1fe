// Command token prints a signed bearer token for local testing.
package main

import (
	"flag"
	"fmt"
	"os"
	"storefront/internal/auth"
	"storefront/internal/config"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	userID := flag.String("user", "demo-user-001", "user id (token subject)")
	email := flag.String("email", "", "email claim")
	role := flag.String("role", string(auth.RoleCustomer), "customer or admin")
	flag.Parse()

	_ = godotenv.Load()

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	token, err := tokens.Issue(auth.Identity{
		UserID: *userID,
		Email:  *email,
		Role:   auth.Role(*role),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
