// Command token-generator issues API bearer tokens for clients of a server
// with authentication enabled. It reads the same configuration as the server,
// so auth.jwt_secret must be set.
//
// Usage:
//
//	token-generator -client studio-frontend
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/phrazzld/brandkit-api/internal/config"
	"github.com/phrazzld/brandkit-api/internal/service/auth"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "token-generator:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token-generator", flag.ContinueOnError)
	clientID := fs.String("client", "", "client ID to embed in the token (required)")
	envFile := fs.String("env", ".env.local", "optional dotenv file to load before reading configuration")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *clientID == "" {
		return errors.New("-client is required")
	}

	if *envFile != "" {
		// A missing file is fine; the environment may already be set.
		_ = godotenv.Load(*envFile)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	return issue(cfg.Auth, *clientID, out)
}

// issue generates a token for clientID and writes it to out.
func issue(cfg config.AuthConfig, clientID string, out io.Writer) error {
	if !cfg.Enabled() {
		return errors.New("authentication is disabled: set BRANDKIT_AUTH_JWT_SECRET")
	}

	jwtService, err := auth.NewJWTService(cfg)
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}

	token, err := jwtService.GenerateToken(context.Background(), clientID)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
