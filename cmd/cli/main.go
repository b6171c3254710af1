package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/baharkarakas/mini-linkedin/internal/client"
	"github.com/baharkarakas/mini-linkedin/internal/client/cli"
)

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".mini-linkedin-token"
	}
	return filepath.Join(dir, "mini-linkedin", "token")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("mini-linkedin", flag.ExitOnError)
	server := fs.String("server", envOr("MINI_LINKEDIN_SERVER", "http://localhost:8080"), "API base URL")
	tokenFile := fs.String("token-file", envOr("MINI_LINKEDIN_TOKEN_FILE", defaultTokenFile()), "where the session token is kept")
	_ = fs.Parse(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(client.New(*server, nil), client.FileTokenStore{Path: *tokenFile}, os.Stdin, os.Stdout)
	if err := app.Run(ctx, fs.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
