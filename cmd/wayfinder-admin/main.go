package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/openvenue/wayfinder/pkg/store"
)

var databaseURL string

var rootCmd = &cobra.Command{
	Use:   "wayfinder-admin",
	Short: "Administrative tools for the wayfinder routing service",
	Long: `wayfinder-admin manages the wayfinder database: schema migrations,
catalog seeding and demo data for local development.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "",
		"PostgreSQL connection string (defaults to DATABASE_URL)")
}

// connect opens a store using the flag or the DATABASE_URL environment
// variable.
func connect(ctx context.Context) (*store.PGStore, error) {
	url := databaseURL
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return nil, fmt.Errorf("no database URL: pass --database-url or set DATABASE_URL")
	}
	return store.NewPGStore(ctx, store.PGConfig{URL: url})
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
