package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/config"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/database"
	"github.com/joho/godotenv"
)

func main() {
	printOnly := flag.Bool("print", false, "print the schema instead of applying it")
	dsn := flag.String("dsn", "", "database URL (defaults to DB_* settings)")
	flag.Parse()

	if *printOnly {
		fmt.Print(database.Schema())
		return
	}

	url := *dsn
	if url == "" {
		_ = godotenv.Load()
		cfg := &config.Config{Database: config.DatabaseFromEnv()}
		url = cfg.DatabaseURL()
	}

	db, err := database.NewPostgreSQLDB(url)
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}
}
