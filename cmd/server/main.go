// Package main implements the entry point for the blog API server,
// which serves users, posts and comments over a JSON REST interface.
package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/joho/godotenv"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "apply pending database migrations and exit")
	flag.Parse()

	// A .env file is a local-development convenience; absence is fine.
	_ = godotenv.Load()

	app, err := newApplication()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if *migrateOnly {
		slog.Info("migrations applied, exiting")
		return
	}

	if err := app.startHTTPServer(app.setupRouter()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
