package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/erazemk/zelje/internal/api"
	"github.com/erazemk/zelje/internal/auth"
	"github.com/erazemk/zelje/internal/db"
	"github.com/erazemk/zelje/internal/store"
	"github.com/erazemk/zelje/internal/upload"
	"github.com/erazemk/zelje/internal/web"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR goes
// to stderr. If logPath is non-empty, all levels are also written to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

// envDefault returns the value of the environment variable if set, else def.
func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	// Config from a .env file, real env vars, or flags (flags win).
	_ = godotenv.Load()

	fs := flag.NewFlagSet("zelje", flag.ContinueOnError)

	var dbPath string
	fs.StringVar(&dbPath, "db", envDefault("ZELJE_DB", "zelje.sqlite3"), "")
	fs.StringVar(&dbPath, "d", envDefault("ZELJE_DB", "zelje.sqlite3"), "")

	var addr string
	fs.StringVar(&addr, "addr", envDefault("ZELJE_ADDR", ":8080"), "")
	fs.StringVar(&addr, "a", envDefault("ZELJE_ADDR", ":8080"), "")

	var uploadsDir string
	fs.StringVar(&uploadsDir, "uploads", envDefault("ZELJE_UPLOADS", "uploads"), "")
	fs.StringVar(&uploadsDir, "U", envDefault("ZELJE_UPLOADS", "uploads"), "")

	var ownerPassword string
	fs.StringVar(&ownerPassword, "secret", os.Getenv("OWNER_PASSWORD"), "")
	fs.StringVar(&ownerPassword, "s", os.Getenv("OWNER_PASSWORD"), "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: zelje [flags]

Flags:
  -d, -db <path>          SQLite database path (default: zelje.sqlite3, env ZELJE_DB)
  -a, -addr <host:port>   listen address (default: :8080, env ZELJE_ADDR)
  -U, -uploads <dir>      uploaded images directory (default: uploads, env ZELJE_UPLOADS)
  -s, -secret <password>  owner password for admin operations (env OWNER_PASSWORD)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit

Without an owner password the wishlist is read-only: visitors can still claim
items, but adding items and uploading images is disabled.
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	// Set up structured logging: INFO/WARN → stdout, ERROR → stderr.
	// Optionally also write to a log file.
	closeLog, err := setupLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	// Open database (created on first run) and ensure the schema.
	database, err := db.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	slog.Info("database ready", "path", dbPath)

	// Session-token signing key, persisted in the database.
	sessionSecret, err := store.GetSessionSecret(context.Background(), database)
	if err != nil {
		slog.Error("failed to get session secret", "error", err)
		os.Exit(1)
	}

	gate, err := auth.NewGate(ownerPassword, sessionSecret)
	if err != nil {
		slog.Error("failed to set up admin gate", "error", err)
		os.Exit(1)
	}
	if !gate.Configured() {
		slog.Warn("owner password not set, admin operations disabled")
	}

	uploads, err := upload.NewStore(uploadsDir)
	if err != nil {
		slog.Error("failed to set up upload store", "error", err)
		os.Exit(1)
	}

	// Combine: API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(database, gate, uploads))
	mux.Handle("/", web.NewRouter(uploadsDir))

	handler := api.LoggingMiddleware(mux)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, closing database")
}
