package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/zelje/internal/auth"
	"github.com/erazemk/zelje/internal/upload"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, gate *auth.Gate, uploads *upload.Store) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{DB: db}
	adminHandler := &AdminHandler{DB: db, Gate: gate, Uploads: uploads}

	// Public: list and claim.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/claim/{id}", itemsHandler.Claim)

	// Owner-only: add items and upload images.
	mux.HandleFunc("POST /api/admin/auth", adminHandler.Auth)
	mux.HandleFunc("POST /api/admin/add", adminHandler.Add)
	mux.HandleFunc("POST /api/admin/upload", adminHandler.Upload)

	return mux
}
