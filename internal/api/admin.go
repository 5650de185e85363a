package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/zelje/internal/auth"
	"github.com/erazemk/zelje/internal/imaging"
	"github.com/erazemk/zelje/internal/store"
	"github.com/erazemk/zelje/internal/upload"
)

// AdminHandler handles the owner-only endpoints.
type AdminHandler struct {
	DB      *sql.DB
	Gate    *auth.Gate
	Uploads *upload.Store
}

type authRequest struct {
	Password string `json:"password"`
}

type addItemRequest struct {
	Password    string `json:"password"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Image       string `json:"image"`
	Price       string `json:"price"`
}

// Auth handles POST /api/admin/auth. A correct password gets a session token
// back so the admin page doesn't have to hold on to the password.
func (h *AdminHandler) Auth(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Gate.VerifySecret(req.Password); err != nil {
		gateError(w, r, err)
		return
	}

	token, err := h.Gate.IssueToken()
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{"ok": true, "token": token})
}

// Add handles POST /api/admin/add.
func (h *AdminHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Gate.Authorize(req.Password, bearerToken(r)); err != nil {
		gateError(w, r, err)
		return
	}

	_, err := store.CreateItem(r.Context(), h.DB, req.Title, req.Description, req.Link, req.Image, req.Price)
	if err != nil {
		if errors.Is(err, store.ErrEmptyTitle) {
			jsonError(w, http.StatusBadRequest, "title is required")
			return
		}
		slog.Error("failed to add item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// Upload handles POST /api/admin/upload: a multipart form with the password
// and one image file. Returns the public URL of the stored file.
func (h *AdminHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Ceiling covers the file plus some multipart overhead.
	const ceiling = upload.MaxSize + 64<<10
	if r.ContentLength > ceiling {
		jsonError(w, http.StatusRequestEntityTooLarge, "file too large (max 5 MB)")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, ceiling)

	if err := r.ParseMultipartForm(upload.MaxSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, http.StatusRequestEntityTooLarge, "file too large (max 5 MB)")
			return
		}
		jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	if err := h.Gate.Authorize(r.FormValue("password"), bearerToken(r)); err != nil {
		gateError(w, r, err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	if header.Size > upload.MaxSize {
		jsonError(w, http.StatusRequestEntityTooLarge, "file too large (max 5 MB)")
		return
	}

	url, err := h.Uploads.Save(file)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedFormat) {
			jsonError(w, http.StatusUnsupportedMediaType, "only image uploads allowed")
			return
		}
		slog.Error("failed to store upload", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"url": url})
}

// gateError translates gate failures to responses.
func gateError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, auth.ErrNotConfigured) {
		jsonError(w, http.StatusInternalServerError, "server not configured: owner password not set")
		return
	}
	slog.Warn("admin auth failed", "remote", r.RemoteAddr)
	jsonError(w, http.StatusUnauthorized, "unauthorized")
}

// bearerToken extracts a session token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
