package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/zelje/internal/model"
	"github.com/erazemk/zelje/internal/store"
)

// ItemsHandler handles the public wishlist endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

type claimResponse struct {
	Success bool `json:"success"`
	Claimed bool `json:"claimed"`
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Claim handles POST /api/claim/{id}. The caller's identity is the claimer
// cookie; an available item is claimed for it, an item it claimed is
// released, anyone else's claim is refused.
func (h *ItemsHandler) Claim(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	var token string
	if cookie, err := r.Cookie("claimer"); err == nil {
		token = cookie.Value
	}

	claimed, err := store.ToggleClaim(r.Context(), h.DB, id, token)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrItemNotFound):
			jsonError(w, http.StatusNotFound, "item not found")
		case errors.Is(err, store.ErrNoClaimer):
			jsonError(w, http.StatusBadRequest, "no claimer cookie present")
		case errors.Is(err, store.ErrClaimedByOther):
			jsonError(w, http.StatusForbidden, "item already claimed by someone else")
		default:
			slog.Error("failed to toggle claim", "item", id, "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to claim item")
		}
		return
	}

	jsonResponse(w, http.StatusOK, claimResponse{Success: true, Claimed: claimed})
}
