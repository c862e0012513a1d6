package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/erazemk/inventar/internal/model"
	"github.com/erazemk/inventar/internal/store"
	"github.com/erazemk/inventar/internal/upload"
)

// ItemsHandler handles all verbs on the /items endpoint.
type ItemsHandler struct {
	DB      *sql.DB
	Uploads *upload.Saver
}

// itemRequest is the body shape shared by POST and PUT. Quantity is a
// pointer so a missing field is distinguishable from an explicit zero;
// absent optional fields keep their zero defaults.
type itemRequest struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    *int    `json:"quantity"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// validate returns an error message for invalid required fields, or "".
func (req *itemRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" || req.Quantity == nil {
		return "Name and quantity are required."
	}
	if *req.Quantity < 0 {
		return "Quantity must not be negative."
	}
	if req.Price < 0 {
		return "Price must not be negative."
	}
	return ""
}

func (h *ItemsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodPut:
		h.update(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		jsonMessage(w, http.StatusMethodNotAllowed, "Method not allowed.")
	}
}

// get returns a single item when an id query parameter is present,
// otherwise the full list, newest first.
func (h *ItemsHandler) get(w http.ResponseWriter, r *http.Request) {
	idParam := r.URL.Query().Get("id")
	if idParam == "" {
		items, err := store.ListItems(r.Context(), h.DB)
		if err != nil {
			slog.Error("failed to list items", "error", err)
			jsonMessage(w, http.StatusServiceUnavailable, "Unable to fetch items.")
			return
		}
		if items == nil {
			items = []model.Item{}
		}
		jsonResponse(w, http.StatusOK, items)
		return
	}

	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		jsonMessage(w, http.StatusBadRequest, "Invalid item ID.")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get item", "id", id, "error", err)
		jsonMessage(w, http.StatusServiceUnavailable, "Unable to fetch item.")
		return
	}
	if item == nil {
		jsonMessage(w, http.StatusNotFound, "Item not found.")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

func (h *ItemsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := req.validate(); msg != "" {
		jsonMessage(w, http.StatusBadRequest, msg)
		return
	}

	id, err := store.CreateItem(r.Context(), h.DB, req.Name, req.Description, *req.Quantity, req.Price, req.Image)
	if err != nil {
		slog.Error("failed to create item", "name", req.Name, "error", err)
		jsonMessage(w, http.StatusServiceUnavailable, "Unable to create item.")
		return
	}

	slog.Info("item created", "id", id, "name", req.Name)
	jsonResponse(w, http.StatusCreated, map[string]any{
		"message": "Item created successfully.",
		"id":      id,
	})
}

// update overwrites all mutable fields of an item. The id comes from the
// query parameter, falling back to the id field in the body. A write that
// matches no rows still counts as success; it is only logged.
func (h *ItemsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	id := req.ID
	if idParam := r.URL.Query().Get("id"); idParam != "" {
		parsed, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			jsonMessage(w, http.StatusBadRequest, "Invalid item ID.")
			return
		}
		id = parsed
	}
	if id == 0 {
		jsonMessage(w, http.StatusBadRequest, "Item ID required.")
		return
	}

	if msg := req.validate(); msg != "" {
		jsonMessage(w, http.StatusBadRequest, msg)
		return
	}

	rows, err := store.UpdateItem(r.Context(), h.DB, id, req.Name, req.Description, *req.Quantity, req.Price, req.Image)
	if err != nil {
		slog.Error("failed to update item", "id", id, "error", err)
		jsonMessage(w, http.StatusServiceUnavailable, "Unable to update item.")
		return
	}
	if rows == 0 {
		slog.Warn("update matched no rows", "id", id)
	}

	jsonMessage(w, http.StatusOK, "Item updated successfully.")
}

// delete removes the item row and then best-effort removes the referenced
// image file. File removal failures are logged, never surfaced to the
// caller; the row deletion is authoritative.
func (h *ItemsHandler) delete(w http.ResponseWriter, r *http.Request) {
	idParam := r.URL.Query().Get("id")
	if idParam == "" {
		jsonMessage(w, http.StatusBadRequest, "Item ID required.")
		return
	}
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		jsonMessage(w, http.StatusBadRequest, "Invalid item ID.")
		return
	}

	// Look up the image filename before the row disappears.
	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get item before delete", "id", id, "error", err)
		jsonMessage(w, http.StatusServiceUnavailable, "Unable to delete item.")
		return
	}

	rows, err := store.DeleteItem(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to delete item", "id", id, "error", err)
		jsonMessage(w, http.StatusServiceUnavailable, "Unable to delete item.")
		return
	}
	if rows == 0 {
		slog.Warn("delete matched no rows", "id", id)
	}

	if item != nil && item.Image != "" {
		if err := h.Uploads.Remove(item.Image); err != nil {
			slog.Error("failed to remove item image", "id", id, "image", item.Image, "error", err)
		}
	}

	slog.Info("item deleted", "id", id)
	jsonMessage(w, http.StatusOK, "Item deleted successfully.")
}
