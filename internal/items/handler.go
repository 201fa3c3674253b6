package items

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kaiwen/items-api/internal/models"
	"github.com/kaiwen/items-api/internal/store"
)

// Pagination defaults; no upper bound is enforced on limit.
const (
	defaultSkip  = 0
	defaultLimit = 100
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDetail writes an error body of the form {"detail": "..."}.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// ItemStore defines the interface for item persistence.
type ItemStore interface {
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	ListItems(ctx context.Context, skip, limit int) ([]models.Item, error)
	CreateItem(ctx context.Context, name string, description *string) (*models.Item, error)
	UpdateItem(ctx context.Context, id int64, name string, description *string) (*models.Item, error)
	DeleteItem(ctx context.Context, id int64) (*models.Item, error)
}

// Handler holds item CRUD HTTP handlers.
type Handler struct {
	items ItemStore
}

func NewHandler(items ItemStore) *Handler {
	return &Handler{items: items}
}

func itemID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// decodePayload reads and validates an item body, rejecting malformed
// payloads before they reach the store.
func decodePayload(r *http.Request) (*models.ItemPayload, string) {
	var p models.ItemPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return nil, "invalid request body"
	}
	if p.Name == "" {
		return nil, "name is required"
	}
	return &p, ""
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New("invalid " + key + " value")
	}
	return n, nil
}

// Create inserts a new item and returns it with its server-assigned id.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, msg := decodePayload(r)
	if p == nil {
		writeDetail(w, http.StatusBadRequest, msg)
		return
	}

	item, err := h.items.CreateItem(r.Context(), p.Name, p.Description)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// List returns items ordered by id ascending, paginated by skip/limit.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", defaultSkip)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := queryInt(r, "limit", defaultLimit)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.items.ListItems(r.Context(), skip, limit)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get returns a single item by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.items.GetItem(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Update fully replaces an item's name and description.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid item id")
		return
	}

	p, msg := decodePayload(r)
	if p == nil {
		writeDetail(w, http.StatusBadRequest, msg)
		return
	}

	item, err := h.items.UpdateItem(r.Context(), id, p.Name, p.Description)
	if errors.Is(err, store.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete removes an item. A miss is reported as 404 rather than silently
// returning success.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := itemID(r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if _, err := h.items.DeleteItem(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "item not found")
			return
		}
		writeDetail(w, http.StatusInternalServerError, "database error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
