package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kaiwen/items-api/internal/middleware"
	"github.com/kaiwen/items-api/internal/models"
	"github.com/kaiwen/items-api/internal/store"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, email, hashedPassword string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users  UserStore
	tokens *TokenIssuer
}

func NewHandler(users UserStore, tokens *TokenIssuer) *Handler {
	return &Handler{users: users, tokens: tokens}
}

// Register creates a new user.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"detail":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, `{"detail":"email and password are required"}`, http.StatusBadRequest)
		return
	}

	// The pre-check is an optimization only; the unique constraint on
	// users.email is the authoritative guard against concurrent
	// registrations with the same address.
	if _, err := h.users.GetUserByEmail(r.Context(), req.Email); err == nil {
		http.Error(w, `{"detail":"email already registered"}`, http.StatusBadRequest)
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		http.Error(w, `{"detail":"internal error"}`, http.StatusInternalServerError)
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Email, hashed)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			http.Error(w, `{"detail":"email already registered"}`, http.StatusBadRequest)
			return
		}
		http.Error(w, `{"detail":"database error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// Login verifies form credentials and issues a bearer token. The form field
// is named username per the password-grant convention but carries the
// user's email.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, `{"detail":"invalid form body"}`, http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.users.GetUserByEmail(r.Context(), email)
	if err != nil {
		// Same response as a bad password so emails can't be enumerated.
		http.Error(w, `{"detail":"incorrect email or password"}`, http.StatusUnauthorized)
		return
	}
	if err := CheckPassword(password, user.HashedPassword); err != nil {
		http.Error(w, `{"detail":"incorrect email or password"}`, http.StatusUnauthorized)
		return
	}

	signed, err := h.tokens.Issue(user.Email)
	if err != nil {
		http.Error(w, `{"detail":"token issuance failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.Token{AccessToken: signed, TokenType: "bearer"})
}

// Me returns the currently authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.UserEmail(r.Context())
	if !ok {
		http.Error(w, `{"detail":"not authenticated"}`, http.StatusUnauthorized)
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), email)
	if err != nil {
		http.Error(w, `{"detail":"user not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
