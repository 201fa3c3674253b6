package models

// User represents a row in the PostgreSQL users table.
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"` // never serialize
	IsActive       bool   `json:"is_active"`
}

// RegisterRequest is the JSON body for POST /users.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is the response body for POST /login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
