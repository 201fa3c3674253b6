package models

// Item is a row in the PostgreSQL items table.
type Item struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ItemPayload is the JSON body for POST /items and PUT /items/{id}.
// PUT replaces both fields, so omitting description clears it.
type ItemPayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}
