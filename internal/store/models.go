package store

import (
	"encoding/json"
	"time"
)

// User is a registered account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GenerationRecord is one completed generation, kept for history and
// search. Kind distinguishes documents from the auxiliary generators
// (exam, resume, notes, and so on).
type GenerationRecord struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Kind         string          `json:"kind"`
	Title        string          `json:"title"`
	Snippet      string          `json:"snippet"`
	DocumentType string          `json:"documentType,omitempty"`
	Format       string          `json:"format,omitempty"`
	PageCount    int             `json:"pageCount,omitempty"`
	NumImages    int             `json:"numImages,omitempty"`
	Request      json.RawMessage `json:"request,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}
