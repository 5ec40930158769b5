package leads

import (
	"net/mail"
	"strings"
	"time"
)

// Lead represents a person captured through the freight quote form. Leads
// are created once and never mutated or deleted.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateLeadRequest represents the request body for creating a lead
type CreateLeadRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate validates the create lead request
func (r *CreateLeadRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// ListMeta describes one page of a lead listing.
type ListMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// ListResult is a page of leads plus pagination metadata.
type ListResult struct {
	Data []*Lead  `json:"data"`
	Meta ListMeta `json:"meta"`
}
