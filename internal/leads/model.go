package leads

import (
	"strings"
	"time"
)

// Lead represents a sales lead submitted by the chat widget.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Message   string    `json:"message"`
	PageURL   string    `json:"page_url"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateLeadRequest represents the request body for POST /lead. Every field
// is free text; blanks fall back to the widget's historical defaults rather
// than failing validation.
type CreateLeadRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Message string `json:"message"`
	PageURL string `json:"page_url"`
	Source  string `json:"source"`
}

// ApplyDefaults fills blank fields with placeholder values.
func (r *CreateLeadRequest) ApplyDefaults() {
	if strings.TrimSpace(r.Name) == "" {
		r.Name = "Unknown"
	}
	if strings.TrimSpace(r.Contact) == "" {
		r.Contact = "Unknown"
	}
	if strings.TrimSpace(r.Message) == "" {
		r.Message = "Inquired via Chat"
	}
	if strings.TrimSpace(r.PageURL) == "" {
		r.PageURL = "Unknown"
	}
	if strings.TrimSpace(r.Source) == "" {
		r.Source = "chat_widget"
	}
}
