package pages

import (
	"encoding/json"
	"time"

	"sellify-app/internal/domain/pages"
)

type PageInput struct {
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description"`
	Amount      int64         `json:"amount"`   // minor units
	Currency    string        `json:"currency"` // defaults to eur
	Fields      []pages.Field `json:"fields"`
	SuccessURL  *string       `json:"success_url"`
	CancelURL   *string       `json:"cancel_url"`
}

type PageResponse struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Description string        `json:"description,omitempty"`
	Amount      int64         `json:"amount"`
	Currency    string        `json:"currency"`
	Fields      []pages.Field `json:"fields"`
	SuccessURL  *string       `json:"success_url,omitempty"`
	CancelURL   *string       `json:"cancel_url,omitempty"`
	Published   bool          `json:"published"`
	Views       int64         `json:"views"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// PublicPageResponse is the customer-facing shape: no owner internals, no
// view counter.
type PublicPageResponse struct {
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Description string        `json:"description,omitempty"`
	Amount      int64         `json:"amount"`
	Currency    string        `json:"currency"`
	Fields      []pages.Field `json:"fields"`
}

func toResponse(p *pages.CheckoutPage) PageResponse {
	fields, err := p.FieldSchema()
	if err != nil {
		fields = nil
	}
	if fields == nil {
		fields = []pages.Field{}
	}
	return PageResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Fields:      fields,
		SuccessURL:  p.SuccessURL,
		CancelURL:   p.CancelURL,
		Published:   p.Published,
		Views:       p.Views,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func encodeFields(fields []pages.Field) (string, error) {
	if len(fields) == 0 {
		return "", nil
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
