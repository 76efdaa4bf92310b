package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/albaranes-api/internal/domain/entity"
)

// NoteEntryRequest una línea del albarán.
type NoteEntryRequest struct {
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Description string          `json:"description"`
}

// CreateNoteRequest entrada para crear un albarán.
type CreateNoteRequest struct {
	ClientID  string             `json:"clientId"`
	ProjectID string             `json:"projectId"`
	Type      string             `json:"type"` // horas | materiales
	Entries   []NoteEntryRequest `json:"entries"`
}

// NoteResponse vista pública de un albarán.
type NoteResponse struct {
	ID           string             `json:"id"`
	CreatedBy    string             `json:"createdBy"`
	ClientID     string             `json:"clientId"`
	ProjectID    string             `json:"projectId"`
	Type         string             `json:"type"`
	Entries      []entity.NoteEntry `json:"entries"`
	Signed       bool               `json:"signed"`
	SignatureURL string             `json:"signatureUrl,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// NoteEnvelope respuesta con mensaje + albarán.
type NoteEnvelope struct {
	Message      string        `json:"message,omitempty"`
	DeliveryNote *NoteResponse `json:"deliverynote"`
}

// ToNoteResponse construye la vista pública de un albarán.
func ToNoteResponse(n *entity.DeliveryNote) *NoteResponse {
	if n == nil {
		return nil
	}
	return &NoteResponse{
		ID:           n.ID,
		CreatedBy:    n.CreatedBy,
		ClientID:     n.ClientID,
		ProjectID:    n.ProjectID,
		Type:         n.Type,
		Entries:      n.Entries,
		Signed:       n.Signed,
		SignatureURL: n.SignatureURL,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

// ToNoteResponses mapea una lista de albaranes.
func ToNoteResponses(list []*entity.DeliveryNote) []*NoteResponse {
	out := make([]*NoteResponse, 0, len(list))
	for _, n := range list {
		out = append(out, ToNoteResponse(n))
	}
	return out
}
