package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de albarán.
const (
	NoteTypeHoras      = "horas"
	NoteTypeMateriales = "materiales"
)

// ValidNoteType indica si el tipo de albarán es uno de los admitidos.
func ValidNoteType(t string) bool {
	return t == NoteTypeHoras || t == NoteTypeMateriales
}

// NoteEntry una línea del albarán (horas trabajadas o material empleado).
type NoteEntry struct {
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Description string          `json:"description,omitempty"`
}

// DeliveryNote albarán de horas o materiales. Una vez firmado (Signed=true)
// es inmutable: no admite más ediciones ni borrado, ni lógico ni físico.
// La firma es una transición de un solo sentido.
type DeliveryNote struct {
	ID           string
	CreatedBy    string
	ClientID     string
	ProjectID    string
	Type         string // horas, materiales
	Entries      []NoteEntry
	Signed       bool
	SignatureURL string // URL del gateway IPFS de la imagen de la firma; vacío si no está firmado
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Archived indica si el albarán está archivado (soft delete).
func (n *DeliveryNote) Archived() bool { return n.DeletedAt != nil }
