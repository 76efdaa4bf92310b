package entity

import (
	"regexp"
	"time"
)

// cifPattern valida el CIF del cliente: una letra mayúscula + 8 dígitos (ej: B12345678).
var cifPattern = regexp.MustCompile(`^[A-Z]\d{8}$`)

// ValidCIF indica si el CIF tiene el formato esperado.
func ValidCIF(cif string) bool { return cifPattern.MatchString(cif) }

// Client cliente de facturación, propiedad de su creador y visible para
// cualquier usuario de la misma compañía. La unicidad del CIF se limita al
// ámbito (creador O compañía del creador): el mismo CIF puede existir para
// usuarios sin relación entre sí.
type Client struct {
	ID           string
	Name         string
	CIF          string
	Address      string
	ContactEmail string
	ContactPhone string
	CreatedBy    string // ID del usuario creador
	CompanyID    string // CIF de la compañía del creador; vacío si no tiene
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Archived indica si el cliente está archivado (soft delete).
func (c *Client) Archived() bool { return c.DeletedAt != nil }
