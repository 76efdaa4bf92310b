package entity

import "time"

// Project proyecto asociado a un cliente. La tripleta (name, client, owner)
// es única entre proyectos no archivados.
type Project struct {
	ID          string
	Name        string
	Description string
	ClientID    string
	OwnerID     string // ID del usuario creador
	CompanyID   string // CIF de la compañía del creador; vacío si no tiene
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Archived indica si el proyecto está archivado (soft delete).
func (p *Project) Archived() bool { return p.DeletedAt != nil }
