package dto

import (
	"time"

	"github.com/jhoicas/albaranes-api/internal/domain/entity"
)

// ProjectRequest entrada para crear o actualizar un proyecto.
type ProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Client      string     `json:"client"` // ID del cliente
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// ProjectResponse vista pública de un proyecto.
type ProjectResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Client      string     `json:"client"`
	Owner       string     `json:"owner"`
	CompanyID   string     `json:"companyId,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// ProjectEnvelope respuesta con mensaje + proyecto.
type ProjectEnvelope struct {
	Message string           `json:"message,omitempty"`
	Project *ProjectResponse `json:"project"`
}

// ToProjectResponse construye la vista pública de un proyecto.
func ToProjectResponse(p *entity.Project) *ProjectResponse {
	if p == nil {
		return nil
	}
	return &ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Client:      p.ClientID,
		Owner:       p.OwnerID,
		CompanyID:   p.CompanyID,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		DeletedAt:   p.DeletedAt,
	}
}

// ToProjectResponses mapea una lista de proyectos.
func ToProjectResponses(list []*entity.Project) []*ProjectResponse {
	out := make([]*ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProjectResponse(p))
	}
	return out
}
