package dto

import (
	"time"

	"github.com/jhoicas/albaranes-api/internal/domain/entity"
)

// ClientRequest entrada para crear o actualizar un cliente.
type ClientRequest struct {
	Name         string `json:"name"`
	CIF          string `json:"cif"`
	Address      string `json:"address"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
}

// ClientResponse vista pública de un cliente.
type ClientResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	CIF          string     `json:"cif"`
	Address      string     `json:"address,omitempty"`
	ContactEmail string     `json:"contactEmail,omitempty"`
	ContactPhone string     `json:"contactPhone,omitempty"`
	CreatedBy    string     `json:"createdBy"`
	CompanyID    string     `json:"companyId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
}

// ClientEnvelope respuesta con mensaje + cliente.
type ClientEnvelope struct {
	Message string          `json:"message,omitempty"`
	Client  *ClientResponse `json:"client"`
}

// ToClientResponse construye la vista pública de un cliente.
func ToClientResponse(c *entity.Client) *ClientResponse {
	if c == nil {
		return nil
	}
	return &ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		CIF:          c.CIF,
		Address:      c.Address,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		CreatedBy:    c.CreatedBy,
		CompanyID:    c.CompanyID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		DeletedAt:    c.DeletedAt,
	}
}

// ToClientResponses mapea una lista de clientes.
func ToClientResponses(list []*entity.Client) []*ClientResponse {
	out := make([]*ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToClientResponse(c))
	}
	return out
}
