package repository

import "github.com/jhoicas/albaranes-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetActive(id string) (*entity.Client, error)
	GetAny(id string) (*entity.Client, error)
	Update(client *entity.Client) error

	// FindByCIFInScope busca un cliente activo con ese CIF creado por el
	// usuario o por su compañía (control de duplicados por ámbito).
	FindByCIFInScope(cif, createdBy, companyCIF string) (*entity.Client, error)

	ListActive(createdBy, companyCIF string) ([]*entity.Client, error)
	ListArchived(createdBy, companyCIF string) ([]*entity.Client, error)

	Archive(id string) error
	Restore(id string) error
	Purge(id string) error
}
