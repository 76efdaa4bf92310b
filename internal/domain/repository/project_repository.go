package repository

import "github.com/jhoicas/albaranes-api/internal/domain/entity"

// ProjectRepository define el puerto de persistencia para Project.
type ProjectRepository interface {
	Create(project *entity.Project) error
	GetActive(id string) (*entity.Project, error)
	GetAny(id string) (*entity.Project, error)
	Update(project *entity.Project) error

	// ExistsByNameClientOwner comprueba la unicidad de la tripleta
	// (name, client, owner) entre proyectos no archivados.
	ExistsByNameClientOwner(name, clientID, ownerID string) (bool, error)

	ListActive(ownerID, companyCIF string) ([]*entity.Project, error)
	ListArchived(ownerID, companyCIF string) ([]*entity.Project, error)

	Archive(id string) error
	Restore(id string) error
	Purge(id string) error
}
