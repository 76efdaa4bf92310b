package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/albaranes-api/internal/application/dto"
	"github.com/jhoicas/albaranes-api/internal/domain"
	"github.com/jhoicas/albaranes-api/internal/domain/entity"
	"github.com/jhoicas/albaranes-api/internal/domain/policy"
	"github.com/jhoicas/albaranes-api/internal/domain/repository"
)

// ProjectUseCase CRUD con borrado lógico de proyectos. El cliente referido
// debe existir y ser accesible, y la tripleta (name, client, owner) es única
// entre proyectos no archivados.
type ProjectUseCase struct {
	projectRepo repository.ProjectRepository
	clientRepo  repository.ClientRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(projectRepo repository.ProjectRepository, clientRepo repository.ClientRepository) *ProjectUseCase {
	return &ProjectUseCase{projectRepo: projectRepo, clientRepo: clientRepo}
}

// Create da de alta un proyecto sobre un cliente accesible.
func (uc *ProjectUseCase) Create(caller *entity.User, in dto.ProjectRequest) (*entity.Project, error) {
	if in.Name == "" || in.Client == "" {
		return nil, fmt.Errorf("%w: name y client son obligatorios", domain.ErrInvalidInput)
	}

	client, err := uc.clientRepo.GetActive(in.Client)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: el cliente no existe", domain.ErrNotFound)
	}
	if !policy.CanAccess(caller, client.CreatedBy, client.CompanyID) {
		return nil, domain.ErrForbidden
	}

	exists, err := uc.projectRepo.ExistsByNameClientOwner(in.Name, in.Client, caller.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: ya existe un proyecto con ese nombre para ese cliente", domain.ErrDuplicate)
	}

	now := time.Now()
	project := &entity.Project{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		ClientID:    in.Client,
		OwnerID:     caller.ID,
		CompanyID:   caller.CompanyCIF(),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.projectRepo.Create(project); err != nil {
		return nil, err
	}
	return project, nil
}

// Update modifica un proyecto accesible por el usuario.
func (uc *ProjectUseCase) Update(caller *entity.User, id string, in dto.ProjectRequest) (*entity.Project, error) {
	project, err := uc.getOwned(caller, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		project.Name = in.Name
	}
	project.Description = in.Description
	project.StartDate = in.StartDate
	project.EndDate = in.EndDate
	project.UpdatedAt = time.Now()
	if err := uc.projectRepo.Update(project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetByID devuelve un proyecto activo: 404 si no existe, 403 si existe pero
// el usuario no pasa el predicado de acceso.
func (uc *ProjectUseCase) GetByID(caller *entity.User, id string) (*entity.Project, error) {
	return uc.getOwned(caller, id)
}

// List lista los proyectos activos del usuario y de su compañía.
func (uc *ProjectUseCase) List(caller *entity.User) ([]*entity.Project, error) {
	return uc.projectRepo.ListActive(caller.ID, caller.CompanyCIF())
}

// ListArchived lista los proyectos archivados del usuario y de su compañía.
func (uc *ProjectUseCase) ListArchived(caller *entity.User) ([]*entity.Project, error) {
	return uc.projectRepo.ListArchived(caller.ID, caller.CompanyCIF())
}

// Delete archiva (soft, por defecto) o elimina permanentemente un proyecto.
func (uc *ProjectUseCase) Delete(caller *entity.User, id string, soft bool) error {
	if _, err := uc.getOwned(caller, id); err != nil {
		return err
	}
	if soft {
		return uc.projectRepo.Archive(id)
	}
	return uc.projectRepo.Purge(id)
}

// Restore recupera un proyecto archivado reevaluando el predicado de acceso
// contra el registro archivado.
func (uc *ProjectUseCase) Restore(caller *entity.User, id string) (*entity.Project, error) {
	project, err := uc.projectRepo.GetAny(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanAccess(caller, project.OwnerID, project.CompanyID) {
		return nil, domain.ErrForbidden
	}
	if !project.Archived() {
		return nil, fmt.Errorf("%w: el proyecto no está archivado", domain.ErrNotArchived)
	}
	if err := uc.projectRepo.Restore(id); err != nil {
		return nil, err
	}
	project.DeletedAt = nil
	return project, nil
}

func (uc *ProjectUseCase) getOwned(caller *entity.User, id string) (*entity.Project, error) {
	project, err := uc.projectRepo.GetActive(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanAccess(caller, project.OwnerID, project.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return project, nil
}
