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

// ClientUseCase CRUD con borrado lógico de clientes, siempre detrás del
// predicado de acceso por propiedad/compañía.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(clientRepo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo}
}

// Create da de alta un cliente para el usuario y su compañía. Requiere
// cuenta verificada y un CIF válido; el CIF debe ser único dentro del ámbito
// (creador O compañía del creador).
func (uc *ClientUseCase) Create(caller *entity.User, in dto.ClientRequest) (*entity.Client, error) {
	if caller.Status != entity.StatusVerified {
		return nil, fmt.Errorf("%w: cuenta no verificada", domain.ErrAccountNotVerified)
	}
	if in.Name == "" || in.CIF == "" {
		return nil, fmt.Errorf("%w: name y cif son obligatorios", domain.ErrInvalidInput)
	}
	if !entity.ValidCIF(in.CIF) {
		return nil, fmt.Errorf("%w: el CIF debe ser una letra mayúscula seguida de 8 dígitos", domain.ErrInvalidInput)
	}

	existing, err := uc.clientRepo.FindByCIFInScope(in.CIF, caller.ID, caller.CompanyCIF())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: este cliente ya está registrado por ti o tu compañía", domain.ErrDuplicate)
	}

	now := time.Now()
	client := &entity.Client{
		ID:           uuid.New().String(),
		Name:         in.Name,
		CIF:          in.CIF,
		Address:      in.Address,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		CreatedBy:    caller.ID,
		CompanyID:    caller.CompanyCIF(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

// Update modifica un cliente accesible por el usuario.
func (uc *ClientUseCase) Update(caller *entity.User, id string, in dto.ClientRequest) (*entity.Client, error) {
	client, err := uc.getOwned(caller, id)
	if err != nil {
		return nil, err
	}
	if in.CIF != "" && !entity.ValidCIF(in.CIF) {
		return nil, fmt.Errorf("%w: el CIF debe ser una letra mayúscula seguida de 8 dígitos", domain.ErrInvalidInput)
	}
	if in.Name != "" {
		client.Name = in.Name
	}
	if in.CIF != "" {
		client.CIF = in.CIF
	}
	client.Address = in.Address
	client.ContactEmail = in.ContactEmail
	client.ContactPhone = in.ContactPhone
	client.UpdatedAt = time.Now()
	if err := uc.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetByID devuelve un cliente activo. 404 si no existe, 403 si existe pero
// el usuario no pasa el predicado de acceso (resultados distintos, nunca
// confundidos).
func (uc *ClientUseCase) GetByID(caller *entity.User, id string) (*entity.Client, error) {
	return uc.getOwned(caller, id)
}

// List lista los clientes activos del usuario y de su compañía.
func (uc *ClientUseCase) List(caller *entity.User) ([]*entity.Client, error) {
	return uc.clientRepo.ListActive(caller.ID, caller.CompanyCIF())
}

// ListArchived lista los clientes archivados del usuario y de su compañía.
func (uc *ClientUseCase) ListArchived(caller *entity.User) ([]*entity.Client, error) {
	return uc.clientRepo.ListArchived(caller.ID, caller.CompanyCIF())
}

// Delete archiva (soft, por defecto) o elimina permanentemente un cliente.
func (uc *ClientUseCase) Delete(caller *entity.User, id string, soft bool) error {
	if _, err := uc.getOwned(caller, id); err != nil {
		return err
	}
	if soft {
		return uc.clientRepo.Archive(id)
	}
	return uc.clientRepo.Purge(id)
}

// Restore recupera un cliente archivado. El predicado de acceso se reevalúa
// contra el registro archivado, que sigue siendo inspeccionable.
func (uc *ClientUseCase) Restore(caller *entity.User, id string) (*entity.Client, error) {
	client, err := uc.clientRepo.GetAny(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanAccess(caller, client.CreatedBy, client.CompanyID) {
		return nil, domain.ErrForbidden
	}
	if !client.Archived() {
		return nil, fmt.Errorf("%w: el cliente no está archivado", domain.ErrNotArchived)
	}
	if err := uc.clientRepo.Restore(id); err != nil {
		return nil, err
	}
	client.DeletedAt = nil
	return client, nil
}

// getOwned devuelve el cliente activo si el usuario pasa el predicado de acceso.
func (uc *ClientUseCase) getOwned(caller *entity.User, id string) (*entity.Client, error) {
	client, err := uc.clientRepo.GetActive(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanAccess(caller, client.CreatedBy, client.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return client, nil
}
