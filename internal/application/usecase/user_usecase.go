package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/albaranes-api/internal/application/dto"
	"github.com/jhoicas/albaranes-api/internal/application/ports"
	"github.com/jhoicas/albaranes-api/internal/domain"
	"github.com/jhoicas/albaranes-api/internal/domain/entity"
	"github.com/jhoicas/albaranes-api/internal/domain/repository"
)

// UserUseCase perfil y ciclo de vida de la cuenta: onboarding, compañía,
// logo, archivado y restauración.
type UserUseCase struct {
	userRepo repository.UserRepository
	uploader ports.Uploader
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository, uploader ports.Uploader) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, uploader: uploader}
}

// Me devuelve el perfil del usuario autenticado (sin hash ni código).
func (uc *UserUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetActive(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}

// UpdateOnboarding guarda los datos personales del onboarding.
func (uc *UserUseCase) UpdateOnboarding(userID string, in dto.OnboardingRequest) error {
	user, err := uc.userRepo.GetActive(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	user.PersonalData = entity.PersonalData{Name: in.Name, Surname: in.Surname, NIF: in.NIF}
	return uc.userRepo.Update(user)
}

// UpdateCompany guarda los datos de la compañía. Para autónomos sin datos de
// compañía, los datos personales hacen de datos de compañía.
func (uc *UserUseCase) UpdateCompany(userID string, in dto.CompanyRequest) error {
	user, err := uc.userRepo.GetActive(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Autonomo && in.CIF == "" {
		user.CompanyData = entity.CompanyData{
			Name:    user.PersonalData.Name + " " + user.PersonalData.Surname,
			CIF:     user.PersonalData.NIF,
			Address: in.Address,
		}
	} else {
		user.CompanyData = entity.CompanyData{Name: in.Name, CIF: in.CIF, Address: in.Address}
	}
	return uc.userRepo.Update(user)
}

// UpdateLogo sube el logo al servicio de pinning y guarda la URL del gateway.
func (uc *UserUseCase) UpdateLogo(ctx context.Context, userID string, data []byte, filename string) (string, error) {
	user, err := uc.userRepo.GetActive(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: no se ha subido ningún archivo", domain.ErrInvalidInput)
	}
	res, err := uc.uploader.Upload(ctx, data, filename)
	if err != nil {
		return "", fmt.Errorf("subir logo a IPFS: %w", err)
	}
	user.LogoURL = res.URL
	if err := uc.userRepo.Update(user); err != nil {
		return "", err
	}
	return res.URL, nil
}

// Delete archiva (soft=true, por defecto) o elimina permanentemente la
// cuenta. Una cuenta archivada no puede hacer login hasta ser restaurada.
func (uc *UserUseCase) Delete(userID string, soft bool) error {
	user, err := uc.userRepo.GetActive(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if soft {
		return uc.userRepo.Archive(userID)
	}
	return uc.userRepo.Purge(userID)
}

// Restore reactiva una cuenta archivada: limpia el marcador de borrado,
// restablece los intentos de login y deja la cuenta verificada.
func (uc *UserUseCase) Restore(userID string) error {
	user, err := uc.userRepo.GetAny(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !user.Archived() {
		return fmt.Errorf("%w: el usuario no está archivado", domain.ErrNotArchived)
	}
	if err := uc.userRepo.Restore(userID); err != nil {
		return err
	}
	user.DeletedAt = nil
	user.LoginAttempts = entity.MaxLoginAttempts
	user.Status = entity.StatusVerified
	return uc.userRepo.Update(user)
}
