package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/albaranes-api/internal/application/dto"
	"github.com/jhoicas/albaranes-api/internal/application/ports"
	"github.com/jhoicas/albaranes-api/internal/application/usecase"
	"github.com/jhoicas/albaranes-api/internal/domain"
	"github.com/jhoicas/albaranes-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetActive(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetAny(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(string) (*entity.User, error)      { return nil, nil }
func (r *fakeUserRepo) GetByResetToken(string) (*entity.User, error) { return nil, nil }

func (r *fakeUserRepo) Update(u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) DecrementLoginAttempts(string) (int, error)        { return 0, nil }
func (r *fakeUserRepo) DecrementVerificationAttempts(string) (int, error) { return 0, nil }
func (r *fakeUserRepo) ListIDsByCompanyCIF(string) ([]string, error)      { return nil, nil }

func (r *fakeUserRepo) Archive(id string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

func (r *fakeUserRepo) Restore(id string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.DeletedAt = nil
	return nil
}

func (r *fakeUserRepo) Purge(id string) error {
	delete(r.users, id)
	return nil
}

type fakeUploader struct {
	failure error
}

func (u *fakeUploader) Upload(_ context.Context, _ []byte, _ string) (*ports.UploadResult, error) {
	if u.failure != nil {
		return nil, u.failure
	}
	return &ports.UploadResult{CID: "QmLogo", URL: "https://gateway.pinata.cloud/ipfs/QmLogo"}, nil
}

func seedUser(repo *fakeUserRepo, autonomo bool) *entity.User {
	u := &entity.User{
		ID:            "u1",
		Email:         "a@b.com",
		Status:        entity.StatusVerified,
		Role:          entity.RoleUser,
		Autonomo:      autonomo,
		LoginAttempts: entity.MaxLoginAttempts,
	}
	repo.users[u.ID] = u
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfil
// ──────────────────────────────────────────────────────────────────────────────

func TestUserMe_OcultaCredenciales(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(repo, false)
	u.PasswordHash = "hash-secreto"
	u.VerificationCode = "123456"
	uc := usecase.NewUserUseCase(repo, &fakeUploader{})

	out, err := uc.Me("u1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", out.Email)
	assert.Equal(t, entity.StatusVerified, out.Status)
}

func TestUserOnboarding_GuardaDatosPersonales(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, false)
	uc := usecase.NewUserUseCase(repo, &fakeUploader{})

	err := uc.UpdateOnboarding("u1", dto.OnboardingRequest{Name: "Ana", Surname: "García", NIF: "12345678Z"})
	require.NoError(t, err)

	u, _ := repo.GetActive("u1")
	assert.Equal(t, "Ana", u.PersonalData.Name)
	assert.Equal(t, "12345678Z", u.PersonalData.NIF)
}

func TestUserCompany_AutonomoSinCIF_UsaDatosPersonales(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, true)
	uc := usecase.NewUserUseCase(repo, &fakeUploader{})
	require.NoError(t, uc.UpdateOnboarding("u1", dto.OnboardingRequest{Name: "Ana", Surname: "García", NIF: "12345678Z"}))

	require.NoError(t, uc.UpdateCompany("u1", dto.CompanyRequest{Address: "Calle Mayor 1"}))

	u, _ := repo.GetActive("u1")
	assert.Equal(t, "Ana García", u.CompanyData.Name)
	assert.Equal(t, "12345678Z", u.CompanyData.CIF, "el NIF personal hace de CIF de compañía")
	assert.Equal(t, "12345678Z", u.CompanyCIF())
}

func TestUserCompany_ConCIFExplicito(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, false)
	uc := usecase.NewUserUseCase(repo, &fakeUploader{})

	require.NoError(t, uc.UpdateCompany("u1", dto.CompanyRequest{Name: "ACME SL", CIF: "B12345678", Address: "Calle Mayor 1"}))

	u, _ := repo.GetActive("u1")
	assert.Equal(t, "B12345678", u.CompanyData.CIF)
}

// ──────────────────────────────────────────────────────────────────────────────
// Logo
// ──────────────────────────────────────────────────────────────────────────────

func TestUserLogo_GuardaURLDelGateway(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, false)
	uc := usecase.NewUserUseCase(repo, &fakeUploader{})

	url, err := uc.UpdateLogo(context.Background(), "u1", []byte("png"), "logo.png")
	require.NoError(t, err)
	assert.Contains(t, url, "/ipfs/")

	u, _ := repo.GetActive("u1")
	assert.Equal(t, url, u.LogoURL)
}

func TestUserLogo_FalloDeSubida_NoGuardaNada(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, false)
	uc := usecase.NewUserUseCase(repo, &fakeUploader{failure: errors.New("pinata no responde")})

	_, err := uc.UpdateLogo(context.Background(), "u1", []byte("png"), "logo.png")
	require.Error(t, err)

	u, _ := repo.GetActive("u1")
	assert.Empty(t, u.LogoURL)
}

// ──────────────────────────────────────────────────────────────────────────────
// Archivado y restauración de la cuenta
// ──────────────────────────────────────────────────────────────────────────────

func TestUserDeleteRestore_RoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(repo, false)
	u.LoginAttempts = 1
	uc := usecase.NewUserUseCase(repo, &fakeUploader{})

	require.NoError(t, uc.Delete("u1", true))
	_, err := uc.Me("u1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound, "una cuenta archivada no aparece como activa")

	require.NoError(t, uc.Restore("u1"))
	restored, _ := repo.GetActive("u1")
	require.NotNil(t, restored)
	assert.Equal(t, entity.MaxLoginAttempts, restored.LoginAttempts, "restaurar restablece los intentos")
	assert.Equal(t, entity.StatusVerified, restored.Status)
}

func TestUserRestore_NoArchivado(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, false)
	uc := usecase.NewUserUseCase(repo, &fakeUploader{})

	assert.ErrorIs(t, uc.Restore("u1"), domain.ErrNotArchived)
}

func TestUserDelete_Purge_Definitivo(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, false)
	uc := usecase.NewUserUseCase(repo, &fakeUploader{})

	require.NoError(t, uc.Delete("u1", false))
	assert.ErrorIs(t, uc.Restore("u1"), domain.ErrUserNotFound)
}
