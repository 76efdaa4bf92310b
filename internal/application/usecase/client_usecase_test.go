package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/albaranes-api/internal/application/dto"
	"github.com/jhoicas/albaranes-api/internal/application/usecase"
	"github.com/jhoicas/albaranes-api/internal/domain"
	"github.com/jhoicas/albaranes-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria de ClientRepository
// ──────────────────────────────────────────────────────────────────────────────

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[string]*entity.Client{}}
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) GetActive(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) GetAny(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error {
	if _, ok := r.clients[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) FindByCIFInScope(cif, createdBy, companyCIF string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.DeletedAt != nil || c.CIF != cif {
			continue
		}
		if c.CreatedBy == createdBy || (c.CompanyID != "" && c.CompanyID == companyCIF) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) list(createdBy, companyCIF string, archived bool) []*entity.Client {
	var out []*entity.Client
	for _, c := range r.clients {
		if (c.DeletedAt != nil) != archived {
			continue
		}
		if c.CreatedBy == createdBy || (c.CompanyID != "" && c.CompanyID == companyCIF) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out
}

func (r *fakeClientRepo) ListActive(createdBy, companyCIF string) ([]*entity.Client, error) {
	return r.list(createdBy, companyCIF, false), nil
}

func (r *fakeClientRepo) ListArchived(createdBy, companyCIF string) ([]*entity.Client, error) {
	return r.list(createdBy, companyCIF, true), nil
}

func (r *fakeClientRepo) Archive(id string) error {
	c, ok := r.clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	c.DeletedAt = &now
	return nil
}

func (r *fakeClientRepo) Restore(id string) error {
	c, ok := r.clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.DeletedAt = nil
	return nil
}

func (r *fakeClientRepo) Purge(id string) error {
	delete(r.clients, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func verifiedUser(id, companyCIF string) *entity.User {
	u := &entity.User{
		ID:     id,
		Email:  id + "@test.com",
		Status: entity.StatusVerified,
		Role:   entity.RoleUser,
	}
	u.CompanyData.CIF = companyCIF
	return u
}

func createClient(t *testing.T, uc *usecase.ClientUseCase, caller *entity.User, name, cif string) *entity.Client {
	t.Helper()
	c, err := uc.Create(caller, dto.ClientRequest{Name: name, CIF: cif})
	require.NoError(t, err)
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestClientCreate_RequiereCuentaVerificada(t *testing.T) {
	uc := usecase.NewClientUseCase(newFakeClientRepo())
	pending := verifiedUser("u1", "")
	pending.Status = entity.StatusPending

	_, err := uc.Create(pending, dto.ClientRequest{Name: "X", CIF: "B12345678"})
	assert.ErrorIs(t, err, domain.ErrAccountNotVerified)
}

func TestClientCreate_ValidaCIF(t *testing.T) {
	uc := usecase.NewClientUseCase(newFakeClientRepo())
	caller := verifiedUser("u1", "")

	_, err := uc.Create(caller, dto.ClientRequest{Name: "X", CIF: "12345678B"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(caller, dto.ClientRequest{Name: "X", CIF: "b12345678"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err := uc.Create(caller, dto.ClientRequest{Name: "X", CIF: "B12345678"})
	require.NoError(t, err)
	assert.Equal(t, "X", c.Name)
}

func TestClientCreate_CIFDuplicadoEnAmbito_Conflict(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)
	caller := verifiedUser("u1", "A11111111")
	createClient(t, uc, caller, "X", "B12345678")

	// El mismo usuario no puede repetir CIF.
	_, err := uc.Create(caller, dto.ClientRequest{Name: "Y", CIF: "B12345678"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Un compañero de la misma compañía tampoco.
	colleague := verifiedUser("u2", "A11111111")
	_, err = uc.Create(colleague, dto.ClientRequest{Name: "Y", CIF: "B12345678"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Un usuario de otra compañía sí puede dar de alta ese mismo CIF.
	outsider := verifiedUser("u3", "A22222222")
	_, err = uc.Create(outsider, dto.ClientRequest{Name: "Y", CIF: "B12345678"})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Acceso: 404 si no existe, 403 si existe pero no es accesible
// ──────────────────────────────────────────────────────────────────────────────

func TestClientGet_NoExiste_NotFound(t *testing.T) {
	uc := usecase.NewClientUseCase(newFakeClientRepo())
	_, err := uc.GetByID(verifiedUser("u1", ""), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientGet_DeOtroUsuario_Forbidden(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)
	owner := verifiedUser("u1", "A11111111")
	c := createClient(t, uc, owner, "X", "B12345678")

	outsider := verifiedUser("u2", "A22222222")
	_, err := uc.GetByID(outsider, c.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"existe pero no es accesible: 403, no 404")

	_, err = uc.Update(outsider, c.ID, dto.ClientRequest{Name: "Z"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.Delete(outsider, c.ID, true)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestClientVisibilidadDeCompania_TresUsuarios(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)

	// Dos usuarios de la misma compañía, un tercero fuera.
	alice := verifiedUser("alice", "A11111111")
	bob := verifiedUser("bob", "A11111111")
	eve := verifiedUser("eve", "A22222222")

	cAlice := createClient(t, uc, alice, "Cliente de Alice", "B11111111")
	cBob := createClient(t, uc, bob, "Cliente de Bob", "B22222222")

	// Ambos compañeros ven los dos clientes.
	for _, u := range []*entity.User{alice, bob} {
		list, err := uc.List(u)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	}

	// El tercero no ve ninguno y recibe 403 en acceso directo.
	list, err := uc.List(eve)
	require.NoError(t, err)
	assert.Empty(t, list)
	for _, id := range []string{cAlice.ID, cBob.ID} {
		_, err := uc.GetByID(eve, id)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo archivar / restaurar / purgar
// ──────────────────────────────────────────────────────────────────────────────

func TestClientArchiveRestore_RoundTrip(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)
	caller := verifiedUser("u1", "")
	c := createClient(t, uc, caller, "X", "B12345678")

	require.NoError(t, uc.Delete(caller, c.ID, true))

	// Archivado: fuera del listado activo, dentro del archivado.
	_, err := uc.GetByID(caller, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	archived, err := uc.ListArchived(caller)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.NotNil(t, archived[0].DeletedAt)

	restored, err := uc.Restore(caller, c.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)

	// Estado observable idéntico al previo al archivado.
	got, err := uc.GetByID(caller, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Name, got.Name)
	assert.Equal(t, c.CIF, got.CIF)
	assert.Equal(t, c.CreatedBy, got.CreatedBy)
}

func TestClientRestore_NoArchivado(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)
	caller := verifiedUser("u1", "")
	c := createClient(t, uc, caller, "X", "B12345678")

	_, err := uc.Restore(caller, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotArchived)
}

func TestClientPurge_EliminaDefinitivamente(t *testing.T) {
	repo := newFakeClientRepo()
	uc := usecase.NewClientUseCase(repo)
	caller := verifiedUser("u1", "")
	c := createClient(t, uc, caller, "X", "B12345678")

	require.NoError(t, uc.Delete(caller, c.ID, false))

	_, err := uc.GetByID(caller, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	archived, err := uc.ListArchived(caller)
	require.NoError(t, err)
	assert.Empty(t, archived, "un purge no deja rastro en el archivo")

	_, err = uc.Restore(caller, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
