package deliverynote_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/albaranes-api/internal/application/deliverynote"
	"github.com/jhoicas/albaranes-api/internal/application/dto"
	"github.com/jhoicas/albaranes-api/internal/application/ports"
	"github.com/jhoicas/albaranes-api/internal/domain"
	"github.com/jhoicas/albaranes-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeNoteRepo struct {
	notes map[string]*entity.DeliveryNote
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: map[string]*entity.DeliveryNote{}}
}

func (r *fakeNoteRepo) Create(n *entity.DeliveryNote) error {
	cp := *n
	r.notes[n.ID] = &cp
	return nil
}

func (r *fakeNoteRepo) GetActive(id string) (*entity.DeliveryNote, error) {
	n, ok := r.notes[id]
	if !ok || n.DeletedAt != nil {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNoteRepo) GetAny(id string) (*entity.DeliveryNote, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNoteRepo) ListByCreators(creatorIDs []string) ([]*entity.DeliveryNote, error) {
	var out []*entity.DeliveryNote
	for _, n := range r.notes {
		if n.DeletedAt != nil {
			continue
		}
		for _, id := range creatorIDs {
			if n.CreatedBy == id {
				cp := *n
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

// MarkSigned replica la guarda de la sentencia SQL: solo transiciona si el
// albarán existe, está activo y todavía no estaba firmado.
func (r *fakeNoteRepo) MarkSigned(id, signatureURL string) (bool, error) {
	n, ok := r.notes[id]
	if !ok || n.DeletedAt != nil || n.Signed {
		return false, nil
	}
	n.Signed = true
	n.SignatureURL = signatureURL
	return true, nil
}

func (r *fakeNoteRepo) Archive(id string) error {
	n, ok := r.notes[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	n.DeletedAt = &now
	return nil
}

func (r *fakeNoteRepo) Restore(id string) error {
	n, ok := r.notes[id]
	if !ok {
		return domain.ErrNotFound
	}
	n.DeletedAt = nil
	return nil
}

func (r *fakeNoteRepo) Purge(id string) error {
	delete(r.notes, id)
	return nil
}

// fakeClientRepo / fakeProjectRepo: solo lo que el caso de uso necesita.

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (r *fakeClientRepo) Create(c *entity.Client) error { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) GetActive(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	return c, nil
}
func (r *fakeClientRepo) GetAny(id string) (*entity.Client, error) { return r.clients[id], nil }
func (r *fakeClientRepo) Update(*entity.Client) error              { return nil }
func (r *fakeClientRepo) FindByCIFInScope(string, string, string) (*entity.Client, error) {
	return nil, nil
}
func (r *fakeClientRepo) ListActive(string, string) ([]*entity.Client, error)   { return nil, nil }
func (r *fakeClientRepo) ListArchived(string, string) ([]*entity.Client, error) { return nil, nil }
func (r *fakeClientRepo) Archive(string) error                                  { return nil }
func (r *fakeClientRepo) Restore(string) error                                  { return nil }
func (r *fakeClientRepo) Purge(string) error                                    { return nil }

type fakeProjectRepo struct {
	projects map[string]*entity.Project
}

func (r *fakeProjectRepo) Create(p *entity.Project) error { r.projects[p.ID] = p; return nil }
func (r *fakeProjectRepo) GetActive(id string) (*entity.Project, error) {
	p, ok := r.projects[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	return p, nil
}
func (r *fakeProjectRepo) GetAny(id string) (*entity.Project, error) { return r.projects[id], nil }
func (r *fakeProjectRepo) Update(*entity.Project) error              { return nil }
func (r *fakeProjectRepo) ExistsByNameClientOwner(string, string, string) (bool, error) {
	return false, nil
}
func (r *fakeProjectRepo) ListActive(string, string) ([]*entity.Project, error)   { return nil, nil }
func (r *fakeProjectRepo) ListArchived(string, string) ([]*entity.Project, error) { return nil, nil }
func (r *fakeProjectRepo) Archive(string) error                                   { return nil }
func (r *fakeProjectRepo) Restore(string) error                                   { return nil }
func (r *fakeProjectRepo) Purge(string) error                                     { return nil }

// fakeUserRepo: resolución de compañeros de compañía y de nombres para el PDF.

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetActive(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	return u, nil
}
func (r *fakeUserRepo) GetAny(id string) (*entity.User, error)           { return r.users[id], nil }
func (r *fakeUserRepo) GetByEmail(string) (*entity.User, error)          { return nil, nil }
func (r *fakeUserRepo) GetByResetToken(string) (*entity.User, error)     { return nil, nil }
func (r *fakeUserRepo) Update(*entity.User) error                        { return nil }
func (r *fakeUserRepo) DecrementLoginAttempts(string) (int, error)       { return 0, nil }
func (r *fakeUserRepo) DecrementVerificationAttempts(string) (int, error) { return 0, nil }
func (r *fakeUserRepo) ListIDsByCompanyCIF(cif string) ([]string, error) {
	var ids []string
	for id, u := range r.users {
		if u.DeletedAt == nil && u.CompanyCIF() == cif {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
func (r *fakeUserRepo) Archive(string) error { return nil }
func (r *fakeUserRepo) Restore(string) error { return nil }
func (r *fakeUserRepo) Purge(string) error   { return nil }

// fakeUploader simula Pinata; puede forzarse un fallo de subida.
type fakeUploader struct {
	uploads int
	failure error
}

func (u *fakeUploader) Upload(_ context.Context, _ []byte, filename string) (*ports.UploadResult, error) {
	if u.failure != nil {
		return nil, u.failure
	}
	u.uploads++
	return &ports.UploadResult{
		CID: "QmTestCID",
		URL: "https://gateway.pinata.cloud/ipfs/QmTestCID",
	}, nil
}

// fakePDFGen captura los datos con los que se pide el render.
type fakePDFGen struct {
	last deliverynote.NotePDFData
}

func (g *fakePDFGen) GenerateNotePDF(_ context.Context, data deliverynote.NotePDFData) ([]byte, error) {
	g.last = data
	return []byte("%PDF-1.7 fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *deliverynote.UseCase
	notes    *fakeNoteRepo
	users    *fakeUserRepo
	uploader *fakeUploader
	pdfGen   *fakePDFGen
	caller   *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	caller := &entity.User{
		ID:     "u1",
		Email:  "u1@test.com",
		Status: entity.StatusVerified,
		Role:   entity.RoleUser,
	}
	clients := &fakeClientRepo{clients: map[string]*entity.Client{
		"c1": {ID: "c1", Name: "ACME SL", CIF: "B12345678", CreatedBy: "u1"},
	}}
	projects := &fakeProjectRepo{projects: map[string]*entity.Project{
		"p1": {ID: "p1", Name: "Obra norte", ClientID: "c1", OwnerID: "u1"},
	}}
	users := &fakeUserRepo{users: map[string]*entity.User{"u1": caller}}
	notes := newFakeNoteRepo()
	uploader := &fakeUploader{}
	pdfGen := &fakePDFGen{}
	uc := deliverynote.NewUseCase(notes, clients, projects, users, uploader, pdfGen)
	return &fixture{uc: uc, notes: notes, users: users, uploader: uploader, pdfGen: pdfGen, caller: caller}
}

func (f *fixture) registerUser(u *entity.User) {
	f.users.users[u.ID] = u
}

func (f *fixture) createNote(t *testing.T) *entity.DeliveryNote {
	t.Helper()
	note, err := f.uc.Create(f.caller, dto.CreateNoteRequest{
		ClientID:  "c1",
		ProjectID: "p1",
		Type:      entity.NoteTypeHoras,
		Entries: []dto.NoteEntryRequest{
			{Name: "Desarrollo", Quantity: decimal.NewFromInt(8), Unit: "horas", Description: "Sprint 1"},
		},
	})
	require.NoError(t, err)
	return note
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestNoteCreate_TipoInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(f.caller, dto.CreateNoteRequest{
		ClientID: "c1", ProjectID: "p1", Type: "kilos",
		Entries: []dto.NoteEntryRequest{{Name: "x", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNoteCreate_SinEntradas(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(f.caller, dto.CreateNoteRequest{
		ClientID: "c1", ProjectID: "p1", Type: entity.NoteTypeHoras,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNoteCreate_CantidadNoPositiva(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(f.caller, dto.CreateNoteRequest{
		ClientID: "c1", ProjectID: "p1", Type: entity.NoteTypeMateriales,
		Entries: []dto.NoteEntryRequest{{Name: "Cemento", Quantity: decimal.Zero, Unit: "sacos"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNoteCreate_ClienteInexistente_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(f.caller, dto.CreateNoteRequest{
		ClientID: "no-existe", ProjectID: "p1", Type: entity.NoteTypeHoras,
		Entries: []dto.NoteEntryRequest{{Name: "x", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNoteCreate_ClienteDeOtro_Forbidden(t *testing.T) {
	f := newFixture(t)
	outsider := &entity.User{ID: "eve", Status: entity.StatusVerified, Role: entity.RoleUser}
	_, err := f.uc.Create(outsider, dto.CreateNoteRequest{
		ClientID: "c1", ProjectID: "p1", Type: entity.NoteTypeHoras,
		Entries: []dto.NoteEntryRequest{{Name: "x", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Firma: transición de un solo sentido
// ──────────────────────────────────────────────────────────────────────────────

func TestNoteSign_FijaSignedYURL(t *testing.T) {
	f := newFixture(t)
	note := f.createNote(t)

	signed, err := f.uc.Sign(context.Background(), f.caller, note.ID, []byte("png"), "firma.png")
	require.NoError(t, err)
	assert.True(t, signed.Signed)
	assert.Contains(t, signed.SignatureURL, "/ipfs/", "la URL de firma apunta al gateway")

	// Una segunda firma es rechazada.
	_, err = f.uc.Sign(context.Background(), f.caller, note.ID, []byte("png"), "firma.png")
	assert.ErrorIs(t, err, domain.ErrAlreadySigned)
	assert.Equal(t, 1, f.uploader.uploads, "no se vuelve a subir nada tras el rechazo")
}

func TestNoteSign_FalloDeSubida_SinEstadoParcial(t *testing.T) {
	f := newFixture(t)
	note := f.createNote(t)
	f.uploader.failure = errors.New("pinata no responde")

	_, err := f.uc.Sign(context.Background(), f.caller, note.ID, []byte("png"), "firma.png")
	require.Error(t, err)

	stored, err := f.notes.GetActive(note.ID)
	require.NoError(t, err)
	assert.False(t, stored.Signed, "un fallo de subida no deja el albarán firmado")
	assert.Empty(t, stored.SignatureURL)
}

func TestNoteSign_SinImagen(t *testing.T) {
	f := newFixture(t)
	note := f.createNote(t)

	_, err := f.uc.Sign(context.Background(), f.caller, note.ID, nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNoteSign_UsuarioDeOtraCompania_Forbidden(t *testing.T) {
	f := newFixture(t)
	outsider := &entity.User{
		ID:     "intruso",
		Email:  "intruso@otra.com",
		Status: entity.StatusVerified,
		Role:   entity.RoleUser,
	}
	f.registerUser(outsider)
	note := f.createNote(t)

	_, err := f.uc.Sign(context.Background(), outsider, note.ID, []byte("png"), "firma.png")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, f.uploader.uploads, "un rechazo de acceso no sube nada a IPFS")

	stored, err := f.notes.GetActive(note.ID)
	require.NoError(t, err)
	assert.False(t, stored.Signed)
	assert.Empty(t, stored.SignatureURL)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado: un albarán firmado es intocable
// ──────────────────────────────────────────────────────────────────────────────

func TestNoteDelete_SoftYPurge(t *testing.T) {
	f := newFixture(t)
	note := f.createNote(t)

	require.NoError(t, f.uc.Delete(f.caller, note.ID, true))
	_, err := f.uc.GetByID(f.caller, note.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Restaurado a mano en el fake para probar el purge.
	require.NoError(t, f.notes.Restore(note.ID))
	require.NoError(t, f.uc.Delete(f.caller, note.ID, false))
	stored, err := f.notes.GetAny(note.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestNoteDelete_Firmado_SiempreBloqueado(t *testing.T) {
	f := newFixture(t)
	note := f.createNote(t)
	_, err := f.uc.Sign(context.Background(), f.caller, note.ID, []byte("png"), "firma.png")
	require.NoError(t, err)

	// Ni soft ni hard, repetido las veces que haga falta.
	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, f.uc.Delete(f.caller, note.ID, true), domain.ErrSignedNoteLocked)
		assert.ErrorIs(t, f.uc.Delete(f.caller, note.ID, false), domain.ErrSignedNoteLocked)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestNotePDF_ResuelveNombresYNoMuta(t *testing.T) {
	f := newFixture(t)
	note := f.createNote(t)

	out, err := f.uc.GeneratePDF(context.Background(), f.caller, note.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	data := f.pdfGen.last
	assert.Equal(t, note.ID, data.NoteID)
	assert.Equal(t, "u1@test.com", data.UserName, "sin datos personales se usa el email")
	assert.Equal(t, "ACME SL", data.ClientName)
	assert.Equal(t, "Obra norte", data.ProjectName)
	assert.False(t, data.Signed)
	require.Len(t, data.Entries, 1)
	assert.Equal(t, "8", data.Entries[0].Quantity)

	stored, err := f.notes.GetActive(note.ID)
	require.NoError(t, err)
	assert.False(t, stored.Signed)
	assert.Equal(t, note.UpdatedAt.Unix(), stored.UpdatedAt.Unix(), "el render no muta el albarán")
}

func TestNotePDF_TrasFirma_MarcaFirmado(t *testing.T) {
	f := newFixture(t)
	note := f.createNote(t)
	_, err := f.uc.Sign(context.Background(), f.caller, note.ID, []byte("png"), "firma.png")
	require.NoError(t, err)

	_, err = f.uc.GeneratePDF(context.Background(), f.caller, note.ID)
	require.NoError(t, err)
	assert.True(t, f.pdfGen.last.Signed)
	assert.Contains(t, f.pdfGen.last.SignatureURL, "/ipfs/")
}

// ──────────────────────────────────────────────────────────────────────────────
// Visibilidad de compañía
// ──────────────────────────────────────────────────────────────────────────────

func TestNoteList_CompaneroDeCompaniaVe_TerceroNo(t *testing.T) {
	f := newFixture(t)

	// El creador y un compañero comparten CIF; un tercero no.
	f.caller.CompanyData.CIF = "A11111111"
	colleague := &entity.User{ID: "u2", Email: "u2@test.com", Status: entity.StatusVerified, Role: entity.RoleUser}
	colleague.CompanyData.CIF = "A11111111"
	outsider := &entity.User{ID: "u3", Email: "u3@test.com", Status: entity.StatusVerified, Role: entity.RoleUser}
	outsider.CompanyData.CIF = "A22222222"

	f.registerUser(colleague)
	f.registerUser(outsider)

	note := f.createNote(t)

	got, err := f.uc.GetByID(colleague, note.ID)
	require.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)

	list, err := f.uc.List(colleague)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.uc.GetByID(outsider, note.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	list, err = f.uc.List(outsider)
	require.NoError(t, err)
	assert.Empty(t, list)
}
