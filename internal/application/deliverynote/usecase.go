package deliverynote

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/albaranes-api/internal/application/dto"
	"github.com/jhoicas/albaranes-api/internal/application/ports"
	"github.com/jhoicas/albaranes-api/internal/domain"
	"github.com/jhoicas/albaranes-api/internal/domain/entity"
	"github.com/jhoicas/albaranes-api/internal/domain/policy"
	"github.com/jhoicas/albaranes-api/internal/domain/repository"
)

// UseCase albaranes: alta, consulta, firma (transición de un solo sentido),
// borrado y generación de PDF. Un albarán firmado es inmutable: no admite
// borrado lógico ni físico.
type UseCase struct {
	noteRepo    repository.DeliveryNoteRepository
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	uploader    ports.Uploader
	pdfGen      PDFGenerator
}

// NewUseCase construye el caso de uso de albaranes.
func NewUseCase(
	noteRepo repository.DeliveryNoteRepository,
	clientRepo repository.ClientRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	uploader ports.Uploader,
	pdfGen PDFGenerator,
) *UseCase {
	return &UseCase{
		noteRepo:    noteRepo,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		uploader:    uploader,
		pdfGen:      pdfGen,
	}
}

// Create da de alta un albarán sobre un cliente y proyecto accesibles.
func (uc *UseCase) Create(caller *entity.User, in dto.CreateNoteRequest) (*entity.DeliveryNote, error) {
	if !entity.ValidNoteType(in.Type) {
		return nil, fmt.Errorf("%w: type debe ser horas o materiales", domain.ErrInvalidInput)
	}
	if len(in.Entries) == 0 {
		return nil, fmt.Errorf("%w: el albarán debe tener al menos una entrada", domain.ErrInvalidInput)
	}

	client, err := uc.clientRepo.GetActive(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: el cliente no existe", domain.ErrNotFound)
	}
	if !policy.CanAccess(caller, client.CreatedBy, client.CompanyID) {
		return nil, domain.ErrForbidden
	}
	project, err := uc.projectRepo.GetActive(in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: el proyecto no existe", domain.ErrNotFound)
	}
	if !policy.CanAccess(caller, project.OwnerID, project.CompanyID) {
		return nil, domain.ErrForbidden
	}

	entries := make([]entity.NoteEntry, 0, len(in.Entries))
	for _, e := range in.Entries {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: cada entrada necesita un nombre", domain.ErrInvalidInput)
		}
		if e.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: la cantidad de %q debe ser mayor que cero", domain.ErrInvalidInput, e.Name)
		}
		entries = append(entries, entity.NoteEntry{
			Name:        e.Name,
			Quantity:    e.Quantity,
			Unit:        e.Unit,
			Description: e.Description,
		})
	}

	now := time.Now()
	note := &entity.DeliveryNote{
		ID:        uuid.New().String(),
		CreatedBy: caller.ID,
		ClientID:  in.ClientID,
		ProjectID: in.ProjectID,
		Type:      in.Type,
		Entries:   entries,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.noteRepo.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

// List lista los albaranes del usuario y de los usuarios de su compañía.
func (uc *UseCase) List(caller *entity.User) ([]*entity.DeliveryNote, error) {
	ids, err := uc.companyUserIDs(caller)
	if err != nil {
		return nil, err
	}
	return uc.noteRepo.ListByCreators(ids)
}

// GetByID devuelve un albarán activo: 404 si no existe, 403 si existe pero
// el usuario no pasa el predicado de acceso (creador o compañero de compañía).
func (uc *UseCase) GetByID(caller *entity.User, id string) (*entity.DeliveryNote, error) {
	return uc.getAccessible(caller, id)
}

// Sign firma un albarán: con el mismo predicado de acceso que la consulta,
// sube la imagen de la firma al servicio de pinning y, solo si la subida tuvo
// éxito, fija signed=true con la URL resultante en una única sentencia con
// guarda. Si la subida falla no queda estado parcial. La transición es
// irreversible.
func (uc *UseCase) Sign(ctx context.Context, caller *entity.User, id string, image []byte, filename string) (*entity.DeliveryNote, error) {
	note, err := uc.getAccessible(caller, id)
	if err != nil {
		return nil, err
	}
	if note.Signed {
		return nil, domain.ErrAlreadySigned
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: no se ha subido ninguna imagen de firma", domain.ErrInvalidInput)
	}

	res, err := uc.uploader.Upload(ctx, image, filename)
	if err != nil {
		return nil, fmt.Errorf("subir firma a IPFS: %w", err)
	}

	ok, err := uc.noteRepo.MarkSigned(id, res.URL)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Otro proceso firmó entre la lectura y la guarda.
		return nil, domain.ErrAlreadySigned
	}
	note.Signed = true
	note.SignatureURL = res.URL
	return note, nil
}

// Delete archiva o elimina un albarán. Un albarán firmado nunca se puede
// borrar, ni lógica ni físicamente, sea quien sea el solicitante.
func (uc *UseCase) Delete(caller *entity.User, id string, soft bool) error {
	note, err := uc.getAccessible(caller, id)
	if err != nil {
		return err
	}
	if note.Signed {
		return domain.ErrSignedNoteLocked
	}
	if soft {
		return uc.noteRepo.Archive(id)
	}
	return uc.noteRepo.Purge(id)
}

// GeneratePDF genera la representación en PDF del albarán. Solo lectura,
// mismo predicado de acceso que la consulta; nunca muta el albarán.
func (uc *UseCase) GeneratePDF(ctx context.Context, caller *entity.User, id string) ([]byte, error) {
	note, err := uc.getAccessible(caller, id)
	if err != nil {
		return nil, err
	}

	client, err := uc.clientRepo.GetAny(note.ClientID)
	if err != nil {
		return nil, err
	}
	project, err := uc.projectRepo.GetAny(note.ProjectID)
	if err != nil {
		return nil, err
	}
	creator, err := uc.userRepo.GetAny(note.CreatedBy)
	if err != nil {
		return nil, err
	}

	data := NotePDFData{
		NoteID:       note.ID,
		UserName:     creatorName(creator),
		ClientName:   nameOrEmpty(client),
		ProjectName:  projectName(project),
		Type:         note.Type,
		Signed:       note.Signed,
		SignatureURL: note.SignatureURL,
	}
	for _, e := range note.Entries {
		data.Entries = append(data.Entries, PDFEntry{
			Name:        e.Name,
			Quantity:    e.Quantity.String(),
			Unit:        e.Unit,
			Description: e.Description,
		})
	}
	return uc.pdfGen.GenerateNotePDF(ctx, data)
}

// companyUserIDs devuelve los IDs cuyos albaranes puede ver el usuario: el
// suyo propio y los de los compañeros con su mismo CIF de compañía.
func (uc *UseCase) companyUserIDs(caller *entity.User) ([]string, error) {
	cif := caller.CompanyCIF()
	if cif == "" {
		return []string{caller.ID}, nil
	}
	ids, err := uc.userRepo.ListIDsByCompanyCIF(cif)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if id == caller.ID {
			return ids, nil
		}
	}
	return append(ids, caller.ID), nil
}

func (uc *UseCase) getAccessible(caller *entity.User, id string) (*entity.DeliveryNote, error) {
	note, err := uc.noteRepo.GetActive(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	ids, err := uc.companyUserIDs(caller)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccessNote(caller, note.CreatedBy, ids) {
		return nil, domain.ErrForbidden
	}
	return note, nil
}

func creatorName(u *entity.User) string {
	if u == nil {
		return ""
	}
	if u.PersonalData.Name != "" {
		return u.PersonalData.Name + " " + u.PersonalData.Surname
	}
	return u.Email
}

func nameOrEmpty(c *entity.Client) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func projectName(p *entity.Project) string {
	if p == nil {
		return ""
	}
	return p.Name
}
