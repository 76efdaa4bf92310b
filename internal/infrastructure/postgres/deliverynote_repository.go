package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/albaranes-api/internal/domain/entity"
	"github.com/jhoicas/albaranes-api/internal/domain/repository"
)

var _ repository.DeliveryNoteRepository = (*DeliveryNoteRepo)(nil)

const noteColumns = `id, created_by, client_id, project_id, type, entries,
	signed, signature_url, created_at, updated_at, deleted_at`

// DeliveryNoteRepo implementación PostgreSQL de DeliveryNoteRepository.
// Las entradas del albarán se guardan como jsonb.
type DeliveryNoteRepo struct {
	q Querier
}

// NewDeliveryNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryNoteRepository(q Querier) *DeliveryNoteRepo {
	return &DeliveryNoteRepo{q: q}
}

// Create persiste un nuevo albarán.
func (r *DeliveryNoteRepo) Create(note *entity.DeliveryNote) error {
	entries, err := json.Marshal(note.Entries)
	if err != nil {
		return fmt.Errorf("marshal entries: %w", err)
	}
	query := `
		INSERT INTO delivery_notes (id, created_by, client_id, project_id, type, entries,
			signed, signature_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(context.Background(), query,
		note.ID, note.CreatedBy, note.ClientID, note.ProjectID, note.Type, entries,
		note.Signed, note.SignatureURL, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery note: %w", err)
	}
	return nil
}

// GetActive obtiene un albarán no archivado por ID.
func (r *DeliveryNoteRepo) GetActive(id string) (*entity.DeliveryNote, error) {
	return r.getWhere(`id = $1 AND deleted_at IS NULL`, id)
}

// GetAny obtiene un albarán por ID incluyendo archivados.
func (r *DeliveryNoteRepo) GetAny(id string) (*entity.DeliveryNote, error) {
	return r.getWhere(`id = $1`, id)
}

// ListByCreators lista los albaranes activos creados por cualquiera de los
// usuarios indicados.
func (r *DeliveryNoteRepo) ListByCreators(creatorIDs []string) ([]*entity.DeliveryNote, error) {
	if len(creatorIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + noteColumns + ` FROM delivery_notes
		WHERE created_by = ANY($1) AND deleted_at IS NULL
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, creatorIDs)
	if err != nil {
		return nil, fmt.Errorf("list delivery notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeliveryNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery note: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkSigned fija signed=true y la URL de la firma solo si el albarán sigue
// sin firmar: la guarda (AND NOT signed) hace la transición atómica y de un
// solo sentido aunque dos firmas compitan.
func (r *DeliveryNoteRepo) MarkSigned(id, signatureURL string) (bool, error) {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE delivery_notes SET signed = TRUE, signature_url = $2, updated_at = now()
		 WHERE id = $1 AND NOT signed AND deleted_at IS NULL`, id, signatureURL)
	if err != nil {
		return false, fmt.Errorf("mark signed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Archive marca el albarán como borrado (soft delete). El use case garantiza
// que nunca se llama sobre un albarán firmado.
func (r *DeliveryNoteRepo) Archive(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE delivery_notes SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("archive delivery note: %w", err)
	}
	return nil
}

// Restore limpia el marcador de borrado.
func (r *DeliveryNoteRepo) Restore(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE delivery_notes SET deleted_at = NULL, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("restore delivery note: %w", err)
	}
	return nil
}

// Purge elimina el albarán de forma permanente.
func (r *DeliveryNoteRepo) Purge(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM delivery_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("purge delivery note: %w", err)
	}
	return nil
}

func (r *DeliveryNoteRepo) getWhere(where string, arg any) (*entity.DeliveryNote, error) {
	query := `SELECT ` + noteColumns + ` FROM delivery_notes WHERE ` + where
	n, err := scanNote(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery note: %w", err)
	}
	return n, nil
}

func scanNote(row pgx.Row) (*entity.DeliveryNote, error) {
	var n entity.DeliveryNote
	var entries []byte
	err := row.Scan(
		&n.ID, &n.CreatedBy, &n.ClientID, &n.ProjectID, &n.Type, &entries,
		&n.Signed, &n.SignatureURL, &n.CreatedAt, &n.UpdatedAt, &n.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		if err := json.Unmarshal(entries, &n.Entries); err != nil {
			return nil, fmt.Errorf("unmarshal entries: %w", err)
		}
	}
	return &n, nil
}
