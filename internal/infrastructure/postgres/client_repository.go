package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/albaranes-api/internal/domain"
	"github.com/jhoicas/albaranes-api/internal/domain/entity"
	"github.com/jhoicas/albaranes-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, name, cif, address, contact_email, contact_phone,
	created_by, company_id, created_at, updated_at, deleted_at`

// ClientRepo implementación PostgreSQL de ClientRepository.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, cif, address, contact_email, contact_phone,
			created_by, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.CIF, client.Address, client.ContactEmail, client.ContactPhone,
		client.CreatedBy, client.CompanyID, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetActive obtiene un cliente no archivado por ID.
func (r *ClientRepo) GetActive(id string) (*entity.Client, error) {
	return r.getWhere(`id = $1 AND deleted_at IS NULL`, id)
}

// GetAny obtiene un cliente por ID incluyendo archivados.
func (r *ClientRepo) GetAny(id string) (*entity.Client, error) {
	return r.getWhere(`id = $1`, id)
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, cif = $3, address = $4, contact_email = $5,
			contact_phone = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.CIF, client.Address, client.ContactEmail,
		client.ContactPhone, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// FindByCIFInScope busca un cliente activo con ese CIF dentro del ámbito del
// creador o de su compañía. El mismo CIF puede existir para usuarios sin relación.
func (r *ClientRepo) FindByCIFInScope(cif, createdBy, companyCIF string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients
		WHERE cif = $1 AND deleted_at IS NULL
		  AND (created_by = $2 OR (company_id <> '' AND company_id = $3))
		LIMIT 1`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, cif, createdBy, companyCIF))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find client by cif: %w", err)
	}
	return c, nil
}

// ListActive lista los clientes no archivados del creador o de su compañía.
func (r *ClientRepo) ListActive(createdBy, companyCIF string) ([]*entity.Client, error) {
	return r.listWhere(`deleted_at IS NULL`, createdBy, companyCIF)
}

// ListArchived lista los clientes archivados del creador o de su compañía.
func (r *ClientRepo) ListArchived(createdBy, companyCIF string) ([]*entity.Client, error) {
	return r.listWhere(`deleted_at IS NOT NULL`, createdBy, companyCIF)
}

// Archive marca el cliente como borrado (soft delete).
func (r *ClientRepo) Archive(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE clients SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("archive client: %w", err)
	}
	return nil
}

// Restore limpia el marcador de borrado.
func (r *ClientRepo) Restore(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE clients SET deleted_at = NULL, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("restore client: %w", err)
	}
	return nil
}

// Purge elimina el cliente de forma permanente.
func (r *ClientRepo) Purge(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el cliente tiene albaranes asociados", domain.ErrConflict)
		}
		return fmt.Errorf("purge client: %w", err)
	}
	return nil
}

func (r *ClientRepo) getWhere(where string, arg any) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE ` + where
	c, err := scanClient(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *ClientRepo) listWhere(cond, createdBy, companyCIF string) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients
		WHERE ` + cond + ` AND (created_by = $1 OR (company_id <> '' AND company_id = $2))
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, createdBy, companyCIF)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.Name, &c.CIF, &c.Address, &c.ContactEmail, &c.ContactPhone,
		&c.CreatedBy, &c.CompanyID, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
