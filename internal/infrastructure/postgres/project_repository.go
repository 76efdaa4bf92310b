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

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

const projectColumns = `id, name, description, client_id, owner_id, company_id,
	start_date, end_date, created_at, updated_at, deleted_at`

// ProjectRepo implementación PostgreSQL de ProjectRepository.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

// Create persiste un nuevo proyecto.
func (r *ProjectRepo) Create(project *entity.Project) error {
	query := `
		INSERT INTO projects (id, name, description, client_id, owner_id, company_id,
			start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.Name, project.Description, project.ClientID, project.OwnerID,
		project.CompanyID, project.StartDate, project.EndDate, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetActive obtiene un proyecto no archivado por ID.
func (r *ProjectRepo) GetActive(id string) (*entity.Project, error) {
	return r.getWhere(`id = $1 AND deleted_at IS NULL`, id)
}

// GetAny obtiene un proyecto por ID incluyendo archivados.
func (r *ProjectRepo) GetAny(id string) (*entity.Project, error) {
	return r.getWhere(`id = $1`, id)
}

// Update actualiza un proyecto.
func (r *ProjectRepo) Update(project *entity.Project) error {
	query := `
		UPDATE projects SET name = $2, description = $3, start_date = $4, end_date = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.Name, project.Description, project.StartDate, project.EndDate, project.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// ExistsByNameClientOwner comprueba la unicidad de (name, client, owner)
// entre proyectos no archivados.
func (r *ProjectRepo) ExistsByNameClientOwner(name, clientID, ownerID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM projects
			WHERE name = $1 AND client_id = $2 AND owner_id = $3 AND deleted_at IS NULL)`,
		name, clientID, ownerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists project: %w", err)
	}
	return exists, nil
}

// ListActive lista los proyectos no archivados del propietario o de su compañía.
func (r *ProjectRepo) ListActive(ownerID, companyCIF string) ([]*entity.Project, error) {
	return r.listWhere(`deleted_at IS NULL`, ownerID, companyCIF)
}

// ListArchived lista los proyectos archivados del propietario o de su compañía.
func (r *ProjectRepo) ListArchived(ownerID, companyCIF string) ([]*entity.Project, error) {
	return r.listWhere(`deleted_at IS NOT NULL`, ownerID, companyCIF)
}

// Archive marca el proyecto como borrado (soft delete).
func (r *ProjectRepo) Archive(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE projects SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("archive project: %w", err)
	}
	return nil
}

// Restore limpia el marcador de borrado.
func (r *ProjectRepo) Restore(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE projects SET deleted_at = NULL, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("restore project: %w", err)
	}
	return nil
}

// Purge elimina el proyecto de forma permanente.
func (r *ProjectRepo) Purge(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el proyecto tiene albaranes asociados", domain.ErrConflict)
		}
		return fmt.Errorf("purge project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) getWhere(where string, arg any) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE ` + where
	p, err := scanProject(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepo) listWhere(cond, ownerID, companyCIF string) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
		WHERE ` + cond + ` AND (owner_id = $1 OR (company_id <> '' AND company_id = $2))
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, ownerID, companyCIF)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.ClientID, &p.OwnerID, &p.CompanyID,
		&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
