package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/albaranes-api/internal/domain"
	"github.com/jhoicas/albaranes-api/internal/domain/entity"
	"github.com/jhoicas/albaranes-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, status, role, verification_code,
	verification_attempts, login_attempts, reset_token, reset_token_expires,
	autonomo, personal_name, personal_surname, personal_nif,
	company_name, company_cif, company_address, logo_url,
	created_at, updated_at, deleted_at`

// UserRepo implementación PostgreSQL de UserRepository.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, status, role, verification_code,
			verification_attempts, login_attempts, reset_token, reset_token_expires,
			autonomo, personal_name, personal_surname, personal_nif,
			company_name, company_cif, company_address, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Status, user.Role, user.VerificationCode,
		user.VerificationAttempts, user.LoginAttempts, nullIfEmpty(user.ResetToken), user.ResetTokenExpires,
		user.Autonomo, user.PersonalData.Name, user.PersonalData.Surname, user.PersonalData.NIF,
		user.CompanyData.Name, user.CompanyData.CIF, user.CompanyData.Address, user.LogoURL,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetActive obtiene un usuario no archivado por ID.
func (r *UserRepo) GetActive(id string) (*entity.User, error) {
	return r.getWhere(`id = $1 AND deleted_at IS NULL`, id)
}

// GetAny obtiene un usuario por ID incluyendo archivados. Es la consulta que
// usa el middleware de autenticación: una cuenta archivada sigue siendo
// inspeccionable (por ejemplo, para restaurarla).
func (r *UserRepo) GetAny(id string) (*entity.User, error) {
	return r.getWhere(`id = $1`, id)
}

// GetByEmail obtiene un usuario activo por email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.getWhere(`email = $1 AND deleted_at IS NULL`, email)
}

// GetByResetToken obtiene un usuario activo por token de recuperación. La
// vigencia del token se comprueba en el use case.
func (r *UserRepo) GetByResetToken(token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}
	return r.getWhere(`reset_token = $1 AND deleted_at IS NULL`, token)
}

// Update actualiza todos los campos mutables del usuario.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET email = $2, password_hash = $3, status = $4, role = $5,
			verification_code = $6, verification_attempts = $7, login_attempts = $8,
			reset_token = $9, reset_token_expires = $10, autonomo = $11,
			personal_name = $12, personal_surname = $13, personal_nif = $14,
			company_name = $15, company_cif = $16, company_address = $17,
			logo_url = $18, updated_at = $19
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Status, user.Role,
		user.VerificationCode, user.VerificationAttempts, user.LoginAttempts,
		nullIfEmpty(user.ResetToken), user.ResetTokenExpires, user.Autonomo,
		user.PersonalData.Name, user.PersonalData.Surname, user.PersonalData.NIF,
		user.CompanyData.Name, user.CompanyData.CIF, user.CompanyData.Address,
		user.LogoURL, time.Now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// DecrementLoginAttempts resta 1 al contador en una única sentencia atómica
// (nunca por debajo de cero) y devuelve el valor resultante. Dos logins
// fallidos concurrentes no pueden saltarse el umbral de deshabilitación.
func (r *UserRepo) DecrementLoginAttempts(id string) (int, error) {
	var remaining int
	err := r.q.QueryRow(context.Background(),
		`UPDATE users SET login_attempts = GREATEST(login_attempts - 1, 0), updated_at = now()
		 WHERE id = $1 RETURNING login_attempts`, id).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("decrement login attempts: %w", err)
	}
	return remaining, nil
}

// DecrementVerificationAttempts ídem para los intentos de verificación.
func (r *UserRepo) DecrementVerificationAttempts(id string) (int, error) {
	var remaining int
	err := r.q.QueryRow(context.Background(),
		`UPDATE users SET verification_attempts = GREATEST(verification_attempts - 1, 0), updated_at = now()
		 WHERE id = $1 RETURNING verification_attempts`, id).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("decrement verification attempts: %w", err)
	}
	return remaining, nil
}

// ListIDsByCompanyCIF lista los IDs de los usuarios activos con ese CIF de compañía.
func (r *UserRepo) ListIDsByCompanyCIF(cif string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id FROM users WHERE company_cif = $1 AND deleted_at IS NULL`, cif)
	if err != nil {
		return nil, fmt.Errorf("list company users: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Archive marca el usuario como borrado (soft delete).
func (r *UserRepo) Archive(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("archive user: %w", err)
	}
	return nil
}

// Restore limpia el marcador de borrado.
func (r *UserRepo) Restore(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET deleted_at = NULL, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("restore user: %w", err)
	}
	return nil
}

// Purge elimina el usuario de forma permanente.
func (r *UserRepo) Purge(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el usuario tiene albaranes asociados", domain.ErrConflict)
		}
		return fmt.Errorf("purge user: %w", err)
	}
	return nil
}

func (r *UserRepo) getWhere(where string, arg any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	u, err := scanUser(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var resetToken *string
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Status, &u.Role, &u.VerificationCode,
		&u.VerificationAttempts, &u.LoginAttempts, &resetToken, &u.ResetTokenExpires,
		&u.Autonomo, &u.PersonalData.Name, &u.PersonalData.Surname, &u.PersonalData.NIF,
		&u.CompanyData.Name, &u.CompanyData.CIF, &u.CompanyData.Address, &u.LogoURL,
		&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if resetToken != nil {
		u.ResetToken = *resetToken
	}
	return &u, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
