package repository

import "github.com/jhoicas/albaranes-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
//
// El contrato de archivado es explícito: GetActive excluye archivados,
// GetAny los incluye (necesario para autenticar cuentas archivadas y poder
// restaurarlas), Archive/Restore/Purge son el ciclo de vida completo.
type UserRepository interface {
	Create(user *entity.User) error
	GetActive(id string) (*entity.User, error)
	GetAny(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByResetToken(token string) (*entity.User, error)
	Update(user *entity.User) error

	// DecrementLoginAttempts resta 1 en una sola sentencia atómica
	// (nunca por debajo de cero) y devuelve los intentos restantes.
	DecrementLoginAttempts(id string) (int, error)
	// DecrementVerificationAttempts ídem para el código de verificación.
	DecrementVerificationAttempts(id string) (int, error)

	// ListIDsByCompanyCIF devuelve los IDs de los usuarios activos que
	// comparten CIF de compañía (incluye al que lo consulta).
	ListIDsByCompanyCIF(cif string) ([]string, error)

	Archive(id string) error
	Restore(id string) error
	Purge(id string) error
}
