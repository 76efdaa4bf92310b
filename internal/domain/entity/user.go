package entity

import "time"

// Estados de la cuenta de usuario. Exactamente uno en todo momento;
// "disabled" bloquea login y verificación hasta un restore explícito.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusDisabled = "disabled"
)

// Roles de usuario.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// Intentos iniciales de login y de verificación de email.
const (
	MaxLoginAttempts        = 3
	MaxVerificationAttempts = 3
)

// PersonalData datos personales del usuario (onboarding).
type PersonalData struct {
	Name    string
	Surname string
	NIF     string
}

// CompanyData datos de la compañía del usuario. El CIF actúa como
// identificador de tenant: los recursos son visibles para todos los
// usuarios que comparten CIF de compañía.
type CompanyData struct {
	Name    string
	CIF     string
	Address string
}

// User cuenta de usuario con verificación por email, recuperación de
// contraseña y borrado lógico (DeletedAt != nil = archivado).
type User struct {
	ID                   string
	Email                string
	PasswordHash         string
	Status               string // pending, verified, disabled
	Role                 string // user, admin, guest
	VerificationCode     string
	VerificationAttempts int
	LoginAttempts        int
	ResetToken           string
	ResetTokenExpires    *time.Time
	Autonomo             bool // autónomo: sus datos personales hacen de datos de compañía
	PersonalData         PersonalData
	CompanyData          CompanyData
	LogoURL              string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time
}

// Archived indica si el usuario está archivado (soft delete).
func (u *User) Archived() bool { return u.DeletedAt != nil }

// CompanyCIF devuelve el identificador de compañía efectivo: para autónomos
// es su NIF personal, para el resto el CIF de companyData.
func (u *User) CompanyCIF() string {
	if u.Autonomo && u.CompanyData.CIF == "" {
		return u.PersonalData.NIF
	}
	return u.CompanyData.CIF
}
