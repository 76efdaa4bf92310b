package dto

import "github.com/jhoicas/albaranes-api/internal/domain/entity"

// RegisterRequest entrada para el registro (password en texto, se hashea en el use case).
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Autonomo bool   `json:"autonomo"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidateEmailRequest código de verificación recibido por email.
type ValidateEmailRequest struct {
	Code string `json:"code"`
}

// RecoverRequest entrada para iniciar la recuperación de contraseña.
type RecoverRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest token de recuperación + nueva contraseña.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ChangePasswordRequest cambio de contraseña autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// InviteRequest invitación de un compañero de compañía como guest.
type InviteRequest struct {
	Email string `json:"email"`
}

// OnboardingRequest datos personales del onboarding.
type OnboardingRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	NIF     string `json:"nif"`
}

// CompanyRequest datos de la compañía.
type CompanyRequest struct {
	Name    string `json:"name"`
	CIF     string `json:"cif"`
	Address string `json:"address"`
}

// UserSummary vista reducida del usuario para respuestas de registro/login.
type UserSummary struct {
	Email  string `json:"email"`
	Status string `json:"status"`
	Role   string `json:"role"`
}

// AuthResponse respuesta de registro y login: resumen + token de sesión.
type AuthResponse struct {
	Message string      `json:"message,omitempty"`
	User    UserSummary `json:"user"`
	Token   string      `json:"token"`
}

// UserResponse perfil completo (sin hash de contraseña ni código de verificación).
type UserResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Status       string `json:"status"`
	Role         string `json:"role"`
	Autonomo     bool   `json:"autonomo"`
	PersonalData struct {
		Name    string `json:"name,omitempty"`
		Surname string `json:"surname,omitempty"`
		NIF     string `json:"nif,omitempty"`
	} `json:"personalData"`
	CompanyData struct {
		Name    string `json:"name,omitempty"`
		CIF     string `json:"cif,omitempty"`
		Address string `json:"address,omitempty"`
	} `json:"companyData"`
	LogoURL string `json:"logoUrl,omitempty"`
}

// ToUserResponse construye la vista pública de un usuario.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	out := &UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Status:   u.Status,
		Role:     u.Role,
		Autonomo: u.Autonomo,
		LogoURL:  u.LogoURL,
	}
	out.PersonalData.Name = u.PersonalData.Name
	out.PersonalData.Surname = u.PersonalData.Surname
	out.PersonalData.NIF = u.PersonalData.NIF
	out.CompanyData.Name = u.CompanyData.Name
	out.CompanyData.CIF = u.CompanyData.CIF
	out.CompanyData.Address = u.CompanyData.Address
	return out
}
