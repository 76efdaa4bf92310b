package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/albaranes-api/internal/application/dto"
	"github.com/jhoicas/albaranes-api/internal/application/ports"
	"github.com/jhoicas/albaranes-api/internal/domain"
	"github.com/jhoicas/albaranes-api/internal/domain/entity"
	"github.com/jhoicas/albaranes-api/internal/domain/repository"
	"github.com/jhoicas/albaranes-api/pkg/jwt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Vigencia del token de recuperación de contraseña.
const resetTokenTTL = 15 * time.Minute

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de credenciales y sesión: registro, login,
// verificación de email, recuperación y cambio de contraseña e invitaciones.
type AuthUseCase struct {
	userRepo repository.UserRepository
	mailer   ports.EmailSender
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, mailer ports.EmailSender, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, mailer: mailer, jwtCfg: jwtCfg}
}

// Register crea un usuario pending con código de verificación, hashea la
// contraseña, envía el código por email y emite un token de sesión.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son obligatorios", domain.ErrInvalidInput)
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, fmt.Errorf("%w: email no válido", domain.ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: password debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	code, err := generateCode()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:                   uuid.New().String(),
		Email:                in.Email,
		PasswordHash:         string(hash),
		Status:               entity.StatusPending,
		Role:                 entity.RoleUser,
		VerificationCode:     code,
		VerificationAttempts: entity.MaxVerificationAttempts,
		LoginAttempts:        entity.MaxLoginAttempts,
		Autonomo:             in.Autonomo,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	if err := uc.mailer.Send(ctx, user.Email, "Verificación de cuenta",
		fmt.Sprintf("Tu código de verificación es: %s", code)); err != nil {
		return nil, fmt.Errorf("enviar email de verificación: %w", err)
	}

	return &dto.AuthResponse{
		User:  dto.UserSummary{Email: user.Email, Status: user.Status, Role: user.Role},
		Token: token,
	}, nil
}

// Login verifica email/password y emite un token. Un fallo de contraseña
// decrementa atómicamente los intentos; al llegar a cero la cuenta pasa a
// disabled y a partir de ahí el login falla aunque la contraseña sea correcta.
// Las cuentas pending pueden entrar, pero la respuesta lo advierte.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Status == entity.StatusDisabled {
		return nil, fmt.Errorf("%w: tu cuenta ha sido deshabilitada", domain.ErrAccountDisabled)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		remaining, derr := uc.userRepo.DecrementLoginAttempts(user.ID)
		if derr != nil {
			return nil, derr
		}
		if remaining <= 0 {
			user.Status = entity.StatusDisabled
			user.LoginAttempts = 0
			if uerr := uc.userRepo.Update(user); uerr != nil {
				return nil, uerr
			}
			return nil, fmt.Errorf("%w: tu cuenta ha sido deshabilitada por múltiples intentos fallidos de login", domain.ErrAccountDisabled)
		}
		return nil, fmt.Errorf("%w. Intentos restantes: %d", domain.ErrInvalidCredentials, remaining)
	}

	// Login correcto: resetear el contador.
	user.LoginAttempts = entity.MaxLoginAttempts
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	out := &dto.AuthResponse{
		User:  dto.UserSummary{Email: user.Email, Status: user.Status, Role: user.Role},
		Token: token,
	}
	if user.Status == entity.StatusPending {
		out.Message = "Tu cuenta está pendiente de verificación"
	}
	return out, nil
}

// VerifyEmail compara el código recibido con el almacenado. Un fallo
// decrementa los intentos de verificación y al llegar a cero deshabilita la
// cuenta; un acierto pasa la cuenta a verified.
func (uc *AuthUseCase) VerifyEmail(userID, code string) error {
	user, err := uc.userRepo.GetActive(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Status == entity.StatusDisabled {
		return fmt.Errorf("%w: esta cuenta está deshabilitada", domain.ErrAccountDisabled)
	}
	if user.VerificationCode != code {
		remaining, derr := uc.userRepo.DecrementVerificationAttempts(user.ID)
		if derr != nil {
			return derr
		}
		if remaining <= 0 {
			user.Status = entity.StatusDisabled
			user.VerificationAttempts = 0
			if uerr := uc.userRepo.Update(user); uerr != nil {
				return uerr
			}
			return fmt.Errorf("%w: cuenta deshabilitada por demasiados intentos fallidos", domain.ErrAccountDisabled)
		}
		return fmt.Errorf("%w. Intentos restantes: %d", domain.ErrInvalidCode, remaining)
	}

	user.Status = entity.StatusVerified
	return uc.userRepo.Update(user)
}

// RecoverPassword genera un token de recuperación con vigencia de 15 minutos
// y lo envía por email.
func (uc *AuthUseCase) RecoverPassword(ctx context.Context, email string) error {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: no existe ningún usuario con ese email", domain.ErrUserNotFound)
	}

	token, err := randomHex(32)
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetTokenTTL)
	user.ResetToken = token
	user.ResetTokenExpires = &expires
	if err := uc.userRepo.Update(user); err != nil {
		return err
	}

	return uc.mailer.Send(ctx, user.Email, "Recuperación de contraseña",
		fmt.Sprintf("Tu token de recuperación es: %s", token))
}

// ResetPassword cambia la contraseña si el token es válido y no ha expirado,
// y limpia el token.
func (uc *AuthUseCase) ResetPassword(token, newPassword string) error {
	if token == "" || len(newPassword) < 8 {
		return fmt.Errorf("%w: token y newPassword (mínimo 8 caracteres) son obligatorios", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByResetToken(token)
	if err != nil {
		return err
	}
	if user == nil || user.ResetTokenExpires == nil || time.Now().After(*user.ResetTokenExpires) {
		return domain.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.ResetToken = ""
	user.ResetTokenExpires = nil
	return uc.userRepo.Update(user)
}

// ChangePassword cambia la contraseña de un usuario autenticado previa
// comprobación de la actual.
func (uc *AuthUseCase) ChangePassword(userID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: la nueva contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetActive(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("%w: la contraseña actual no es correcta", domain.ErrInvalidCredentials)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return uc.userRepo.Update(user)
}

// Invite crea un usuario guest pending con la companyData del invitador y le
// envía credenciales temporales. El invitador debe estar verificado.
func (uc *AuthUseCase) Invite(ctx context.Context, inviterID, email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: email no válido", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: ese correo ya está registrado", domain.ErrEmailAlreadyExists)
	}
	inviter, err := uc.userRepo.GetActive(inviterID)
	if err != nil {
		return err
	}
	if inviter == nil || inviter.Status != entity.StatusVerified {
		return fmt.Errorf("%w: no autorizado para invitar", domain.ErrForbidden)
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	tempPassword, err := randomHex(8)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	invited := &entity.User{
		ID:                   uuid.New().String(),
		Email:                email,
		PasswordHash:         string(hash),
		Status:               entity.StatusPending,
		Role:                 entity.RoleGuest,
		VerificationCode:     code,
		VerificationAttempts: entity.MaxVerificationAttempts,
		LoginAttempts:        entity.MaxLoginAttempts,
		CompanyData:          inviter.CompanyData,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.userRepo.Create(invited); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Has sido invitado a unirte a la compañía de %s como usuario guest.\n\n"+
			"Email: %s\nContraseña temporal: %s\nCódigo de verificación: %s\n\n"+
			"Inicia sesión y valida tu cuenta con el código anterior.",
		inviter.Email, email, tempPassword, code)
	return uc.mailer.Send(ctx, email, "Invitación para unirse a la compañía", body)
}

// generateCode devuelve un código de verificación de 6 dígitos.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// randomHex devuelve n bytes aleatorios en hexadecimal.
func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
