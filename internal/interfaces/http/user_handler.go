package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/albaranes-api/internal/application/auth"
	"github.com/jhoicas/albaranes-api/internal/application/dto"
	"github.com/jhoicas/albaranes-api/internal/application/usecase"
)

// UserHandler maneja registro, sesión y perfil de usuario.
type UserHandler struct {
	authUC *auth.AuthUseCase
	userUC *usecase.UserUseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(authUC *auth.AuthUseCase, userUC *usecase.UserUseCase) *UserHandler {
	return &UserHandler{authUC: authUC, userUC: userUC}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, autonomo"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/user/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.authUC.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/user/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "email y password son requeridos")
	}
	out, err := h.authUC.Login(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Recover godoc
// @Summary      Solicitar recuperación de contraseña
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecoverRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/user/recover [post]
func (h *UserHandler) Recover(c *fiber.Ctx) error {
	var in dto.RecoverRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Email == "" {
		return badRequest(c, "email es requerido")
	}
	if err := h.authUC.RecoverPassword(c.Context(), in.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Se ha enviado un email con el token de recuperación"})
}

// ResetPassword godoc
// @Summary      Restablecer contraseña con token de recuperación
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "token, newPassword"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/user/reset-password [put]
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Token == "" || in.NewPassword == "" {
		return badRequest(c, "token y newPassword son requeridos")
	}
	if err := h.authUC.ResetPassword(in.Token, in.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Contraseña restablecida correctamente"})
}

// Validate godoc
// @Summary      Validar email con el código recibido
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateEmailRequest  true  "code"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/user/validation [put]
func (h *UserHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Code == "" {
		return badRequest(c, "code es requerido")
	}
	if err := h.authUC.VerifyEmail(GetUser(c).ID, in.Code); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Email verificado correctamente"})
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         user
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Security     BearerAuth
// @Router       /api/user/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	out, err := h.userUC.Me(GetUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Onboarding godoc
// @Summary      Completar datos personales (onboarding)
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OnboardingRequest  true  "name, surname, nif"
// @Success      200   {object}  dto.MessageResponse
// @Security     BearerAuth
// @Router       /api/user/register [put]
func (h *UserHandler) Onboarding(c *fiber.Ctx) error {
	var in dto.OnboardingRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Name == "" || in.Surname == "" || in.NIF == "" {
		return badRequest(c, "name, surname y nif son requeridos")
	}
	if err := h.userUC.UpdateOnboarding(GetUser(c).ID, in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Datos personales actualizados"})
}

// Company godoc
// @Summary      Actualizar datos de la compañía
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompanyRequest  true  "name, cif, address"
// @Success      200   {object}  dto.MessageResponse
// @Security     BearerAuth
// @Router       /api/user/company [patch]
func (h *UserHandler) Company(c *fiber.Ctx) error {
	var in dto.CompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := h.userUC.UpdateCompany(GetUser(c).ID, in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Datos de compañía actualizados"})
}

// Logo godoc
// @Summary      Subir logo del usuario (multipart, campo "logo")
// @Tags         user
// @Accept       multipart/form-data
// @Produce      json
// @Param        logo  formData  file  true  "imagen del logo"
// @Success      200   {object}  dto.MessageResponse
// @Security     BearerAuth
// @Router       /api/user/logo [patch]
func (h *UserHandler) Logo(c *fiber.Ctx) error {
	data, filename, err := readFormFile(c, "logo")
	if err != nil {
		return badRequest(c, "fichero 'logo' requerido")
	}
	url, err := h.userUC.UpdateLogo(c.Context(), GetUser(c).ID, data, filename)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logo actualizado", "logoUrl": url})
}

// Delete godoc
// @Summary      Eliminar la cuenta (soft por defecto; ?soft=false purga)
// @Tags         user
// @Produce      json
// @Param        soft  query  string  false  "true (por defecto) archiva; false purga"
// @Success      200   {object}  dto.MessageResponse
// @Security     BearerAuth
// @Router       /api/user [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	soft := c.Query("soft", "true") != "false"
	if err := h.userUC.Delete(GetUser(c).ID, soft); err != nil {
		return respondError(c, err)
	}
	if soft {
		return c.JSON(dto.MessageResponse{Message: "Usuario archivado correctamente"})
	}
	return c.JSON(dto.MessageResponse{Message: "Usuario eliminado correctamente"})
}

// Restore godoc
// @Summary      Restaurar la cuenta archivada
// @Tags         user
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/user/restore [put]
func (h *UserHandler) Restore(c *fiber.Ctx) error {
	if err := h.userUC.Restore(GetUser(c).ID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Usuario restaurado correctamente"})
}

// Password godoc
// @Summary      Cambiar contraseña (autenticado)
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "currentPassword, newPassword"
// @Success      200   {object}  dto.MessageResponse
// @Security     BearerAuth
// @Router       /api/user/password [patch]
func (h *UserHandler) Password(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return badRequest(c, "currentPassword y newPassword son requeridos")
	}
	if err := h.authUC.ChangePassword(GetUser(c).ID, in.CurrentPassword, in.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Contraseña actualizada correctamente"})
}

// Invite godoc
// @Summary      Invitar a un compañero de compañía (rol guest)
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InviteRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/user/invite [post]
func (h *UserHandler) Invite(c *fiber.Ctx) error {
	var in dto.InviteRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Email == "" {
		return badRequest(c, "email es requerido")
	}
	if err := h.authUC.Invite(c.Context(), GetUser(c).ID, in.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Invitación enviada correctamente"})
}

// readFormFile lee un fichero multipart en memoria.
func readFormFile(c *fiber.Ctx, field string) (data []byte, filename string, err error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err = io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Filename, nil
}
