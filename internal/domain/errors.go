package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los
// traducen al código de estado correspondiente; ningún error crudo de
// persistencia o de colaboradores llega a la capa de transporte.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrAccountDisabled    = errors.New("cuenta deshabilitada")
	ErrAccountNotVerified = errors.New("cuenta no verificada")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidCode        = errors.New("código de verificación incorrecto")
	ErrInvalidResetToken  = errors.New("token de recuperación inválido o expirado")
	ErrNotArchived        = errors.New("el recurso no está archivado")
	ErrAlreadySigned      = errors.New("el albarán ya está firmado")
	ErrSignedNoteLocked   = errors.New("un albarán firmado no se puede eliminar")
)
