package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/albaranes-api/internal/application/dto"
	"github.com/jhoicas/albaranes-api/internal/application/ports"
	"github.com/jhoicas/albaranes-api/internal/domain"
)

// statusFor traduce los errores de dominio a códigos HTTP. Los use cases
// envuelven los sentinelas con contexto (fmt.Errorf + %w), por eso errors.Is.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrInvalidResetToken),
		errors.Is(err, domain.ErrAlreadySigned),
		errors.Is(err, domain.ErrNotArchived):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrAccountDisabled),
		errors.Is(err, domain.ErrAccountNotVerified),
		errors.Is(err, domain.ErrSignedNoteLocked):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError escribe el cuerpo de error estándar {error: mensaje}.
func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(dto.ErrorResponse{Error: err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
}

// NotifyMiddleware reporta las respuestas 5xx al canal de monitorización.
// Se ejecuta después del handler; la notificación es fire-and-forget y nunca
// altera la respuesta ya escrita.
func NotifyMiddleware(notifier ports.Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		if status < fiber.StatusInternalServerError {
			return err
		}
		event := ports.NotifyEvent{
			Method: c.Method(),
			Path:   c.Path(),
			Status: status,
		}
		if err != nil {
			event.Message = err.Error()
		} else {
			event.Message = string(c.Response().Body())
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			notifier.Notify(ctx, event)
		}()
		return err
	}
}
