// Package response содержит общие функции HTTP-обработчиков: извлечение
// контекста запроса и перевод ошибок домена в коды ответа.
package response

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"movierental/internal/rental/domain/errs"
)

// ContextKey - ключ Locals, под которым middleware хранит контекст запроса.
const ContextKey = "userContext"

// ErrMsgInternal - тело ответа для непредвиденных ошибок.
const ErrMsgInternal = "Internal server error"

// RequestContext возвращает контекст запроса из Locals или контекст fiber.
func RequestContext(ctx fiber.Ctx) context.Context {
	if reqCtx, ok := ctx.Locals(ContextKey).(context.Context); ok {
		return reqCtx
	}
	var base context.Context = ctx.Context()
	return base
}

// StatusFor возвращает HTTP-код для ошибки по ее виду.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errs.ErrDomainRule):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Error отправляет ответ с кодом по виду ошибки. Текст ошибок домена
// передается клиенту как есть, остальные скрываются.
func Error(ctx fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return send(ctx, fiberErr.Code, fiber.Map{"error": fiberErr.Message})
	}

	status := StatusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = ErrMsgInternal
	}
	return send(ctx, status, fiber.Map{"error": msg})
}

// BadRequest отправляет ответ 400 с сообщением msg.
func BadRequest(ctx fiber.Ctx, msg string) error {
	return send(ctx, fiber.StatusBadRequest, fiber.Map{"error": msg})
}

// JSON отправляет тело body с кодом status.
func JSON(ctx fiber.Ctx, status int, body any) error {
	return send(ctx, status, body)
}

func send(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
