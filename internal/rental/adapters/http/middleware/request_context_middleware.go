// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"movierental/internal/rental/adapters/http/response"
	"movierental/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestContextMiddleware кладет в Locals контекст запроса с логгером log
// и идентификатором из заголовка X-Request-ID (или новым). nil log означает
// глобальный логгер.
func NewRequestContextMiddleware(log *logger.Logger) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		var base context.Context = ctx.Context()

		requestCtx := logger.NewRequestIDContext(base, ctx.Get(HeaderRequestID))
		if log != nil {
			requestCtx = logger.NewContext(requestCtx, log)
		}

		if id, ok := logger.GetRequestID(requestCtx); ok {
			ctx.Set(HeaderRequestID, id)
		}
		ctx.Locals(response.ContextKey, requestCtx)

		return ctx.Next()
	}
}
