// Package stock содержит HTTP-обработчики учета копий.
package stock

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"movierental/internal/rental/adapters/http/response"
	"movierental/internal/rental/app/dto"
	"movierental/internal/rental/ports/api"
	"movierental/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerInStock    = "handling in stock request"
	LogHandlerAddCopy    = "handling add copy request"
	LogHandlerRemoveCopy = "handling remove copy request"
	LogHandlerAlerts     = "handling stock alerts request"

	ErrMsgInvalidMovieID = "invalid movie id"
)

// Handler обработчик HTTP-запросов склада.
type Handler struct {
	inventory api.InventoryUseCase
	alerts    api.StockAlerts
}

// NewHandler создает обработчик. alerts может быть nil.
func NewHandler(inventory api.InventoryUseCase, alerts api.StockAlerts) *Handler {
	return &Handler{inventory: inventory, alerts: alerts}
}

// InStock возвращает остаток по названию. Без названия возвращается сумма по всем фильмам.
func (h *Handler) InStock(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	logger.Log(reqCtx).Debug(reqCtx, LogHandlerInStock)

	title := ctx.Query("title")
	return response.JSON(ctx, fiber.StatusOK, dto.StockResponse{
		Title:   title,
		InStock: h.inventory.InStock(reqCtx, title),
	})
}

// AddCopy добавляет копию фильма на склад.
func (h *Handler) AddCopy(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.AddCopy"))
	log.Debug(reqCtx, LogHandlerAddCopy)

	movieID, err := strconv.Atoi(ctx.Params("movie_id"))
	if err != nil {
		return response.BadRequest(ctx, ErrMsgInvalidMovieID)
	}

	inStock, err := h.inventory.AddCopy(reqCtx, movieID)
	if err != nil {
		log.Error(reqCtx, "failed to add copy", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.StockResponse{MovieID: movieID, InStock: inStock})
}

// RemoveCopy снимает копию фильма со склада.
func (h *Handler) RemoveCopy(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.RemoveCopy"))
	log.Debug(reqCtx, LogHandlerRemoveCopy)

	movieID, err := strconv.Atoi(ctx.Params("movie_id"))
	if err != nil {
		return response.BadRequest(ctx, ErrMsgInvalidMovieID)
	}

	inStock, err := h.inventory.RemoveCopy(reqCtx, movieID)
	if err != nil {
		log.Error(reqCtx, "failed to remove copy", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.StockResponse{MovieID: movieID, InStock: inStock})
}

// Alerts возвращает последние низкие остатки, записанные слушателем Redis.
func (h *Handler) Alerts(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.Alerts"))
	log.Debug(reqCtx, LogHandlerAlerts)

	if h.alerts == nil {
		return response.JSON(ctx, fiber.StatusOK, map[string]int{})
	}

	levels, err := h.alerts.Levels(reqCtx)
	if err != nil {
		log.Error(reqCtx, "failed to read stock alerts", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, levels)
}
