// Package rentals содержит HTTP-обработчики выдачи и возврата фильмов.
package rentals

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
	LogHandlerCreateRental = "handling create rental request"
	LogHandlerListRentals  = "handling list rentals request"
	LogHandlerReturnRental = "handling return rental request"

	ErrMsgInvalidRentalID    = "invalid rental id"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов для работы с прокатами.
type Handler struct {
	rentalService api.RentalUseCase
}

// NewHandler создает новый экземпляр обработчика прокатов.
func NewHandler(rentalService api.RentalUseCase) *Handler {
	return &Handler{rentalService: rentalService}
}

// CreateRental выдает фильм клиенту.
func (h *Handler) CreateRental(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.CreateRental"))
	log.Debug(reqCtx, LogHandlerCreateRental)

	var req dto.RentalRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return response.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	rental, err := h.rentalService.CreateRental(reqCtx, req.UserID, req.MovieID)
	if err != nil {
		log.Error(reqCtx, "failed to create rental", zap.Error(err),
			zap.Int("user_id", req.UserID), zap.Int("movie_id", req.MovieID))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusCreated, dto.FromRental(rental))
}

// ListRentals возвращает все текущие прокаты.
func (h *Handler) ListRentals(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListRentals"))
	log.Debug(reqCtx, LogHandlerListRentals)

	rentals, err := h.rentalService.ListRentals(reqCtx)
	if err != nil {
		log.Error(reqCtx, "failed to list rentals", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.FromRentals(rentals))
}

// ReturnRental принимает фильм обратно и возвращает закрытый прокат.
func (h *Handler) ReturnRental(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ReturnRental"))
	log.Debug(reqCtx, LogHandlerReturnRental)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return response.BadRequest(ctx, ErrMsgInvalidRentalID)
	}

	rental, err := h.rentalService.ReturnRental(reqCtx, id)
	if err != nil {
		log.Error(reqCtx, "failed to return rental", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.FromRental(rental))
}
