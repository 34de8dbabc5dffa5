// Package movies содержит HTTP-обработчики каталога фильмов.
package movies

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
	LogHandlerCreateMovie = "handling create movie request"
	LogHandlerGetMovie    = "handling get movie request"
	LogHandlerListMovies  = "handling list movies request"
	LogHandlerUpdateMovie = "handling update movie request"
	LogHandlerDeleteMovie = "handling delete movie request"
	LogHandlerCategories  = "handling list price categories request"

	ErrMsgInvalidMovieID     = "invalid movie id"
	ErrMsgInvalidRented      = "invalid rented filter"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов каталога.
type Handler struct {
	rentalService api.RentalUseCase
}

// NewHandler создает новый экземпляр обработчика фильмов.
func NewHandler(rentalService api.RentalUseCase) *Handler {
	return &Handler{rentalService: rentalService}
}

// CreateMovie обрабатывает запрос на добавление фильма в каталог.
func (h *Handler) CreateMovie(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.CreateMovie"))
	log.Debug(reqCtx, LogHandlerCreateMovie)

	in, err := bindMovie(ctx, log)
	if err != nil {
		return response.Error(ctx, err)
	}

	movie, err := h.rentalService.CreateMovie(reqCtx, in)
	if err != nil {
		log.Error(reqCtx, "failed to create movie", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusCreated, dto.FromMovie(movie))
}

// GetMovie обрабатывает запрос на получение фильма по ID.
func (h *Handler) GetMovie(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.GetMovie"))
	log.Debug(reqCtx, LogHandlerGetMovie)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		log.Debug(reqCtx, ErrMsgInvalidMovieID, zap.Error(err))
		return response.BadRequest(ctx, ErrMsgInvalidMovieID)
	}

	movie, err := h.rentalService.GetMovie(reqCtx, id)
	if err != nil {
		log.Error(reqCtx, "failed to get movie", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.FromMovie(movie))
}

// ListMovies обрабатывает запрос на получение каталога.
// Параметр rented ограничивает выборку выданными или свободными фильмами.
func (h *Handler) ListMovies(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListMovies"))
	log.Debug(reqCtx, LogHandlerListMovies)

	rentedParam := ctx.Query("rented")
	if rentedParam == "" {
		movies, err := h.rentalService.ListMovies(reqCtx)
		if err != nil {
			log.Error(reqCtx, "failed to list movies", zap.Error(err))
			return response.Error(ctx, err)
		}
		return response.JSON(ctx, fiber.StatusOK, dto.FromMovies(movies))
	}

	rented, err := strconv.ParseBool(rentedParam)
	if err != nil {
		log.Debug(reqCtx, ErrMsgInvalidRented, zap.Error(err))
		return response.BadRequest(ctx, ErrMsgInvalidRented)
	}

	movies, err := h.rentalService.ListMoviesByRented(reqCtx, rented)
	if err != nil {
		log.Error(reqCtx, "failed to list movies", zap.Error(err))
		return response.Error(ctx, err)
	}
	return response.JSON(ctx, fiber.StatusOK, dto.FromMovies(movies))
}

// UpdateMovie обрабатывает запрос на изменение фильма.
func (h *Handler) UpdateMovie(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.UpdateMovie"))
	log.Debug(reqCtx, LogHandlerUpdateMovie)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		log.Debug(reqCtx, ErrMsgInvalidMovieID, zap.Error(err))
		return response.BadRequest(ctx, ErrMsgInvalidMovieID)
	}

	in, err := bindMovie(ctx, log)
	if err != nil {
		return response.Error(ctx, err)
	}

	movie, err := h.rentalService.UpdateMovie(reqCtx, id, in)
	if err != nil {
		log.Error(reqCtx, "failed to update movie", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.FromMovie(movie))
}

// DeleteMovie обрабатывает запрос на удаление фильма.
func (h *Handler) DeleteMovie(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.DeleteMovie"))
	log.Debug(reqCtx, LogHandlerDeleteMovie)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		log.Debug(reqCtx, ErrMsgInvalidMovieID, zap.Error(err))
		return response.BadRequest(ctx, ErrMsgInvalidMovieID)
	}

	if err := h.rentalService.DeleteMovie(reqCtx, id); err != nil {
		log.Error(reqCtx, "failed to delete movie", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, fiber.Map{"success": true})
}

// ListPriceCategories возвращает названия зарегистрированных ценовых категорий.
func (h *Handler) ListPriceCategories(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	logger.Log(reqCtx).Debug(reqCtx, LogHandlerCategories)

	return response.JSON(ctx, fiber.StatusOK, h.rentalService.PriceCategories())
}

// bindMovie разбирает тело запроса. Ошибки возвращаются как *fiber.Error с кодом 400.
func bindMovie(ctx fiber.Ctx, log *logger.Logger) (api.MovieInput, error) {
	reqCtx := response.RequestContext(ctx)

	var req dto.MovieRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return api.MovieInput{}, fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	in, err := req.ToMovieInput()
	if err != nil {
		log.Debug(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return api.MovieInput{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return in, nil
}
