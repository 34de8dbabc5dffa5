// Package users содержит HTTP-обработчики клиентов проката.
package users

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
	LogHandlerCreateUser = "handling create user request"
	LogHandlerGetUser    = "handling get user request"
	LogHandlerListUsers  = "handling list users request"
	LogHandlerUpdateUser = "handling update user request"
	LogHandlerDeleteUser = "handling delete user request"
	LogHandlerUserBill   = "handling user bill request"
	LogHandlerUserCharge = "handling user charge request"

	ErrMsgInvalidUserID      = "invalid user id"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов для работы с клиентами.
type Handler struct {
	rentalService api.RentalUseCase
}

// NewHandler создает новый экземпляр обработчика клиентов.
func NewHandler(rentalService api.RentalUseCase) *Handler {
	return &Handler{rentalService: rentalService}
}

// CreateUser обрабатывает запрос на регистрацию клиента.
func (h *Handler) CreateUser(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.CreateUser"))
	log.Debug(reqCtx, LogHandlerCreateUser)

	in, err := bindUser(ctx, log)
	if err != nil {
		return response.Error(ctx, err)
	}

	user, err := h.rentalService.CreateUser(reqCtx, in)
	if err != nil {
		log.Error(reqCtx, "failed to create user", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusCreated, dto.FromUser(user))
}

// GetUser обрабатывает запрос на получение клиента по ID.
func (h *Handler) GetUser(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.GetUser"))
	log.Debug(reqCtx, LogHandlerGetUser)

	id, err := userID(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	user, err := h.rentalService.GetUser(reqCtx, id)
	if err != nil {
		log.Error(reqCtx, "failed to get user", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.FromUser(user))
}

// ListUsers возвращает всех клиентов или, с параметром name, первого клиента с такой фамилией.
func (h *Handler) ListUsers(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListUsers"))
	log.Debug(reqCtx, LogHandlerListUsers)

	if name := ctx.Query("name"); name != "" {
		user, err := h.rentalService.GetUserByName(reqCtx, name)
		if err != nil {
			log.Error(reqCtx, "failed to find user by name", zap.Error(err))
			return response.Error(ctx, err)
		}
		return response.JSON(ctx, fiber.StatusOK, dto.FromUser(user))
	}

	users, err := h.rentalService.ListUsers(reqCtx)
	if err != nil {
		log.Error(reqCtx, "failed to list users", zap.Error(err))
		return response.Error(ctx, err)
	}
	return response.JSON(ctx, fiber.StatusOK, dto.FromUsers(users))
}

// UpdateUser обрабатывает запрос на изменение клиента.
func (h *Handler) UpdateUser(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.UpdateUser"))
	log.Debug(reqCtx, LogHandlerUpdateUser)

	id, err := userID(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	in, err := bindUser(ctx, log)
	if err != nil {
		return response.Error(ctx, err)
	}

	user, err := h.rentalService.UpdateUser(reqCtx, id, in)
	if err != nil {
		log.Error(reqCtx, "failed to update user", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.FromUser(user))
}

// DeleteUser обрабатывает запрос на удаление клиента.
func (h *Handler) DeleteUser(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.DeleteUser"))
	log.Debug(reqCtx, LogHandlerDeleteUser)

	id, err := userID(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	if err := h.rentalService.DeleteUser(reqCtx, id); err != nil {
		log.Error(reqCtx, "failed to delete user", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, fiber.Map{"success": true})
}

// GetUserCharge возвращает сумму и бонусные баллы по текущим прокатам клиента.
func (h *Handler) GetUserCharge(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.GetUserCharge"))
	log.Debug(reqCtx, LogHandlerUserCharge)

	id, err := userID(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	account, err := h.rentalService.UserCharge(reqCtx, id)
	if err != nil {
		log.Error(reqCtx, "failed to compute user charge", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.AccountResponse{
		UserID:               id,
		Charge:               account.Charge,
		FrequentRenterPoints: account.FrequentRenterPoints,
	})
}

// GetUserBill возвращает напечатанный счет клиента текстом.
func (h *Handler) GetUserBill(ctx fiber.Ctx) error {
	reqCtx := response.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.GetUserBill"))
	log.Debug(reqCtx, LogHandlerUserBill)

	id, err := userID(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	bill, err := h.rentalService.UserBill(reqCtx, id)
	if err != nil {
		log.Error(reqCtx, "failed to print user bill", zap.Error(err))
		return response.Error(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return ctx.Status(fiber.StatusOK).SendString(bill)
}

func userID(ctx fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidUserID)
	}
	return id, nil
}

func bindUser(ctx fiber.Ctx, log *logger.Logger) (api.UserInput, error) {
	reqCtx := response.RequestContext(ctx)

	var req dto.UserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return api.UserInput{}, fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	in, err := req.ToUserInput()
	if err != nil {
		log.Debug(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return api.UserInput{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return in, nil
}
