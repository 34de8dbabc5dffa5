// Package http содержит компоненты для HTTP сервера проката.
package http

import (
	"time"

	"github.com/gofiber/fiber/v3"
	jsoniter "github.com/json-iterator/go"

	"movierental/internal/rental/adapters/http/middleware"
	"movierental/internal/rental/adapters/http/movies"
	"movierental/internal/rental/adapters/http/rentals"
	"movierental/internal/rental/adapters/http/stock"
	"movierental/internal/rental/adapters/http/users"
	"movierental/internal/rental/ports/api"
	"movierental/pkg/logger"
)

// ErrMsgRouteNotFound - тело ответа для неизвестных маршрутов.
const ErrMsgRouteNotFound = "Route not found"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewApp создает приложение fiber с кодеком json-iterator.
func NewApp(readTimeout, writeTimeout time.Duration) *fiber.App {
	return fiber.New(fiber.Config{
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
// log попадает в контекст каждого запроса; alerts может быть nil.
func SetupRouter(
	app *fiber.App,
	log *logger.Logger,
	rentalService api.RentalUseCase,
	inventory api.InventoryUseCase,
	alerts api.StockAlerts,
) {
	moviesHandler := movies.NewHandler(rentalService)
	usersHandler := users.NewHandler(rentalService)
	rentalsHandler := rentals.NewHandler(rentalService)
	stockHandler := stock.NewHandler(inventory, alerts)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestContextMiddleware(log))
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	movieRoutes := apiV1.Group("/movies")
	movieRoutes.Post("/", moviesHandler.CreateMovie)
	movieRoutes.Get("/", moviesHandler.ListMovies)
	movieRoutes.Get("/:id", moviesHandler.GetMovie)
	movieRoutes.Put("/:id", moviesHandler.UpdateMovie)
	movieRoutes.Delete("/:id", moviesHandler.DeleteMovie)

	apiV1.Get("/price-categories", moviesHandler.ListPriceCategories)

	userRoutes := apiV1.Group("/users")
	userRoutes.Post("/", usersHandler.CreateUser)
	userRoutes.Get("/", usersHandler.ListUsers)
	userRoutes.Get("/:id", usersHandler.GetUser)
	userRoutes.Put("/:id", usersHandler.UpdateUser)
	userRoutes.Delete("/:id", usersHandler.DeleteUser)
	userRoutes.Get("/:id/charge", usersHandler.GetUserCharge)
	userRoutes.Get("/:id/bill", usersHandler.GetUserBill)

	rentalRoutes := apiV1.Group("/rentals")
	rentalRoutes.Post("/", rentalsHandler.CreateRental)
	rentalRoutes.Get("/", rentalsHandler.ListRentals)
	rentalRoutes.Delete("/:id", rentalsHandler.ReturnRental)

	stockRoutes := apiV1.Group("/stock")
	stockRoutes.Get("/", stockHandler.InStock)
	stockRoutes.Get("/alerts", stockHandler.Alerts)
	stockRoutes.Post("/:movie_id", stockHandler.AddCopy)
	stockRoutes.Delete("/:movie_id", stockHandler.RemoveCopy)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrMsgRouteNotFound,
		})
	})
}
