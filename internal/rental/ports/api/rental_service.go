// Package api defines the use case ports consumed by the HTTP adapter.
package api

import (
	"context"
	"time"

	"movierental/internal/rental/domain/entities"
)

// MovieInput - атрибуты фильма при создании и изменении.
type MovieInput struct {
	Title         string
	ReleaseDate   time.Time
	AgeRating     int
	PriceCategory string
}

// UserInput - атрибуты клиента. nil в Name или FirstName означает отсутствующее значение.
type UserInput struct {
	Name      *string
	FirstName *string
	Birthdate time.Time
}

// Account - итог по текущим прокатам клиента.
type Account struct {
	Charge               float64
	FrequentRenterPoints int
}

// RentalUseCase определяет операции с каталогом, клиентами и прокатами.
type RentalUseCase interface {
	CreateMovie(ctx context.Context, in MovieInput) (*entities.Movie, error)
	ListMovies(ctx context.Context) ([]*entities.Movie, error)
	ListMoviesByRented(ctx context.Context, rented bool) ([]*entities.Movie, error)
	GetMovie(ctx context.Context, id int) (*entities.Movie, error)
	UpdateMovie(ctx context.Context, id int, in MovieInput) (*entities.Movie, error)
	DeleteMovie(ctx context.Context, id int) error

	CreateUser(ctx context.Context, in UserInput) (*entities.User, error)
	ListUsers(ctx context.Context) ([]*entities.User, error)
	GetUser(ctx context.Context, id int) (*entities.User, error)
	GetUserByName(ctx context.Context, name string) (*entities.User, error)
	UpdateUser(ctx context.Context, id int, in UserInput) (*entities.User, error)
	DeleteUser(ctx context.Context, id int) error

	ListRentals(ctx context.Context) ([]*entities.Rental, error)
	CreateRental(ctx context.Context, userID, movieID int) (*entities.Rental, error)
	ReturnRental(ctx context.Context, rentalID int) (*entities.Rental, error)

	UserCharge(ctx context.Context, userID int) (Account, error)
	UserBill(ctx context.Context, userID int) (string, error)

	PriceCategories() []string
}

// InventoryUseCase определяет учет физических копий.
type InventoryUseCase interface {
	AddCopy(ctx context.Context, movieID int) (int, error)
	RemoveCopy(ctx context.Context, movieID int) (int, error)
	InStock(ctx context.Context, title string) int
}

// StockAlerts отдает последние зафиксированные низкие остатки по названиям.
type StockAlerts interface {
	Levels(ctx context.Context) (map[string]int, error)
}
