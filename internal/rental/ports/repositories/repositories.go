// Package repositories defines the persistence ports of the rental service.
package repositories

import (
	"context"

	"movierental/internal/rental/domain/entities"
)

// MovieRepository определяет операции хранения фильмов.
// Create и Update передают идентификатор, выданный хранилищем, через SetID.
type MovieRepository interface {
	Create(ctx context.Context, movie *entities.Movie) error

	FindByID(ctx context.Context, id int) (*entities.Movie, error)

	List(ctx context.Context) ([]*entities.Movie, error)

	ListByRented(ctx context.Context, rented bool) ([]*entities.Movie, error)

	Update(ctx context.Context, movie *entities.Movie) error

	Delete(ctx context.Context, id int) error
}

// UserRepository определяет операции хранения клиентов.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error

	FindByID(ctx context.Context, id int) (*entities.User, error)

	FindByName(ctx context.Context, name string) ([]*entities.User, error)

	List(ctx context.Context) ([]*entities.User, error)

	Update(ctx context.Context, user *entities.User) error

	Delete(ctx context.Context, id int) error
}

// RentalRepository определяет операции хранения прокатов.
// Create и Delete меняют признак выдачи фильма в той же транзакции.
type RentalRepository interface {
	Create(ctx context.Context, rental *entities.Rental) error

	FindByID(ctx context.Context, id int) (*entities.Rental, error)

	List(ctx context.Context) ([]*entities.Rental, error)

	// ListByUser восстанавливает прокаты клиента в список переданного user.
	ListByUser(ctx context.Context, user *entities.User) ([]*entities.Rental, error)

	Delete(ctx context.Context, rental *entities.Rental) error
}
