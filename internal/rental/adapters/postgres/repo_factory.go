package postgres

import (
	"movierental/internal/rental/domain/pricing"
	"movierental/internal/rental/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	movieRepo  repositories.MovieRepository
	userRepo   repositories.UserRepository
	rentalRepo repositories.RentalRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface, registry *pricing.Registry) *RepositoryFactory {
	return &RepositoryFactory{
		movieRepo:  NewMovieRepository(pool, registry),
		userRepo:   NewUserRepository(pool),
		rentalRepo: NewRentalRepository(pool, registry),
	}
}

// MovieRepository возвращает репозиторий фильмов.
func (f *RepositoryFactory) MovieRepository() repositories.MovieRepository {
	return f.movieRepo
}

// UserRepository возвращает репозиторий клиентов.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// RentalRepository возвращает репозиторий прокатов.
func (f *RepositoryFactory) RentalRepository() repositories.RentalRepository {
	return f.rentalRepo
}
