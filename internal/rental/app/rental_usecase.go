// Package app implements the application logic of the rental service.
package app

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"movierental/internal/rental/domain/entities"
	"movierental/internal/rental/domain/errs"
	"movierental/internal/rental/domain/pricing"
	"movierental/internal/rental/domain/statement"
	"movierental/internal/rental/ports/api"
	"movierental/internal/rental/ports/repositories"
	"movierental/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var (
	ErrUserHasRentals = errs.Rule("user has active rentals")
	ErrMovieIsRented  = errs.Rule("movie is rented")
)

const (
	methodCreateMovie  = "CreateMovie"
	methodUpdateMovie  = "UpdateMovie"
	methodDeleteMovie  = "DeleteMovie"
	methodCreateUser   = "CreateUser"
	methodUpdateUser   = "UpdateUser"
	methodDeleteUser   = "DeleteUser"
	methodCreateRental = "CreateRental"
	methodReturnRental = "ReturnRental"
	methodUserBill     = "UserBill"

	msgMovieCreated   = "movie created"
	msgMovieUpdated   = "movie updated"
	msgMovieDeleted   = "movie deleted"
	msgUserCreated    = "user created"
	msgUserUpdated    = "user updated"
	msgUserDeleted    = "user deleted"
	msgRentalCreated  = "rental created"
	msgRentalReturned = "rental returned"
	msgInvalidInput   = "invalid input"
	msgRentalRefused  = "rental refused"
	msgBillRefused    = "bill refused"

	errCtxCreatingMovie  = "creating movie"
	errCtxFindingMovie   = "finding movie"
	errCtxListingMovies  = "listing movies"
	errCtxUpdatingMovie  = "updating movie"
	errCtxDeletingMovie  = "deleting movie"
	errCtxCreatingUser   = "creating user"
	errCtxFindingUser    = "finding user"
	errCtxListingUsers   = "listing users"
	errCtxUpdatingUser   = "updating user"
	errCtxDeletingUser   = "deleting user"
	errCtxLoadingRentals = "loading rentals"
	errCtxFindingRental  = "finding rental"
	errCtxSavingRental   = "saving rental"
	errCtxDeletingRental = "deleting rental"
)

// RentalUseCaseImpl реализует api.RentalUseCase.
type RentalUseCaseImpl struct {
	movies   repositories.MovieRepository
	users    repositories.UserRepository
	rentals  repositories.RentalRepository
	registry *pricing.Registry

	// mu сериализует изменения, которые зависят от признака выдачи: выдачу, возврат,
	// правку и удаление фильмов, удаление клиентов.
	mu sync.Mutex
}

// NewRentalUseCase создает новый экземпляр RentalUseCaseImpl.
func NewRentalUseCase(
	movies repositories.MovieRepository,
	users repositories.UserRepository,
	rentals repositories.RentalRepository,
	registry *pricing.Registry,
) *RentalUseCaseImpl {
	return &RentalUseCaseImpl{
		movies:   movies,
		users:    users,
		rentals:  rentals,
		registry: registry,
	}
}

var _ api.RentalUseCase = (*RentalUseCaseImpl)(nil)

func (uc *RentalUseCaseImpl) buildMovie(in api.MovieInput) (*entities.Movie, error) {
	var category pricing.Category
	if in.PriceCategory != "" {
		c, err := uc.registry.Lookup(in.PriceCategory)
		if err != nil {
			return nil, err
		}
		category = c
	}
	return entities.NewMovie(in.Title, in.ReleaseDate, category, in.AgeRating)
}

// CreateMovie добавляет фильм в каталог.
func (uc *RentalUseCaseImpl) CreateMovie(ctx context.Context, in api.MovieInput) (*entities.Movie, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateMovie))

	movie, err := uc.buildMovie(in)
	if err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, err
	}

	if err := uc.movies.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingMovie, err)
	}

	log.Info(ctx, msgMovieCreated, zap.Int("movie_id", movie.ID()))
	return movie, nil
}

// ListMovies возвращает весь каталог.
func (uc *RentalUseCaseImpl) ListMovies(ctx context.Context) ([]*entities.Movie, error) {
	movies, err := uc.movies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingMovies, err)
	}
	return movies, nil
}

// ListMoviesByRented возвращает выданные или свободные фильмы.
func (uc *RentalUseCaseImpl) ListMoviesByRented(ctx context.Context, rented bool) ([]*entities.Movie, error) {
	movies, err := uc.movies.ListByRented(ctx, rented)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingMovies, err)
	}
	return movies, nil
}

// GetMovie возвращает фильм по ID.
func (uc *RentalUseCaseImpl) GetMovie(ctx context.Context, id int) (*entities.Movie, error) {
	movie, err := uc.movies.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingMovie, err)
	}
	return movie, nil
}

// UpdateMovie заменяет атрибуты фильма. Признак выдачи меняют только выдача и возврат.
func (uc *RentalUseCaseImpl) UpdateMovie(ctx context.Context, id int, in api.MovieInput) (*entities.Movie, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateMovie), zap.Int("movie_id", id))

	uc.mu.Lock()
	defer uc.mu.Unlock()

	existing, err := uc.movies.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingMovie, err)
	}

	movie, err := uc.buildMovie(in)
	if err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, err
	}
	movie.SetID(existing.ID())
	movie.SetRented(existing.IsRented())

	if err := uc.movies.Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingMovie, err)
	}

	log.Info(ctx, msgMovieUpdated)
	return movie, nil
}

// DeleteMovie удаляет фильм, если он не выдан.
func (uc *RentalUseCaseImpl) DeleteMovie(ctx context.Context, id int) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteMovie), zap.Int("movie_id", id))

	uc.mu.Lock()
	defer uc.mu.Unlock()

	movie, err := uc.movies.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxFindingMovie, err)
	}
	if movie.IsRented() {
		return ErrMovieIsRented
	}

	if err := uc.movies.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingMovie, err)
	}

	log.Info(ctx, msgMovieDeleted)
	return nil
}

func buildUser(in api.UserInput) (*entities.User, error) {
	if err := entities.CheckName(in.Name); err != nil {
		return nil, err
	}
	if err := entities.CheckName(in.FirstName); err != nil {
		return nil, err
	}
	return entities.NewUser(*in.Name, *in.FirstName, in.Birthdate)
}

// CreateUser регистрирует клиента.
func (uc *RentalUseCaseImpl) CreateUser(ctx context.Context, in api.UserInput) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateUser))

	user, err := buildUser(in)
	if err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, err
	}

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.Int("user_id", user.ID()))
	return user, nil
}

// ListUsers возвращает всех клиентов.
func (uc *RentalUseCaseImpl) ListUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}
	return users, nil
}

// GetUser возвращает клиента по ID вместе с его прокатами.
func (uc *RentalUseCaseImpl) GetUser(ctx context.Context, id int) (*entities.User, error) {
	return uc.loadUserWithRentals(ctx, id)
}

// GetUserByName возвращает первого клиента с фамилией name.
func (uc *RentalUseCaseImpl) GetUserByName(ctx context.Context, name string) (*entities.User, error) {
	users, err := uc.users.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	if len(users) == 0 {
		return nil, entities.ErrUserNotFound
	}
	return users[0], nil
}

// UpdateUser заменяет имя, фамилию и дату рождения клиента.
func (uc *RentalUseCaseImpl) UpdateUser(ctx context.Context, id int, in api.UserInput) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateUser), zap.Int("user_id", id))

	if _, err := uc.users.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	user, err := buildUser(in)
	if err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, err
	}
	if err := user.SetID(id); err != nil {
		return nil, err
	}

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgUserUpdated)
	return user, nil
}

// DeleteUser удаляет клиента без активных прокатов.
func (uc *RentalUseCaseImpl) DeleteUser(ctx context.Context, id int) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteUser), zap.Int("user_id", id))

	uc.mu.Lock()
	defer uc.mu.Unlock()

	user, err := uc.loadUserWithRentals(ctx, id)
	if err != nil {
		return err
	}
	if len(user.Rentals()) > 0 {
		return ErrUserHasRentals
	}

	if err := uc.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", errCtxDeletingUser, err)
	}

	log.Info(ctx, msgUserDeleted)
	return nil
}

// ListRentals возвращает все активные прокаты.
func (uc *RentalUseCaseImpl) ListRentals(ctx context.Context) ([]*entities.Rental, error) {
	rentals, err := uc.rentals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingRentals, err)
	}
	return rentals, nil
}

// CreateRental выдает фильм клиенту. Текущие прокаты клиента загружаются
// до проверки, чтобы лимит учитывал их.
func (uc *RentalUseCaseImpl) CreateRental(ctx context.Context, userID, movieID int) (*entities.Rental, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodCreateRental),
		zap.Int("user_id", userID),
		zap.Int("movie_id", movieID),
	)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	user, err := uc.loadUserWithRentals(ctx, userID)
	if err != nil {
		return nil, err
	}

	movie, err := uc.movies.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingMovie, err)
	}

	rental, err := entities.NewRental(user, movie)
	if err != nil {
		log.Debug(ctx, msgRentalRefused, zap.Error(err))
		return nil, err
	}

	if err := uc.rentals.Create(ctx, rental); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxSavingRental, err)
	}

	log.Info(ctx, msgRentalCreated, zap.Int("rental_id", rental.ID()))
	return rental, nil
}

// ReturnRental закрывает прокат: запись удаляется, фильм снова доступен.
func (uc *RentalUseCaseImpl) ReturnRental(ctx context.Context, rentalID int) (*entities.Rental, error) {
	log := logger.Log(ctx).With(zap.String("method", methodReturnRental), zap.Int("rental_id", rentalID))

	uc.mu.Lock()
	defer uc.mu.Unlock()

	rental, err := uc.rentals.FindByID(ctx, rentalID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingRental, err)
	}

	if err := uc.rentals.Delete(ctx, rental); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxDeletingRental, err)
	}
	rental.Movie().SetRented(false)

	log.Info(ctx, msgRentalReturned,
		zap.Int64("days", rental.RentalDays()),
		zap.Float64("fee", rental.RentalFee()),
	)
	return rental, nil
}

// UserCharge возвращает сумму и бонусные баллы по текущим прокатам клиента.
func (uc *RentalUseCaseImpl) UserCharge(ctx context.Context, userID int) (api.Account, error) {
	user, err := uc.loadUserWithRentals(ctx, userID)
	if err != nil {
		return api.Account{}, err
	}
	return api.Account{
		Charge:               user.Charge(),
		FrequentRenterPoints: user.FrequentRenterPoints(),
	}, nil
}

// UserBill печатает счет по текущим прокатам клиента.
func (uc *RentalUseCaseImpl) UserBill(ctx context.Context, userID int) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUserBill), zap.Int("user_id", userID))

	user, err := uc.loadUserWithRentals(ctx, userID)
	if err != nil {
		return "", err
	}

	bill, err := statement.NewBill(user.Name(), user.FirstName(), statement.FromRentals(user.Rentals()))
	if err != nil {
		log.Debug(ctx, msgBillRefused, zap.Error(err))
		return "", err
	}
	return bill.Print(), nil
}

// PriceCategories возвращает имена зарегистрированных категорий.
func (uc *RentalUseCaseImpl) PriceCategories() []string {
	return uc.registry.Names()
}

func (uc *RentalUseCaseImpl) loadUserWithRentals(ctx context.Context, id int) (*entities.User, error) {
	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	if _, err := uc.rentals.ListByUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLoadingRentals, err)
	}
	return user, nil
}
