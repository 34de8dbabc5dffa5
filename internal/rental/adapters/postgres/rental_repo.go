package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"movierental/internal/rental/domain/entities"
	"movierental/internal/rental/domain/pricing"
	"movierental/internal/rental/ports/repositories"
	"movierental/pkg/logger"
)

const rentalSelect = `
        SELECT r.id, r.rental_date,
               c.id, c.name, c.first_name, c.birthdate,
               m.id, m.title, m.release_date, m.age_rating, m.price_category, m.rented
        FROM rentals r
        JOIN clients c ON c.id = r.client_id
        JOIN movies m ON m.id = r.movie_id
    `

// RentalRepository реализует интерфейс repositories.RentalRepository для работы с Postgres.
// Прокаты восстанавливаются через entities.MaterializeRental.
type RentalRepository struct {
	pool     PgxPoolInterface
	registry *pricing.Registry
}

// NewRentalRepository создает новый экземпляр репозитория прокатов.
func NewRentalRepository(pool PgxPoolInterface, registry *pricing.Registry) repositories.RentalRepository {
	return &RentalRepository{pool: pool, registry: registry}
}

type rentalRecord struct {
	id         int
	rentalDate time.Time
	user       userRecord
	movie      movieRecord
}

func (rec *rentalRecord) fields() []any {
	fields := []any{&rec.id, &rec.rentalDate}
	fields = append(fields, rec.user.fields()...)
	return append(fields, rec.movie.fields()...)
}

// Create сохраняет прокат и отмечает фильм выданным в одной транзакции.
func (r *RentalRepository) Create(ctx context.Context, rental *entities.Rental) error {
	log := logger.Log(ctx).With(zap.String("repository", "rental"), zap.String("method", "Create"))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "error starting transaction", zap.Error(err))
		return fmt.Errorf("error starting transaction: %w", err)
	}

	query := `
        INSERT INTO rentals (client_id, movie_id, rental_date)
        VALUES ($1, $2, $3)
        RETURNING id
    `

	var id int
	if err := tx.QueryRow(ctx, query, rental.User().ID(), rental.Movie().ID(), rental.RentalDate()).Scan(&id); err != nil {
		r.rollback(ctx, tx)
		log.Error(ctx, "error creating rental", zap.Error(err))
		return fmt.Errorf("error creating rental: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE movies SET rented = TRUE WHERE id = $1`, rental.Movie().ID()); err != nil {
		r.rollback(ctx, tx)
		log.Error(ctx, "error marking movie rented", zap.Error(err))
		return fmt.Errorf("error marking movie rented: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "error committing transaction", zap.Error(err))
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return rental.SetID(id)
}

// FindByID находит прокат по ID вместе с клиентом и фильмом.
func (r *RentalRepository) FindByID(ctx context.Context, id int) (*entities.Rental, error) {
	log := logger.Log(ctx).With(zap.String("repository", "rental"), zap.String("method", "FindByID"))

	var rec rentalRecord
	if err := r.pool.QueryRow(ctx, rentalSelect+` WHERE r.id = $1`, id).Scan(rec.fields()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "rental not found", zap.Int("id", id))
			return nil, entities.ErrRentalNotFound
		}
		log.Error(ctx, "error finding rental by id", zap.Error(err))
		return nil, fmt.Errorf("error querying rental by id: %w", err)
	}

	user, err := rec.user.restore()
	if err != nil {
		return nil, err
	}
	return r.materialize(rec, user)
}

// List возвращает все прокаты. Прокаты одного клиента делят один объект User.
func (r *RentalRepository) List(ctx context.Context) ([]*entities.Rental, error) {
	log := logger.Log(ctx).With(zap.String("repository", "rental"), zap.String("method", "List"))

	rows, err := r.pool.Query(ctx, rentalSelect+` ORDER BY r.id`)
	if err != nil {
		log.Error(ctx, "error listing rentals", zap.Error(err))
		return nil, fmt.Errorf("error listing rentals: %w", err)
	}
	defer rows.Close()

	users := make(map[int]*entities.User)
	rentals := make([]*entities.Rental, 0)
	for rows.Next() {
		var rec rentalRecord
		if err := rows.Scan(rec.fields()...); err != nil {
			log.Error(ctx, "error scanning rental", zap.Error(err))
			return nil, fmt.Errorf("error scanning rental: %w", err)
		}

		user, ok := users[rec.user.id]
		if !ok {
			if user, err = rec.user.restore(); err != nil {
				log.Error(ctx, "error restoring user", zap.Error(err))
				return nil, err
			}
			users[rec.user.id] = user
		}

		rental, err := r.materialize(rec, user)
		if err != nil {
			log.Error(ctx, "error restoring rental", zap.Error(err))
			return nil, err
		}
		rentals = append(rentals, rental)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return rentals, nil
}

// ListByUser восстанавливает прокаты клиента в его список.
func (r *RentalRepository) ListByUser(ctx context.Context, user *entities.User) ([]*entities.Rental, error) {
	log := logger.Log(ctx).With(
		zap.String("repository", "rental"),
		zap.String("method", "ListByUser"),
		zap.Int("user_id", user.ID()),
	)

	query := `
        SELECT r.id, r.rental_date,
               m.id, m.title, m.release_date, m.age_rating, m.price_category, m.rented
        FROM rentals r
        JOIN movies m ON m.id = r.movie_id
        WHERE r.client_id = $1
        ORDER BY r.id
    `

	rows, err := r.pool.Query(ctx, query, user.ID())
	if err != nil {
		log.Error(ctx, "error listing user rentals", zap.Error(err))
		return nil, fmt.Errorf("error listing user rentals: %w", err)
	}
	defer rows.Close()

	rentals := make([]*entities.Rental, 0)
	for rows.Next() {
		var rec rentalRecord
		fields := append([]any{&rec.id, &rec.rentalDate}, rec.movie.fields()...)
		if err := rows.Scan(fields...); err != nil {
			log.Error(ctx, "error scanning rental", zap.Error(err))
			return nil, fmt.Errorf("error scanning rental: %w", err)
		}

		rental, err := r.materialize(rec, user)
		if err != nil {
			log.Error(ctx, "error restoring rental", zap.Error(err))
			return nil, err
		}
		rentals = append(rentals, rental)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return rentals, nil
}

// Delete удаляет прокат и освобождает фильм в одной транзакции.
func (r *RentalRepository) Delete(ctx context.Context, rental *entities.Rental) error {
	log := logger.Log(ctx).With(zap.String("repository", "rental"), zap.String("method", "Delete"))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "error starting transaction", zap.Error(err))
		return fmt.Errorf("error starting transaction: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM rentals WHERE id = $1`, rental.ID())
	if err != nil {
		r.rollback(ctx, tx)
		log.Error(ctx, "error deleting rental", zap.Error(err))
		return fmt.Errorf("error deleting rental: %w", err)
	}
	if result.RowsAffected() == 0 {
		r.rollback(ctx, tx)
		log.Debug(ctx, "rental not found for deletion", zap.Int("id", rental.ID()))
		return entities.ErrRentalNotFound
	}

	if _, err := tx.Exec(ctx, `UPDATE movies SET rented = FALSE WHERE id = $1`, rental.Movie().ID()); err != nil {
		r.rollback(ctx, tx)
		log.Error(ctx, "error releasing movie", zap.Error(err))
		return fmt.Errorf("error releasing movie: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "error committing transaction", zap.Error(err))
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

func (r *RentalRepository) materialize(rec rentalRecord, user *entities.User) (*entities.Rental, error) {
	movie, err := rec.movie.restore(r.registry)
	if err != nil {
		return nil, err
	}
	rental, err := entities.MaterializeRental(rec.id, user, movie, rec.rentalDate)
	if err != nil {
		return nil, corruptRecord("rentals", rec.id, err)
	}
	return rental, nil
}

func (r *RentalRepository) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.Log(ctx).Warn(ctx, "error rolling back transaction", zap.Error(err))
	}
}
