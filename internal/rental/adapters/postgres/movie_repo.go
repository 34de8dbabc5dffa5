// Package postgres implements the rental service repositories on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // postgres dialect
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"movierental/internal/rental/domain/entities"
	"movierental/internal/rental/domain/pricing"
	"movierental/internal/rental/ports/repositories"
	"movierental/pkg/logger"
)

// PgxPoolInterface - часть pgxpool.Pool, которой пользуются репозитории.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// ErrCorruptRecord возвращается, если сохраненная строка не проходит проверки сущности.
// Вид исходной ошибки не сохраняется, только ее текст.
var ErrCorruptRecord = errors.New("stored record is corrupt")

func corruptRecord(table string, id int, err error) error {
	return fmt.Errorf("%w: %s %d: %v", ErrCorruptRecord, table, id, err)
}

const movieColumns = `id, title, release_date, age_rating, price_category, rented`

var dialect = goqu.Dialect("postgres")

// movieListQuery строит выборку каталога. nil rented означает все фильмы.
func movieListQuery(rented *bool) (string, []any, error) {
	ds := dialect.From("movies").
		Select("id", "title", "release_date", "age_rating", "price_category", "rented").
		Order(goqu.I("id").Asc()).
		Prepared(true)
	if rented != nil {
		ds = ds.Where(goqu.C("rented").Eq(*rented))
	}
	return ds.ToSQL()
}

// MovieRepository реализует интерфейс repositories.MovieRepository для работы с Postgres.
type MovieRepository struct {
	pool     PgxPoolInterface
	registry *pricing.Registry
}

// NewMovieRepository создает новый экземпляр репозитория фильмов.
// Категории цен восстанавливаются по имени через registry.
func NewMovieRepository(pool PgxPoolInterface, registry *pricing.Registry) repositories.MovieRepository {
	return &MovieRepository{pool: pool, registry: registry}
}

// movieRecord - строка таблицы movies.
type movieRecord struct {
	id          int
	title       string
	releaseDate time.Time
	ageRating   int
	category    string
	rented      bool
}

func (rec *movieRecord) fields() []any {
	return []any{&rec.id, &rec.title, &rec.releaseDate, &rec.ageRating, &rec.category, &rec.rented}
}

func (rec *movieRecord) restore(registry *pricing.Registry) (*entities.Movie, error) {
	category, err := registry.Lookup(rec.category)
	if err != nil {
		return nil, corruptRecord("movies", rec.id, err)
	}
	movie, err := entities.NewMovie(rec.title, rec.releaseDate, category, rec.ageRating)
	if err != nil {
		return nil, corruptRecord("movies", rec.id, err)
	}
	movie.SetID(rec.id)
	movie.SetRented(rec.rented)
	return movie, nil
}

// Create сохраняет новый фильм и назначает ему идентификатор.
func (r *MovieRepository) Create(ctx context.Context, movie *entities.Movie) error {
	log := logger.Log(ctx).With(zap.String("repository", "movie"), zap.String("method", "Create"))

	query := `
        INSERT INTO movies (title, release_date, age_rating, price_category, rented)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `

	var id int
	err := r.pool.QueryRow(ctx, query,
		movie.Title(),
		movie.ReleaseDate(),
		movie.AgeRating(),
		movie.PriceCategory().Name(),
		movie.IsRented(),
	).Scan(&id)
	if err != nil {
		log.Error(ctx, "error creating movie", zap.Error(err))
		return fmt.Errorf("error creating movie: %w", err)
	}

	movie.SetID(id)
	return nil
}

// FindByID находит фильм по ID.
func (r *MovieRepository) FindByID(ctx context.Context, id int) (*entities.Movie, error) {
	log := logger.Log(ctx).With(zap.String("repository", "movie"), zap.String("method", "FindByID"))

	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	var rec movieRecord
	if err := r.pool.QueryRow(ctx, query, id).Scan(rec.fields()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "movie not found", zap.Int("id", id))
			return nil, entities.ErrMovieNotFound
		}
		log.Error(ctx, "error finding movie by id", zap.Error(err))
		return nil, fmt.Errorf("error querying movie by id: %w", err)
	}

	return rec.restore(r.registry)
}

// List возвращает все фильмы в порядке ID.
func (r *MovieRepository) List(ctx context.Context) ([]*entities.Movie, error) {
	return r.list(ctx, "List", nil)
}

// ListByRented возвращает выданные или свободные фильмы.
func (r *MovieRepository) ListByRented(ctx context.Context, rented bool) ([]*entities.Movie, error) {
	return r.list(ctx, "ListByRented", &rented)
}

func (r *MovieRepository) list(ctx context.Context, method string, rented *bool) ([]*entities.Movie, error) {
	log := logger.Log(ctx).With(zap.String("repository", "movie"), zap.String("method", method))

	query, args, err := movieListQuery(rented)
	if err != nil {
		log.Error(ctx, "error building movie query", zap.Error(err))
		return nil, fmt.Errorf("error building movie query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "error listing movies", zap.Error(err))
		return nil, fmt.Errorf("error listing movies: %w", err)
	}
	defer rows.Close()

	movies := make([]*entities.Movie, 0)
	for rows.Next() {
		var rec movieRecord
		if err := rows.Scan(rec.fields()...); err != nil {
			log.Error(ctx, "error scanning movie", zap.Error(err))
			return nil, fmt.Errorf("error scanning movie: %w", err)
		}
		movie, err := rec.restore(r.registry)
		if err != nil {
			log.Error(ctx, "error restoring movie", zap.Error(err))
			return nil, err
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return movies, nil
}

// Update сохраняет атрибуты фильма. Столбец rented меняют только транзакции
// проката, в фильм записывается сохраненное значение.
func (r *MovieRepository) Update(ctx context.Context, movie *entities.Movie) error {
	log := logger.Log(ctx).With(zap.String("repository", "movie"), zap.String("method", "Update"))

	query := `
        UPDATE movies
        SET title = $2, release_date = $3, age_rating = $4, price_category = $5
        WHERE id = $1
        RETURNING rented
    `

	var rented bool
	err := r.pool.QueryRow(ctx, query,
		movie.ID(),
		movie.Title(),
		movie.ReleaseDate(),
		movie.AgeRating(),
		movie.PriceCategory().Name(),
	).Scan(&rented)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "movie not found for update", zap.Int("id", movie.ID()))
			return entities.ErrMovieNotFound
		}
		log.Error(ctx, "error updating movie", zap.Error(err))
		return fmt.Errorf("error updating movie: %w", err)
	}

	movie.SetRented(rented)
	return nil
}

// Delete удаляет фильм по ID.
func (r *MovieRepository) Delete(ctx context.Context, id int) error {
	log := logger.Log(ctx).With(zap.String("repository", "movie"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "error deleting movie", zap.Error(err))
		return fmt.Errorf("error deleting movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "movie not found for deletion", zap.Int("id", id))
		return entities.ErrMovieNotFound
	}

	return nil
}
