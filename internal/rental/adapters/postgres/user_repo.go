package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"movierental/internal/rental/domain/entities"
	"movierental/internal/rental/ports/repositories"
	"movierental/pkg/logger"
)

const userColumns = `id, name, first_name, birthdate`

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
// Клиенты хранятся в таблице clients.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория клиентов.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

type userRecord struct {
	id        int
	name      string
	firstName string
	birthdate time.Time
}

func (rec *userRecord) fields() []any {
	return []any{&rec.id, &rec.name, &rec.firstName, &rec.birthdate}
}

func (rec *userRecord) restore() (*entities.User, error) {
	user, err := entities.NewUser(rec.name, rec.firstName, rec.birthdate)
	if err != nil {
		return nil, corruptRecord("clients", rec.id, err)
	}
	if err := user.SetID(rec.id); err != nil {
		return nil, corruptRecord("clients", rec.id, err)
	}
	return user, nil
}

// Create сохраняет нового клиента и назначает ему идентификатор.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO clients (name, first_name, birthdate)
        VALUES ($1, $2, $3)
        RETURNING id
    `

	var id int
	if err := r.pool.QueryRow(ctx, query, user.Name(), user.FirstName(), user.Birthdate()).Scan(&id); err != nil {
		log.Error(ctx, "error creating user", zap.Error(err))
		return fmt.Errorf("error creating user: %w", err)
	}

	return user.SetID(id)
}

// FindByID находит клиента по ID.
func (r *UserRepository) FindByID(ctx context.Context, id int) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `SELECT ` + userColumns + ` FROM clients WHERE id = $1`

	var rec userRecord
	if err := r.pool.QueryRow(ctx, query, id).Scan(rec.fields()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.Int("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return rec.restore()
}

// FindByName возвращает клиентов с фамилией name в порядке ID.
func (r *UserRepository) FindByName(ctx context.Context, name string) ([]*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM clients WHERE name = $1 ORDER BY id`
	return r.list(ctx, "FindByName", query, name)
}

// List возвращает всех клиентов в порядке ID.
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM clients ORDER BY id`
	return r.list(ctx, "List", query)
}

func (r *UserRepository) list(ctx context.Context, method, query string, args ...any) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		var rec userRecord
		if err := rows.Scan(rec.fields()...); err != nil {
			log.Error(ctx, "error scanning user", zap.Error(err))
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		user, err := rec.restore()
		if err != nil {
			log.Error(ctx, "error restoring user", zap.Error(err))
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

// Update сохраняет имя, фамилию и дату рождения клиента.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	query := `
        UPDATE clients
        SET name = $2, first_name = $3, birthdate = $4
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, user.ID(), user.Name(), user.FirstName(), user.Birthdate())
	if err != nil {
		log.Error(ctx, "error updating user", zap.Error(err))
		return fmt.Errorf("error updating user: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for update", zap.Int("id", user.ID()))
		return entities.ErrUserNotFound
	}

	return nil
}

// Delete удаляет клиента по ID.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "error deleting user", zap.Error(err))
		return fmt.Errorf("error deleting user: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for deletion", zap.Int("id", id))
		return entities.ErrUserNotFound
	}

	return nil
}
