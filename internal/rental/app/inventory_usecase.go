package app

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"movierental/internal/rental/domain/stock"
	"movierental/internal/rental/ports/api"
	"movierental/internal/rental/ports/repositories"
	"movierental/pkg/logger"
)

const (
	methodAddCopy    = "AddCopy"
	methodRemoveCopy = "RemoveCopy"

	msgCopyAdded   = "copy added to stock"
	msgCopyRemoved = "copy removed from stock"
	msgNoCopy      = "no copy in stock"
)

// InventoryUseCaseImpl ведет учет копий. Все операции со складом,
// включая уведомления слушателей, выполняются под одной блокировкой.
type InventoryUseCaseImpl struct {
	mu     sync.Mutex
	stock  *stock.Stock
	movies repositories.MovieRepository
}

// NewInventoryUseCase создает новый экземпляр InventoryUseCaseImpl.
func NewInventoryUseCase(s *stock.Stock, movies repositories.MovieRepository) *InventoryUseCaseImpl {
	return &InventoryUseCaseImpl{
		stock:  s,
		movies: movies,
	}
}

var _ api.InventoryUseCase = (*InventoryUseCaseImpl)(nil)

// AddCopy добавляет копию фильма и возвращает остаток по его названию.
func (uc *InventoryUseCaseImpl) AddCopy(ctx context.Context, movieID int) (int, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAddCopy), zap.Int("movie_id", movieID))

	movie, err := uc.movies.FindByID(ctx, movieID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", errCtxFindingMovie, err)
	}

	uc.mu.Lock()
	n := uc.stock.AddToStock(movie)
	uc.mu.Unlock()

	log.Debug(ctx, msgCopyAdded, zap.String("title", movie.Title()), zap.Int("in_stock", n))
	return n, nil
}

// RemoveCopy списывает копию фильма и возвращает остаток по его названию.
func (uc *InventoryUseCaseImpl) RemoveCopy(ctx context.Context, movieID int) (int, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRemoveCopy), zap.Int("movie_id", movieID))

	movie, err := uc.movies.FindByID(ctx, movieID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", errCtxFindingMovie, err)
	}

	uc.mu.Lock()
	n, err := uc.stock.RemoveFromStock(movie)
	uc.mu.Unlock()

	if err != nil {
		log.Debug(ctx, msgNoCopy, zap.String("title", movie.Title()))
		return 0, err
	}

	log.Debug(ctx, msgCopyRemoved, zap.String("title", movie.Title()), zap.Int("in_stock", n))
	return n, nil
}

// InStock возвращает остаток по названию; stock.AllTitles дает сумму по всем.
func (uc *InventoryUseCaseImpl) InStock(_ context.Context, title string) int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.stock.InStock(title)
}

// Subscribe регистрирует слушателя низкого остатка.
func (uc *InventoryUseCaseImpl) Subscribe(l stock.LowStockListener) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.stock.AddLowStockListener(l)
}

// Unsubscribe снимает слушателя; действует со следующего списания.
func (uc *InventoryUseCaseImpl) Unsubscribe(l stock.LowStockListener) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.stock.RemoveLowStockListener(l)
}
