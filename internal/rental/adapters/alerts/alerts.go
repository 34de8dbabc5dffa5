// Package alerts contains low-stock listeners that report inventory
// shortages to the log and to Redis.
package alerts

import (
	"context"
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"movierental/internal/rental/domain/stock"
	"movierental/pkg/logger"
)

// Константы для логирования.
const (
	LogLowStock        = "movie stock is low"
	LogAlertPublished  = "low stock alert published"
	ErrorFailedEncode  = "failed to encode low stock alert"
	ErrorFailedPublish = "failed to publish low stock alert"
	ErrorFailedRead    = "failed to read low stock alerts"
)

// DefaultPublishTimeout ограничивает запись оповещения, если таймаут не задан.
const DefaultPublishTimeout = time.Second

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Alert - сообщение о низком остатке.
type Alert struct {
	Title     string    `json:"title"`
	InStock   int       `json:"in_stock"`
	Threshold int       `json:"threshold"`
	At        time.Time `json:"at"`
}

// LogListener пишет предупреждение в лог при каждом уведомлении склада.
type LogListener struct {
	ctx       context.Context
	threshold int
}

// NewLogListener создает слушателя. ctx несет логгер, которым пишутся предупреждения.
func NewLogListener(ctx context.Context, threshold int) *LogListener {
	return &LogListener{ctx: ctx, threshold: threshold}
}

var _ stock.LowStockListener = (*LogListener)(nil)

// Threshold возвращает порог уведомления.
func (l *LogListener) Threshold() int { return l.threshold }

// StockLow пишет предупреждение с названием и остатком.
func (l *LogListener) StockLow(movie stock.Movie, inStock int) {
	logger.Log(l.ctx).Warn(l.ctx, LogLowStock,
		zap.String("title", movie.Title()),
		zap.Int("in_stock", inStock),
		zap.Int("threshold", l.threshold),
	)
}

// RedisListener хранит последний низкий остаток по названию в хеше key
// и публикует Alert в канал channel.
type RedisListener struct {
	ctx       context.Context
	client    *redis.Client
	threshold int
	channel   string
	key       string
	timeout   time.Duration
	now       func() time.Time
}

// NewRedisListener создает слушателя поверх клиента go-redis.
// Каждая публикация ограничена timeout; нулевое значение заменяется DefaultPublishTimeout.
func NewRedisListener(
	ctx context.Context,
	client *redis.Client,
	threshold int,
	channel, key string,
	timeout time.Duration,
) *RedisListener {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &RedisListener{
		ctx:       ctx,
		client:    client,
		threshold: threshold,
		channel:   channel,
		key:       key,
		timeout:   timeout,
		now:       time.Now,
	}
}

var _ stock.LowStockListener = (*RedisListener)(nil)

// Threshold возвращает порог уведомления.
func (l *RedisListener) Threshold() int { return l.threshold }

// StockLow записывает остаток и публикует сообщение одной транзакцией.
// Вызывается под блокировкой склада, поэтому ждет Redis не дольше timeout.
// Ошибки Redis только логируются.
func (l *RedisListener) StockLow(movie stock.Movie, inStock int) {
	ctx, cancel := context.WithTimeout(l.ctx, l.timeout)
	defer cancel()

	if err := l.publish(ctx, movie.Title(), inStock); err != nil {
		logger.Log(l.ctx).Error(l.ctx, ErrorFailedPublish,
			zap.String("title", movie.Title()),
			zap.Error(err),
		)
	}
}

func (l *RedisListener) publish(ctx context.Context, title string, inStock int) error {
	log := logger.Log(ctx).With(zap.String("channel", l.channel), zap.String("title", title))

	payload, err := json.Marshal(Alert{
		Title:     title,
		InStock:   inStock,
		Threshold: l.threshold,
		At:        l.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedEncode, err)
	}

	pipe := l.client.TxPipeline()
	pipe.HSet(ctx, l.key, title, inStock)
	pipe.Publish(ctx, l.channel, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedPublish, err)
	}

	log.Debug(ctx, LogAlertPublished, zap.Int("in_stock", inStock))
	return nil
}

// Levels возвращает последние записанные низкие остатки по названиям.
func (l *RedisListener) Levels(ctx context.Context) (map[string]int, error) {
	raw, err := l.client.HGetAll(ctx, l.key).Result()
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedRead, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedRead, err)
	}

	levels := make(map[string]int, len(raw))
	for title, value := range raw {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s: title %q: %w", ErrorFailedRead, title, err)
		}
		levels[title] = n
	}
	return levels, nil
}

// DecodeAlert разбирает сообщение из канала оповещений.
func DecodeAlert(payload string) (Alert, error) {
	var a Alert
	if err := json.UnmarshalFromString(payload, &a); err != nil {
		return Alert{}, fmt.Errorf("decode low stock alert: %w", err)
	}
	return a, nil
}
