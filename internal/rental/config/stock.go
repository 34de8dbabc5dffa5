package config

import "time"

// StockConfig содержит настройки оповещений о низком остатке копий.
type StockConfig struct {
	LowThreshold int    `yaml:"low_threshold" env:"MRS_STOCK_LOW_THRESHOLD" env-default:"2"`
	AlertChannel string `yaml:"alert_channel" env:"MRS_STOCK_ALERT_CHANNEL" env-default:"stock:alerts"`
	AlertKey     string `yaml:"alert_key" env:"MRS_STOCK_ALERT_KEY" env-default:"stock:low"`

	// PublishTimeout ограничивает запись оповещения в Redis под блокировкой склада.
	PublishTimeout time.Duration `yaml:"publish_timeout" env:"MRS_STOCK_PUBLISH_TIMEOUT" env-default:"1s"`
}
