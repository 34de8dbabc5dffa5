package config

import (
	"fmt"
	"time"

	"movierental/pkg/db/redis"
)

// RedisConfig содержит настройки подключения к Redis.
type RedisConfig struct {
	Host     string `yaml:"host" env:"MRS_REDIS_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"MRS_REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"MRS_REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"MRS_REDIS_DB" env-default:"0"`
	PoolSize int    `yaml:"pool_size" env:"MRS_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  int    `yaml:"timeout" env:"MRS_REDIS_TIMEOUT" env-default:"5"`
}

// Addr возвращает адрес в виде host:port.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ClientConfig переводит настройки в конфигурацию клиента pkg/db/redis.
func (r *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:     r.Host,
		Port:     r.Port,
		Password: r.Password,
		DB:       r.DB,
		PoolSize: r.PoolSize,
		Timeout:  time.Duration(r.Timeout) * time.Second,
	}
}
