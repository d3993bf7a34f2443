package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RedisCache implementa a interface Cache usando Redis
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
	tracer trace.Tracer
}

// NewRedisCache cria uma nova instância de RedisCache
func NewRedisCache(addr, password string, db int, logger *zap.Logger) (*RedisCache, error) {
	tracer := otel.GetTracerProvider().Tracer("loja-api.cache.redis")

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ctx, span := tracer.Start(
		ctx,
		"RedisCache.Init",
		trace.WithAttributes(
			attribute.String("redis.addr", addr),
			attribute.Int("redis.db", db),
		),
	)
	defer span.End()

	if err := client.Ping(ctx).Err(); err != nil {
		span.SetStatus(codes.Error, "connection failure")
		return nil, err
	}

	span.SetStatus(codes.Ok, "connection successful")

	return &RedisCache{
		client: client,
		logger: logger,
		tracer: tracer,
	}, nil
}

// Set armazena um valor serializado em JSON no Redis
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	ctx, span := c.tracer.Start(ctx, "RedisCache.Set",
		trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	data, err := json.Marshal(value)
	if err != nil {
		span.SetStatus(codes.Error, "marshal failure")
		return err
	}

	if err := c.client.Set(ctx, key, data, expiration).Err(); err != nil {
		c.logger.Error("falha ao gravar no cache Redis", zap.String("key", key), zap.Error(err))
		span.SetStatus(codes.Error, "set failure")
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Get recupera um valor do Redis
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "RedisCache.Get",
		trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		span.SetAttributes(attribute.Bool("cache.hit", false))
		span.SetStatus(codes.Ok, "")
		return false, nil
	}
	if err != nil {
		c.logger.Error("falha ao ler do cache Redis", zap.String("key", key), zap.Error(err))
		span.SetStatus(codes.Error, "get failure")
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		span.SetStatus(codes.Error, "unmarshal failure")
		return true, err
	}

	span.SetAttributes(attribute.Bool("cache.hit", true))
	span.SetStatus(codes.Ok, "")
	return true, nil
}

// Delete remove um valor do Redis
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	ctx, span := c.tracer.Start(ctx, "RedisCache.Delete",
		trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	return c.client.Del(ctx, key).Err()
}

// Clear remove todos os valores do banco Redis configurado
func (c *RedisCache) Clear(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "RedisCache.Clear")
	defer span.End()

	return c.client.FlushDB(ctx).Err()
}

// Ping verifica a conexão com o Redis
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
