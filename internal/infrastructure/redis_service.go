package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"nutritrack/internal/config"
	"nutritrack/internal/domain/entities"
)

const mealsCacheKey = "meals:all"

// RedisService caches read-mostly meal data. With no reachable Redis it
// runs disabled: reads miss and writes are no-ops.
type RedisService struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisService(cfg config.RedisConfig, logger *zap.Logger) *RedisService {
	logger = logger.Named("redis")

	var opt *redis.Options
	switch {
	case cfg.URL != "":
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			logger.Warn("invalid REDIS_URL, cache disabled", zap.Error(err))
			return &RedisService{logger: logger}
		}
		opt = parsed
	case cfg.Addr != "":
		opt = &redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	default:
		logger.Info("redis not configured, cache disabled")
		return &RedisService{logger: logger}
	}
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), opt.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis connection failed, cache disabled", zap.String("addr", opt.Addr), zap.Error(err))
		_ = client.Close()
		return &RedisService{logger: logger}
	}

	logger.Info("connected to redis", zap.String("addr", opt.Addr))
	return &RedisService{client: client, logger: logger}
}

func (r *RedisService) Enabled() bool {
	return r.client != nil
}

// GetMeals returns the cached meal list, or nil on a miss.
func (r *RedisService) GetMeals(ctx context.Context) ([]*entities.Meal, error) {
	if r.client == nil {
		return nil, nil
	}
	data, err := r.client.Get(ctx, mealsCacheKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var meals []*entities.Meal
	if err := json.Unmarshal([]byte(data), &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *RedisService) SetMeals(ctx context.Context, meals []*entities.Meal, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	data, err := json.Marshal(meals)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, mealsCacheKey, data, ttl).Err()
}

func (r *RedisService) InvalidateMeals(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, mealsCacheKey).Err()
}

func (r *RedisService) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
