package database

import (
	"context"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/countryclub/pkg/config"
)

var (
	redisOnce   sync.Once
	redisClient *redis.Client
	miniRedis   *miniredis.Miniredis
)

// InitRedis 初始化Redis连接
func InitRedis(cfg *config.RedisConfig) error {
	var err error
	redisOnce.Do(func() {
		redisClient, miniRedis, err = OpenRedis(cfg)
	})
	return err
}

// OpenRedis 创建Redis客户端，memory 模式下启动内嵌的 miniredis
func OpenRedis(cfg *config.RedisConfig) (*redis.Client, *miniredis.Miniredis, error) {
	if cfg.Mode == "memory" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, nil, err
		}
		return redis.NewClient(&redis.Options{Addr: mr.Addr()}), mr, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return client, nil, nil
}

// GetRedis 获取Redis客户端
func GetRedis() *redis.Client {
	if redisClient == nil {
		panic("redis not initialized, call InitRedis first")
	}
	return redisClient
}

// CloseRedis 关闭Redis连接
func CloseRedis() error {
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			return err
		}
	}
	if miniRedis != nil {
		miniRedis.Close()
	}
	return nil
}
