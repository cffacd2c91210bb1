package repository

import (
	"time"

	"github.com/Muhammed-KRM/E-ticaret/internal/config"
	"github.com/redis/go-redis/v9"
)

func NewRateLimitRepoAt(client *redis.Client, cfg config.RateConfig, now func() time.Time) RateLimitRepository {
	return &rateLimitRepository{client: client, cfg: cfg, now: now}
}
