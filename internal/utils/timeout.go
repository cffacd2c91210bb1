package utils

import (
	"context"
	"time"
)

// DBTimeout bounds a single repository call. main overrides it from config.
var DBTimeout = 5 * time.Second

func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DBTimeout)
}
