package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/pastime-app/backend/internal/auth"
	"github.com/pastime-app/backend/internal/cache"
)

// AppContext holds the shared dependencies every route group needs:
// the DB handle, the Redis wrapper, the token issuer and the logger.
type AppContext struct {
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Tokens     *auth.TokenIssuer
	Logger     *slog.Logger
}

// New creates a new AppContext
func New(db *gorm.DB, rdb *cache.RedisCache, tokens *auth.TokenIssuer, logger *slog.Logger) *AppContext {
	return &AppContext{
		DB:         db,
		RedisCache: rdb,
		Tokens:     tokens,
		Logger:     logger,
	}
}
