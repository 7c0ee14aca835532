package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pastime-app/backend/internal/app"
	"github.com/pastime-app/backend/internal/auth"
	"github.com/pastime-app/backend/internal/cache"
	"github.com/pastime-app/backend/internal/config"
	"github.com/pastime-app/backend/internal/db"
	"github.com/pastime-app/backend/internal/handler"
	"github.com/pastime-app/backend/internal/server"
)

type testEnv struct {
	router chi.Router
	appCtx *app.AppContext
	issuer *auth.TokenIssuer
	redis  *miniredis.Miniredis
}

// setupEnv spins up an in-memory SQLite DB, a miniredis, and the full
// router with every route group mounted. Each test gets its own
// isolated DB + Redis.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(dbase))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	redisCache := cache.NewRedisCache(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // discard logs in tests

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	appCtx := app.New(dbase, redisCache, issuer, logger)

	router := server.New(appCtx, server.Mounts{
		Auth:     handler.NewAuthHandler(appCtx),
		User:     handler.NewUserHandler(appCtx),
		Swipe:    handler.NewSwipeHandler(appCtx),
		Messages: handler.NewMessageHandler(appCtx),
		Friends:  handler.NewFriendHandler(appCtx),
	})

	return &testEnv{router: router, appCtx: appCtx, issuer: issuer, redis: mr}
}

// do sends a JSON request through the router, optionally authenticated.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// register creates a user through the API and returns its token and id.
func (e *testEnv) register(t *testing.T, email, name string) (string, uint64) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "password",
		"name":     name,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID uint64 `json:"user_id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
