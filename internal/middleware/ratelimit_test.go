package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCheckRateLimit(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	mr, rdb := setupRateLimitRedis(t)
	ctx := context.Background()

	t.Run("allows up to the limit", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			allowed, err := CheckRateLimit(ctx, rdb, "create_post", "ip:1.2.3.4", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed, "request %d should be allowed", i+1)
		}
		allowed, err := CheckRateLimit(ctx, rdb, "create_post", "ip:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		allowed, err := CheckRateLimit(ctx, rdb, "create_subredit", "ip:1.2.3.4", 1, time.Minute)
		require.NoError(t, err)
		require.True(t, allowed)

		allowed, err = CheckRateLimit(ctx, rdb, "create_subredit", "ip:1.2.3.4", 1, time.Minute)
		require.NoError(t, err)
		require.False(t, allowed)

		mr.FastForward(time.Minute + time.Second)

		allowed, err = CheckRateLimit(ctx, rdb, "create_subredit", "ip:1.2.3.4", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("resources are counted independently", func(t *testing.T) {
		allowed, err := CheckRateLimit(ctx, rdb, "resource_a", "ip:9.9.9.9", 1, time.Minute)
		require.NoError(t, err)
		require.True(t, allowed)

		allowed, err = CheckRateLimit(ctx, rdb, "resource_b", "ip:9.9.9.9", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("nil client errors", func(t *testing.T) {
		_, err := CheckRateLimit(ctx, nil, "create_post", "ip:1.2.3.4", 3, time.Minute)
		assert.Error(t, err)
	})
}

func TestCheckRateLimit_DisabledOutsideProduction(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	_, rdb := setupRateLimitRedis(t)

	for i := 0; i < 10; i++ {
		allowed, err := CheckRateLimit(context.Background(), rdb, "create_post", "ip:1.2.3.4", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	newApp := func(h fiber.Handler) *fiber.App {
		app := fiber.New()
		app.Post("/posts", h, func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusCreated)
		})
		return app
	}

	t.Run("enforces the limit per IP", func(t *testing.T) {
		_, rdb := setupRateLimitRedis(t)
		app := newApp(RateLimit(rdb, 2, time.Minute, "create_post"))

		for i := 0; i < 2; i++ {
			resp, err := app.Test(httptest.NewRequest("POST", "/posts", nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
			_ = resp.Body.Close()
		}

		resp, err := app.Test(httptest.NewRequest("POST", "/posts", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("fails open without redis", func(t *testing.T) {
		app := newApp(RateLimit(nil, 1, time.Minute, "create_post"))

		for i := 0; i < 3; i++ {
			resp, err := app.Test(httptest.NewRequest("POST", "/posts", nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
			_ = resp.Body.Close()
		}
	})

	t.Run("fails closed without redis when asked to", func(t *testing.T) {
		app := newApp(RateLimitWithPolicy(nil, 1, time.Minute, FailClosed, "create_post"))

		resp, err := app.Test(httptest.NewRequest("POST", "/posts", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
		_ = resp.Body.Close()
	})
}
