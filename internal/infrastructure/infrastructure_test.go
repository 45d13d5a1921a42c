package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nutritrack/internal/application/interfaces"
	"nutritrack/internal/config"
	"nutritrack/internal/domain"
	"nutritrack/internal/domain/entities"
)

func TestRateLimiter(t *testing.T) {
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(time.Minute, 2)
	rl.now = func() time.Time { return clock }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "keys are independent")

	clock = clock.Add(61 * time.Second)
	assert.True(t, rl.Allow("a"), "window slid past earlier attempts")

	rl.Reset("a")
	assert.True(t, rl.Allow("a"))

	clock = clock.Add(2 * time.Minute)
	rl.Cleanup()
	assert.Equal(t, 0, rl.size())
}

func TestRateLimiter_Disabled(t *testing.T) {
	var nilLimiter *RateLimiter
	assert.True(t, nilLimiter.Allow("x"))

	rl := NewRateLimiter(time.Minute, 0)
	for i := 0; i < 100; i++ {
		require.True(t, rl.Allow("x"))
	}
}

func TestRateLimiter_RunCleanupNonPositiveInterval(t *testing.T) {
	rl := NewRateLimiter(0, 10)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for _, interval := range []time.Duration{0, -time.Second} {
		start := time.Now()
		assert.NotPanics(t, func() { rl.RunCleanup(ctx, interval) })
		assert.Less(t, time.Since(start), 500*time.Millisecond, "returns without waiting on ctx")
	}
}

func TestJWTService(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateToken("user-1", "admin@esi.ac.ma")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "admin@esi.ac.ma", claims.Email)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewJWTService("other", time.Hour).ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := NewJWTService("test-secret", -time.Minute).GenerateToken("user-1", "a@b.c")
		require.NoError(t, err)
		_, err = svc.ValidateToken(expired)
		assert.Error(t, err)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := NewJWTService("", time.Hour).GenerateToken("user-1", "a@b.c")
		assert.Error(t, err)
	})
}

func TestRedisService_Disabled(t *testing.T) {
	ctx := context.Background()
	svc := NewRedisService(config.RedisConfig{}, zap.NewNop())
	assert.False(t, svc.Enabled())

	meals, err := svc.GetMeals(ctx)
	require.NoError(t, err)
	assert.Nil(t, meals)

	assert.NoError(t, svc.SetMeals(ctx, []*entities.Meal{{Id: 1, Name: "Lunch"}}, time.Minute))
	assert.NoError(t, svc.InvalidateMeals(ctx))
	assert.NoError(t, svc.Close())
}

func TestNewEventPublisher_NoURL(t *testing.T) {
	pub, err := NewEventPublisher(config.NatsConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, NopPublisher{}, pub)

	var events interfaces.EventPublisher = pub
	assert.NoError(t, events.Publish(context.Background(), domain.NewEvent(domain.EventLoginFailed)))
	pub.Close()
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
