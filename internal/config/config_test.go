package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simrs-backend/internal/models"
	"simrs-backend/internal/repository/repotest"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "JWT_TTL", "KAFKA_BROKERS", "RATE_LIMIT_RPS", "EXPIRY_WINDOW_DAYS", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Contains(t, cfg.DBDSN, "parseTime=True")
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, float64(5), cfg.RateLimitRPS)
	assert.Equal(t, 30, cfg.ExpiryWindowDays)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("RATE_LIMIT_BURST", "20")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://simrs.rs-sehat.id, https://admin.rs-sehat.id")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, []string{"https://simrs.rs-sehat.id", "https://admin.rs-sehat.id"}, cfg.CORSOrigins)
}

func TestConnectDB_UnknownDriver(t *testing.T) {
	_, err := ConnectDB(&Config{DBDriver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestNewLogger_Level(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, NewLogger(&Config{LogLevel: "DEBUG"}).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLogger(&Config{LogLevel: "nonsense"}).GetLevel())
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		created, err := EnsureAdmin(ctx, &repotest.MockUserRepository{}, "", "")
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("creates when missing", func(t *testing.T) {
		var saved *models.User
		users := &repotest.MockUserRepository{
			CreateFunc: func(ctx context.Context, u *models.User) error { saved = u; return nil },
		}
		created, err := EnsureAdmin(ctx, users, "admin", "admin123")
		require.NoError(t, err)
		assert.True(t, created)
		require.NotNil(t, saved)
		assert.Equal(t, models.RoleAdmin, saved.Role)
		assert.NotEqual(t, "admin123", saved.PasswordHash)
	})

	t.Run("existing admin untouched", func(t *testing.T) {
		users := &repotest.MockUserRepository{
			FindByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
				return &models.User{ID: 1, Username: username}, nil
			},
			CreateFunc: func(ctx context.Context, u *models.User) error {
				t.Fatal("Create must not be called")
				return nil
			},
		}
		created, err := EnsureAdmin(ctx, users, "admin", "admin123")
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("lookup failure", func(t *testing.T) {
		users := &repotest.MockUserRepository{
			FindByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
				return nil, errors.New("db down")
			},
		}
		_, err := EnsureAdmin(ctx, users, "admin", "admin123")
		assert.Error(t, err)
	})
}
