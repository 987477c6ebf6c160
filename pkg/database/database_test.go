package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/countryclub/pkg/config"
)

func TestOpenSQLiteMemory(t *testing.T) {
	db, err := Open(&config.DatabaseConfig{Driver: "sqlite", LogLevel: "silent"})
	require.NoError(t, err)

	type probe struct {
		ID   uint
		Name string
	}
	require.NoError(t, db.AutoMigrate(&probe{}))
	require.NoError(t, db.Create(&probe{Name: "a"}).Error)

	var n int64
	require.NoError(t, db.Model(&probe{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"})
	assert.EqualError(t, err, "unsupported database driver: oracle")
}

func TestOpenRedisMemory(t *testing.T) {
	client, mr, err := OpenRedis(&config.RedisConfig{Mode: "memory"})
	require.NoError(t, err)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.Set(ctx, "k", "v", 0).Err())
	assert.Equal(t, "v", client.Get(ctx, "k").Val())
}
