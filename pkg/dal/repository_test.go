package dal

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type widget struct {
	Model
	Name   string
	Status string
}

func newTestRepo(t *testing.T) *Repository[widget] {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&widget{}))
	return NewRepository[widget](db)
}

func TestRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	w := &widget{Name: "Raqueta", Status: "active"}
	require.NoError(t, repo.Create(ctx, w))
	require.NotZero(t, w.ID)

	got, err := repo.FindByID(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Raqueta", got.Name)

	n, err := repo.UpdateFields(ctx, w.ID, map[string]any{"status": "inactive"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err = repo.FindByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepositoryFindPagedWithFilter(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	for _, name := range []string{"Pelota", "Palo de golf", "Pelota tenis", "Red", "Pelota padel"} {
		require.NoError(t, repo.Create(ctx, &widget{Name: name, Status: "active"}))
	}

	f := NewFilter().Search("pelota", "name").Eq("status", "active").Eq("name", "").Order("id ASC")
	page, err := repo.FindPaged(ctx, NewPagination(2, 2, 10, 100), f.Scopes()...)
	require.NoError(t, err)

	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Pelota padel", page.Items[0].Name)
}

func TestNewPaginationClamps(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 10},
		{3, 500, 3, 100},
		{-1, -5, 1, 10},
		{2, 25, 2, 25},
	}
	for _, tt := range tests {
		p := NewPagination(tt.page, tt.limit, 10, 100)
		assert.Equal(t, tt.wantPage, p.Page)
		assert.Equal(t, tt.wantLimit, p.Limit)
	}
	assert.Equal(t, 50, NewPagination(3, 25, 10, 100).Offset())
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := ParseID(bad)
		assert.Error(t, err, bad)
	}
}

type badge struct {
	Model
	Code string `gorm:"uniqueIndex"`
}

func TestIsDuplicate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&badge{}))
	repo := NewRepository[badge](db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &badge{Code: "A-1"}))
	err = repo.Create(ctx, &badge{Code: "A-1"})
	require.Error(t, err)
	assert.True(t, IsDuplicate(err))
	assert.True(t, IsDuplicate(fmt.Errorf("create badge: %w", err)))
	assert.False(t, IsDuplicate(gorm.ErrRecordNotFound))
	assert.False(t, IsDuplicate(nil))
}
