// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the full schema.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repository.AutoMigrate(db))
	return db
}

// NewStore is NewDB wrapped in a repository.Store.
func NewStore(t testing.TB) *repository.Store {
	t.Helper()
	return repository.NewStore(NewDB(t))
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
