// Package testdb opens throwaway databases for tests.
package testdb

import (
	"testing"

	"github.com/deppfellow/accountowner/internal/database"
	"github.com/deppfellow/accountowner/internal/model/account"
	"github.com/deppfellow/accountowner/internal/model/owner"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New returns an in-memory SQLite database holding the owners and accounts
// tables. It is closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	logger := zerolog.Nop()

	db, err := gorm.Open(gormlite.Open(":memory:"), database.GormConfig(&logger, 0))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&owner.Owner{}, &account.Account{}))

	return db
}

// NewDatabase wraps New in a *database.Database.
func NewDatabase(t testing.TB) *database.Database {
	t.Helper()

	logger := zerolog.Nop()
	return database.NewFromORM(New(t), &logger)
}
