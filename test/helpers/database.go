package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/dronewatch-go/internal/infrastructure/database"
)

// NewTestDB opens a private in-memory journal with every game table migrated.
// It is closed when the test finishes.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err, "open journal database")
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
