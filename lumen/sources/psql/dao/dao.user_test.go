package dao

import (
	"context"
	"testing"

	"lumen/lumen/sources/psql/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// every pooled connection would get its own empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestUserDAO(t *testing.T) {
	ctx := context.Background()
	d := NewUserDAO(setupDB(t))

	name := "Ada Lovelace"
	created, err := d.CreateUser(ctx, "ada", "ada@example.com", &name)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	byName, err := d.GetUserByUsername(ctx, "ada")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, "Ada Lovelace", *byName.FullName)

	byID, err := d.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)

	missing, err := d.GetUserByUsername(ctx, "grace")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = d.GetUserByID(ctx, 9999)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserDAO_UniqueUsername(t *testing.T) {
	ctx := context.Background()
	d := NewUserDAO(setupDB(t))

	_, err := d.CreateUser(ctx, "ada", "a@example.com", nil)
	require.NoError(t, err)
	_, err = d.CreateUser(ctx, "ada", "b@example.com", nil)
	assert.Error(t, err)
}
