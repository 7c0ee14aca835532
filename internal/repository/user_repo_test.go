package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pastime-app/backend/internal/db"
	"github.com/pastime-app/backend/internal/repository"
)

func strPtr(s string) *string { return &s }

func TestCreateAndFind(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewUserRepository(dbase)

	created, err := repo.Create(ctx, &db.User{
		Email:    "ana@test.com",
		Password: "hash",
		Name:     "Ana",
		Location: "Leeds",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	byEmail, err := repo.FindByEmail(ctx, "ana@test.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", byID.Name)
}

func TestCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewUserRepository(dbase)

	_, err := repo.Create(ctx, &db.User{Email: "dup@test.com", Password: "x", Name: "A"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &db.User{Email: "dup@test.com", Password: "x", Name: "B"})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestUpdateTouchesOnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewUserRepository(dbase)

	created, err := repo.Create(ctx, &db.User{
		Email:    "bob@test.com",
		Password: "hash",
		Name:     "Bob",
		Bio:      "original bio",
		Location: "Bristol",
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, repository.UserUpdate{
		Location: strPtr("Glasgow"),
		Bio:      strPtr(""), // explicitly cleared
	})
	require.NoError(t, err)

	assert.Equal(t, "Bob", updated.Name)            // untouched
	assert.Equal(t, "Glasgow", updated.Location)    // changed
	assert.Equal(t, "", updated.Bio)                // cleared, not revived
	assert.Equal(t, "bob@test.com", updated.Email)  // untouched
}

func TestUpdateMissingUser(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewUserRepository(dbase)

	_, err := repo.Update(ctx, 42, repository.UserUpdate{Name: strPtr("ghost")})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRemoveCascades(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 3)
	repo := repository.NewUserRepository(dbase)

	// rows referencing user 1 in every table, in both directions
	require.NoError(t, dbase.Create(&db.Hobby{ID: 1, Name: "chess"}).Error)
	require.NoError(t, dbase.Create(&db.UserHobby{UserID: 1, HobbyID: 1}).Error)
	require.NoError(t, dbase.Create(&db.Swipe{SwiperID: 1, SwipedID: 2, Requested: true}).Error)
	require.NoError(t, dbase.Create(&db.Swipe{SwiperID: 3, SwipedID: 1, Requested: true}).Error)
	require.NoError(t, dbase.Create(&db.Friendship{UserID: 1, FriendID: 2}).Error)
	require.NoError(t, dbase.Create(&db.Friendship{UserID: 3, FriendID: 1}).Error)
	require.NoError(t, dbase.Create(&db.Message{FromID: 1, ToID: 2, Body: "hi"}).Error)
	require.NoError(t, dbase.Create(&db.Message{FromID: 2, ToID: 1, Body: "hey"}).Error)
	// unrelated rows that must survive
	require.NoError(t, dbase.Create(&db.Swipe{SwiperID: 2, SwipedID: 3, Requested: true}).Error)
	require.NoError(t, dbase.Create(&db.Message{FromID: 2, ToID: 3, Body: "keep"}).Error)

	require.NoError(t, repo.Remove(ctx, 1))

	_, err := repo.FindByID(ctx, 1)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var n int64
	dbase.Model(&db.UserHobby{}).Count(&n)
	assert.Equal(t, int64(0), n)
	dbase.Model(&db.Swipe{}).Count(&n)
	assert.Equal(t, int64(1), n)
	dbase.Model(&db.Friendship{}).Count(&n)
	assert.Equal(t, int64(0), n)
	dbase.Model(&db.Message{}).Count(&n)
	assert.Equal(t, int64(1), n)
}

func TestRemoveMissingUser(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewUserRepository(dbase)

	err := repo.Remove(ctx, 7)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
