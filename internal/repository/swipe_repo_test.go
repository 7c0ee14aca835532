package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastime-app/backend/internal/db"
	"github.com/pastime-app/backend/internal/repository"
)

func TestRequestWithoutReciprocation(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 3)
	repo := repository.NewSwipeRepository(dbase)

	matched, err := repo.Request(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, matched)

	var count int64
	dbase.Model(&db.Friendship{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestMutualRequestCreatesFriendship(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 3)
	repo := repository.NewSwipeRepository(dbase)

	// swipe (1,2,requested), then swipe (2,1,requested) → friendship (2,1)
	matched, err := repo.Request(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, matched)

	matched, err = repo.Request(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, matched)

	var friendship db.Friendship
	require.NoError(t, dbase.First(&friendship).Error)
	assert.Equal(t, uint64(2), friendship.UserID)
	assert.Equal(t, uint64(1), friendship.FriendID)

	friends, err := repository.NewFriendshipRepository(dbase).ListForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, uint64(2), friends[0].ID)
}

func TestRepeatedMutualRequestNoDuplicate(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 2)
	repo := repository.NewSwipeRepository(dbase)

	_, err := repo.Request(ctx, 1, 2)
	require.NoError(t, err)
	matched, err := repo.Request(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, matched)

	// both swipe again: still exactly one friendship row
	matched, err = repo.Request(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, matched)
	matched, err = repo.Request(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, matched)

	var count int64
	dbase.Model(&db.Friendship{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeclineNeverCreatesFriendship(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 2)
	repo := repository.NewSwipeRepository(dbase)

	require.NoError(t, repo.Decline(ctx, 1, 2))
	require.NoError(t, repo.Decline(ctx, 2, 1))

	var count int64
	dbase.Model(&db.Friendship{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeclineDoesNotBlockLaterRequest(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 2)
	repo := repository.NewSwipeRepository(dbase)

	// user 2 declines, then changes their mind
	require.NoError(t, repo.Decline(ctx, 2, 1))
	_, err := repo.Request(ctx, 2, 1)
	require.NoError(t, err)

	// the latest swipe from 2 is a request, so 1's request matches
	matched, err := repo.Request(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestLatestSwipeWins(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 2)
	repo := repository.NewSwipeRepository(dbase)

	// user 2 requested once but declined most recently
	_, err := repo.Request(ctx, 2, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Decline(ctx, 2, 1))

	matched, err := repo.Request(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestSwipeableUsersExclusions(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 5)
	repo := repository.NewSwipeRepository(dbase)

	_, err := repo.Request(ctx, 1, 2)
	require.NoError(t, err)
	require.NoError(t, repo.Decline(ctx, 1, 3))

	users, next, err := repo.SwipeableUsers(ctx, 1, nil, 10)
	require.NoError(t, err)
	assert.Nil(t, next)

	ids := make([]uint64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	// never self, never anyone already swiped, ordered by id
	assert.Equal(t, []uint64{4, 5}, ids)
}

func TestSwipeableUsersPagination(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 6)
	repo := repository.NewSwipeRepository(dbase)

	users, next, err := repo.SwipeableUsers(ctx, 1, nil, 2)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.NotNil(t, next)
	assert.Equal(t, uint64(2), users[0].ID)
	assert.Equal(t, uint64(3), users[1].ID)

	users, next2, err := repo.SwipeableUsers(ctx, 1, next, 2)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.NotNil(t, next2)
	assert.Equal(t, uint64(4), users[0].ID)
	assert.Equal(t, uint64(5), users[1].ID)

	users, next3, err := repo.SwipeableUsers(ctx, 1, next2, 2)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Nil(t, next3)
	assert.Equal(t, uint64(6), users[0].ID)
}

func TestRequesters(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 4)
	repo := repository.NewSwipeRepository(dbase)

	_, err := repo.Request(ctx, 2, 1)
	require.NoError(t, err)
	_, err = repo.Request(ctx, 3, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Decline(ctx, 4, 1))
	// user 3 changed their mind after requesting
	require.NoError(t, repo.Decline(ctx, 3, 1))

	users, err := repo.Requesters(ctx, 1)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, uint64(2), users[0].ID)

	count, err := repo.CountRequesters(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteBetweenIsOneDirectional(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	seedUsers(t, dbase, 2)
	repo := repository.NewSwipeRepository(dbase)

	_, err := repo.Request(ctx, 1, 2)
	require.NoError(t, err)
	_, err = repo.Request(ctx, 2, 1)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteBetween(ctx, 1, 2))

	var remaining []db.Swipe
	require.NoError(t, dbase.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, uint64(2), remaining[0].SwiperID)
}
