package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pastime-app/backend/internal/db"
	"github.com/pastime-app/backend/internal/utils/pagination"
)

// SwipeRepository provides data access for swipes and the friendship
// rows they produce. All matching logic lives here: a friendship is only
// ever created as a side effect of a reciprocal request (see Request).
type SwipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository creates a new repository bound to the given DB connection.
func NewSwipeRepository(database *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: database}
}

// Request records a "request" swipe from swiper toward swiped and runs
// the reciprocity check. Returns true when the swipe completed a mutual
// match and a friendship row was created.
//
// The check and both inserts share one transaction, so a detected match
// can never be left without its friendship row.
//
// Reciprocity rule:
//   - Look at the latest swipe (highest id) from swiped back toward
//     swiper. Swipes are an append-only log; the newest row is the
//     counterpart's current intent, which makes the check deterministic.
//   - If that row is a request and the two are not already friends in
//     either direction, insert Friendship(swiper, swiped).
//   - Declines and absent rows produce no friendship and no error.
func (r *SwipeRepository) Request(ctx context.Context, swiperID, swipedID uint64) (bool, error) {
	matched := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		swipe := db.Swipe{
			SwiperID:  swiperID,
			SwipedID:  swipedID,
			Requested: true,
			Declined:  false,
		}
		if err := tx.Create(&swipe).Error; err != nil {
			return err
		}

		var reverse db.Swipe
		err := tx.Where("swiper_id = ? AND swiped_id = ?", swipedID, swiperID).
			Order("id DESC").
			First(&reverse).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nobody swiped back yet
		}
		if err != nil {
			return err
		}
		if !reverse.Requested {
			return nil
		}

		friends, err := friendshipExists(tx, swiperID, swipedID)
		if err != nil {
			return err
		}
		if friends {
			return nil // repeated mutual request, row already there
		}

		friendship := db.Friendship{UserID: swiperID, FriendID: swipedID}
		if err := tx.Create(&friendship).Error; err != nil {
			return err
		}
		matched = true
		return nil
	})
	return matched, err
}

// Decline records a "decline" swipe. Declines are stored with the same
// shape as requests but are never checked for reciprocity: they neither
// create a friendship nor block a later request from either side.
func (r *SwipeRepository) Decline(ctx context.Context, swiperID, swipedID uint64) error {
	swipe := db.Swipe{
		SwiperID:  swiperID,
		SwipedID:  swipedID,
		Requested: false,
		Declined:  true,
	}
	return r.db.WithContext(ctx).Create(&swipe).Error
}

// SwipeableUsers returns candidate profiles for a user: everyone except
// the user and anyone the user has already swiped, ordered by id.
// Supports cursor-based pagination via paginationToken.
func (r *SwipeRepository) SwipeableUsers(
	ctx context.Context,
	userID uint64,
	paginationToken *string,
	limit int,
) ([]db.User, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	swiped := r.db.
		Table("swipes").
		Select("swiped_id").
		Where("swiper_id = ?", userID)

	query := r.db.WithContext(ctx).
		Where("id != ?", userID).
		Where("id NOT IN (?)", swiped).
		Order("id").
		Limit(limit + 1)

	if cursor.LastID > 0 {
		query = query.Where("id > ?", cursor.LastID)
	}

	var users []db.User
	if err := query.Find(&users).Error; err != nil {
		return nil, nil, err
	}

	// pagination: build next cursor if needed
	var nextToken *string
	if len(users) > limit {
		users = users[:limit]
		token, _ := pagination.Encode(pagination.Cursor{LastID: users[limit-1].ID})
		nextToken = &token
	}

	return users, nextToken, nil
}

// Requesters returns the users whose latest swipe toward userID is a
// request, ordered by id.
func (r *SwipeRepository) Requesters(ctx context.Context, userID uint64) ([]db.User, error) {
	var users []db.User
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.requesterIDs(userID)).
		Order("id").
		Find(&users).Error
	return users, err
}

// CountRequesters counts pending requesters for userID. Backs the
// cache-first count endpoint.
func (r *SwipeRepository) CountRequesters(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id IN (?)", r.requesterIDs(userID)).
		Count(&count).Error
	return count, err
}

// requesterIDs selects the swiper ids whose most recent swipe toward
// userID has requested=1. Grouping by swiper keeps only the latest row
// per direction, matching the rule Request applies.
func (r *SwipeRepository) requesterIDs(userID uint64) *gorm.DB {
	latest := r.db.
		Table("swipes").
		Select("MAX(id)").
		Where("swiped_id = ?", userID).
		Group("swiper_id")

	return r.db.
		Table("swipes").
		Select("swiper_id").
		Where("id IN (?)", latest).
		Where("requested = ?", true)
}

// DeleteBetween removes the swipe rows where swiper is the swiper and
// swiped the target. Only that direction is cleared: the counterpart's
// swipes stay until they unfriend too.
func (r *SwipeRepository) DeleteBetween(ctx context.Context, swiperID, swipedID uint64) error {
	return deleteSwipesBetween(r.db.WithContext(ctx), swiperID, swipedID)
}

// deleteSwipesBetween clears one swipe direction on the given handle so
// it can run inside FriendshipRepository's unfriend transaction.
func deleteSwipesBetween(tx *gorm.DB, swiperID, swipedID uint64) error {
	return tx.
		Where("swiper_id = ? AND swiped_id = ?", swiperID, swipedID).
		Delete(&db.Swipe{}).Error
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
