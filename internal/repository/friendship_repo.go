package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pastime-app/backend/internal/db"
)

// FriendshipRepository reads and tears down friendships. Creation is not
// exposed here: friendship rows only come from SwipeRepository.Request.
type FriendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository creates a new repository bound to the given DB connection.
func NewFriendshipRepository(database *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: database}
}

// ListForUser returns the user's friends regardless of which column the
// user landed in when the row was stored, ordered by id.
func (r *FriendshipRepository) ListForUser(ctx context.Context, userID uint64) ([]db.User, error) {
	friendIDs := r.db.
		Table("friends").
		Select("CASE WHEN user_id = ? THEN friend_id ELSE user_id END", userID).
		Where("user_id = ? OR friend_id = ?", userID, userID)

	var users []db.User
	err := r.db.WithContext(ctx).
		Where("id IN (?)", friendIDs).
		Order("id").
		Find(&users).Error
	return users, err
}

// Exists reports whether a and b are friends, in either stored direction.
func (r *FriendshipRepository) Exists(ctx context.Context, a, b uint64) (bool, error) {
	return friendshipExists(r.db.WithContext(ctx), a, b)
}

// Delete removes the friendship between a and b, matching either stored
// direction. Reports not-found when no row existed.
func (r *FriendshipRepository) Delete(ctx context.Context, a, b uint64) error {
	res := r.db.WithContext(ctx).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a).
		Delete(&db.Friendship{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Unfriend removes the friendship between userID and friendID (either
// stored direction) and clears userID's swipes toward the ex-friend.
// Both deletes share one transaction: a failure on either side leaves
// the pair fully intact. Reports not-found when no friendship existed.
func (r *FriendshipRepository) Unfriend(ctx context.Context, userID, friendID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", userID, friendID, friendID, userID).
			Delete(&db.Friendship{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return deleteSwipesBetween(tx, userID, friendID)
	})
}

// friendshipExists checks both storage directions on the given handle so
// it can run inside SwipeRepository's match transaction.
func friendshipExists(tx *gorm.DB, a, b uint64) (bool, error) {
	var count int64
	err := tx.Model(&db.Friendship{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}
