package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pastime-app/backend/internal/db"
)

// UserRepository provides data access methods for the User model.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// UserUpdate carries the fields a profile update may change. Nil pointers
// are left untouched, so a cleared field stays cleared instead of being
// revived from the old row.
type UserUpdate struct {
	Name        *string `json:"name"`
	DOB         *string `json:"dob"`
	Gender      *string `json:"gender"`
	Coordinates *string `json:"coordinates"`
	Location    *string `json:"location"`
	ProfileImg  *string `json:"profile_img"`
	Bio         *string `json:"bio"`
}

// Create inserts a user and returns the stored row with its new id.
func (r *UserRepository) Create(ctx context.Context, user *db.User) (*db.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, user.ID)
}

// FindAll returns every user ordered by id.
func (r *UserRepository) FindAll(ctx context.Context) ([]db.User, error) {
	var users []db.User
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

// FindByEmail returns the user with the given email, or gorm.ErrRecordNotFound.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user with the given id, or gorm.ErrRecordNotFound.
func (r *UserRepository) FindByID(ctx context.Context, userID uint64) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies the set fields of upd to the user's row and returns the
// updated row. Only explicitly provided columns are written.
func (r *UserRepository) Update(ctx context.Context, userID uint64, upd UserUpdate) (*db.User, error) {
	changes := map[string]interface{}{}
	if upd.Name != nil {
		changes["name"] = *upd.Name
	}
	if upd.DOB != nil {
		changes["dob"] = *upd.DOB
	}
	if upd.Gender != nil {
		changes["gender"] = *upd.Gender
	}
	if upd.Coordinates != nil {
		changes["coordinates"] = *upd.Coordinates
	}
	if upd.Location != nil {
		changes["location"] = *upd.Location
	}
	if upd.ProfileImg != nil {
		changes["profile_img"] = *upd.ProfileImg
	}
	if upd.Bio != nil {
		changes["bio"] = *upd.Bio
	}

	if len(changes) > 0 {
		res := r.db.WithContext(ctx).Model(&db.User{}).Where("id = ?", userID).Updates(changes)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, userID)
}

// Remove deletes the user and every row that references it: hobby joins,
// swipes and friendships in either role, and messages sent or received.
// The store has no FK cascade, so this runs as one transaction.
func (r *UserRepository) Remove(ctx context.Context, userID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&db.User{}, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("user_id = ?", userID).Delete(&db.UserHobby{}).Error; err != nil {
			return err
		}
		if err := tx.Where("swiper_id = ? OR swiped_id = ?", userID, userID).Delete(&db.Swipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR friend_id = ?", userID, userID).Delete(&db.Friendship{}).Error; err != nil {
			return err
		}
		return tx.Where("from_id = ? OR to_id = ?", userID, userID).Delete(&db.Message{}).Error
	})
}
