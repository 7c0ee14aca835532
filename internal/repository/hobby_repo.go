package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pastime-app/backend/internal/db"
)

// HobbyRepository provides data access methods for hobbies and the
// user-hobby join table.
type HobbyRepository struct {
	db *gorm.DB
}

// NewHobbyRepository creates a new repository bound to the given DB connection.
func NewHobbyRepository(database *gorm.DB) *HobbyRepository {
	return &HobbyRepository{db: database}
}

// ListForUser returns the hobbies attached to a user, ordered by name.
func (r *HobbyRepository) ListForUser(ctx context.Context, userID uint64) ([]db.Hobby, error) {
	var hobbies []db.Hobby
	err := r.db.WithContext(ctx).
		Table("hobbies h").
		Joins("JOIN user_hobbies uh ON uh.hobby_id = h.id").
		Where("uh.user_id = ?", userID).
		Order("h.name").
		Find(&hobbies).Error
	return hobbies, err
}

// FindByName returns the hobby with the given name, or gorm.ErrRecordNotFound.
func (r *HobbyRepository) FindByName(ctx context.Context, name string) (*db.Hobby, error) {
	var hobby db.Hobby
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&hobby).Error; err != nil {
		return nil, err
	}
	return &hobby, nil
}

// FindByID returns the hobby with the given id, or gorm.ErrRecordNotFound.
func (r *HobbyRepository) FindByID(ctx context.Context, hobbyID uint64) (*db.Hobby, error) {
	var hobby db.Hobby
	if err := r.db.WithContext(ctx).First(&hobby, hobbyID).Error; err != nil {
		return nil, err
	}
	return &hobby, nil
}

// Attach links an existing hobby to a user. Attaching the same hobby
// twice is a no-op thanks to the composite PK.
func (r *HobbyRepository) Attach(ctx context.Context, userID, hobbyID uint64) error {
	join := db.UserHobby{UserID: userID, HobbyID: hobbyID}
	err := r.db.WithContext(ctx).Create(&join).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// AttachByName attaches a hobby by name, creating the hobby row first if
// the name is new. Hobby creation and the join insert run in one
// transaction so a crash cannot leave a hobby without its join row.
func (r *HobbyRepository) AttachByName(ctx context.Context, userID uint64, name string) (*db.Hobby, error) {
	var hobby db.Hobby
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(db.Hobby{Name: name}).FirstOrCreate(&hobby).Error; err != nil {
			return err
		}
		join := db.UserHobby{UserID: userID, HobbyID: hobby.ID}
		if err := tx.Create(&join).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &hobby, nil
}

// Detach removes the join row. Removing a hobby the user never had
// reports not-found.
func (r *HobbyRepository) Detach(ctx context.Context, userID, hobbyID uint64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND hobby_id = ?", userID, hobbyID).
		Delete(&db.UserHobby{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
