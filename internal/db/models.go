package db

import (
	"time"
)

// User table
type User struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"user_id"`
	Email       string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	DOB         string    `gorm:"size:32" json:"dob"`
	Gender      string    `gorm:"size:16" json:"gender"`
	Coordinates string    `gorm:"size:64" json:"coordinates"`
	Location    string    `gorm:"size:128" json:"location"`
	ProfileImg  string    `gorm:"size:512" json:"profile_img"`
	Bio         string    `gorm:"type:text" json:"bio"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

// Hobby is a named tag shared across users. Names are globally unique;
// attaching an unknown name creates the row.
type Hobby struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"hobby_id"`
	Name string `gorm:"uniqueIndex;size:64;not null" json:"name"`
}

// UserHobby joins users to hobbies.
//
// Composite PK: (UserID, HobbyID)
//   - Ensures a user holds a given hobby at most once.
type UserHobby struct {
	UserID  uint64 `gorm:"primaryKey"`
	HobbyID uint64 `gorm:"primaryKey"`
}

// Swipe records a directed request/decline from swiper toward swiped.
//
// Rows are append-only: repeated swipes on the same pair add history
// instead of overwriting. The reciprocity check reads the latest row
// per direction (highest id), so the newest swipe always wins.
//
// Index idx_swipe_pair(swiper_id, swiped_id) serves both the
// reciprocity lookup and the swipeable-users exclusion subquery.
type Swipe struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	SwiperID  uint64    `gorm:"index:idx_swipe_pair,priority:1;not null"`
	SwipedID  uint64    `gorm:"index:idx_swipe_pair,priority:2;not null"`
	Requested bool      `gorm:"not null"`
	Declined  bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Friendship stores one row per friend pair. The relation is undirected:
// queries match either column order, but only one direction is inserted.
// The unique pair index guards against duplicates from repeated mutual
// requests.
type Friendship struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"index:idx_friend_pair,unique,priority:1;not null"`
	FriendID  uint64    `gorm:"index:idx_friend_pair,unique,priority:2;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Message table. The autoincrement id doubles as the conversation
// ordering key.
type Message struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"message_id"`
	FromID    uint64    `gorm:"index:idx_msg_from;not null" json:"from_id"`
	ToID      uint64    `gorm:"index:idx_msg_to;not null" json:"to_id"`
	Body      string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (User) TableName() string       { return "users" }
func (Hobby) TableName() string      { return "hobbies" }
func (UserHobby) TableName() string  { return "user_hobbies" }
func (Swipe) TableName() string      { return "swipes" }
func (Friendship) TableName() string { return "friends" }
func (Message) TableName() string    { return "messages" }
