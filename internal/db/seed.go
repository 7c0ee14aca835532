package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedHobbies = []string{
	"hiking", "chess", "climbing", "painting", "cooking",
	"photography", "cycling", "gardening", "board games", "running",
}

// SeedTestData resets the database and populates it with demo users,
// hobbies, swipes and the friendships the mutual swipes produce.
//
// Behavior:
//  1. Clears all six tables.
//  2. Creates 20 users with hashed passwords and a couple of hobbies each.
//  3. Generates random request/decline swipes; every 3rd requester gets a
//     reciprocal request, so the seed contains real matches.
//  4. Sends a short exchange between the first matched pair.
//
// Compatible with both MySQL and SQLite (AUTO_INCREMENT reset skipped for SQLite).
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- Fresh start ---
	for _, table := range []string{"messages", "friends", "swipes", "user_hobbies", "hobbies", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	// Reset auto-increment sequences
	switch db.Dialector.Name() {
	case "mysql":
		for _, table := range []string{"messages", "friends", "swipes", "hobbies", "users"} {
			db.Exec("ALTER TABLE " + table + " AUTO_INCREMENT = 1")
		}
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('messages','friends','swipes','hobbies','users')")
	}

	log.Println("Cleared existing data")

	// --- Seed Users ---
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	locations := []string{"Leeds", "Manchester", "Bristol", "Glasgow", "Brighton"}
	users := make([]User, 0, 20)
	for i := 1; i <= 20; i++ {
		gender := "male"
		if i%2 == 0 {
			gender = "female"
		}
		users = append(users, User{
			Email:    fmt.Sprintf("user%d@example.com", i),
			Password: string(hash),
			Name:     fmt.Sprintf("User %d", i),
			DOB:      fmt.Sprintf("19%d-0%d-15", 70+i, i%9+1),
			Gender:   gender,
			Location: locations[i%len(locations)],
			Bio:      "Looking for someone to share a hobby with.",
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	log.Printf("Seeded %d users.", len(users))

	// --- Seed Hobbies + joins ---
	hobbies := make([]Hobby, 0, len(seedHobbies))
	for _, name := range seedHobbies {
		hobbies = append(hobbies, Hobby{Name: name})
	}
	if err := db.Create(&hobbies).Error; err != nil {
		return fmt.Errorf("failed to seed hobbies: %w", err)
	}
	for _, u := range users {
		picked := r.Perm(len(hobbies))[:2]
		for _, idx := range picked {
			join := UserHobby{UserID: u.ID, HobbyID: hobbies[idx].ID}
			if err := db.Create(&join).Error; err != nil {
				return fmt.Errorf("failed to seed user hobby: %w", err)
			}
		}
	}

	// --- Seed Swipes (+ friendships from mutual requests) ---
	counter := 0
	var firstPair *Friendship
	paired := map[[2]uint64]bool{}
	for _, swiper := range users {
		for j := 0; j < 5; j++ {
			swiped := users[r.Intn(len(users))]
			if swiped.ID == swiper.ID {
				continue
			}

			requested := r.Intn(100) < 70
			swipe := Swipe{
				SwiperID:  swiper.ID,
				SwipedID:  swiped.ID,
				Requested: requested,
				Declined:  !requested,
			}
			if err := db.Create(&swipe).Error; err != nil {
				return fmt.Errorf("failed to seed swipe: %w", err)
			}

			// guarantee mutual requests every 3rd swipe
			key := [2]uint64{min(swiper.ID, swiped.ID), max(swiper.ID, swiped.ID)}
			if requested && counter%3 == 0 && !paired[key] {
				reciprocal := Swipe{
					SwiperID:  swiped.ID,
					SwipedID:  swiper.ID,
					Requested: true,
				}
				if err := db.Create(&reciprocal).Error; err != nil {
					return fmt.Errorf("failed to seed reciprocal swipe: %w", err)
				}
				friendship := Friendship{UserID: swiped.ID, FriendID: swiper.ID}
				if err := db.Create(&friendship).Error; err != nil {
					return fmt.Errorf("failed to seed friendship: %w", err)
				}
				paired[key] = true
				if firstPair == nil {
					firstPair = &friendship
				}
			}
			counter++
		}
	}

	// --- A short conversation between the first matched pair ---
	if firstPair != nil {
		msgs := []Message{
			{FromID: firstPair.UserID, ToID: firstPair.FriendID, Body: "Hey! We matched."},
			{FromID: firstPair.FriendID, ToID: firstPair.UserID, Body: "Hi! So what's your hobby?"},
		}
		if err := db.Create(&msgs).Error; err != nil {
			return fmt.Errorf("failed to seed messages: %w", err)
		}
	}

	return nil
}

