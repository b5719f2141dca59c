package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is an account in the system. Admin users may manage the catalog.
type User struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Password     string    `json:"-" gorm:"not null"`
	Name         string    `json:"name"`
	ProfileImage string    `json:"profile_image"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ApplyProfileUpdate copies the provided optional profile fields onto the
// user. Nil pointers leave the current value untouched. Reports whether
// anything changed.
func (u *User) ApplyProfileUpdate(name, profileImage *string) bool {
	changed := false
	if name != nil && *name != u.Name {
		u.Name = *name
		changed = true
	}
	if profileImage != nil && *profileImage != u.ProfileImage {
		u.ProfileImage = *profileImage
		changed = true
	}
	return changed
}

// SetPassword hashes and stores the given plaintext password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext password matches the stored
// hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
