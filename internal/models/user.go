package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// lowercase folds strings for case-insensitive matching of usernames
// and categories.
var lowercase = cases.Lower(language.Und)

// User represents a registered user of the expense tracker.
type User struct {
	DefaultModel
	Username string `gorm:"uniqueIndex"`
	Email    string
	Password string `json:"-"` // bcrypt hash, never serialized
}

// BeforeSave normalizes the username so that lookups are
// case-insensitive.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Username = lowercase.String(strings.TrimSpace(u.Username))
	u.Email = strings.TrimSpace(u.Email)

	return nil
}

// FindUserByUsername returns the user with the given username,
// normalized the same way BeforeSave normalizes it.
func FindUserByUsername(db *gorm.DB, username string) (User, error) {
	var user User
	err := db.First(&user, "username = ?", lowercase.String(strings.TrimSpace(username))).Error
	return user, err
}
