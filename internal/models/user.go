package models

import "time"

// UserDB represents a user record in the database
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                     // Primary key
	Login        string    `json:"login" db:"login"`               // Unique login
	DisplayName  string    `json:"display_name" db:"display_name"` // Name shown next to recipes
	Email        string    `json:"email" db:"email"`               // Unique email
	PasswordHash string    `json:"-" db:"password_hash"`           // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"created_at" db:"created_at"`     // Registration timestamp
}

// UserProfile is the public view of a user.
type UserProfile struct {
	ID          int64     `json:"id"`
	Login       string    `json:"login"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Profile strips private fields from the user record.
func (u *UserDB) Profile() UserProfile {
	return UserProfile{
		ID:          u.ID,
		Login:       u.Login,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}
