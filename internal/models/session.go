package models

import "time"

// Session is a signed login session issued to a user.
type Session struct {
	Token     string    `json:"token"`      // Signed JWT
	TokenID   string    `json:"-"`          // jti claim, used for revocation
	UserID    int64     `json:"user_id"`    // Authenticated user
	ExpiresAt time.Time `json:"expires_at"` // Token expiry
}
