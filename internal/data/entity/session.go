package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is an opaque bearer token. It is valid until ExpiresAt unless
// revoked on logout.
type Session struct {
	Record
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
