package security

import (
	"time"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
)

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns ErrInvalidCredentials when the password does not match
	Compare(hash, password string) error
}

// Claims is the authenticated identity carried by an access token
type Claims struct {
	UserID    uint64
	Email     string
	Role      entity.Role
	ExpiresAt time.Time
}

// TokenIssuer issues and verifies access tokens
type TokenIssuer interface {
	Issue(user *entity.User) (token string, expiresAt time.Time, err error)
	// Parse returns ErrUnauthorized for invalid or expired tokens
	Parse(token string) (*Claims, error)
}
