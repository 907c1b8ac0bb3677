package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/bryanmylee/LetsMeetService/internal/model"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 12

// Bcrypt implements PasswordHasher with salted bcrypt hashes.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a hasher with the given work factor.
func NewBcrypt(cost int) model.PasswordHasher {
	if cost == 0 {
		cost = DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns a bcrypt hash of the password with a fresh salt.
func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed hash never matches.
func (b *Bcrypt) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
