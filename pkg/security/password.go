package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinCredentialLen is the shortest staff password the admin surface may
// provision. Comparison has no length gate, so hashes created under an older
// policy keep working.
const MinCredentialLen = 8

var ErrCredentialTooShort = errors.New("staff password must be at least 8 characters")

// PasswordHasher checks staff credentials at login and hashes them when the
// admin surface provisions or resets an account.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt-backed hasher. Costs outside bcrypt's
// supported range fall back to the library default, which is plenty for a
// login flow that already sits behind the API rate limiter.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (b *bcryptHasher) Hash(password string) (string, error) {
	if len(password) < MinCredentialLen {
		return "", ErrCredentialTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare returns nil when the password matches the stored hash. The login
// handler treats any error as a failed login without distinguishing why.
func (b *bcryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
