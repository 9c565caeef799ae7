package password

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/argon2"

	"github.com/Brayanhenaor/vetquestions/internal/model"
)

var _ model.PasswordHasher = (*Argon2)(nil)

// ErrWeakPassword is returned when a password does not satisfy the policy.
var ErrWeakPassword = errors.New("password does not satisfy policy")

// Params holds argon2id cost parameters.
type Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLength uint32
	SaltLen   int
	MinLength int
}

// DefaultParams are the production argon2id parameters.
var DefaultParams = Params{
	Time:      1,
	MemoryKiB: 64 * 1024,
	Threads:   4,
	KeyLength: 32,
	SaltLen:   16,
	MinLength: 6,
}

// Argon2 hashes passwords with argon2id and a random per-user salt.
type Argon2 struct {
	params Params
}

// NewArgon2 creates a hasher with the given parameters.
func NewArgon2(params Params) *Argon2 {
	return &Argon2{params: params}
}

// Validate enforces minimum length plus upper, lower, digit and symbol classes.
func (a *Argon2) Validate(password string) error {
	if len([]rune(password)) < a.params.MinLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassword, a.params.MinLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return fmt.Errorf("%w: must include uppercase, lowercase, number and special character", ErrWeakPassword)
	}

	return nil
}

// Hash derives a hash from password using a freshly generated salt.
func (a *Argon2) Hash(password string) ([]byte, []byte, error) {
	if password == "" {
		return nil, nil, errors.New("password cannot be empty")
	}

	salt := make([]byte, a.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	return a.derive(password, salt), salt, nil
}

// Verify reports whether password matches the stored salt and hash.
func (a *Argon2) Verify(password string, salt, hash []byte) bool {
	if password == "" || len(salt) == 0 || len(hash) == 0 {
		return false
	}
	candidate := a.derive(password, salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}

func (a *Argon2) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, a.params.Time, a.params.MemoryKiB, a.params.Threads, a.params.KeyLength)
}
