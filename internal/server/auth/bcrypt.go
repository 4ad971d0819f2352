package auth

import "golang.org/x/crypto/bcrypt"

// Hasher is the one-way password hashing capability consumed by the
// authentication service. Implementations must be slow and salted.
type Hasher interface {
	Hash(password string) ([]byte, error)
	Verify(password string, digest []byte) bool
}

// BcryptHasher implements Hasher with bcrypt. The salt is embedded in the
// digest and the comparison runs in constant time.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), h.cost)
}

func (h *BcryptHasher) Verify(password string, digest []byte) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(password)) == nil
}
