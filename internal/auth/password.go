package auth

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used for stored passwords.
const DefaultCost = 12

func HashPassword(p string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), cost)
	return string(b), err
}

// VerifyPassword reports whether plain matches hash. A malformed hash is a mismatch.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
