package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPIN hashes an access PIN using bcrypt.
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPINHash compares a submitted PIN with a bcrypt hash in constant time.
func CheckPINHash(pin, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
