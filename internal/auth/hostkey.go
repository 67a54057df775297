package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// HashHostKey hashes the key chosen by the game's organizer. Only the hash is
// stored with the game record.
func HashHostKey(key string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(key), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash host key: %w", err)
	}
	return string(bytes), nil
}

// CheckHostKey checks a presented host key against the stored hash
func CheckHostKey(key, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
	return err == nil
}
