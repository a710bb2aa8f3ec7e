package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength = 16 // 128-bit salt

	// DefaultIterations is the PBKDF2-SHA256 work factor for new hashes.
	DefaultIterations = 210_000

	keyLength = sha256.Size
)

// HashPassword derives a PBKDF2-SHA256 digest with a fresh random salt and
// returns it in the stored form "salt:digest" (base64 salt, hex digest).
// Every call produces a distinct stored form even for the same password.
func HashPassword(password string) (string, error) {
	return HashPasswordIter(password, DefaultIterations)
}

// HashPasswordIter is HashPassword with an explicit iteration count.
// Stored forms carry no parameters, so verification must use the same count.
func HashPasswordIter(password string, iterations int) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	b64Salt := base64.StdEncoding.EncodeToString(salt)
	digest := derive(password, b64Salt, iterations)

	return b64Salt + ":" + hex.EncodeToString(digest), nil
}

// VerifyPassword reports whether password matches the stored "salt:digest"
// form. It fails closed: empty inputs or a malformed stored form are a
// mismatch, never an error.
func VerifyPassword(password, storedForm string) bool {
	return VerifyPasswordIter(password, storedForm, DefaultIterations)
}

// VerifyPasswordIter is VerifyPassword with an explicit iteration count.
func VerifyPasswordIter(password, storedForm string, iterations int) bool {
	if password == "" || storedForm == "" {
		return false
	}

	parts := strings.SplitN(storedForm, ":", 3)
	if len(parts) != 2 {
		return false
	}

	stored, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}

	// The salt is fed to the KDF in its encoded form, so it does not need
	// decoding here. A stored form with a non-base64 salt simply never
	// matches any password.
	computed := derive(password, parts[0], iterations)

	return subtle.ConstantTimeCompare(computed, stored) == 1
}

func derive(password, b64Salt string, iterations int) []byte {
	return pbkdf2.Key([]byte(password), []byte(b64Salt), iterations, keyLength, sha256.New)
}
