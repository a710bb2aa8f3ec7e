package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

// Token size constants (in bytes before encoding).
const (
	// TokenSize128 provides 128 bits of entropy (22 chars base64url).
	TokenSize128 = 16
	// TokenSize256 provides 256 bits of entropy (43 chars base64url).
	TokenSize256 = 32
)

// GenerateToken creates a cryptographically secure random token of the
// specified byte length, returned as a base64url string without padding.
// Session identifiers use TokenSize256.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MustGenerateToken is like GenerateToken but panics on error.
// Use this only in contexts where failure is unrecoverable.
func MustGenerateToken(size int) string {
	token, err := GenerateToken(size)
	if err != nil {
		panic(fmt.Sprintf("cryptox: failed to generate token: %v", err))
	}
	return token
}

// GenerateDigitCode returns a string of length independently random decimal
// digits. Leading zeros are allowed, so a 6-digit code is uniform over
// 000000 to 999999. Used for one-time verification codes.
func GenerateDigitCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", length)
	}

	const digits = "0123456789"
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random code: %w", err)
		}
		code[i] = digits[n.Int64()]
	}
	return string(code), nil
}
