// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const (
	referralCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	digitCharset    = "0123456789"
)

func GenerateRandomString(length int, charset string) (string, error) {
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}

// GenerateOTP returns a 6 digit numeric code.
func GenerateOTP() (string, error) {
	return GenerateRandomString(6, digitCharset)
}

// GenerateReferralCode builds a code from the first three runes of username,
// upper-cased and padded with X, followed by four random characters.
func GenerateReferralCode(username string) (string, error) {
	prefix := make([]rune, 0, 3)
	for _, r := range strings.TrimSpace(username) {
		if len(prefix) == 3 {
			break
		}
		prefix = append(prefix, unicode.ToUpper(r))
	}
	for len(prefix) < 3 {
		prefix = append(prefix, 'X')
	}

	suffix, err := GenerateRandomString(4, referralCharset)
	if err != nil {
		return "", err
	}
	return string(prefix) + suffix, nil
}

// GenerateProductID returns "PROD-" followed by 8 upper-case hex characters.
func GenerateProductID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "PROD-" + strings.ToUpper(hex[:8])
}
