package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	specialChars = "@#$%"
	alnumChars   = lowerChars + upperChars + digitChars
)

// DefaultPasswordLength is used for generated temporary credentials.
const DefaultPasswordLength = 10

func randomChar(set string) byte {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(fmt.Sprintf("failed to read random source: %v", err))
	}
	return set[n.Int64()]
}

// GeneratePassword produces a random temporary password of the requested
// length containing at least one lowercase letter, one uppercase letter, one
// digit and one special character from "@#$%". Lengths below 4 are clamped
// to 4 since the four mandatory classes alone need that many characters.
func GeneratePassword(length int) string {
	if length < 4 {
		length = 4
	}

	chars := make([]byte, 0, length)
	chars = append(chars,
		randomChar(lowerChars),
		randomChar(upperChars),
		randomChar(digitChars),
		randomChar(specialChars),
	)
	for len(chars) < length {
		chars = append(chars, randomChar(lowerChars+upperChars+digitChars+specialChars))
	}

	// Fisher-Yates so the mandatory classes are not positionally fixed.
	for i := len(chars) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			panic(fmt.Sprintf("failed to read random source: %v", err))
		}
		j := n.Int64()
		chars[i], chars[j] = chars[j], chars[i]
	}

	return string(chars)
}

// HashTempPassword returns the hex SHA-256 digest of a generated temporary
// password. Deterministic: the stored digest is compared, never decoded.
func HashTempPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// GenerateUsername derives a username from the email's local part plus the
// low-order digits of the current time and a short random suffix. Collisions
// are astronomically unlikely but not impossible; persistence still treats a
// duplicate username as a unique-constraint violation.
func GenerateUsername(email string) string {
	local := strings.ToLower(strings.SplitN(strings.TrimSpace(email), "@", 2)[0])

	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = randomChar(alnumChars)
	}

	return fmt.Sprintf("%s%d%s", local, time.Now().UnixMilli()%100000, suffix)
}
