package booking

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
)

const codeDigits = 6

var codeSpace = big.NewInt(1_000_000)

func GenerateCheckInCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}

// HashCheckInCode salts with the application secret; only this digest is stored.
func HashCheckInCode(secret, code string) string {
	sum := sha256.Sum256([]byte(secret + code))
	return hex.EncodeToString(sum[:])
}

func checkInCodeMatches(secret, code, storedHash string) bool {
	got := HashCheckInCode(secret, code)
	return subtle.ConstantTimeCompare([]byte(got), []byte(storedHash)) == 1
}
