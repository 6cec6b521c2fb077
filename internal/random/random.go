package random

import (
	"crypto/rand"
	"github.com/myrjola/veritruth/internal/errors"
	"math/big"
)

var allowedLetters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

// Letters returns n cryptographically random ASCII letters. It is used for CSP nonces.
func Letters(n uint) (string, error) {
	letters := make([]rune, n)
	upperBound := big.NewInt(int64(len(allowedLetters)))
	for i := range letters {
		letterIndex, err := rand.Int(rand.Reader, upperBound)
		if err != nil {
			return "", errors.Wrap(err, "random int")
		}
		letters[i] = allowedLetters[letterIndex.Int64()]
	}
	return string(letters), nil
}
