package utils

import (
	"crypto/rand"
	"math/big"
)

// Alphabet skips 0/O and 1/I so codes survive being read off a letter or a
// phone call.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const CodeLength = 8

// GenerateVerificationCode returns an 8-char code from a 32-char alphabet
// (~40 bits), far beyond what 3 attempts can guess.
func GenerateVerificationCode() (string, error) {
	buf := make([]byte, CodeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
