// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

const (
	codeDigits  = "0123456789"
	codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewConfirmationCode returns a digit, an uppercase letter and a digit, in
// that order, each drawn from crypto/rand.
func NewConfirmationCode() (string, error) {
	code := make([]byte, 0, 3)
	for _, alphabet := range []string{codeDigits, codeLetters, codeDigits} {
		index, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", fmt.Errorf("auth: confirmation code entropy: %w", err)
		}
		code = append(code, alphabet[index.Int64()])
	}
	return string(code), nil
}

// codesMatch compares codes exactly and in constant time.
func codesMatch(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}
