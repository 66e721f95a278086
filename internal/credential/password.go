package credential

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	credentialerrors "go-payroll/internal/credential/errors"
)

const (
	MinPasswordLength         = 8
	DefaultTempPasswordLength = 12

	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	digitChars = "0123456789"

	// symbols issued in generated temporary passwords
	tempSymbolChars = "!@#$%^&*"

	// symbols accepted by the strength rule
	allowedSymbolChars = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"
)

// ValidatePasswordStrength applies the account password rules in fixed
// order and reports the first unmet one: length, uppercase, lowercase,
// digit, symbol.
func ValidatePasswordStrength(password string) error {
	if len(password) < MinPasswordLength {
		return credentialerrors.ErrPasswordTooShort
	}
	if !strings.ContainsAny(password, upperChars) {
		return credentialerrors.ErrPasswordNeedsUppercase
	}
	if !strings.ContainsAny(password, lowerChars) {
		return credentialerrors.ErrPasswordNeedsLowercase
	}
	if !strings.ContainsAny(password, digitChars) {
		return credentialerrors.ErrPasswordNeedsDigit
	}
	if !strings.ContainsAny(password, allowedSymbolChars) {
		return credentialerrors.ErrPasswordNeedsSymbol
	}
	return nil
}

// GenerateTemporaryPassword produces an administrator-issued onboarding or
// reset password: at least one character from each class, the remainder
// drawn uniformly from the union set, final order shuffled.
func GenerateTemporaryPassword(length int) (string, error) {
	if length == 0 {
		length = DefaultTempPasswordLength
	}
	if length < MinPasswordLength {
		return "", credentialerrors.ErrTemporaryPasswordTooShort
	}

	union := upperChars + lowerChars + digitChars + tempSymbolChars

	chars := make([]byte, 0, length)
	for _, class := range []string{upperChars, lowerChars, digitChars, tempSymbolChars} {
		ch, err := randomChar(class)
		if err != nil {
			return "", err
		}
		chars = append(chars, ch)
	}
	for len(chars) < length {
		ch, err := randomChar(union)
		if err != nil {
			return "", err
		}
		chars = append(chars, ch)
	}

	// Fisher-Yates so the mandatory class characters do not cluster at
	// the front.
	for i := len(chars) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		chars[i], chars[j] = chars[j], chars[i]
	}

	return string(chars), nil
}

func randomChar(set string) (byte, error) {
	i, err := randomInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("read random: %w", err)
	}
	return int(v.Int64()), nil
}
