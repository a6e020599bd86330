package phone

import (
	"context"
	"errors"
	"strings"
)

// Challenge is an outstanding code-verification attempt. The ID is an
// opaque provider handle; it is owned by the login flow and released
// when the flow confirms, re-sends, or expires.
type Challenge struct {
	ID    string
	Phone string
}

// Result is the verified auth binding a confirmed challenge yields.
type Result struct {
	SubjectID string
	Phone     string
}

var (
	ErrInvalidPhone = errors.New("phone: invalid phone number")
	ErrInvalidCode  = errors.New("phone: invalid verification code")
	ErrUnavailable  = errors.New("phone: verification provider unavailable")
)

// Verifier sends and confirms SMS verification codes. Implementations
// return binding facts only and make no auth decisions.
type Verifier interface {
	// Name returns the provider identifier (e.g. "identitytoolkit", "dev").
	Name() string

	// SendCode starts a verification for the given number.
	SendCode(ctx context.Context, phoneNumber string) (*Challenge, error)

	// ConfirmCode checks the code against an outstanding challenge.
	ConfirmCode(ctx context.Context, challengeID, code string) (*Result, error)
}

// Normalize canonicalizes user phone input: whitespace and dashes are
// stripped, and numbers without a country code are assumed US.
func Normalize(raw string) (string, error) {
	s := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(raw)
	if s == "" {
		return "", ErrInvalidPhone
	}
	if !strings.HasPrefix(s, "+") {
		s = "+1" + s
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return "", ErrInvalidPhone
		}
	}
	if len(s) < 8 {
		return "", ErrInvalidPhone
	}
	return s, nil
}
