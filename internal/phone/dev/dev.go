// Package dev is the fixed-code verifier used when no real provider is
// configured. It accepts any well-formed number and the code 123456,
// and yields deterministic subject ids so repeated dev logins resolve
// to the same identity.
package dev

import (
	"context"
	"strings"
	"sync"

	"marketplace-service/internal/phone"
	"marketplace-service/internal/session"
)

const (
	providerName = "dev"
	devCode      = "123456"
)

type Verifier struct {
	mu         sync.Mutex
	challenges map[string]string // challenge id -> phone
}

func New() *Verifier {
	return &Verifier{challenges: make(map[string]string)}
}

func (v *Verifier) Name() string {
	return providerName
}

func (v *Verifier) SendCode(_ context.Context, phoneNumber string) (*phone.Challenge, error) {
	id, err := session.GenerateID()
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.challenges[id] = phoneNumber
	v.mu.Unlock()

	return &phone.Challenge{ID: id, Phone: phoneNumber}, nil
}

func (v *Verifier) ConfirmCode(_ context.Context, challengeID, code string) (*phone.Result, error) {
	v.mu.Lock()
	number, ok := v.challenges[challengeID]
	if ok {
		delete(v.challenges, challengeID)
	}
	v.mu.Unlock()

	if !ok || code != devCode {
		return nil, phone.ErrInvalidCode
	}

	return &phone.Result{
		SubjectID: "dev_" + strings.TrimPrefix(number, "+"),
		Phone:     number,
	}, nil
}
