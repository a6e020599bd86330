// Package identitytoolkit verifies phone numbers against the Google
// Identity Toolkit REST API (the backend behind Firebase phone auth).
package identitytoolkit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"marketplace-service/internal/phone"
)

const (
	providerName = "identitytoolkit"
	baseURL      = "https://identitytoolkit.googleapis.com/v1"

	// A stalled provider must surface as unavailable, not hang the
	// login flow.
	requestTimeout = 10 * time.Second
)

type Verifier struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func New(apiKey string) (*Verifier, error) {
	if apiKey == "" {
		return nil, errors.New("identity toolkit config missing api key")
	}
	return &Verifier{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}, nil
}

func (v *Verifier) Name() string {
	return providerName
}

func (v *Verifier) SendCode(ctx context.Context, phoneNumber string) (*phone.Challenge, error) {
	var resp struct {
		SessionInfo string `json:"sessionInfo"`
	}

	err := v.post(ctx, "accounts:sendVerificationCode", map[string]any{
		"phoneNumber": phoneNumber,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.SessionInfo == "" {
		return nil, fmt.Errorf("%w: empty session info", phone.ErrUnavailable)
	}

	return &phone.Challenge{
		ID:    resp.SessionInfo,
		Phone: phoneNumber,
	}, nil
}

func (v *Verifier) ConfirmCode(ctx context.Context, challengeID, code string) (*phone.Result, error) {
	var resp struct {
		LocalID     string `json:"localId"`
		PhoneNumber string `json:"phoneNumber"`
	}

	err := v.post(ctx, "accounts:signInWithPhoneNumber", map[string]any{
		"sessionInfo": challengeID,
		"code":        code,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.LocalID == "" {
		return nil, fmt.Errorf("%w: missing subject id in response", phone.ErrUnavailable)
	}

	return &phone.Result{
		SubjectID: resp.LocalID,
		Phone:     resp.PhoneNumber,
	}, nil
}

func (v *Verifier) post(ctx context.Context, endpoint string, body map[string]any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("identitytoolkit: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", v.baseURL, endpoint, v.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("identitytoolkit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", phone.ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return mapAPIError(httpResp)
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", phone.ErrUnavailable, err)
	}
	return nil
}

// mapAPIError translates the Identity Toolkit error vocabulary into the
// package's sentinel errors.
func mapAPIError(resp *http.Response) error {
	var apiErr struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)

	msg := apiErr.Error.Message
	switch {
	case strings.Contains(msg, "INVALID_PHONE_NUMBER"),
		strings.Contains(msg, "MISSING_PHONE_NUMBER"):
		return phone.ErrInvalidPhone
	case strings.Contains(msg, "INVALID_CODE"),
		strings.Contains(msg, "INVALID_SESSION_INFO"),
		strings.Contains(msg, "SESSION_EXPIRED"),
		strings.Contains(msg, "MISSING_CODE"):
		return phone.ErrInvalidCode
	}
	return fmt.Errorf("%w: status %d: %s", phone.ErrUnavailable, resp.StatusCode, msg)
}
