package identitytoolkit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace-service/internal/phone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVerifier(t *testing.T, handler http.HandlerFunc) *Verifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	v, err := New("test-key")
	require.NoError(t, err)
	v.baseURL = srv.URL
	v.client = srv.Client()
	return v
}

func TestSendCode(t *testing.T) {
	v := testVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts:sendVerificationCode", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "+15550001234", body["phoneNumber"])

		json.NewEncoder(w).Encode(map[string]string{"sessionInfo": "sess_abc"})
	})

	challenge, err := v.SendCode(context.Background(), "+15550001234")
	require.NoError(t, err)
	assert.Equal(t, "sess_abc", challenge.ID)
	assert.Equal(t, "+15550001234", challenge.Phone)
}

func TestConfirmCode(t *testing.T) {
	v := testVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts:signInWithPhoneNumber", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"localId":     "fb_user_9",
			"phoneNumber": "+15550001234",
		})
	})

	result, err := v.ConfirmCode(context.Background(), "sess_abc", "654321")
	require.NoError(t, err)
	assert.Equal(t, "fb_user_9", result.SubjectID)
	assert.Equal(t, "+15550001234", result.Phone)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    error
	}{
		{"invalid phone", "INVALID_PHONE_NUMBER : bad format", phone.ErrInvalidPhone},
		{"invalid code", "INVALID_CODE", phone.ErrInvalidCode},
		{"expired session", "SESSION_EXPIRED", phone.ErrInvalidCode},
		{"quota", "QUOTA_EXCEEDED", phone.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testVerifier(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"message": tt.message},
				})
			})

			_, err := v.SendCode(context.Background(), "+15550001234")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestProviderDown(t *testing.T) {
	v, err := New("test-key")
	require.NoError(t, err)
	v.baseURL = "http://127.0.0.1:1" // nothing listens here

	_, err = v.SendCode(context.Background(), "+15550001234")
	assert.ErrorIs(t, err, phone.ErrUnavailable)
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
