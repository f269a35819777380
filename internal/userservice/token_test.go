package userservice

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenService(secret string) *TokenService {
	return NewTokenService(TokenConfig{Secret: []byte(secret), TTL: time.Hour, Issuer: "blogapi"})
}

func TestIssueAndVerify(t *testing.T) {
	s := testTokenService("secret")
	u := &User{ID: uuid.New(), Email: "testuser@example.com"}

	token, err := s.Issue(u)
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.Expiry, 5*time.Second)

	claims, err := s.Verify(token.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID())
	assert.Equal(t, u.Email, claims.Email)
}

func TestVerifyRejects(t *testing.T) {
	s := testTokenService("secret")
	u := &User{ID: uuid.New(), Email: "testuser@example.com"}

	valid, err := s.Issue(u)
	require.NoError(t, err)

	forged, err := testTokenService("another-secret").Issue(u)
	require.NoError(t, err)

	// header and payload of a valid token with the signature of another secret
	parts := strings.Split(valid.Token, ".")
	forgedParts := strings.Split(forged.Token, ".")
	tampered := parts[0] + "." + parts[1] + "." + forgedParts[2]

	expiredSvc := testTokenService("secret")
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredSvc.Issue(u)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			Issuer:    "blogapi",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    "blogapi",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: u.ID.String(),
			Issuer:  "blogapi",
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	testCases := []struct {
		name        string
		token       string
		expectedErr error
	}{
		{name: "tampered signature", token: tampered, expectedErr: ErrInvalidToken},
		{name: "expired", token: expired.Token, expectedErr: ErrTokenExpired},
		{name: "malformed", token: "not.a.token", expectedErr: ErrInvalidToken},
		{name: "empty", token: "", expectedErr: ErrInvalidToken},
		{name: "alg none", token: unsigned, expectedErr: ErrInvalidToken},
		{name: "non uuid subject", token: badSubject, expectedErr: ErrInvalidToken},
		{name: "missing expiry", token: noExpiry, expectedErr: ErrInvalidToken},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := s.Verify(tc.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestDefaultTTL(t *testing.T) {
	s := NewTokenService(TokenConfig{Secret: []byte("secret")})
	assert.Equal(t, DefaultTokenTTL, s.cfg.TTL)
}
