package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dgiconsole/internal/config"
	"dgiconsole/internal/domain"
	"dgiconsole/internal/service"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func newSessionService() service.SessionService {
	return service.NewSessionService(config.AuthConfig{JWTSecret: testSecret, Issuer: "billing", RoleClaim: "role"}, nil)
}

func TestSessionService_Authenticate(t *testing.T) {
	tok := signToken(t, jwt.MapClaims{
		"sub":   "42",
		"email": "m@example.com",
		"role":  "Manager",
		"iss":   "billing",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	sess, err := newSessionService().Authenticate(tok)

	require.NoError(t, err)
	assert.Equal(t, "42", sess.UserID)
	assert.Equal(t, domain.RoleManager, sess.Role)
	assert.Equal(t, tok, sess.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, 5*time.Second)
}

func TestSessionService_UnknownRoleIsLeastPrivilege(t *testing.T) {
	tok := signToken(t, jwt.MapClaims{
		"sub": "1", "role": "auditor", "iss": "billing", "exp": time.Now().Add(time.Hour).Unix(),
	})

	sess, err := newSessionService().Authenticate(tok)

	require.NoError(t, err)
	assert.Equal(t, 0, domain.RoleLevel(sess.Role))
}

func TestSessionService_ExpiredToken(t *testing.T) {
	tok := signToken(t, jwt.MapClaims{
		"sub": "1", "role": "Admin", "iss": "billing", "exp": time.Now().Add(-time.Minute).Unix(),
	})

	_, err := newSessionService().Authenticate(tok)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestSessionService_RejectsBadTokens(t *testing.T) {
	wrongIssuer := signToken(t, jwt.MapClaims{
		"sub": "1", "iss": "someone-else", "exp": time.Now().Add(time.Hour).Unix(),
	})
	noSubject := signToken(t, jwt.MapClaims{
		"iss": "billing", "exp": time.Now().Add(time.Hour).Unix(),
	})
	noExpiry := signToken(t, jwt.MapClaims{"sub": "1", "iss": "billing"})
	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1", "iss": "billing", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other"))
	require.NoError(t, err)

	svc := newSessionService()
	for name, tok := range map[string]string{
		"empty":        "",
		"garbage":      "not-a-jwt",
		"wrong issuer": wrongIssuer,
		"no subject":   noSubject,
		"no expiry":    noExpiry,
		"other key":    otherKey,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Authenticate(tok)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestSessionService_Invalidate(t *testing.T) {
	tok := signToken(t, jwt.MapClaims{
		"sub": "1", "role": "Admin", "iss": "billing", "exp": time.Now().Add(time.Hour).Unix(),
	})
	svc := newSessionService()
	sess, err := svc.Authenticate(tok)
	require.NoError(t, err)

	svc.Invalidate(sess)

	_, err = svc.Authenticate(tok)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}
