package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/car-booking/internal/core/domain"
	"github.com/99minutos/car-booking/internal/core/ports"
)

func newService(t *testing.T, secret string) *JWTService {
	t.Helper()
	s, err := NewJWTService(secret)
	require.NoError(t, err)
	return s
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	t.Parallel()
	s := newService(t, "super-secret")

	tok, err := s.Issue(ports.TokenClaims{UserID: 7, Username: "alice"})
	require.NoError(t, err)

	claims, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, &ports.TokenClaims{UserID: 7, Username: "alice"}, claims)
}

func TestJWTService_SevenDayExpiry(t *testing.T) {
	t.Parallel()
	s := newService(t, "k")
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issuedAt }

	tok, err := s.Issue(ports.TokenClaims{UserID: 1, Username: "u"})
	require.NoError(t, err)

	var claims sessionClaims
	_, _, err = jwt.NewParser().ParseUnverified(tok, &claims)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(7*24*time.Hour), claims.ExpiresAt.Time.UTC())
}

func TestJWTService_Expired(t *testing.T) {
	t.Parallel()
	s := newService(t, "k")
	s.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }

	tok, err := s.Issue(ports.TokenClaims{UserID: 1, Username: "u"})
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newService(t, "right-secret").Issue(ports.TokenClaims{UserID: 2, Username: "u"})
	require.NoError(t, err)

	_, err = newService(t, "wrong-secret").Verify(tok)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_Tampered(t *testing.T) {
	t.Parallel()
	s := newService(t, "k")

	tok, err := s.Issue(ports.TokenClaims{UserID: 3, Username: "u"})
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   99,
		"username": "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other"))
	require.NoError(t, err)
	forgedParts := strings.Split(forged, ".")

	_, err = s.Verify(parts[0] + "." + forgedParts[1] + "." + parts[2])
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()
	s := newService(t, "k")

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": 1,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Verify(none)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_MissingExpiry(t *testing.T) {
	t.Parallel()
	s := newService(t, "k")

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": 1}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_Malformed(t *testing.T) {
	t.Parallel()
	s := newService(t, "k")

	for _, tok := range []string{"", "not.a.jwt", "abc"} {
		_, err := s.Verify(tok)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid, "token %q", tok)
	}
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	t.Parallel()
	_, err := NewJWTService("")
	assert.Error(t, err)
}
