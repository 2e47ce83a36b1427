package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/car-booking/internal/core/domain"
	"github.com/99minutos/car-booking/internal/core/ports"
)

// TokenTTL is the fixed lifetime of a session token.
const TokenTTL = 7 * 24 * time.Hour

// sessionClaims is the signed payload: {userId, username, exp, iat}.
type sessionClaims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTService implements ports.TokenService with HS256 and a process-wide secret.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

func NewJWTService(secret string) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt: empty signing secret")
	}
	return &JWTService{secret: []byte(secret), now: time.Now}, nil
}

func (s *JWTService) Issue(claims ports.TokenClaims) (string, error) {
	now := s.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		UserID:   claims.UserID,
		Username: claims.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	})
	return t.SignedString(s.secret)
}

// Verify never returns partial claims: any parse, signature or expiry
// failure collapses into domain.ErrTokenInvalid.
func (s *JWTService) Verify(token string) (*ports.TokenClaims, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.UserID <= 0 {
		return nil, domain.ErrTokenInvalid
	}
	return &ports.TokenClaims{UserID: claims.UserID, Username: claims.Username}, nil
}
