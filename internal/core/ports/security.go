package ports

// PasswordHasher produces self-describing salted digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// TokenClaims is the identity carried by a session token.
type TokenClaims struct {
	UserID   int64
	Username string
}

// TokenService issues and verifies stateless session tokens. Verify returns
// domain.ErrTokenInvalid for any tampered, malformed or expired token.
type TokenService interface {
	Issue(claims TokenClaims) (string, error)
	Verify(token string) (*TokenClaims, error)
}
