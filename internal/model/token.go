package model

// TokenManager generates and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(identity Identity) (string, error)
	GenerateRefreshToken(identity Identity) (string, error)
	ParseAccessToken(token string) (Identity, error)
	ParseRefreshToken(token string) (Identity, error)
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
