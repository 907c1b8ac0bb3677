package handler

// SignupRequest registers a user on an event.
type SignupRequest struct {
	EventID  string `json:"eventId"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest opens a session for an existing user.
type LoginRequest struct {
	EventID  string `json:"eventId"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest rotates a refresh token.
type RefreshRequest struct {
	EventID      string `json:"eventId"`
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest ends the session a refresh token belongs to.
type LogoutRequest struct {
	EventID      string `json:"eventId"`
	RefreshToken string `json:"refreshToken"`
}

// WhoamiRequest has no fields; the identity comes from the authorization metadata.
type WhoamiRequest struct{}

// SessionResponse carries a freshly issued token pair.
type SessionResponse struct {
	EventID      string `json:"eventId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LogoutResponse acknowledges a logout.
type LogoutResponse struct {
	Message string `json:"message"`
}

// IdentityResponse describes the caller.
type IdentityResponse struct {
	EventID  string `json:"eventId"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}
