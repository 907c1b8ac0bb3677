package model

// Identity is the claim set carried by both access and refresh tokens.
// EventID and Username together identify a session subject.
type Identity struct {
	EventID  string `json:"eventId"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// TokenPair is a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
