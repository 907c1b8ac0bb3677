package service

import "strings"

// DefaultCookieSuffix scopes the refresh cookie to the refresh endpoint.
const DefaultCookieSuffix = "/refresh_token"

// BasePath returns the prefix of path that ends with the last occurrence of
// eventID. It reports false when eventID does not occur in path.
func BasePath(path, eventID string) (string, bool) {
	if eventID == "" {
		return "", false
	}
	i := strings.LastIndex(path, eventID)
	if i < 0 {
		return "", false
	}
	return path[:i+len(eventID)], true
}

// CookiePath returns the path a refresh cookie for eventID is scoped to.
func CookiePath(path, eventID, suffix string) string {
	base, ok := BasePath(path, eventID)
	if !ok {
		base = "/" + eventID
	}
	return base + suffix
}
