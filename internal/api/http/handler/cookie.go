package handler

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bryanmylee/LetsMeetService/internal/config"
	"github.com/bryanmylee/LetsMeetService/internal/service"
)

// RefreshCookie sets and clears the refresh token cookie of an event.
type RefreshCookie struct {
	name     string
	suffix   string
	maxAge   int
	secure   bool
	sameSite http.SameSite
}

// NewRefreshCookie builds the cookie policy; the cookie lives as long as the refresh token.
func NewRefreshCookie(cfg config.Cookie, refreshTTL time.Duration) *RefreshCookie {
	return &RefreshCookie{
		name:     cfg.Name,
		suffix:   cfg.PathSuffix,
		maxAge:   int(refreshTTL / time.Second),
		secure:   cfg.Secure,
		sameSite: parseSameSite(cfg.SameSite),
	}
}

// Read returns the refresh token sent by the client, or "".
func (c *RefreshCookie) Read(r *http.Request) string {
	cookie, err := r.Cookie(c.name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Set scopes the token to the refresh endpoint of eventID under the original request path.
func (c *RefreshCookie) Set(w http.ResponseWriter, r *http.Request, eventID, token string) {
	http.SetCookie(w, c.cookie(r, eventID, token, c.maxAge))
}

// Clear expires the cookie on the same path Set used.
func (c *RefreshCookie) Clear(w http.ResponseWriter, r *http.Request, eventID string) {
	http.SetCookie(w, c.cookie(r, eventID, "", -1))
}

func (c *RefreshCookie) cookie(r *http.Request, eventID, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     c.path(r, eventID),
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: c.sameSite,
	}
}

// path derives the cookie scope from the event prefix of the request path.
// Cookie paths are matched against the raw request path, so the id is looked
// up in the escaped form the client sent.
func (c *RefreshCookie) path(r *http.Request, eventID string) string {
	prefix := eventPrefix(r)
	segment := prefix[strings.LastIndexByte(prefix, '/')+1:]
	if decoded, err := url.PathUnescape(segment); err == nil && decoded == eventID {
		return service.CookiePath(prefix, segment, c.suffix)
	}
	return service.CookiePath(prefix, url.PathEscape(eventID), c.suffix)
}

// eventPrefix is the raw path the client requested, before any prefix
// stripping, without its final endpoint segment: "/api/xy12/login" -> "/api/xy12".
func eventPrefix(r *http.Request) string {
	p := r.RequestURI
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = r.URL.EscapedPath()
	}
	if i := strings.LastIndexByte(p, '/'); i > 0 {
		p = p[:i]
	}
	return p
}

func parseSameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteDefaultMode
	}
}
