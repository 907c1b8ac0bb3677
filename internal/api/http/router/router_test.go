package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apicontext "github.com/bryanmylee/LetsMeetService/internal/api/context"
	"github.com/bryanmylee/LetsMeetService/internal/api/http/middleware"
	"github.com/bryanmylee/LetsMeetService/internal/config"
	"github.com/bryanmylee/LetsMeetService/internal/hasher"
	"github.com/bryanmylee/LetsMeetService/internal/metrics"
	"github.com/bryanmylee/LetsMeetService/internal/repository/memory"
	"github.com/bryanmylee/LetsMeetService/internal/service"
	"github.com/bryanmylee/LetsMeetService/internal/testutil"
	"github.com/bryanmylee/LetsMeetService/internal/token"
)

func testConfig(basePath string) *config.Config {
	return &config.Config{
		HTTP: config.HTTP{
			BasePath:           basePath,
			ClientHosts:        []string{"http://localhost:3000"},
			RateLimitBurst:     100,
			RateLimitPerSecond: 100,
			MaxBodyBytes:       1 << 10,
		},
		Auth: config.Auth{
			AccessSecret:  "access",
			RefreshSecret: "refresh",
			AccessTTL:     time.Minute,
			RefreshTTL:    time.Hour,
		},
		Cookie: config.Cookie{
			Name:       "__session",
			PathSuffix: service.DefaultCookieSuffix,
			SameSite:   "lax",
		},
	}
}

func newHandler(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()

	store := memory.NewStore()
	lg := testutil.MakeNoopLogger()
	auth := service.NewAuth(store, store, hasher.NewBcrypt(bcrypt.MinCost), token.NewJWT(cfg.Auth), lg)
	trusted, err := cfg.HTTP.TrustedProxyPrefixes()
	require.NoError(t, err)
	limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitPerSecond, cfg.HTTP.RateLimitBurst, trusted)

	return New(cfg, auth, apicontext.NewManager(), store, metrics.New(), limiter, lg).Register()
}

type exchange struct {
	code   int
	body   map[string]any
	cookie *http.Cookie
}

func do(t *testing.T, h http.Handler, method, target, body string, headers map[string]string, cookie *http.Cookie) exchange {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if cookie != nil {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	ex := exchange{code: rr.Code}
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ex.body))
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == "__session" {
			ex.cookie = c
		}
	}
	return ex
}

func TestRouter_SessionLifecycle(t *testing.T) {
	h := newHandler(t, testConfig("/api"))
	creds := `{"username":"alice","password":"secret"}`

	signup := do(t, h, http.MethodPost, "/api/xy12/new_user", creds, nil, nil)
	require.Equal(t, http.StatusOK, signup.code)
	assert.Equal(t, "xy12", signup.body["eventId"])
	require.NotNil(t, signup.cookie)
	assert.Equal(t, "/api/xy12/refresh_token", signup.cookie.Path)
	assert.True(t, signup.cookie.HttpOnly)
	assert.Equal(t, 3600, signup.cookie.MaxAge)

	dup := do(t, h, http.MethodPost, "/api/xy12/new_user", creds, nil, nil)
	assert.Equal(t, http.StatusBadRequest, dup.code)
	assert.Equal(t, "username already taken", dup.body["error"])

	bad := do(t, h, http.MethodPost, "/api/xy12/login", `{"username":"alice","password":"nope"}`, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, bad.code)

	login := do(t, h, http.MethodPost, "/api/xy12/login", creds, nil, nil)
	require.Equal(t, http.StatusOK, login.code)
	require.NotNil(t, login.cookie)
	r1 := login.cookie

	refreshed := do(t, h, http.MethodPost, "/api/xy12/refresh_token", "", nil, r1)
	require.Equal(t, http.StatusOK, refreshed.code)
	require.NotNil(t, refreshed.cookie)
	assert.NotEqual(t, r1.Value, refreshed.cookie.Value)

	replay := do(t, h, http.MethodPost, "/api/xy12/refresh_token", "", nil, r1)
	assert.Equal(t, http.StatusForbidden, replay.code)
	assert.Equal(t, "refresh token revoked", replay.body["error"])

	bearer := map[string]string{"Authorization": "Bearer " + refreshed.body["accessToken"].(string)}
	who := do(t, h, http.MethodGet, "/api/xy12/session", "", bearer, nil)
	require.Equal(t, http.StatusOK, who.code)
	assert.Equal(t, map[string]any{"eventId": "xy12", "username": "alice", "isAdmin": false}, who.body)

	userWho := do(t, h, http.MethodGet, "/api/xy12/alice/session", "", bearer, nil)
	assert.Equal(t, http.StatusOK, userWho.code)

	other := do(t, h, http.MethodGet, "/api/xy12/bob/session", "", bearer, nil)
	assert.Equal(t, http.StatusForbidden, other.code)

	otherEvent := do(t, h, http.MethodGet, "/api/zz99/session", "", bearer, nil)
	assert.Equal(t, http.StatusForbidden, otherEvent.code)

	logout := do(t, h, http.MethodPost, "/api/xy12/logout", "", bearer, nil)
	require.Equal(t, http.StatusOK, logout.code)
	assert.Equal(t, "Logged out", logout.body["message"])
	require.NotNil(t, logout.cookie)
	assert.Equal(t, "/api/xy12/refresh_token", logout.cookie.Path)
	assert.Equal(t, -1, logout.cookie.MaxAge)

	afterLogout := do(t, h, http.MethodPost, "/api/xy12/refresh_token", "", nil, refreshed.cookie)
	assert.Equal(t, http.StatusForbidden, afterLogout.code)
}

func TestRouter_LogoutByCookie(t *testing.T) {
	h := newHandler(t, testConfig(""))

	login := do(t, h, http.MethodPost, "/xy12/new_user", `{"username":"alice","password":"secret"}`, nil, nil)
	require.Equal(t, http.StatusOK, login.code)
	assert.Equal(t, "/xy12/refresh_token", login.cookie.Path)

	logout := do(t, h, http.MethodPost, "/xy12/logout", "", nil, login.cookie)
	assert.Equal(t, http.StatusOK, logout.code)

	refresh := do(t, h, http.MethodPost, "/xy12/refresh_token", "", nil, login.cookie)
	assert.Equal(t, http.StatusForbidden, refresh.code)
}

func TestRouter_Errors(t *testing.T) {
	h := newHandler(t, testConfig(""))

	missing := do(t, h, http.MethodPost, "/xy12/refresh_token", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, missing.code)
	assert.Equal(t, "refresh token not found", missing.body["error"])

	noAuth := do(t, h, http.MethodGet, "/xy12/session", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, noAuth.code)

	basic := do(t, h, http.MethodGet, "/xy12/session", "", map[string]string{"Authorization": "Basic abc"}, nil)
	assert.Equal(t, http.StatusBadRequest, basic.code)

	garbage := do(t, h, http.MethodPost, "/xy12/login", "{", nil, nil)
	assert.Equal(t, http.StatusBadRequest, garbage.code)

	tooLarge := do(t, h, http.MethodPost, "/xy12/login", `{"username":"`+strings.Repeat("a", 2048)+`"}`, nil, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, tooLarge.code)

	unknownUser := do(t, h, http.MethodPost, "/xy12/login", `{"username":"ghost","password":"x"}`, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.code)
}

func TestRouter_ProbesAndMetrics(t *testing.T) {
	h := newHandler(t, testConfig(""))

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "", nil, nil).code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/readyz", "", nil, nil).code)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `http_requests_total{method="GET",route="GET /healthz",status="200"} 1`)
}

func TestRouter_CORSAndRequestID(t *testing.T) {
	h := newHandler(t, testConfig(""))

	req := httptest.NewRequest(http.MethodOptions, "/xy12/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
	assert.Len(t, rr.Header().Get(middleware.RequestIDHeader), 26)

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimitsCredentialEndpoints(t *testing.T) {
	cfg := testConfig("")
	cfg.HTTP.RateLimitBurst = 1
	cfg.HTTP.RateLimitPerSecond = 0.01
	h := newHandler(t, cfg)

	creds := `{"username":"alice","password":"secret"}`
	first := do(t, h, http.MethodPost, "/xy12/login", creds, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, first.code)

	second := do(t, h, http.MethodPost, "/xy12/login", creds, nil, nil)
	assert.Equal(t, http.StatusTooManyRequests, second.code)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "", nil, nil).code)
}

// browserSends reports whether a browser would attach a cookie scoped to
// cookiePath to a request for requestPath.
func browserSends(requestPath, cookiePath string) bool {
	if requestPath == cookiePath {
		return true
	}
	if !strings.HasPrefix(requestPath, cookiePath) {
		return false
	}
	return strings.HasSuffix(cookiePath, "/") || requestPath[len(cookiePath)] == '/'
}

func TestRouter_CookiePathFollowsEvent(t *testing.T) {
	for _, eventID := range []string{"xy12", "e", "user", "token", "new_user", "team a"} {
		t.Run(eventID, func(t *testing.T) {
			h := newHandler(t, testConfig("/api"))
			base := "/api/" + url.PathEscape(eventID)
			wantPath := base + "/refresh_token"

			signup := do(t, h, http.MethodPost, base+"/new_user", `{"username":"alice","password":"secret"}`, nil, nil)
			require.Equal(t, http.StatusOK, signup.code)
			require.NotNil(t, signup.cookie)
			assert.Equal(t, wantPath, signup.cookie.Path)

			current := signup.cookie
			for i := 0; i < 2; i++ {
				refreshPath := base + "/refresh_token"
				require.True(t, browserSends(refreshPath, current.Path), "cookie path %q not sent to %q", current.Path, refreshPath)

				refreshed := do(t, h, http.MethodPost, refreshPath, "", nil, current)
				require.Equal(t, http.StatusOK, refreshed.code)
				require.NotNil(t, refreshed.cookie)
				assert.Equal(t, wantPath, refreshed.cookie.Path)
				current = refreshed.cookie
			}

			logout := do(t, h, http.MethodPost, base+"/logout", "", nil, nil)
			require.NotNil(t, logout.cookie)
			assert.Equal(t, wantPath, logout.cookie.Path)
		})
	}
}

func TestRouter_ForwardedForDoesNotBypassLoginLimit(t *testing.T) {
	cfg := testConfig("")
	cfg.HTTP.RateLimitBurst = 2
	cfg.HTTP.RateLimitPerSecond = 0.001
	h := newHandler(t, cfg)

	var got []int
	for i := range 6 {
		headers := map[string]string{"X-Forwarded-For": fmt.Sprintf("203.0.113.%d", i+1)}
		got = append(got, do(t, h, http.MethodPost, "/xy12/login", `{"username":"alice","password":"wrong"}`, headers, nil).code)
	}
	assert.Equal(t, []int{401, 401, 429, 429, 429, 429}, got)
}

func TestRouter_ForwardedForFromTrustedProxy(t *testing.T) {
	cfg := testConfig("")
	cfg.HTTP.RateLimitBurst = 1
	cfg.HTTP.RateLimitPerSecond = 0.001
	cfg.HTTP.TrustedProxies = []string{"192.0.2.0/24"}
	h := newHandler(t, cfg)

	login := func(client string) int {
		headers := map[string]string{"X-Forwarded-For": client}
		return do(t, h, http.MethodPost, "/xy12/login", `{"username":"alice","password":"wrong"}`, headers, nil).code
	}

	assert.Equal(t, http.StatusUnauthorized, login("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, login("203.0.113.1"))
	assert.Equal(t, http.StatusUnauthorized, login("203.0.113.2"))
}
