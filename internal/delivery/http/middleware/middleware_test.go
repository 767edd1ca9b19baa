package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"greencart/config"
	"greencart/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func echoCaller() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(UserID(r.Context()) + "|" + Seller(r.Context())))
	})
}

func TestAuthenticator(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	auth := NewAuthenticator(tokens)
	customer, err := tokens.Generate("user-1", utils.RoleCustomer)
	require.NoError(t, err)
	seller, err := tokens.Generate("boss@example.com", utils.RoleSeller)
	require.NoError(t, err)

	tests := []struct {
		name    string
		handler http.Handler
		cookie  *http.Cookie
		header  string
		status  int
		body    string
	}{
		{"user via cookie", auth.RequireUser(echoCaller()), &http.Cookie{Name: utils.UserCookie, Value: customer}, "", http.StatusOK, "user-1|"},
		{"user via bearer", auth.RequireUser(echoCaller()), nil, "Bearer " + customer, http.StatusOK, "user-1|"},
		{"user missing token", auth.RequireUser(echoCaller()), nil, "", http.StatusUnauthorized, ""},
		{"user garbage token", auth.RequireUser(echoCaller()), &http.Cookie{Name: utils.UserCookie, Value: "garbage"}, "", http.StatusUnauthorized, ""},
		{"seller token on user route", auth.RequireUser(echoCaller()), &http.Cookie{Name: utils.UserCookie, Value: seller}, "", http.StatusUnauthorized, ""},
		{"seller via cookie", auth.RequireSeller(echoCaller()), &http.Cookie{Name: utils.SellerCookie, Value: seller}, "", http.StatusOK, "|boss@example.com"},
		{"customer token on seller route", auth.RequireSeller(echoCaller()), &http.Cookie{Name: utils.SellerCookie, Value: customer}, "", http.StatusUnauthorized, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			tc.handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, tc.body, rec.Body.String())
			} else {
				assert.JSONEq(t, `{"success":false,"message":"Not Authorized"}`, rec.Body.String())
			}
		})
	}
}

func TestCORS(t *testing.T) {
	cors := NewCORSMiddleware(&config.Config{AllowedOrigin: "http://localhost:5173, https://shop.example"})
	h := cors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://shop.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, rate.Limit(1), 2, time.Hour, time.Hour)
	defer rl.Shutdown()

	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "limits are per client")
	assert.Equal(t, 2, rl.size())
}

func TestRateLimiterExemptPaths(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, rate.Limit(1), 1, time.Hour, time.Hour).Exempt("/stripe")
	defer rl.Shutdown()

	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/stripe", nil)
		req.RemoteAddr = "10.0.0.3:443"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "webhook delivery %d", i)
	}
	assert.Equal(t, 0, rl.size(), "exempt requests are not tracked")

	req := httptest.NewRequest(http.MethodGet, "/api/product/list", nil)
	req.RemoteAddr = "10.0.0.3:443"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRequestLoggerRecordsCaller(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	token, err := tokens.Generate("user-9", utils.RoleCustomer)
	require.NoError(t, err)

	var seen *requestMeta
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(requestMetaKey{}).(*requestMeta)
	})
	h := RequestLogger(NewAuthenticator(tokens).RequireUser(inner))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: utils.UserCookie, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	require.NotNil(t, seen)
	assert.Equal(t, "user-9", seen.userID)
}

func TestGetClientIPIgnoresForwardingHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	req.Header.Set("X-Real-IP", "203.0.113.9")
	assert.Equal(t, "192.0.2.1", getClientIP(req))
}

func TestParseTrustedProxies(t *testing.T) {
	got, err := ParseTrustedProxies(" 10.0.0.0/8, 192.0.2.7 ,,")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "10.0.0.0/8", got[0].String())
	assert.Equal(t, "192.0.2.7/32", got[1].String())

	none, err := ParseTrustedProxies("")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = ParseTrustedProxies("not-an-ip")
	assert.Error(t, err)
}

func TestRealIP(t *testing.T) {
	trusted, err := ParseTrustedProxies("10.0.0.0/8")
	require.NoError(t, err)

	var seen string
	h := RealIP(trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = getClientIP(r)
	}))
	serve := func(remote, xff, xri string) string {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		if xff != "" {
			req.Header.Set("X-Forwarded-For", xff)
		}
		if xri != "" {
			req.Header.Set("X-Real-IP", xri)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
		return seen
	}

	assert.Equal(t, "198.51.100.4", serve("198.51.100.4:5000", "1.2.3.4", ""), "untrusted peer cannot spoof")
	assert.Equal(t, "203.0.113.5", serve("10.0.0.2:5000", "203.0.113.5", ""))
	assert.Equal(t, "203.0.113.5", serve("10.0.0.2:5000", "6.6.6.6, 203.0.113.5, 10.0.0.9", ""), "rightmost untrusted hop wins")
	assert.Equal(t, "10.0.0.9", serve("10.0.0.2:5000", "10.0.0.9", ""), "all hops trusted keeps the leftmost")
	assert.Equal(t, "203.0.113.9", serve("10.0.0.2:5000", "", "203.0.113.9"))
	assert.Equal(t, "10.0.0.2", serve("10.0.0.2:5000", "garbage", ""))
}

func TestRateLimiterIgnoresSpoofedForwardedFor(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, rate.Limit(1), 1, time.Hour, time.Hour)
	defer rl.Shutdown()

	h := RealIP(nil)(rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.4:5000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 1, rl.size())
}
