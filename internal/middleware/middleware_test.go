package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func serve(t *testing.T, handler gin.HandlerFunc, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handler)
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if mutate != nil {
		mutate(req)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDMintedWhenMissing(t *testing.T) {
	w := serve(t, RequestID(), nil)

	rid := w.Header().Get(HeaderXRequestID)
	_, err := uuid.Parse(rid)
	assert.NoError(t, err, "a fresh UUID is minted when the client sends none")
}

func TestRequestIDEchoesClientUUID(t *testing.T) {
	client := uuid.New().String()
	w := serve(t, RequestID(), func(req *http.Request) {
		req.Header.Set(HeaderXRequestID, client)
	})

	assert.Equal(t, client, w.Header().Get(HeaderXRequestID))
}

func TestRequestIDReplacesNonUUID(t *testing.T) {
	w := serve(t, RequestID(), func(req *http.Request) {
		req.Header.Set(HeaderXRequestID, "<script>alert(1)</script>")
	})

	rid := w.Header().Get(HeaderXRequestID)
	require.NotEqual(t, "<script>alert(1)</script>", rid)
	_, err := uuid.Parse(rid)
	assert.NoError(t, err)
}

func TestRateLimiterRejectsPastBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(RateLimiterConfig{Rate: rate.Limit(0.001), Burst: 1})
	r := gin.New()
	r.Use(rl.RateLimit())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRateLimiterZeroConfigUsesDefaults(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{})
	w := serve(t, rl.RateLimit(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
