package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/testhelpers"
)

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client := testhelpers.SetupRedis(t)
	limiter := NewGenerationRateLimiter(client, 2, time.Hour, nil)
	practitioner := uuid.New()

	router := gin.New()
	router.POST("/generate", func(c *gin.Context) {
		c.Set(UserIDKey, practitioner)
		c.Next()
	}, limiter.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		router.ServeHTTP(last, httptest.NewRequest(http.MethodPost, "/generate", nil))
		codes = append(codes, last.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, last.Body.String(), "rate limit exceeded")

	remaining, _, err := limiter.GetRemainingRequests(context.Background(), practitioner.String())
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	remaining, _, err = limiter.GetRemainingRequests(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)
}

func TestQuotaHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client := testhelpers.SetupRedis(t)
	limiter := NewGenerationRateLimiter(client, 3, time.Hour, nil)
	practitioner := uuid.New()

	setUser := func(c *gin.Context) {
		c.Set(UserIDKey, practitioner)
		c.Next()
	}
	router := gin.New()
	router.POST("/generate", setUser, limiter.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	router.GET("/generate/quota", setUser, limiter.QuotaHandler())

	quota := func() map[string]interface{} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/generate/quota", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body
	}

	body := quota()
	assert.Equal(t, float64(3), body["limit"])
	assert.Equal(t, float64(3), body["remaining"])
	assert.Equal(t, "1h0m0s", body["window"])

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/generate", nil))
	assert.Equal(t, float64(2), quota()["remaining"])
	// reading the quota does not spend it
	assert.Equal(t, float64(2), quota()["remaining"])
}

func TestQuotaHandlerRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewGenerationRateLimiter(nil, 2, time.Hour, nil)
	router := gin.New()
	router.GET("/generate/quota", limiter.QuotaHandler())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/generate/quota", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimiterRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewGenerationRateLimiter(nil, 2, time.Hour, nil)
	router := gin.New()
	router.POST("/generate", limiter.RateLimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/generate", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
