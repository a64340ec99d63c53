package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORS_DefaultRejectsCrossOrigin(t *testing.T) {
	router := gin.New()
	router.Use(CORS())
	router.GET("/lots", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(router, http.MethodGet, "/lots", map[string]string{"Origin": "http://elsewhere.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(router, http.MethodOptions, "/lots", map[string]string{"Origin": "http://elsewhere.example"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWithConfig(t *testing.T) {
	t.Run("allowed origin", func(t *testing.T) {
		router := gin.New()
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"http://shopfloor.local"}
		router.Use(CORSWithConfig(cfg))
		router.POST("/issues", func(c *gin.Context) { c.Status(http.StatusCreated) })

		w := serve(router, http.MethodOptions, "/issues", map[string]string{"Origin": "http://shopfloor.local"})
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://shopfloor.local", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), HeaderIdempotencyKey)
		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))

		w = serve(router, http.MethodPost, "/issues", map[string]string{"Origin": "http://other.local"})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard never sends credentials", func(t *testing.T) {
		router := gin.New()
		router.Use(CORSWithConfig(CORSConfig{AllowOrigins: []string{"*"}, AllowCredentials: true}))
		router.GET("/lots", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := serve(router, http.MethodGet, "/lots", map[string]string{"Origin": "http://any.local"})
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	t.Run("generated", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/", nil)
		id := w.Header().Get(HeaderRequestID)
		require.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("propagated from caller", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/", map[string]string{HeaderRequestID: "caller-1"})
		assert.Equal(t, "caller-1", w.Header().Get(HeaderRequestID))
		assert.Equal(t, "caller-1", w.Body.String())
	})
}

func TestActor(t *testing.T) {
	router := gin.New()
	router.Use(Actor())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetActor(c)) })

	assert.Equal(t, "alice", serve(router, http.MethodGet, "/", map[string]string{HeaderUserID: " alice "}).Body.String())
	assert.Equal(t, DefaultActor, serve(router, http.MethodGet, "/", nil).Body.String())
}

func TestSecure(t *testing.T) {
	router := gin.New()
	router.Use(Secure())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(router, http.MethodGet, "/", nil)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}

func TestTimeout(t *testing.T) {
	t.Run("sets a deadline", func(t *testing.T) {
		router := gin.New()
		router.Use(Timeout(time.Second))
		router.GET("/", func(c *gin.Context) {
			deadline, ok := c.Request.Context().Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 200*time.Millisecond)
			c.Status(http.StatusOK)
		})
		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/", nil).Code)
	})

	t.Run("zero disables", func(t *testing.T) {
		router := gin.New()
		router.Use(Timeout(0))
		router.GET("/", func(c *gin.Context) {
			_, ok := c.Request.Context().Deadline()
			assert.False(t, ok)
			c.Status(http.StatusOK)
		})
		serve(router, http.MethodGet, "/", nil)
	})
}
