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

func timeoutRouter(timeout time.Duration, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(timeout))
	r.GET("/", handler)
	return r
}

func TestTimeoutSetsRequestDeadline(t *testing.T) {
	var hasDeadline bool
	r := timeoutRouter(time.Second, func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, hasDeadline)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimeoutRespondsWhenHandlerGivesUp(t *testing.T) {
	r := timeoutRouter(10*time.Millisecond, func(c *gin.Context) {
		<-c.Request.Context().Done()
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusRequestTimeout, w.Code)
	assert.Contains(t, w.Body.String(), "Request timeout")
}

func TestTimeoutKeepsResponseWrittenBeforeDeadline(t *testing.T) {
	r := timeoutRouter(10*time.Millisecond, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		<-c.Request.Context().Done()
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
