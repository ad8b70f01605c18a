package middleware

import (
	"bytes"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-dashboard/internal/session"
	apperrors "github.com/jwalitptl/hospital-dashboard/pkg/errors"
)

var errorTemplates = template.Must(template.New("").Parse(
	`{{define "error.html"}}page {{.Code}} {{.Message}} {{.TraceID}}{{end}}` +
		`{{define "error_partial.html"}}toast {{.Message}}{{end}}`,
))

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(errorTemplates)
	r.Use(handlers...)
	return r
}

func TestRequestIDPropagates(t *testing.T) {
	var buf bytes.Buffer
	r := newEngine(RequestID(zerolog.New(&buf)))
	r.GET("/", func(c *gin.Context) {
		RequestLogger(c).Info().Msg("hello")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc", w.Header().Get(HeaderXRequestID))
	assert.Contains(t, buf.String(), `"request_id":"abc"`)
}

func TestRequestLoggerWithoutRequestID(t *testing.T) {
	r := newEngine()
	r.GET("/", func(c *gin.Context) {
		logger := RequestLogger(c)
		require.NotNil(t, logger)
		logger.Warn().Msg("dropped")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestErrorHandler(t *testing.T) {
	r := newEngine(RequestID(zerolog.Nop()), ErrorHandler())
	r.GET("/missing", func(c *gin.Context) {
		c.Error(apperrors.NotFound("patient", nil))
	})
	r.GET("/written", func(c *gin.Context) {
		c.Error(apperrors.Internal(nil))
		c.String(http.StatusOK, "done")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "page 404"))

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("HX-Request", "true")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.True(t, strings.HasPrefix(w.Body.String(), "toast"))
	assert.Equal(t, "none", w.Header().Get("HX-Reswap"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))
	assert.Equal(t, "done", w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := newEngine(Recovery())
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "page 500")
}

func TestSizeLimit(t *testing.T) {
	r := newEngine(SizeLimit(SizeLimitConfig{MaxBodySize: 8}))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	config := DefaultSecurityConfig()
	config.HSTS = true
	r := newEngine(SecurityHeaders(config))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "max-age=31536000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 1})
	r := newEngine(rl.RateLimit())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1001"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1000"))
}

func TestSessionPersistsAcrossRequests(t *testing.T) {
	store := session.NewMemoryStore(0)
	r := newEngine(Session(store, SessionConfig{CookieName: "sid"}))
	r.GET("/read", func(c *gin.Context) {
		c.String(http.StatusOK, CurrentSession(c).Email)
	})
	r.GET("/write", func(c *gin.Context) {
		CurrentSession(c).SetEmail("a@hopital.fr")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/read", nil))
	cookie := w.Result().Cookies()[0]
	assert.True(t, cookie.HttpOnly)
	// a new session is stored right away so the cookie always resolves
	_, err := store.Get(t.Context(), cookie.Value)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/write", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/read", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@hopital.fr", w.Body.String())
}

func TestOverlappingRequestsKeepEachOthersChanges(t *testing.T) {
	store := session.NewMemoryStore(0)
	r := newEngine(Session(store, SessionConfig{CookieName: "sid"}))
	loaded := make(chan struct{})
	resume := make(chan struct{})
	r.GET("/open", func(c *gin.Context) {
		require.NoError(t, CurrentSession(c).Put("gate/patient", map[string]int{"id": 2}))
		c.Status(http.StatusOK)
	})
	r.POST("/viewport", func(c *gin.Context) {
		close(loaded)
		<-resume
		CurrentSession(c).Resize(600)
		c.Status(http.StatusNoContent)
	})
	r.POST("/confirm", func(c *gin.Context) {
		CurrentSession(c).Delete("gate/patient")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	cookie := w.Result().Cookies()[0]

	done := make(chan struct{})
	go func() {
		defer close(done)
		req := httptest.NewRequest(http.MethodPost, "/viewport", nil)
		req.AddCookie(cookie)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}()
	<-loaded

	req := httptest.NewRequest(http.MethodPost, "/confirm", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(httptest.NewRecorder(), req)
	close(resume)
	<-done

	sess, err := store.Get(t.Context(), cookie.Value)
	require.NoError(t, err)
	assert.True(t, sess.Layout.Mobile)
	found, err := sess.Get("gate/patient", &map[string]int{})
	require.NoError(t, err)
	assert.False(t, found, "the viewport save did not reopen the gate")
}
