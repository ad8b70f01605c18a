package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-dashboard/internal/session"
)

const (
	ContextSession      = "session"
	contextSessionStore = "session_store"
)

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Session loads the browser session named by the cookie, or starts a new
// one, and saves it after the handler if it changed.
func Session(store session.Store, config SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := RequestLogger(c)

		var sess *session.Session
		if id, err := c.Cookie(config.CookieName); err == nil && id != "" {
			sess, err = store.Get(ctx, id)
			if err != nil && !errors.Is(err, session.ErrNotFound) {
				logger.Error().Err(err).Msg("failed to load session")
			}
		}
		if sess == nil {
			sess = session.New()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(config.CookieName, sess.ID, int(config.TTL.Seconds()), "/", "", config.Secure, true)
		c.Set(ContextSession, sess)
		c.Set(contextSessionStore, store)

		c.Next()

		if sess.Dirty() {
			if err := store.Save(ctx, sess); err != nil {
				logger.Error().Err(err).Msg("failed to save session")
			}
		}
	}
}

// CurrentSession returns the session loaded by Session. Outside of the
// middleware a throwaway session is returned.
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(ContextSession); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	s := session.New()
	c.Set(ContextSession, s)
	return s
}

// CommitSession saves the session before the response is written, so a
// request issued right after the response sees the change.
func CommitSession(c *gin.Context) error {
	sess := CurrentSession(c)
	if !sess.Dirty() {
		return nil
	}
	v, ok := c.Get(contextSessionStore)
	if !ok {
		return nil
	}
	return v.(session.Store).Save(c.Request.Context(), sess)
}
