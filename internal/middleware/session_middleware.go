package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apperrors "github.com/qkart/storefront/internal/errors"
	"github.com/qkart/storefront/internal/session"
	"github.com/qkart/storefront/pkg/util"
)

// Context keys for session state
const (
	SessionIDKey = "session_id"
	SessionKey   = "session"
)

type SessionMiddleware struct {
	store      session.Store
	cookieName string
}

func NewSessionMiddleware(store session.Store, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{
		store:      store,
		cookieName: cookieName,
	}
}

// Load resolves the session cookie on every request. A missing cookie
// gets a fresh anonymous session ID so pre-login state (like the search
// view) has a stable key. The session itself may be absent; handlers
// that need a token surface AuthRequired themselves.
func (m *SessionMiddleware) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		sid, err := c.Cookie(m.cookieName)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(m.cookieName, sid, 0, "/", "", false, true)
			log.Debug("Issued anonymous session ID", nil)
		}
		c.Set(SessionIDKey, sid)

		sess, err := m.store.Get(c.Request.Context(), sid)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				log.Error("Session store read failed", err, nil)
			}
			c.Next()
			return
		}

		if info, peekErr := util.PeekToken(sess.Token); peekErr == nil && info.Expired(time.Now()) {
			log.Warn("Session token is past its expiry", map[string]interface{}{
				"username": sess.Username,
			})
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// RequireSession rejects requests that carry no authenticated session.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok || !sess.Authenticated() {
			GetLoggerFromContext(c).Warn("Unauthenticated request to protected route", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.Unauthorized(c, "Login to continue")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSessionID extracts the session ID from context
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

// GetSession extracts the session from context
func GetSession(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}
