package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeySessionID is where the session middleware stores the session id
// on the gin context.
const ContextKeySessionID = "session_id"

// SessionCookieName is the cookie carrying the browsing-session id.
const SessionCookieName = "homeboard_session"

const sessionCookieMaxAge = 30 * 24 * 60 * 60

// Session issues a session-id cookie when the request has none and exposes
// the id on the gin context for the household resolver.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookieName)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(SessionCookieName, sid, sessionCookieMaxAge, "/", "", false, true)
		}
		c.Set(ContextKeySessionID, sid)
		c.Next()
	}
}

// SessionID returns the browsing-session id from the gin context.
func SessionID(c *gin.Context) string {
	v, exists := c.Get(ContextKeySessionID)
	if !exists {
		return ""
	}
	sid, _ := v.(string)
	return sid
}
