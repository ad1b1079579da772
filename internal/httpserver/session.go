package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultSessionCookie = "sams_session"
	sessionHeader        = "X-Session-ID"
	sessionCtxKey        = "sessionID"
	sessionMaxAge        = 30 * 24 * 60 * 60
)

// sessionMiddleware resolves the browsing session from the X-Session-ID
// header or the session cookie, issuing a fresh id when neither holds a uuid.
// Accepted ids are stored in canonical form so every spelling of a uuid maps
// to one cart.
func sessionMiddleware(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionHeader)
		if id == "" {
			id, _ = c.Cookie(cookieName)
		}
		if parsed, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		} else {
			id = parsed.String()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, id, sessionMaxAge, "/", "", false, true)
		c.Header(sessionHeader, id)
		c.Set(sessionCtxKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}
