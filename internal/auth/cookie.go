package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultCookieName is the session cookie name used when config leaves it unset.
const DefaultCookieName = "session_token"

// SetSessionCookie attaches the session token to the response. In production
// the cookie must travel cross-site (the web client is served from another
// origin), so SameSite=None with Secure. In development we stay on localhost
// and can afford the strict default.
func SetSessionCookie(c *gin.Context, name, token string, production bool) {
	if production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(name, token, int(SessionTTL.Seconds()), "/", "", production, true)
}

// ClearSessionCookie expires the session cookie. The attribute values must
// mirror SetSessionCookie exactly or some browsers will keep the old cookie.
func ClearSessionCookie(c *gin.Context, name string, production bool) {
	if production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(name, "", -1, "/", "", production, true)
}
