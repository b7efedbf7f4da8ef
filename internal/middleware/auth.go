package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medics-admin/internal/session"
)

// RequireUser guards console routes. Browsers are sent to the login page,
// API callers get a 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := session.FromContext(c)
		if !s.Authenticated() {
			if WantsHTML(c) {
				c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		c.Set("userID", s.User.ID)
		c.Set("userRole", s.User.Role)

		c.Next()
	}
}

// WantsHTML reports whether the caller is a browser asking for a page.
func WantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
