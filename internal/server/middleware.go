package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todolist/internal/service"
	"todolist/internal/session"
)

// requireUser returns the session when someone is logged in; anonymous
// requests get a redirect to the login page.
func (s *Server) requireUser(c *gin.Context) (*session.Session, bool) {
	sess := s.sessions.Current(c)
	if sess == nil {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return nil, false
	}
	return sess, true
}

// requireSelf enforces that the acting user is targetID. Anonymous requests
// redirect to login; a different logged-in user gets 401.
func (s *Server) requireSelf(c *gin.Context, targetID uint) (*session.Session, bool) {
	sess, ok := s.requireUser(c)
	if !ok {
		return nil, false
	}
	if sess.UserID != targetID {
		s.respondError(c, service.Unauthorizedf("usuario no autorizado"))
		c.Abort()
		return nil, false
	}
	return sess, true
}

// requireAdmin enforces the administrator role. The two failure modes stay
// distinct: not logged in redirects to login, logged in without the flag is
// a 401.
func (s *Server) requireAdmin(c *gin.Context) (*session.Session, bool) {
	sess, ok := s.requireUser(c)
	if !ok {
		return nil, false
	}
	if !sess.Admin {
		s.respondError(c, service.Unauthorizedf("usuario no autorizado"))
		c.Abort()
		return nil, false
	}
	return sess, true
}
