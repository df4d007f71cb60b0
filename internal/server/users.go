package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todolist/internal/service"
)

var errCannotDeleteSelf = errors.New("el administrador no puede eliminarse a sí mismo")

type blockRequest struct {
	Blocked bool `form:"bloqueado" json:"bloqueado"`
}

// handleListUsers renders the full user roster for the administrator,
// optionally one page at a time.
func (s *Server) handleListUsers(c *gin.Context) {
	if _, ok := s.requireAdmin(c); !ok {
		return
	}

	payload := s.viewerPayload(c)

	sizeParam := c.Query("size")
	if sizeParam == "" {
		users, err := s.users.ListAll(c.Request.Context())
		if err != nil {
			s.respondError(c, err)
			return
		}
		payload["usuarios"] = users
		c.JSON(http.StatusOK, payload)
		return
	}

	size, err := strconv.Atoi(sizeParam)
	if err != nil || size < 1 {
		size = 6
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}

	users, err := s.users.ListPage(c.Request.Context(), page, size)
	if err != nil {
		s.respondError(c, err)
		return
	}
	total, err := s.users.Count(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	payload["usuarios"] = users
	payload["currentPage"] = page
	payload["totalPages"] = (int(total) + size - 1) / size
	c.JSON(http.StatusOK, payload)
}

// handleUserDetail renders one user's profile. The administrator may inspect
// anyone; a regular user only themselves.
func (s *Server) handleUserDetail(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	sess, ok := s.requireUser(c)
	if !ok {
		return
	}
	if !sess.Admin && sess.UserID != userID {
		s.respondError(c, service.Unauthorizedf("usuario no autorizado"))
		return
	}

	user, err := s.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
		return
	}

	payload := s.viewerPayload(c)
	payload["usuario"] = user
	c.JSON(http.StatusOK, payload)
}

// handleBlockUser lets the administrator block or unblock an account. The
// form parameter selects the direction.
func (s *Server) handleBlockUser(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, ok := s.requireAdmin(c); !ok {
		return
	}

	var req blockRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.users.SetBlocked(c.Request.Context(), userID, req.Blocked); err != nil {
		s.respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/registrados")
}

// handleDeleteUser removes an account with its tasks and memberships.
func (s *Server) handleDeleteUser(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	sess, ok := s.requireAdmin(c)
	if !ok {
		return
	}
	if sess.UserID == userID {
		s.flashAndRedirect(c, errCannotDeleteSelf, "", "/registrados")
		return
	}

	err := s.users.Delete(c.Request.Context(), userID)
	s.flashAndRedirect(c, err, "Usuario eliminado correctamente", "/registrados")
}
