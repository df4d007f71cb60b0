package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"todolist/internal/metrics"
	"todolist/internal/service"
)

type loginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

type registerRequest struct {
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
	Name      string `form:"nombre" json:"nombre"`
	BirthDate string `form:"fechaNacimiento" json:"fechaNacimiento"`
	Admin     bool   `form:"administrador" json:"administrador"`
}

// handleLoginForm renders the login page.
func (s *Server) handleLoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, s.viewerPayload(c))
}

// handleLoginSubmit checks credentials and opens a session. An administrator
// lands on the user roster, everyone else on their task list. Failures render
// the form again with an error, they are not authentication challenges.
func (s *Server) handleLoginSubmit(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	switch status {
	case service.LoginOK:
		metrics.ObserveLogin("ok")
		user, err := s.users.FindByEmail(c.Request.Context(), req.Email)
		if err != nil || user == nil {
			s.respondError(c, fmt.Errorf("usuario desaparecido tras el login"))
			return
		}
		if err := s.sessions.LogIn(c, user.ID, user.Admin); err != nil {
			s.respondError(c, err)
			return
		}
		if user.Admin {
			c.Redirect(http.StatusFound, "/registrados")
			return
		}
		c.Redirect(http.StatusFound, fmt.Sprintf("/usuarios/%d/tareas", user.ID))
	case service.LoginUserNotFound:
		metrics.ObserveLogin("not_found")
		c.JSON(http.StatusOK, gin.H{"error": "No existe usuario"})
	case service.LoginErrorPassword:
		metrics.ObserveLogin("wrong_password")
		c.JSON(http.StatusOK, gin.H{"error": "Contraseña incorrecta"})
	case service.LoginUserBlocked:
		metrics.ObserveLogin("blocked")
		c.JSON(http.StatusOK, gin.H{"error": "Usuario bloqueado. Contacte con el administrador."})
	}
}

// handleLogout clears the session and returns to the login page.
func (s *Server) handleLogout(c *gin.Context) {
	s.sessions.LogOut(c)
	c.Redirect(http.StatusFound, "/login")
}

// handleRegisterForm renders the registration page. The admin checkbox only
// makes sense while no administrator exists yet, so the flag is exposed.
func (s *Server) handleRegisterForm(c *gin.Context) {
	adminExists, err := s.users.AdminExists(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	payload := s.viewerPayload(c)
	payload["existeAdmin"] = adminExists
	c.JSON(http.StatusOK, payload)
}

// handleRegisterSubmit creates the account and redirects to login. Validation
// and uniqueness failures re-render the form with the reason.
func (s *Server) handleRegisterSubmit(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Admin:    req.Admin,
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "fecha de nacimiento inválida"})
			return
		}
		input.BirthDate = &birthDate
	}

	if _, err := s.users.Register(c.Request.Context(), input); err != nil {
		if service.IsValidation(err) || service.IsConflict(err) {
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}
		s.respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}
