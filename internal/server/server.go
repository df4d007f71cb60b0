package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"todolist/internal/metrics"
	"todolist/internal/service"
	"todolist/internal/session"
)

// Server provides the HTTP handlers for the to-do list application.
type Server struct {
	engine    *gin.Engine
	users     *service.UserService
	teams     *service.TeamService
	tasks     *service.TaskService
	sessions  *session.Manager
	logger    *slog.Logger
	staticDir string
}

// New constructs the HTTP server with routes and middleware configured.
func New(users *service.UserService, teams *service.TeamService, tasks *service.TaskService,
	sessions *session.Manager, logger *slog.Logger, staticDir string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())

	srv := &Server{
		engine:    router,
		users:     users,
		teams:     teams,
		tasks:     tasks,
		sessions:  sessions,
		logger:    logger,
		staticDir: staticDir,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all handlers together.
func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.engine.GET("/", s.handleHome)
	s.engine.GET("/about", s.handleAbout)
	s.engine.GET("/welcome", s.handleWelcome)

	s.engine.GET("/login", s.handleLoginForm)
	s.engine.POST("/login", s.handleLoginSubmit)
	s.engine.GET("/logout", s.handleLogout)
	s.engine.GET("/registro", s.handleRegisterForm)
	s.engine.POST("/registro", s.handleRegisterSubmit)

	teams := s.engine.Group("/equipos")
	{
		teams.GET("", s.handleListTeams)
		teams.GET("/:id", s.handleTeamDetail)
		teams.POST("/crear", s.handleCreateTeam)
		teams.POST("/:id/unirse", s.handleJoinTeam)
		teams.POST("/:id/salir", s.handleLeaveTeam)
		teams.POST("/:id/actualizarNombre", s.handleRenameTeam)
		teams.POST("/:id/eliminar", s.handleDeleteTeam)
	}

	s.engine.GET("/usuarios/:id/tareas", s.handleListTasks)
	s.engine.GET("/usuarios/:id/tareas/nueva", s.handleNewTaskForm)
	s.engine.POST("/usuarios/:id/tareas/nueva", s.handleCreateTask)
	s.engine.GET("/tareas/:id/editar", s.handleEditTaskForm)
	s.engine.POST("/tareas/:id/editar", s.handleUpdateTask)
	s.engine.DELETE("/tareas/:id", s.handleDeleteTask)

	admin := s.engine.Group("/registrados")
	{
		admin.GET("", s.handleListUsers)
		admin.GET("/:id", s.handleUserDetail)
		admin.POST("/:id/bloqueo", s.handleBlockUser)
		admin.POST("/:id/bloquear", s.handleBlockUser)
		admin.POST("/:id/eliminar", s.handleDeleteUser)
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleHome sends the browser to the login page.
func (s *Server) handleHome(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
}

// handleAbout renders the info page.
func (s *Server) handleAbout(c *gin.Context) {
	payload := s.viewerPayload(c)
	payload["aplicacion"] = "ToDoList"
	payload["descripcion"] = "Aplicación de listas de tareas con equipos"
	c.JSON(http.StatusOK, payload)
}

// handleWelcome renders the landing page.
func (s *Server) handleWelcome(c *gin.Context) {
	payload := s.viewerPayload(c)
	payload["bienvenida"] = "Bienvenido a ToDoList"
	c.JSON(http.StatusOK, payload)
}

// parseID converts a path parameter to uint with error handling.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identificador inválido"})
		return 0, false
	}
	return uint(id), true
}

// respondError maps a service failure onto an HTTP status for read endpoints.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case service.IsNotFound(err):
		status = http.StatusNotFound
	case service.IsValidation(err):
		status = http.StatusBadRequest
	case service.IsConflict(err):
		status = http.StatusConflict
	case service.IsUnauthorized(err):
		status = http.StatusUnauthorized
	default:
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// flashAndRedirect converts the outcome of a mutation into a one-shot message
// plus a redirect, the pattern every mutating endpoint follows.
func (s *Server) flashAndRedirect(c *gin.Context, err error, okMessage, location string) {
	if err != nil {
		s.sessions.Flash(c, "error", err.Error())
	} else {
		s.sessions.Flash(c, "mensaje", okMessage)
	}
	c.Redirect(http.StatusFound, location)
}

// viewerPayload carries the session-derived attributes every page renders:
// the viewer's name, id and administrator flag, plus pending flash messages.
func (s *Server) viewerPayload(c *gin.Context) gin.H {
	payload := gin.H{
		"nombreUsuario":   nil,
		"usuarioId":       nil,
		"esAdministrador": false,
	}
	sess := s.sessions.Current(c)
	if sess != nil {
		payload["usuarioId"] = sess.UserID
		payload["esAdministrador"] = sess.Admin
		if user, err := s.users.FindByID(c.Request.Context(), sess.UserID); err == nil && user != nil {
			payload["nombreUsuario"] = user.Name
		}
	}
	for key, message := range s.sessions.PopFlashes(c) {
		payload[key] = message
	}
	return payload
}
