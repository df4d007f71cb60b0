package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type taskRequest struct {
	Title string `form:"titulo" json:"titulo"`
}

// handleListTasks renders the user's task list one page at a time. Any logged
// in user may look; only the owner can mutate.
func (s *Server) handleListTasks(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, ok := s.requireUser(c); !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "6"))
	if err != nil || size < 1 {
		size = 6
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

	tasks, err := s.tasks.ListPageForUser(c.Request.Context(), userID, page, size)
	if err != nil {
		s.respondError(c, err)
		return
	}
	total, err := s.tasks.CountForUser(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	totalPages := (total + size - 1) / size

	payload := s.viewerPayload(c)
	payload["usuario"] = user
	payload["tareas"] = tasks
	payload["currentPage"] = page
	payload["totalPages"] = totalPages
	c.JSON(http.StatusOK, payload)
}

// handleNewTaskForm renders the new-task form for the owner.
func (s *Server) handleNewTaskForm(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, ok := s.requireSelf(c, userID); !ok {
		return
	}

	user, err := s.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	payload := s.viewerPayload(c)
	payload["usuario"] = user
	c.JSON(http.StatusOK, payload)
}

// handleCreateTask adds a task to the acting user's own list.
func (s *Server) handleCreateTask(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, ok := s.requireSelf(c, userID); !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := s.tasks.CreateForUser(c.Request.Context(), userID, req.Title)
	s.flashAndRedirect(c, err, "Tarea creada correctamente", fmt.Sprintf("/usuarios/%d/tareas", userID))
}

// handleEditTaskForm renders the edit form; only the owner reaches it.
func (s *Server) handleEditTaskForm(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	task, err := s.tasks.FindByID(c.Request.Context(), taskID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tarea no encontrada"})
		return
	}
	if _, ok := s.requireSelf(c, task.UserID); !ok {
		return
	}

	payload := s.viewerPayload(c)
	payload["tarea"] = task
	c.JSON(http.StatusOK, payload)
}

// handleUpdateTask saves a new title for the task.
func (s *Server) handleUpdateTask(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	task, err := s.tasks.FindByID(c.Request.Context(), taskID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tarea no encontrada"})
		return
	}
	if _, ok := s.requireSelf(c, task.UserID); !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err = s.tasks.Update(c.Request.Context(), taskID, req.Title)
	s.flashAndRedirect(c, err, "Tarea modificada correctamente", fmt.Sprintf("/usuarios/%d/tareas", task.UserID))
}

// handleDeleteTask removes the task; the owner calls this from the list page.
func (s *Server) handleDeleteTask(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	task, err := s.tasks.FindByID(c.Request.Context(), taskID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tarea no encontrada"})
		return
	}
	if _, ok := s.requireSelf(c, task.UserID); !ok {
		return
	}

	if err := s.tasks.Delete(c.Request.Context(), taskID); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
