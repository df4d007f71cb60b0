package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type teamRequest struct {
	Name        string `form:"nombre" json:"nombre"`
	Description string `form:"descripcion" json:"descripcion"`
}

type renameTeamRequest struct {
	NewName string `form:"nuevoNombre" json:"nuevoNombre"`
}

// handleListTeams renders every team in case-insensitive name order along
// with whether the viewer already belongs to each one.
func (s *Server) handleListTeams(c *gin.Context) {
	sess, ok := s.requireUser(c)
	if !ok {
		return
	}

	teams, err := s.teams.ListAllSortedByName(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	membership := make(map[uint]bool, len(teams))
	for _, team := range teams {
		isMember, err := s.teams.IsMember(c.Request.Context(), team.ID, sess.UserID)
		if err != nil {
			s.respondError(c, err)
			return
		}
		membership[team.ID] = isMember
	}

	payload := s.viewerPayload(c)
	payload["equipos"] = teams
	payload["perteneceAlEquipo"] = membership
	c.JSON(http.StatusOK, payload)
}

// handleTeamDetail renders one team plus its member roster.
func (s *Server) handleTeamDetail(c *gin.Context) {
	teamID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, ok := s.requireUser(c); !ok {
		return
	}

	team, err := s.teams.Get(c.Request.Context(), teamID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	members, err := s.teams.Members(c.Request.Context(), teamID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	payload := s.viewerPayload(c)
	payload["equipo"] = team
	payload["usuarios"] = members
	c.JSON(http.StatusOK, payload)
}

// handleCreateTeam creates a team from the submitted name and description.
func (s *Server) handleCreateTeam(c *gin.Context) {
	if _, ok := s.requireUser(c); !ok {
		return
	}
	var req teamRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, err := s.teams.Create(c.Request.Context(), req.Name, req.Description)
	s.flashAndRedirect(c, err, "Equipo creado correctamente", "/equipos")
}

// handleJoinTeam adds the acting user to the team.
func (s *Server) handleJoinTeam(c *gin.Context) {
	teamID, ok := parseID(c, "id")
	if !ok {
		return
	}
	sess, ok := s.requireUser(c)
	if !ok {
		return
	}
	err := s.teams.AddMember(c.Request.Context(), teamID, sess.UserID)
	s.flashAndRedirect(c, err, "Te has unido al equipo", "/equipos")
}

// handleLeaveTeam removes the acting user from the team.
func (s *Server) handleLeaveTeam(c *gin.Context) {
	teamID, ok := parseID(c, "id")
	if !ok {
		return
	}
	sess, ok := s.requireUser(c)
	if !ok {
		return
	}
	err := s.teams.RemoveMember(c.Request.Context(), teamID, sess.UserID)
	s.flashAndRedirect(c, err, "Has salido del equipo", "/equipos")
}

// handleRenameTeam changes a team's name.
func (s *Server) handleRenameTeam(c *gin.Context) {
	teamID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, ok := s.requireUser(c); !ok {
		return
	}
	var req renameTeamRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.teams.Rename(c.Request.Context(), teamID, req.NewName)
	s.flashAndRedirect(c, err, "El nombre del equipo se ha actualizado", "/equipos")
}

// handleDeleteTeam removes the team and its memberships.
func (s *Server) handleDeleteTeam(c *gin.Context) {
	teamID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, ok := s.requireUser(c); !ok {
		return
	}
	err := s.teams.Delete(c.Request.Context(), teamID)
	s.flashAndRedirect(c, err, "El equipo se ha eliminado correctamente", "/equipos")
}
