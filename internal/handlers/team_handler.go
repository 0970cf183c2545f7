package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/services"
)

// TeamHandler handles team grouping requests.
type TeamHandler struct {
	teamService  services.TeamServicer
	vaultService services.VaultServicer
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService services.TeamServicer, vaultService services.VaultServicer) *TeamHandler {
	return &TeamHandler{teamService: teamService, vaultService: vaultService}
}

// TeamRequest represents the request payload for creating or renaming a team.
type TeamRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateTeam adds a team
// @Summary     Create team
// @Tags        teams
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TeamRequest true "Team name"
// @Success     201 {object} models.Team "Team created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Router      /teams [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	team, err := h.teamService.Create(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusCreated, gin.H{"team": team})
}

// ListTeams returns all teams
// @Summary     List teams
// @Tags        teams
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Team "Teams"
// @Router      /teams [get]
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

// UpdateTeam renames a team
// @Summary     Rename team
// @Tags        teams
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Team ID"
// @Param       request body TeamRequest true "New team name"
// @Success     200 {object} models.Team "Updated team"
// @Failure     404 {object} ErrorResponse "Team not found"
// @Router      /teams/{id} [put]
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	var req TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	team, err := h.teamService.Update(c.Param("id"), req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusOK, gin.H{"team": team})
}

// DeleteTeam removes a team
// @Summary     Delete team
// @Description Remove a team; its members are detached, not deleted
// @Tags        teams
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Team ID"
// @Success     200 {object} MessageResponse "Team deleted"
// @Failure     404 {object} ErrorResponse "Team not found"
// @Router      /teams/{id} [delete]
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	if err := h.teamService.Delete(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	h.vaultService.MarkDirty()
	c.JSON(http.StatusOK, gin.H{"message": "Team deleted successfully"})
}
