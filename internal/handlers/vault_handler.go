package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/services"
)

// VaultHandler handles the simulated cloud mirror.
type VaultHandler struct {
	vaultService services.VaultServicer
}

// NewVaultHandler creates a new VaultHandler.
func NewVaultHandler(vaultService services.VaultServicer) *VaultHandler {
	return &VaultHandler{vaultService: vaultService}
}

// ConnectVaultRequest represents the payload for restoring from an
// existing vault.
type ConnectVaultRequest struct {
	VaultID string `json:"vault_id" binding:"required,max=64"`
}

// VaultInitResponse represents a freshly generated vault link.
type VaultInitResponse struct {
	VaultID string `json:"vault_id"`
}

// InitVault generates a vault id and pushes the current state
// @Summary     Initialize vault
// @Description Generate a new vault identifier, link it, and push a first snapshot
// @Tags        vault
// @Produce     json
// @Security    BearerAuth
// @Success     201 {object} VaultInitResponse "Vault created"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /vault/init [post]
func (h *VaultHandler) InitVault(c *gin.Context) {
	vaultID, err := h.vaultService.Init()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vault_id": vaultID})
}

// ConnectVault restores state from an existing vault
// @Summary     Connect to vault
// @Description Replace local state with the vault snapshot and remember the link; last writer wins
// @Tags        vault
// @Accept      json
// @Produce     json
// @Param       request body ConnectVaultRequest true "Vault identifier"
// @Success     200 {object} MessageResponse "State restored"
// @Failure     404 {object} ErrorResponse "Vault not found"
// @Router      /vault/connect [post]
func (h *VaultHandler) ConnectVault(c *gin.Context) {
	var req ConnectVaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.vaultService.Connect(req.VaultID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vault connected"})
}

// PushVault forces an immediate snapshot push
// @Summary     Push to vault
// @Tags        vault
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Snapshot pushed"
// @Failure     409 {object} ErrorResponse "No vault linked"
// @Router      /vault/push [post]
func (h *VaultHandler) PushVault(c *gin.Context) {
	if err := h.vaultService.Push(); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vault synced"})
}

// GetVaultStatus reports the linked vault and last sync time
// @Summary     Get vault status
// @Tags        vault
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.VaultStatus "Vault status"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /vault/status [get]
func (h *VaultHandler) GetVaultStatus(c *gin.Context) {
	status, err := h.vaultService.Status()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}
