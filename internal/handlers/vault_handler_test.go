package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/services"
)

func setupVaultRouter(handler *VaultHandler) *gin.Engine {
	r := gin.New()
	r.POST("/vault/connect", handler.ConnectVault)
	auth := r.Group("", injectIdentity("admin-1", true))
	auth.POST("/vault/init", handler.InitVault)
	auth.POST("/vault/push", handler.PushVault)
	auth.GET("/vault/status", handler.GetVaultStatus)
	return r
}

func TestVaultHandler_InitVault(t *testing.T) {
	t.Run("returns 201 with the new vault id", func(t *testing.T) {
		vault := &mockVaultService{
			initFn: func() (string, error) { return "AMADEUS-A1B2C3D4E5F6", nil },
		}
		r := setupVaultRouter(NewVaultHandler(vault))

		rec := doRequest(r, "POST", "/vault/init", "")

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["vault_id"] != "AMADEUS-A1B2C3D4E5F6" {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})
}

func TestVaultHandler_ConnectVault(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var gotID string
		vault := &mockVaultService{
			connectFn: func(vaultID string) error {
				gotID = vaultID
				return nil
			},
		}
		r := setupVaultRouter(NewVaultHandler(vault))

		rec := doRequest(r, "POST", "/vault/connect", `{"vault_id":"AMADEUS-A1B2C3D4E5F6"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotID != "AMADEUS-A1B2C3D4E5F6" {
			t.Errorf("unexpected vault id: %q", gotID)
		}
	})

	t.Run("returns 404 for an unknown vault", func(t *testing.T) {
		vault := &mockVaultService{
			connectFn: func(string) error { return apperrors.ErrVaultNotFound },
		}
		r := setupVaultRouter(NewVaultHandler(vault))

		rec := doRequest(r, "POST", "/vault/connect", `{"vault_id":"AMADEUS-DEADBEEF"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VAULT_NOT_FOUND")
	})

	t.Run("returns 400 without a vault id", func(t *testing.T) {
		r := setupVaultRouter(NewVaultHandler(&mockVaultService{}))

		rec := doRequest(r, "POST", "/vault/connect", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestVaultHandler_PushVault(t *testing.T) {
	t.Run("returns 409 when no vault is linked", func(t *testing.T) {
		vault := &mockVaultService{
			pushFn: func() error { return apperrors.ErrVaultNotLinked },
		}
		r := setupVaultRouter(NewVaultHandler(vault))

		rec := doRequest(r, "POST", "/vault/push", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VAULT_NOT_LINKED")
	})
}

func TestVaultHandler_GetVaultStatus(t *testing.T) {
	t.Run("returns the linked status", func(t *testing.T) {
		vault := &mockVaultService{
			statusFn: func() (*services.VaultStatus, error) {
				return &services.VaultStatus{Linked: true, VaultID: "AMADEUS-A1B2C3D4E5F6", LastSynced: "2024-03-03T10:00:00Z"}, nil
			},
		}
		r := setupVaultRouter(NewVaultHandler(vault))

		rec := doRequest(r, "GET", "/vault/status", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		status := parseJSON(t, rec)["status"].(map[string]interface{})
		if status["linked"] != true || status["vault_id"] != "AMADEUS-A1B2C3D4E5F6" {
			t.Errorf("unexpected status payload: %v", status)
		}
	})
}
