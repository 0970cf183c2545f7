package integration

import (
	"net/http"
	"strings"
	"testing"
)

func TestVaultFlow_InitRestoreStatus(t *testing.T) {
	app := setupApp(t)
	app.seedEmployee(t, "admin", true)
	adminToken, _ := app.login(t, "admin", "password123")

	// Nothing is linked at first.
	rec := app.request("GET", "/api/v1/vault/status", "", adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("status failed: %d %s", rec.Code, rec.Body.String())
	}
	status := parseJSON(t, rec)["status"].(map[string]interface{})
	if status["linked"] != false {
		t.Errorf("expected unlinked status, got %v", status)
	}

	// Pushing without a link is a conflict.
	rec = app.request("POST", "/api/v1/vault/push", "", adminToken)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 pushing unlinked, got %d: %s", rec.Code, rec.Body.String())
	}

	// Seed some state, then snapshot it.
	rec = app.request("POST", "/api/v1/holidays",
		`{"date":"2024-05-01","name":"Labour Day"}`, adminToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create holiday failed: %d %s", rec.Code, rec.Body.String())
	}
	holidayID := parseJSON(t, rec)["holiday"].(map[string]interface{})["id"].(string)

	rec = app.request("POST", "/api/v1/vault/init", "", adminToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("init failed: %d %s", rec.Code, rec.Body.String())
	}
	vaultID := parseJSON(t, rec)["vault_id"].(string)
	if !strings.HasPrefix(vaultID, "AMADEUS-") {
		t.Fatalf("expected AMADEUS- vault id, got %q", vaultID)
	}

	// Diverge local state from the snapshot.
	rec = app.request("DELETE", "/api/v1/holidays/"+holidayID, "", adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete holiday failed: %d %s", rec.Code, rec.Body.String())
	}

	// Restore from the vault. The connect endpoint is public; it serves
	// the login screen before any session exists.
	rec = app.request("POST", "/api/v1/vault/connect",
		`{"vault_id":"`+vaultID+`"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("connect failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/holidays", "", adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("list holidays failed: %d %s", rec.Code, rec.Body.String())
	}
	holidays := parseJSON(t, rec)["holidays"].([]interface{})
	if len(holidays) != 1 {
		t.Fatalf("expected the snapshot holiday restored, got %d", len(holidays))
	}

	// The vault is linked with a sync timestamp now.
	rec = app.request("GET", "/api/v1/vault/status", "", adminToken)
	status = parseJSON(t, rec)["status"].(map[string]interface{})
	if status["linked"] != true || status["vault_id"] != vaultID {
		t.Errorf("expected linked status for %s, got %v", vaultID, status)
	}
	if status["last_synced"] == nil || status["last_synced"] == "" {
		t.Error("expected a last-synced timestamp")
	}
}

func TestVaultFlow_ConnectUnknownVault(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/vault/connect",
		`{"vault_id":"AMADEUS-DEADBEEF"}`, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "VAULT_NOT_FOUND" {
		t.Errorf("expected VAULT_NOT_FOUND, got %v", errObj["code"])
	}
}

func TestVaultFlow_NonAdminCannotInit(t *testing.T) {
	app := setupApp(t)
	app.seedEmployee(t, "plain", false)
	token, _ := app.login(t, "plain", "password123")

	rec := app.request("POST", "/api/v1/vault/init", "", token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
}
