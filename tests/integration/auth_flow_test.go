package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAuthFlow_LoginProfileRefresh(t *testing.T) {
	app := setupApp(t)
	app.seedEmployee(t, "maged", true)

	// Step 1: Login
	access, refresh := app.login(t, "maged", "password123")
	if access == "" || refresh == "" {
		t.Fatal("expected non-empty tokens from login")
	}

	// Step 2: Access profile with the access token
	rec := app.request("GET", "/api/v1/profile", "", access)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	emp := parseJSON(t, rec)["employee"].(map[string]interface{})
	if emp["username"] != "maged" {
		t.Errorf("expected username maged, got %v", emp["username"])
	}

	// Step 3: Refresh the token pair
	body := fmt.Sprintf(`{"refresh_token":%q}`, refresh)
	rec = app.request("POST", "/api/v1/auth/refresh", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh failed: %d %s", rec.Code, rec.Body.String())
	}
	newAccess := parseJSON(t, rec)["access_token"].(string)
	if newAccess == "" {
		t.Fatal("expected non-empty new access token after refresh")
	}

	// Step 4: The new access token works
	rec = app.request("GET", "/api/v1/profile", "", newAccess)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with new token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthFlow_LoginWrongPassword(t *testing.T) {
	app := setupApp(t)
	app.seedEmployee(t, "maged", false)

	rec := app.request("POST", "/api/v1/auth/login",
		`{"username":"maged","password":"wrongpassword"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "INVALID_CREDENTIALS" {
		t.Errorf("expected INVALID_CREDENTIALS, got %v", errObj["code"])
	}
}

func TestAuthFlow_CaseInsensitiveUsername(t *testing.T) {
	app := setupApp(t)
	app.seedEmployee(t, "maged", false)

	access, _ := app.login(t, "MAGED", "password123")
	if access == "" {
		t.Fatal("expected login to ignore username case")
	}
}

func TestAuthFlow_ResetPassword(t *testing.T) {
	app := setupApp(t)
	app.seedEmployee(t, "sara", false)

	rec := app.request("POST", "/api/v1/auth/reset-password",
		`{"username":"sara","new_password":"brand-new"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("reset failed: %d %s", rec.Code, rec.Body.String())
	}

	// Old password no longer works, new one does.
	rec = app.request("POST", "/api/v1/auth/login",
		`{"username":"sara","password":"password123"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected old password rejected, got %d", rec.Code)
	}
	app.login(t, "sara", "brand-new")
}

func TestAuthFlow_AdminGateOnProtectedRoutes(t *testing.T) {
	app := setupApp(t)
	app.seedEmployee(t, "plain", false)
	access, _ := app.login(t, "plain", "password123")

	rec := app.request("POST", "/api/v1/employees",
		`{"username":"new","name":"New Hire"}`, access)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/requests/all", "", access)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
}
