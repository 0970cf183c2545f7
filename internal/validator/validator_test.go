package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type datePayload struct {
	Date string `json:"date" binding:"required,iso_date"`
}

type decisionPayload struct {
	Decision string `json:"decision" binding:"required,decision"`
}

type statusPayload struct {
	Status string `json:"status" binding:"required,request_status"`
}

// bindJSON runs a payload through Gin's JSON binding, the same path the
// handlers use.
func bindJSON(t *testing.T, body string, out interface{}) error {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c.ShouldBindJSON(out)
}

func TestRegister(t *testing.T) {
	if err := Register(); err != nil {
		t.Fatalf("expected registration to succeed, got %v", err)
	}

	t.Run("registering twice is safe", func(t *testing.T) {
		if err := Register(); err != nil {
			t.Fatalf("expected re-registration to succeed, got %v", err)
		}
	})

	t.Run("iso_date accepts YYYY-MM-DD", func(t *testing.T) {
		var p datePayload
		if err := bindJSON(t, `{"date":"2024-03-01"}`, &p); err != nil {
			t.Errorf("expected valid date to bind, got %v", err)
		}
	})

	t.Run("iso_date rejects other formats", func(t *testing.T) {
		var p datePayload
		if err := bindJSON(t, `{"date":"01/03/2024"}`, &p); err == nil {
			t.Error("expected slash-formatted date to be rejected")
		}
	})

	t.Run("decision accepts approved and rejected only", func(t *testing.T) {
		for _, value := range []string{"approved", "rejected"} {
			var p decisionPayload
			if err := bindJSON(t, `{"decision":"`+value+`"}`, &p); err != nil {
				t.Errorf("expected %q to bind, got %v", value, err)
			}
		}
		var p decisionPayload
		if err := bindJSON(t, `{"decision":"maybe"}`, &p); err == nil {
			t.Error("expected unknown decision to be rejected")
		}
	})

	t.Run("request_status covers the full lifecycle", func(t *testing.T) {
		for _, value := range []string{"pending", "hr_pending", "approved", "rejected"} {
			var p statusPayload
			if err := bindJSON(t, `{"status":"`+value+`"}`, &p); err != nil {
				t.Errorf("expected %q to bind, got %v", value, err)
			}
		}
		var p statusPayload
		if err := bindJSON(t, `{"status":"cancelled"}`, &p); err == nil {
			t.Error("expected unknown status to be rejected")
		}
	})
}
