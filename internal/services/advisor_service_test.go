package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vacationly/internal/models"
	"vacationly/internal/testutil"
)

// newTestAdvisor points an advisor at a stub Gemini endpoint.
func newTestAdvisor(t *testing.T, handler http.HandlerFunc) (*advisorService, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewAdvisorService("test-key", "chat-model", "holiday-model").(*advisorService)
	svc.baseURL = server.URL
	svc.client = server.Client()
	return svc, server
}

func geminiReply(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	resp := geminiResponse{}
	resp.Candidates = append(resp.Candidates, struct {
		Content geminiContent `json:"content"`
	}{Content: geminiContent{Parts: []geminiPart{{Text: text}}}})
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Errorf("failed to encode stub reply: %v", err)
	}
}

func TestAdvise(t *testing.T) {
	t.Run("returns_model_reply", func(t *testing.T) {
		var gotPath string
		var gotPrompt string
		svc, _ := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			var req geminiRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err == nil && len(req.Contents) > 0 {
				gotPrompt = req.Contents[0].Parts[0].Text
			}
			geminiReply(t, w, "Take Sunday off for a long weekend.")
		})

		stats := models.UserStats{Total: 30, Used: 5, Pending: 2}
		types := []models.LeaveType{{Name: "Annual Leaves", Icon: "🏖️", IsDeductible: true}}

		reply := svc.Advise("When should I take leave?", stats, nil, types)
		if reply != "Take Sunday off for a long weekend." {
			t.Errorf("unexpected reply: %q", reply)
		}
		if gotPath != "/models/chat-model:generateContent" {
			t.Errorf("unexpected endpoint: %s", gotPath)
		}
		if !strings.Contains(gotPrompt, "Total Vacation Allowance: 30 days") {
			t.Error("prompt missing allowance context")
		}
		if !strings.Contains(gotPrompt, "Annual Leaves (🏖️): Deducts from annual allowance") {
			t.Error("prompt missing leave-type context")
		}
		if !strings.Contains(gotPrompt, "When should I take leave?") {
			t.Error("prompt missing the user query")
		}
	})

	t.Run("upstream_failure_degrades_to_canned_reply", func(t *testing.T) {
		svc, _ := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		})

		reply := svc.Advise("hello", models.UserStats{}, nil, nil)
		if reply != "Error: Unable to connect to the AI assistant. Please check your API key." {
			t.Errorf("unexpected failure reply: %q", reply)
		}
	})

	t.Run("empty_candidate_degrades_to_fallback", func(t *testing.T) {
		svc, _ := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewEncoder(w).Encode(geminiResponse{}); err != nil {
				t.Errorf("failed to encode stub reply: %v", err)
			}
		})

		reply := svc.Advise("hello", models.UserStats{}, nil, nil)
		if reply != "I'm sorry, I couldn't process that request." {
			t.Errorf("unexpected fallback reply: %q", reply)
		}
	})
}

func TestLookupHolidays(t *testing.T) {
	t.Run("parses_structured_reply", func(t *testing.T) {
		var gotPath string
		var gotConfig *geminiGenerationConfig
		svc, _ := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			var req geminiRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
				gotConfig = req.GenerationConfig
			}
			geminiReply(t, w, `[{"name":"Eid al-Fitr","date":"2024-04-10"},{"name":"Labour Day","date":"2024-05-01"}]`)
		})

		candidates, err := svc.LookupHolidays(2024)
		testutil.AssertNoError(t, err)

		if len(candidates) != 2 {
			t.Fatalf("expected 2 candidates, got %d", len(candidates))
		}
		if candidates[0].Name != "Eid al-Fitr" || candidates[0].Date != "2024-04-10" {
			t.Errorf("unexpected first candidate: %+v", candidates[0])
		}
		if gotPath != "/models/holiday-model:generateContent" {
			t.Errorf("unexpected endpoint: %s", gotPath)
		}
		if gotConfig == nil || gotConfig.ResponseMimeType != "application/json" {
			t.Error("expected a JSON response schema on the lookup call")
		}
	})

	t.Run("upstream_failure_is_an_error", func(t *testing.T) {
		svc, _ := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		_, err := svc.LookupHolidays(2024)
		testutil.AssertAppError(t, err, "ADVISOR_UNAVAILABLE")
	})

	t.Run("malformed_payload_is_an_error", func(t *testing.T) {
		svc, _ := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
			geminiReply(t, w, "not json at all")
		})

		_, err := svc.LookupHolidays(2024)
		testutil.AssertAppError(t, err, "ADVISOR_UNAVAILABLE")
	})

	t.Run("empty_candidate_yields_empty_list", func(t *testing.T) {
		svc, _ := newTestAdvisor(t, func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewEncoder(w).Encode(geminiResponse{}); err != nil {
				t.Errorf("failed to encode stub reply: %v", err)
			}
		})

		candidates, err := svc.LookupHolidays(2024)
		testutil.AssertNoError(t, err)
		if len(candidates) != 0 {
			t.Errorf("expected empty list, got %d", len(candidates))
		}
	})
}
