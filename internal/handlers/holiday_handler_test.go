package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/models"
	"vacationly/internal/services"
)

type mockHolidayService struct {
	createFn func(date, name string, isDeductible bool) (*models.PublicHoliday, error)
	listFn   func(year *int) ([]models.PublicHoliday, error)
	updateFn func(id string, date, name *string, isDeductible *bool) (*models.PublicHoliday, error)
	deleteFn func(id string) error
	mergeFn  func(candidates []services.HolidayCandidate, applyUpdates bool) (*services.MergeResult, error)
}

func (m *mockHolidayService) Create(date, name string, isDeductible bool) (*models.PublicHoliday, error) {
	if m.createFn != nil {
		return m.createFn(date, name, isDeductible)
	}
	return &models.PublicHoliday{Date: date, Name: name}, nil
}

func (m *mockHolidayService) List(year *int) ([]models.PublicHoliday, error) {
	if m.listFn != nil {
		return m.listFn(year)
	}
	return []models.PublicHoliday{}, nil
}

func (m *mockHolidayService) Update(id string, date, name *string, isDeductible *bool) (*models.PublicHoliday, error) {
	if m.updateFn != nil {
		return m.updateFn(id, date, name, isDeductible)
	}
	return &models.PublicHoliday{Base: models.Base{ID: id}}, nil
}

func (m *mockHolidayService) Delete(id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func (m *mockHolidayService) Merge(candidates []services.HolidayCandidate, applyUpdates bool) (*services.MergeResult, error) {
	if m.mergeFn != nil {
		return m.mergeFn(candidates, applyUpdates)
	}
	return &services.MergeResult{}, nil
}

type mockAdvisorService struct {
	adviseFn         func(query string, stats models.UserStats, requests []models.LeaveRequest, leaveTypes []models.LeaveType) string
	lookupHolidaysFn func(year int) ([]services.HolidayCandidate, error)
}

func (m *mockAdvisorService) Advise(query string, stats models.UserStats, requests []models.LeaveRequest, leaveTypes []models.LeaveType) string {
	if m.adviseFn != nil {
		return m.adviseFn(query, stats, requests, leaveTypes)
	}
	return "ok"
}

func (m *mockAdvisorService) LookupHolidays(year int) ([]services.HolidayCandidate, error) {
	if m.lookupHolidaysFn != nil {
		return m.lookupHolidaysFn(year)
	}
	return []services.HolidayCandidate{}, nil
}

func setupHolidayRouter(handler *HolidayHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectIdentity("admin-1", true))
	auth.POST("/holidays", handler.CreateHoliday)
	auth.GET("/holidays", handler.ListHolidays)
	auth.PUT("/holidays/:id", handler.UpdateHoliday)
	auth.DELETE("/holidays/:id", handler.DeleteHoliday)
	auth.POST("/holidays/sync", handler.SyncHolidays)
	return r
}

func TestHolidayHandler_CreateHoliday(t *testing.T) {
	t.Run("returns 201 and marks the vault dirty", func(t *testing.T) {
		vault := &mockVaultService{}
		handler := NewHolidayHandler(&mockHolidayService{}, &mockAdvisorService{}, vault)
		r := setupHolidayRouter(handler)

		rec := doRequest(r, "POST", "/holidays", `{"date":"2024-05-01","name":"Labour Day"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if vault.dirtyCalled != 1 {
			t.Errorf("expected 1 vault dirty mark, got %d", vault.dirtyCalled)
		}
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		handler := NewHolidayHandler(&mockHolidayService{}, &mockAdvisorService{}, &mockVaultService{})
		r := setupHolidayRouter(handler)

		rec := doRequest(r, "POST", "/holidays", `{"date":"May 1st","name":"Labour Day"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestHolidayHandler_ListHolidays(t *testing.T) {
	t.Run("passes the year filter through", func(t *testing.T) {
		var gotYear *int
		holidaySvc := &mockHolidayService{
			listFn: func(year *int) ([]models.PublicHoliday, error) {
				gotYear = year
				return []models.PublicHoliday{{Date: "2024-05-01", Name: "Labour Day"}}, nil
			},
		}
		handler := NewHolidayHandler(holidaySvc, &mockAdvisorService{}, &mockVaultService{})
		r := setupHolidayRouter(handler)

		rec := doRequest(r, "GET", "/holidays?year=2024", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotYear == nil || *gotYear != 2024 {
			t.Errorf("year filter not passed: %v", gotYear)
		}
	})

	t.Run("returns 400 on a non-numeric year", func(t *testing.T) {
		handler := NewHolidayHandler(&mockHolidayService{}, &mockAdvisorService{}, &mockVaultService{})
		r := setupHolidayRouter(handler)

		rec := doRequest(r, "GET", "/holidays?year=this-one", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestHolidayHandler_SyncHolidays(t *testing.T) {
	t.Run("looks up and merges the requested year", func(t *testing.T) {
		var gotYear int
		var gotApply bool
		var gotCandidates []services.HolidayCandidate
		advisor := &mockAdvisorService{
			lookupHolidaysFn: func(year int) ([]services.HolidayCandidate, error) {
				gotYear = year
				return []services.HolidayCandidate{{Name: "Eid al-Fitr", Date: "2024-04-10"}}, nil
			},
		}
		holidaySvc := &mockHolidayService{
			mergeFn: func(candidates []services.HolidayCandidate, applyUpdates bool) (*services.MergeResult, error) {
				gotCandidates, gotApply = candidates, applyUpdates
				return &services.MergeResult{Added: 1, Conflicts: []services.HolidayCandidate{}}, nil
			},
		}
		vault := &mockVaultService{}
		handler := NewHolidayHandler(holidaySvc, advisor, vault)
		r := setupHolidayRouter(handler)

		rec := doRequest(r, "POST", "/holidays/sync", `{"year":2024,"apply_updates":true}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotYear != 2024 || !gotApply {
			t.Errorf("unexpected sync args: year=%d apply=%v", gotYear, gotApply)
		}
		if len(gotCandidates) != 1 || gotCandidates[0].Name != "Eid al-Fitr" {
			t.Errorf("candidates not forwarded to merge: %+v", gotCandidates)
		}
		result := parseJSON(t, rec)["result"].(map[string]interface{})
		if result["added"] != float64(1) {
			t.Errorf("unexpected merge summary: %v", result)
		}
		if vault.dirtyCalled != 1 {
			t.Errorf("expected 1 vault dirty mark, got %d", vault.dirtyCalled)
		}
	})

	t.Run("defaults to the current year", func(t *testing.T) {
		var gotYear int
		advisor := &mockAdvisorService{
			lookupHolidaysFn: func(year int) ([]services.HolidayCandidate, error) {
				gotYear = year
				return []services.HolidayCandidate{}, nil
			},
		}
		handler := NewHolidayHandler(&mockHolidayService{}, advisor, &mockVaultService{})
		r := setupHolidayRouter(handler)

		rec := doRequest(r, "POST", "/holidays/sync", `{}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotYear != time.Now().Year() {
			t.Errorf("expected current year, got %d", gotYear)
		}
	})

	t.Run("returns 502 when the lookup is unavailable", func(t *testing.T) {
		advisor := &mockAdvisorService{
			lookupHolidaysFn: func(int) ([]services.HolidayCandidate, error) {
				return nil, apperrors.ErrAdvisorUnavailable
			},
		}
		vault := &mockVaultService{}
		handler := NewHolidayHandler(&mockHolidayService{}, advisor, vault)
		r := setupHolidayRouter(handler)

		rec := doRequest(r, "POST", "/holidays/sync", `{"year":2024}`)

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ADVISOR_UNAVAILABLE")
		if vault.dirtyCalled != 0 {
			t.Error("failed sync must not mark the vault dirty")
		}
	})
}
