package services

import (
	"testing"

	"vacationly/internal/models"
	"vacationly/internal/pagination"
	"vacationly/internal/testutil"
)

func TestComputeStats(t *testing.T) {
	deductible := models.LeaveType{Base: models.Base{ID: "annual"}, Name: "Annual Leaves", IsDeductible: true}
	gifted := models.LeaveType{Base: models.Base{ID: "wfh"}, Name: "Work From Home", IsDeductible: false}
	types := map[string]models.LeaveType{"annual": deductible, "wfh": gifted}

	t.Run("empty_history", func(t *testing.T) {
		stats := ComputeStats(30, nil, types)
		if stats.Total != 30 || stats.Used != 0 || stats.Pending != 0 {
			t.Errorf("expected {30 0 0}, got %+v", stats)
		}
	})

	t.Run("approved_and_pending_buckets", func(t *testing.T) {
		requests := []models.LeaveRequest{
			{TypeID: "annual", Status: models.StatusApproved, Days: 5},
			{TypeID: "annual", Status: models.StatusPending, Days: 2},
			{TypeID: "annual", Status: models.StatusHRPending, Days: 1},
			{TypeID: "annual", Status: models.StatusRejected, Days: 4},
		}
		stats := ComputeStats(30, requests, types)
		if stats.Used != 5 {
			t.Errorf("expected 5 used days, got %d", stats.Used)
		}
		if stats.Pending != 3 {
			t.Errorf("expected 3 pending days, got %d", stats.Pending)
		}
	})

	t.Run("non_deductible_never_counts", func(t *testing.T) {
		requests := []models.LeaveRequest{
			{TypeID: "wfh", Status: models.StatusApproved, Days: 10},
			{TypeID: "wfh", Status: models.StatusPending, Days: 3},
		}
		stats := ComputeStats(30, requests, types)
		if stats.Used != 0 || stats.Pending != 0 {
			t.Errorf("expected non-deductible requests to be ignored, got %+v", stats)
		}
	})

	t.Run("deleted_type_treated_as_non_deductible", func(t *testing.T) {
		requests := []models.LeaveRequest{
			{TypeID: "gone", Status: models.StatusApproved, Days: 7},
		}
		stats := ComputeStats(30, requests, types)
		if stats.Used != 0 {
			t.Errorf("expected dangling type to not deduct, got %d used", stats.Used)
		}
	})
}

func TestStatsFor(t *testing.T) {
	t.Run("combined_scenario", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBalanceService(db)

		emp := testutil.CreateTestEmployee(t, db)
		annual := testutil.CreateTestLeaveType(t, db, "Annual Leaves", true)

		testutil.CreateTestRequest(t, db, emp, annual.ID, models.StatusApproved, 5)
		testutil.CreateTestRequest(t, db, emp, annual.ID, models.StatusPending, 3)

		stats, err := svc.StatsFor(emp.ID)
		testutil.AssertNoError(t, err)

		if stats.Total != 30 || stats.Used != 5 || stats.Pending != 3 {
			t.Errorf("expected {30 5 3}, got %+v", *stats)
		}
	})

	t.Run("ignores_other_employees", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBalanceService(db)

		emp := testutil.CreateTestEmployee(t, db)
		other := testutil.CreateTestEmployee(t, db)
		annual := testutil.CreateTestLeaveType(t, db, "Annual Leaves", true)
		testutil.CreateTestRequest(t, db, other, annual.ID, models.StatusApproved, 9)

		stats, err := svc.StatsFor(emp.ID)
		testutil.AssertNoError(t, err)
		if stats.Used != 0 {
			t.Errorf("expected 0 used for uninvolved employee, got %d", stats.Used)
		}
	})

	t.Run("unknown_employee", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBalanceService(db)

		_, err := svc.StatsFor("does-not-exist")
		testutil.AssertAppError(t, err, "EMPLOYEE_NOT_FOUND")
	})
}

func TestBalanceHistory(t *testing.T) {
	t.Run("own_plus_org_wide", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBalanceService(db)

		emp := testutil.CreateTestEmployee(t, db)
		other := testutil.CreateTestEmployee(t, db)

		_, err := svc.AddChange(nil, "2024-01-01", "2024 Annual Accrual", models.BalanceAccrual, 30)
		testutil.AssertNoError(t, err)
		_, err = svc.AddChange(&emp.ID, "2024-06-01", "Overtime compensation", models.BalanceAdjustment, 2)
		testutil.AssertNoError(t, err)
		_, err = svc.AddChange(&other.ID, "2024-06-02", "Unpaid leave", models.BalanceDeduction, -1)
		testutil.AssertNoError(t, err)

		result, err := svc.History(emp.ID, pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Fatalf("expected 2 visible entries, got %d", result.TotalItems)
		}
		// Newest date first.
		if result.Data[0].Description != "Overtime compensation" {
			t.Errorf("expected newest entry first, got %q", result.Data[0].Description)
		}
	})

	t.Run("rejects_malformed_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBalanceService(db)

		_, err := svc.AddChange(nil, "06/01/2024", "Accrual", models.BalanceAccrual, 30)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_empty_description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBalanceService(db)

		_, err := svc.AddChange(nil, "2024-06-01", "", models.BalanceAccrual, 30)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
