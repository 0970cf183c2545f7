package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/models"
	"vacationly/internal/pagination"
	"vacationly/internal/workday"
)

// requestService implements the leave-request approval workflow.
//
// Lifecycle: requests are created in pending and moved to approved or
// rejected by a manager/admin decision. Re-deciding an already-decided
// request is permitted as a correction path; every decision is recorded
// in the decision log so the history survives the re-classification.
type requestService struct {
	db        *gorm.DB
	decisions *decisionLogService
}

// NewRequestService creates a new RequestServicer.
func NewRequestService(db *gorm.DB) RequestServicer {
	return &requestService{db: db, decisions: NewDecisionLogService(db)}
}

// Create submits a new leave request for the employee. The business-day
// count is computed at submission time against the current holiday
// calendar; a range with zero working days is rejected. On success the
// requester gets a confirmation notification and, when they have a
// manager, the manager gets an approval-needed notification.
func (s *requestService) Create(employeeID string, in CreateRequestInput) (*models.LeaveRequest, error) {
	var emp models.Employee
	if err := s.db.First(&emp, "id = ?", employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	holidays, err := holidaySet(s.db)
	if err != nil {
		return nil, err
	}

	days, err := workday.CountRange(in.StartDate, in.EndDate, holidays)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "dates must be formatted YYYY-MM-DD")
	}
	if days <= 0 {
		return nil, apperrors.ErrInvalidRange
	}

	typeName := models.FallbackLeaveTypeName
	var leaveType models.LeaveType
	if err := s.db.First(&leaveType, "id = ?", in.TypeID).Error; err == nil {
		typeName = leaveType.Name
	}

	request := &models.LeaveRequest{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		TypeID:       in.TypeID,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Reason:       in.Reason,
		Status:       models.StatusPending,
		Days:         days,
		SubmittedAt:  time.Now(),
		HRRequired:   in.HRRequired,
		Attachment:   in.Attachment,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(request).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		confirmation := &models.Notification{
			Title: "Request Dispatched",
			Message: fmt.Sprintf("Your %s request has been submitted and an email confirmation was sent to %s.",
				typeName, emp.Email),
			Type:             models.NotificationSuccess,
			TargetEmployeeID: &emp.ID,
			RelatedRequestID: &request.ID,
			IsEmail:          true,
		}
		if err := tx.Create(confirmation).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if emp.ManagerID != nil {
			var mgr models.Employee
			mgrEmail := ""
			if err := tx.First(&mgr, "id = ?", *emp.ManagerID).Error; err == nil {
				mgrEmail = mgr.Email
			}
			approvalNeeded := &models.Notification{
				Title: "Pending Approval Required",
				Message: fmt.Sprintf("%s requested %d days off. An email notification was sent to your inbox (%s).",
					emp.Name, days, mgrEmail),
				Type:             models.NotificationInfo,
				TargetEmployeeID: emp.ManagerID,
				RelatedRequestID: &request.ID,
				IsEmail:          true,
			}
			if err := tx.Create(approvalNeeded).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// GetByID retrieves a leave request.
func (s *requestService) GetByID(id string) (*models.LeaveRequest, error) {
	var request models.LeaveRequest
	if err := s.db.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &request, nil
}

// ListForEmployee returns the employee's own request history, newest first.
func (s *requestService) ListForEmployee(employeeID string, page pagination.PageRequest) (*pagination.PageResponse[models.LeaveRequest], error) {
	page.Defaults()

	base := s.db.Model(&models.LeaveRequest{}).Where("employee_id = ?", employeeID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var requests []models.LeaveRequest
	if err := base.Order("submitted_at DESC").Scopes(pagination.Paginate(page)).Find(&requests).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(requests, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ListAll returns requests across the organization with optional filters.
func (s *requestService) ListAll(filter RequestFilter, page pagination.PageRequest) (*pagination.PageResponse[models.LeaveRequest], error) {
	page.Defaults()

	base := s.db.Model(&models.LeaveRequest{})
	if filter.Year != nil {
		base = base.Where("start_date LIKE ?", fmt.Sprintf("%04d-%%", *filter.Year))
	}
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.EmployeeID != nil {
		base = base.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.TeamID != nil {
		base = base.Where("employee_id IN (?)",
			s.db.Model(&models.Employee{}).Select("id").Where("team_id = ?", *filter.TeamID))
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var requests []models.LeaveRequest
	if err := base.Order("submitted_at DESC").Scopes(pagination.Paginate(page)).Find(&requests).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(requests, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Decide records an approval or rejection. Admins may decide any
// request; otherwise the actor must be the requester's direct manager.
// A missing request id is a silent no-op: the record was evidently
// already removed. Deciding an already-decided request re-classifies
// it; the decision log keeps the history. Exactly one notification
// goes to the requester per decision.
func (s *requestService) Decide(requestID, actorID string, actorIsAdmin bool, outcome models.RequestStatus, note, ip string) error {
	if !outcome.IsDecided() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "outcome must be approved or rejected")
	}

	var request models.LeaveRequest
	if err := s.db.First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !actorIsAdmin {
		var requester models.Employee
		if err := s.db.First(&requester, "id = ?", request.EmployeeID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if requester.ManagerID == nil || *requester.ManagerID != actorID {
			return apperrors.ErrForbidden
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// The note column always reflects the latest decision; an empty
		// note clears any stale one. Earlier notes live in the log.
		updates := map[string]interface{}{"status": outcome, "decision_note": note}
		if err := tx.Model(&request).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		title := "Request Rejected"
		ntype := models.NotificationWarning
		if outcome == models.StatusApproved {
			title = "Request Approved"
			ntype = models.NotificationSuccess
		}

		var requester models.Employee
		requesterEmail := ""
		if err := tx.First(&requester, "id = ?", request.EmployeeID).Error; err == nil {
			requesterEmail = requester.Email
		}

		notification := &models.Notification{
			Title: title,
			Message: fmt.Sprintf("Manager decision finalized. Your request for %d days has been %s. An email update was sent to %s.",
				request.Days, outcome, requesterEmail),
			Type:             ntype,
			TargetEmployeeID: &request.EmployeeID,
			RelatedRequestID: &request.ID,
			IsEmail:          true,
		}
		if err := tx.Create(notification).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.decisions.Log(request.ID, actorID, string(outcome), note, ip)
	return nil
}

// Cancel removes the owner's own pending request. Cancelling anything
// past pending is rejected; a missing id is a silent no-op.
func (s *requestService) Cancel(requestID, ownerID string) error {
	var request models.LeaveRequest
	if err := s.db.First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if request.EmployeeID != ownerID {
		return apperrors.ErrForbidden
	}
	if request.Status != models.StatusPending {
		return apperrors.ErrRequestNotCancellable
	}

	if err := s.db.Unscoped().Delete(&request).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.decisions.Log(request.ID, ownerID, "cancelled", "", "")
	return nil
}

// AdminDelete removes a request in any status. A missing id is a no-op.
func (s *requestService) AdminDelete(requestID, actorID string) error {
	var request models.LeaveRequest
	if err := s.db.First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Unscoped().Delete(&request).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.decisions.Log(request.ID, actorID, "deleted", "", "")
	return nil
}

// Update applies an admin edit to a request. Date or type changes
// recompute the business-day count against the current calendar.
func (s *requestService) Update(requestID string, in UpdateRequestInput) (*models.LeaveRequest, error) {
	request, err := s.GetByID(requestID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	startDate := request.StartDate
	endDate := request.EndDate
	if in.StartDate != nil {
		startDate = *in.StartDate
		updates["start_date"] = startDate
	}
	if in.EndDate != nil {
		endDate = *in.EndDate
		updates["end_date"] = endDate
	}
	if in.TypeID != nil {
		updates["type_id"] = *in.TypeID
	}
	if in.Reason != nil {
		updates["reason"] = *in.Reason
	}

	if in.StartDate != nil || in.EndDate != nil {
		holidays, err := holidaySet(s.db)
		if err != nil {
			return nil, err
		}
		days, err := workday.CountRange(startDate, endDate, holidays)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "dates must be formatted YYYY-MM-DD")
		}
		if days <= 0 {
			return nil, apperrors.ErrInvalidRange
		}
		updates["days"] = days
	}

	if len(updates) > 0 {
		if err := s.db.Model(request).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return request, nil
}

// DecisionHistory returns the audit trail for a request, oldest first.
func (s *requestService) DecisionHistory(requestID string) ([]models.DecisionLog, error) {
	var entries []models.DecisionLog
	if err := s.db.Where("request_id = ?", requestID).Order("created_at").Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}
