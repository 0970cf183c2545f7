package services

import (
	"bytes"
	"encoding/csv"
	"strings"

	"gorm.io/gorm"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/models"
	"vacationly/internal/workday"
)

// maxCapacityDays caps the range a capacity view will expand, so an
// accidental multi-year query cannot materialize thousands of rows.
const maxCapacityDays = 120

// capacityService builds the team-availability views.
type capacityService struct {
	db *gorm.DB
}

// NewCapacityService creates a new CapacityServicer.
func NewCapacityService(db *gorm.DB) CapacityServicer {
	return &capacityService{db: db}
}

// Overview characterizes each day in [startDate, endDate] for capacity
// planning: weekend and holiday flags, plus who is away on approved
// leave with a short status label resolved from the leave type.
func (s *capacityService) Overview(startDate, endDate string) ([]DayCapacity, error) {
	start, err := workday.ParseDate(startDate)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start date must be formatted YYYY-MM-DD")
	}
	end, err := workday.ParseDate(endDate)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must be formatted YYYY-MM-DD")
	}
	if end.Before(start) {
		return []DayCapacity{}, nil
	}
	if capped := start.AddDate(0, 0, maxCapacityDays); end.After(capped) {
		end = capped
	}

	var holidays []models.PublicHoliday
	if err := s.db.Find(&holidays).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	holidayByDate := make(map[string]models.PublicHoliday, len(holidays))
	for _, h := range holidays {
		holidayByDate[h.Date] = h
	}

	var requests []models.LeaveRequest
	if err := s.db.
		Where("status = ? AND start_date <= ? AND end_date >= ?",
			models.StatusApproved, end.Format(workday.DateLayout), start.Format(workday.DateLayout)).
		Find(&requests).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var types []models.LeaveType
	if err := s.db.Find(&types).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	typesByID := make(map[string]models.LeaveType, len(types))
	for _, lt := range types {
		typesByID[lt.ID] = lt
	}

	var overview []DayCapacity
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		dateStr := cur.Format(workday.DateLayout)

		day := DayCapacity{
			Date:      dateStr,
			Weekday:   cur.Weekday().String(),
			IsWeekend: workday.IsWeekend(cur),
			Absences:  []Absence{},
		}
		if h, ok := holidayByDate[dateStr]; ok {
			holiday := h
			day.Holiday = &holiday
		}

		for _, r := range requests {
			if dateStr < r.StartDate || dateStr > r.EndDate {
				continue
			}
			day.Absences = append(day.Absences, absenceFor(r, typesByID))
		}
		day.Count = len(day.Absences)
		overview = append(overview, day)
	}
	return overview, nil
}

// absenceFor resolves the display label and icon for one absent
// employee, falling back gracefully when the leave type was deleted.
func absenceFor(r models.LeaveRequest, typesByID map[string]models.LeaveType) Absence {
	status := "Absent"
	icon := models.FallbackLeaveTypeIcon

	if lt, ok := typesByID[r.TypeID]; ok {
		name := strings.ToLower(lt.Name)
		switch {
		case strings.Contains(name, "home"):
			status = "WFH"
		case strings.Contains(name, "sick"):
			status = "Sick"
		}
		if lt.Icon != "" {
			icon = lt.Icon
		}
	}

	return Absence{
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Status:       status,
		Icon:         icon,
		Reason:       r.Reason,
	}
}

// ExportCSV renders the capacity matrix as CSV: one row per day, one
// column per employee, each cell Working/Weekend/Holiday or the absence
// status label.
func (s *capacityService) ExportCSV(startDate, endDate string) ([]byte, error) {
	overview, err := s.Overview(startDate, endDate)
	if err != nil {
		return nil, err
	}

	var employees []models.Employee
	if err := s.db.Order("name").Find(&employees).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Date", "Day", "Holiday"}
	for _, emp := range employees {
		header = append(header, emp.Name)
	}
	if err := w.Write(header); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, day := range overview {
		holidayName := ""
		if day.Holiday != nil {
			holidayName = day.Holiday.Name
		}

		row := []string{day.Date, day.Weekday, holidayName}
		for _, emp := range employees {
			cell := "Working"
			switch {
			case day.IsWeekend:
				cell = "Weekend"
			case day.Holiday != nil:
				cell = "Holiday (" + day.Holiday.Name + ")"
			default:
				for _, a := range day.Absences {
					if a.EmployeeID == emp.ID {
						cell = a.Status
						break
					}
				}
			}
			row = append(row, cell)
		}
		if err := w.Write(row); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return buf.Bytes(), nil
}
