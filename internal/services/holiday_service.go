package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/models"
	"vacationly/internal/workday"
)

// holidayService handles the public-holiday calendar.
type holidayService struct {
	db *gorm.DB
}

// NewHolidayService creates a new HolidayServicer.
func NewHolidayService(db *gorm.DB) HolidayServicer {
	return &holidayService{db: db}
}

func (s *holidayService) Create(date, name string, isDeductible bool) (*models.PublicHoliday, error) {
	if _, err := workday.ParseDate(date); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be formatted YYYY-MM-DD")
	}
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "holiday name is required")
	}

	holiday := &models.PublicHoliday{Date: date, Name: name, IsDeductible: isDeductible}
	if err := s.db.Create(holiday).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holiday, nil
}

// List returns holidays ordered by date, optionally restricted to a year.
func (s *holidayService) List(year *int) ([]models.PublicHoliday, error) {
	query := s.db.Model(&models.PublicHoliday{})
	if year != nil {
		query = query.Where("date LIKE ?", fmt.Sprintf("%04d-%%", *year))
	}

	var holidays []models.PublicHoliday
	if err := query.Order("date").Find(&holidays).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holidays, nil
}

func (s *holidayService) Update(id string, date, name *string, isDeductible *bool) (*models.PublicHoliday, error) {
	var holiday models.PublicHoliday
	if err := s.db.First(&holiday, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHolidayNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if date != nil {
		if _, err := workday.ParseDate(*date); err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be formatted YYYY-MM-DD")
		}
		updates["date"] = *date
	}
	if name != nil {
		updates["name"] = *name
	}
	if isDeductible != nil {
		updates["is_deductible"] = *isDeductible
	}

	if len(updates) > 0 {
		if err := s.db.Model(&holiday).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &holiday, nil
}

func (s *holidayService) Delete(id string) error {
	var holiday models.PublicHoliday
	if err := s.db.First(&holiday, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrHolidayNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Delete(&holiday).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Merge folds externally-looked-up holidays into the calendar. A candidate
// matching an existing holiday by exact (name, date) is never inserted as a
// duplicate: it is applied as an update preserving the existing identifier
// when applyUpdates is set, and skipped otherwise. Non-matching candidates
// are inserted. Matches are reported as conflicts either way so the caller
// can tell the operator what happened.
func (s *holidayService) Merge(candidates []HolidayCandidate, applyUpdates bool) (*MergeResult, error) {
	result := &MergeResult{Conflicts: []HolidayCandidate{}}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, c := range candidates {
			if _, err := workday.ParseDate(c.Date); err != nil {
				return apperrors.WithMessage(apperrors.ErrInvalidInput,
					fmt.Sprintf("holiday %q has a malformed date %q", c.Name, c.Date))
			}

			var existing models.PublicHoliday
			err := tx.Where("name = ? AND date = ?", c.Name, c.Date).First(&existing).Error
			switch {
			case err == nil:
				result.Conflicts = append(result.Conflicts, c)
				if !applyUpdates {
					result.Skipped++
					continue
				}
				if err := tx.Model(&existing).Updates(map[string]interface{}{
					"name": c.Name,
					"date": c.Date,
				}).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
				result.Updated++
			case errors.Is(err, gorm.ErrRecordNotFound):
				holiday := models.PublicHoliday{Date: c.Date, Name: c.Name}
				if err := tx.Create(&holiday).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
				result.Added++
			default:
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// holidaySet loads all holiday dates as a workday lookup set.
func holidaySet(db *gorm.DB) (workday.HolidaySet, error) {
	var dates []string
	if err := db.Model(&models.PublicHoliday{}).Pluck("date", &dates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return workday.NewHolidaySet(dates...), nil
}
