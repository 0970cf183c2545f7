package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/models"
)

// leaveTypeService handles absence-category logic.
type leaveTypeService struct {
	db *gorm.DB
}

// NewLeaveTypeService creates a new LeaveTypeServicer.
func NewLeaveTypeService(db *gorm.DB) LeaveTypeServicer {
	return &leaveTypeService{db: db}
}

func (s *leaveTypeService) Create(name, icon string, isDeductible bool, allowance *int) (*models.LeaveType, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "leave type name is required")
	}
	lt := &models.LeaveType{
		Name:         name,
		Icon:         icon,
		IsDeductible: isDeductible,
		Allowance:    allowance,
	}
	if err := s.db.Create(lt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return lt, nil
}

func (s *leaveTypeService) List() ([]models.LeaveType, error) {
	var types []models.LeaveType
	if err := s.db.Order("created_at").Find(&types).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return types, nil
}

func (s *leaveTypeService) GetByID(id string) (*models.LeaveType, error) {
	var lt models.LeaveType
	if err := s.db.First(&lt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLeaveTypeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &lt, nil
}

func (s *leaveTypeService) Update(id string, name, icon *string, isDeductible *bool, allowance *int) (*models.LeaveType, error) {
	lt, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil {
		updates["name"] = *name
	}
	if icon != nil {
		updates["icon"] = *icon
	}
	if isDeductible != nil {
		updates["is_deductible"] = *isDeductible
	}
	if allowance != nil {
		updates["allowance"] = *allowance
	}

	if len(updates) > 0 {
		if err := s.db.Model(lt).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return lt, nil
}

// Delete removes a leave type. Requests referencing it are left in place;
// readers resolve the dangling reference to the fallback label and treat
// it as non-deductible.
func (s *leaveTypeService) Delete(id string) error {
	lt, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(lt).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
