package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/models"
)

// teamService handles team grouping logic.
type teamService struct {
	db *gorm.DB
}

// NewTeamService creates a new TeamServicer.
func NewTeamService(db *gorm.DB) TeamServicer {
	return &teamService{db: db}
}

func (s *teamService) Create(name string) (*models.Team, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "team name is required")
	}
	team := &models.Team{Name: name}
	if err := s.db.Create(team).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return team, nil
}

func (s *teamService) List() ([]models.Team, error) {
	var teams []models.Team
	if err := s.db.Order("name").Find(&teams).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return teams, nil
}

func (s *teamService) Update(id, name string) (*models.Team, error) {
	var team models.Team
	if err := s.db.First(&team, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&team).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &team, nil
}

// Delete removes a team and detaches its members.
func (s *teamService) Delete(id string) error {
	var team models.Team
	if err := s.db.First(&team, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTeamNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Employee{}).
			Where("team_id = ?", team.ID).
			Update("team_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&team).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
