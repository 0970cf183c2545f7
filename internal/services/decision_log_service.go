package services

import (
	"gorm.io/gorm"

	"vacationly/internal/logger"
	"vacationly/internal/models"
)

// decisionLogService records the approval-workflow audit trail.
type decisionLogService struct {
	db *gorm.DB
}

// NewDecisionLogService creates a decision-log recorder.
func NewDecisionLogService(db *gorm.DB) *decisionLogService {
	return &decisionLogService{db: db}
}

// Log records a workflow action. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *decisionLogService) Log(requestID, actorID, action, note, ip string) {
	entry := &models.DecisionLog{
		RequestID: requestID,
		ActorID:   actorID,
		Action:    action,
		Note:      note,
		IPAddress: ip,
	}
	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to record decision log entry",
			"error", err,
			"request_id", requestID,
			"actor_id", actorID,
			"action", action,
		)
	}
}
