package repository

import (
	"trustdesk/internal/models"

	"gorm.io/gorm"
)

type RiskAssessmentRepository struct {
	db *gorm.DB
}

func NewRiskAssessmentRepository(db *gorm.DB) *RiskAssessmentRepository {
	return &RiskAssessmentRepository{db: db}
}

func (r *RiskAssessmentRepository) Create(a *models.RiskAssessment) error {
	return r.db.Create(a).Error
}

func (r *RiskAssessmentRepository) ListByUserID(userID uint) ([]models.RiskAssessment, error) {
	var list []models.RiskAssessment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

type RiskMonitorRepository struct {
	db *gorm.DB
}

func NewRiskMonitorRepository(db *gorm.DB) *RiskMonitorRepository {
	return &RiskMonitorRepository{db: db}
}

func (r *RiskMonitorRepository) Create(m *models.RiskMonitor) error {
	return r.db.Create(m).Error
}

func (r *RiskMonitorRepository) ListByUserID(userID uint) ([]models.RiskMonitor, error) {
	var list []models.RiskMonitor
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}
