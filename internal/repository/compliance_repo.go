package repository

import (
	"trustdesk/internal/models"

	"gorm.io/gorm"
)

type ComplianceAuditRepository struct {
	db *gorm.DB
}

func NewComplianceAuditRepository(db *gorm.DB) *ComplianceAuditRepository {
	return &ComplianceAuditRepository{db: db}
}

func (r *ComplianceAuditRepository) Create(a *models.ComplianceAudit) error {
	return r.db.Create(a).Error
}

func (r *ComplianceAuditRepository) ListByUserID(userID uint) ([]models.ComplianceAudit, error) {
	var list []models.ComplianceAudit
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

type CustomerShowcaseRepository struct {
	db *gorm.DB
}

func NewCustomerShowcaseRepository(db *gorm.DB) *CustomerShowcaseRepository {
	return &CustomerShowcaseRepository{db: db}
}

func (r *CustomerShowcaseRepository) Create(s *models.CustomerShowcase) error {
	return r.db.Create(s).Error
}

func (r *CustomerShowcaseRepository) ListByUserID(userID uint) ([]models.CustomerShowcase, error) {
	var list []models.CustomerShowcase
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

type InfosecProgramRepository struct {
	db *gorm.DB
}

func NewInfosecProgramRepository(db *gorm.DB) *InfosecProgramRepository {
	return &InfosecProgramRepository{db: db}
}

func (r *InfosecProgramRepository) Create(p *models.InfosecProgram) error {
	return r.db.Create(p).Error
}

func (r *InfosecProgramRepository) ListByUserID(userID uint) ([]models.InfosecProgram, error) {
	var list []models.InfosecProgram
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}
