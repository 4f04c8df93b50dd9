package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ComplianceAudit struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	AuditType     string         `gorm:"size:100;not null" json:"audit_type"`
	Requirements  datatypes.JSON `json:"requirements"`
	Documentation datatypes.JSON `json:"documentation"`
	Status        string         `gorm:"size:50;not null" json:"status"`
	Reminders     datatypes.JSON `json:"reminders"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (ComplianceAudit) TableName() string {
	return "compliance_audits"
}

type CustomerShowcase struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Certifications datatypes.JSON `json:"certifications"`
	Branding       datatypes.JSON `json:"branding"`
	Testimonials   datatypes.JSON `json:"testimonials"`
	SeoElements    datatypes.JSON `json:"seo_elements"`
	Accessibility  datatypes.JSON `json:"accessibility"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (CustomerShowcase) TableName() string {
	return "customer_showcases"
}

type InfosecProgram struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Template       string         `gorm:"size:100;not null" json:"template"`
	Customization  datatypes.JSON `json:"customization"`
	VersionControl datatypes.JSON `json:"version_control"`
	Permissions    datatypes.JSON `json:"permissions"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (InfosecProgram) TableName() string {
	return "infosec_programs"
}

type RiskMonitor struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	RiskStatus string         `gorm:"size:50" json:"risk_status"`
	RiskTrends datatypes.JSON `json:"risk_trends"`
	Alerts     datatypes.JSON `json:"alerts"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (RiskMonitor) TableName() string {
	return "risk_monitors"
}
