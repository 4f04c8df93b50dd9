package models

import (
	"time"

	"gorm.io/datatypes"
)

// RiskAssessment is immutable once created: severity and report are derived
// from impact and likelihood at creation time and never recomputed.
type RiskAssessment struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"not null;index" json:"user_id"`
	RiskData         datatypes.JSON `json:"risk_data"`
	AssessmentParams datatypes.JSON `json:"assessment_params"`
	Impact           float64        `gorm:"not null" json:"impact"`
	Likelihood       float64        `gorm:"not null" json:"likelihood"`
	Severity         string         `gorm:"size:10;not null" json:"severity"` // High | Low
	Report           string         `gorm:"type:text" json:"report"`
	CreatedAt        time.Time      `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (RiskAssessment) TableName() string {
	return "risk_assessments"
}
