package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"trustdesk/internal/domain"
	"trustdesk/internal/middleware"
	"trustdesk/internal/models"
	"trustdesk/internal/repository"
	"trustdesk/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type RiskHandler struct {
	scorer      *service.RiskScorer
	riskRepo    *repository.RiskAssessmentRepository
	monitorRepo *repository.RiskMonitorRepository
	userRepo    *repository.UserRepository
}

func NewRiskHandler(scorer *service.RiskScorer, riskRepo *repository.RiskAssessmentRepository, monitorRepo *repository.RiskMonitorRepository, userRepo *repository.UserRepository) *RiskHandler {
	return &RiskHandler{scorer: scorer, riskRepo: riskRepo, monitorRepo: monitorRepo, userRepo: userRepo}
}

// CreateAssessment runs three authorization gates in a fixed order, each with
// its own failure message, before any lookup: missing session, then identity
// mismatch, then role. The user lookup after the gates is redundant with the
// identity gate but kept so an absent target still answers 404 for an
// authorized caller.
func (h *RiskHandler) CreateAssessment(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": domain.ErrNoSession.Error()})
		return
	}
	if claims.UserID != uint(targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": domain.ErrIdentityMismatch.Error()})
		return
	}
	if claims.Role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": domain.ErrRoleDenied.Error()})
		return
	}

	user, err := h.userRepo.GetByID(uint(targetID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var req struct {
		RiskData         json.RawMessage `json:"riskData"`
		AssessmentParams json.RawMessage `json:"assessmentParams"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	score := h.scorer.Score()
	assessment := &models.RiskAssessment{
		UserID:           uint(targetID),
		RiskData:         datatypes.JSON(req.RiskData),
		AssessmentParams: datatypes.JSON(req.AssessmentParams),
		Impact:           score.Impact,
		Likelihood:       score.Likelihood,
		Severity:         score.Severity,
		Report:           score.Report,
	}
	if err := h.riskRepo.Create(assessment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create risk assessment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":               assessment.ID,
		"riskData":         assessment.RiskData,
		"assessmentParams": assessment.AssessmentParams,
		"impact":           assessment.Impact,
		"likelihood":       assessment.Likelihood,
		"severity":         assessment.Severity,
		"report":           assessment.Report,
		"createdAt":        assessment.CreatedAt,
	})
}

// ListMonitors is read-only: monitor rows are produced by backoffice tooling,
// never through this API.
func (h *RiskHandler) ListMonitors(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	monitors, err := h.monitorRepo.ListByUserID(uint(targetID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list risk monitors"})
		return
	}
	c.JSON(http.StatusOK, monitors)
}
