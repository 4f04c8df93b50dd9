package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"trustdesk/internal/middleware"
	"trustdesk/internal/models"
	"trustdesk/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// ComplianceHandler serves the pass-through record surface: a few required
// fields are checked, everything else is stored as delivered.
type ComplianceHandler struct {
	auditRepo    *repository.ComplianceAuditRepository
	showcaseRepo *repository.CustomerShowcaseRepository
	programRepo  *repository.InfosecProgramRepository
	userRepo     *repository.UserRepository
	auditLogRepo *repository.AuditLogRepository
}

func NewComplianceHandler(auditRepo *repository.ComplianceAuditRepository, showcaseRepo *repository.CustomerShowcaseRepository, programRepo *repository.InfosecProgramRepository, userRepo *repository.UserRepository, auditLogRepo *repository.AuditLogRepository) *ComplianceHandler {
	return &ComplianceHandler{
		auditRepo:    auditRepo,
		showcaseRepo: showcaseRepo,
		programRepo:  programRepo,
		userRepo:     userRepo,
		auditLogRepo: auditLogRepo,
	}
}

func pathUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return uint(id), true
}

func (h *ComplianceHandler) logCreate(c *gin.Context, resource string, resourceID uint) {
	if h.auditLogRepo == nil {
		return
	}
	userID := middleware.GetUserID(c)
	_ = h.auditLogRepo.Create(&models.AuditLog{
		UserID:     &userID,
		Action:     resource + "_create",
		Resource:   resource,
		ResourceID: strconv.FormatUint(uint64(resourceID), 10),
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
}

func (h *ComplianceHandler) CreateAudit(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	var req struct {
		AuditType     string          `json:"auditType"`
		Requirements  json.RawMessage `json:"requirements"`
		Documentation json.RawMessage `json:"documentation"`
		Status        string          `json:"status"`
		Reminders     json.RawMessage `json:"reminders"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.AuditType == "" || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}
	audit := &models.ComplianceAudit{
		UserID:        userID,
		AuditType:     req.AuditType,
		Requirements:  datatypes.JSON(req.Requirements),
		Documentation: datatypes.JSON(req.Documentation),
		Status:        req.Status,
		Reminders:     datatypes.JSON(req.Reminders),
	}
	if err := h.auditRepo.Create(audit); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create compliance audit"})
		return
	}
	h.logCreate(c, "compliance_audit", audit.ID)
	c.JSON(http.StatusCreated, audit)
}

func (h *ComplianceHandler) ListAudits(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	audits, err := h.auditRepo.ListByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list compliance audits"})
		return
	}
	c.JSON(http.StatusOK, audits)
}

// CreateShowcase has no required content fields, but the target user must
// exist before anything is stored.
func (h *ComplianceHandler) CreateShowcase(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	var req struct {
		Certifications json.RawMessage `json:"certifications"`
		Branding       json.RawMessage `json:"branding"`
		Testimonials   json.RawMessage `json:"testimonials"`
		SeoElements    json.RawMessage `json:"seoElements"`
		Accessibility  json.RawMessage `json:"accessibility"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	showcase := &models.CustomerShowcase{
		UserID:         userID,
		Certifications: datatypes.JSON(req.Certifications),
		Branding:       datatypes.JSON(req.Branding),
		Testimonials:   datatypes.JSON(req.Testimonials),
		SeoElements:    datatypes.JSON(req.SeoElements),
		Accessibility:  datatypes.JSON(req.Accessibility),
	}
	if err := h.showcaseRepo.Create(showcase); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create customer showcase"})
		return
	}
	h.logCreate(c, "customer_showcase", showcase.ID)
	c.JSON(http.StatusCreated, showcase)
}

func (h *ComplianceHandler) ListShowcases(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	showcases, err := h.showcaseRepo.ListByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list customer showcases"})
		return
	}
	c.JSON(http.StatusOK, showcases)
}

func (h *ComplianceHandler) CreateProgram(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	var req struct {
		Template       string          `json:"template"`
		Customization  json.RawMessage `json:"customization"`
		VersionControl json.RawMessage `json:"versionControl"`
		Permissions    json.RawMessage `json:"permissions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Template == "" || len(req.Customization) == 0 || len(req.VersionControl) == 0 || len(req.Permissions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}
	program := &models.InfosecProgram{
		UserID:         userID,
		Template:       req.Template,
		Customization:  datatypes.JSON(req.Customization),
		VersionControl: datatypes.JSON(req.VersionControl),
		Permissions:    datatypes.JSON(req.Permissions),
	}
	if err := h.programRepo.Create(program); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create infosec program"})
		return
	}
	h.logCreate(c, "infosec_program", program.ID)
	c.JSON(http.StatusCreated, program)
}

func (h *ComplianceHandler) ListPrograms(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}
	programs, err := h.programRepo.ListByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list infosec programs"})
		return
	}
	c.JSON(http.StatusOK, programs)
}
