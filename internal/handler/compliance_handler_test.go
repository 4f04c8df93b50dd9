package handler_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"trustdesk/internal/domain"
	"trustdesk/internal/handler"
	"trustdesk/internal/middleware"
	"trustdesk/internal/models"
	"trustdesk/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupComplianceRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ComplianceAudit{},
		&models.CustomerShowcase{},
		&models.InfosecProgram{},
		&models.AuditLog{},
	))

	h := handler.NewComplianceHandler(
		repository.NewComplianceAuditRepository(db),
		repository.NewCustomerShowcaseRepository(db),
		repository.NewInfosecProgramRepository(db),
		repository.NewUserRepository(db),
		repository.NewAuditLogRepository(db),
	)
	r := gin.New()
	authMw := middleware.AuthRequired(&jwtCfg)
	users := r.Group("/api/v1/users/:userId")
	users.POST("/compliance-audits", authMw, h.CreateAudit)
	users.GET("/compliance-audits", authMw, h.ListAudits)
	users.POST("/customer-showcases", authMw, h.CreateShowcase)
	users.POST("/infosec-programs", authMw, h.CreateProgram)
	return r, db
}

func postJSON(r *gin.Engine, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAuditRequiresTypeAndStatus(t *testing.T) {
	r, _ := setupComplianceRouter(t)
	tok := token(t, 1, domain.RoleUser)

	for _, body := range []string{
		`{"status":"open"}`,
		`{"auditType":"soc2"}`,
		`{}`,
	} {
		w := postJSON(r, "/api/v1/users/1/compliance-audits", body, tok)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestCreateAuditStoresRecord(t *testing.T) {
	r, db := setupComplianceRouter(t)
	tok := token(t, 1, domain.RoleUser)

	body := `{"auditType":"soc2","status":"open","requirements":{"controls":12},"reminders":["q1"]}`
	w := postJSON(r, "/api/v1/users/1/compliance-audits", body, tok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var stored models.ComplianceAudit
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, uint(1), stored.UserID)
	assert.Equal(t, "soc2", stored.AuditType)
	assert.JSONEq(t, `{"controls":12}`, string(stored.Requirements))

	var logged models.AuditLog
	require.NoError(t, db.First(&logged).Error)
	assert.Equal(t, "compliance_audit_create", logged.Action)
}

func TestCreateShowcaseUnknownUserIs404(t *testing.T) {
	r, _ := setupComplianceRouter(t)
	tok := token(t, 1, domain.RoleUser)

	w := postJSON(r, "/api/v1/users/42/customer-showcases", `{"branding":{"logo":"x"}}`, tok)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateShowcaseForExistingUser(t *testing.T) {
	r, db := setupComplianceRouter(t)
	require.NoError(t, db.Create(&models.User{Email: "s@b.test", Name: "s", PasswordHash: "x", Role: domain.RoleUser}).Error)
	tok := token(t, 1, domain.RoleUser)

	w := postJSON(r, "/api/v1/users/1/customer-showcases", `{"branding":{"logo":"x"},"testimonials":[]}`, tok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var stored models.CustomerShowcase
	require.NoError(t, db.First(&stored).Error)
	assert.JSONEq(t, `{"logo":"x"}`, string(stored.Branding))
}

func TestCreateProgramRequiresAllFields(t *testing.T) {
	r, _ := setupComplianceRouter(t)
	tok := token(t, 1, domain.RoleUser)

	w := postJSON(r, "/api/v1/users/1/infosec-programs", `{"template":"iso27001","customization":{}}`, tok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	full := `{"template":"iso27001","customization":{"scope":"org"},"versionControl":{"rev":1},"permissions":{"owners":["sec"]}}`
	w = postJSON(r, "/api/v1/users/1/infosec-programs", full, tok)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
