package router

import (
	"math/rand"
	"time"

	"trustdesk/config"
	"trustdesk/internal/handler"
	"trustdesk/internal/middleware"
	"trustdesk/internal/repository"
	"trustdesk/internal/service"
	"trustdesk/pkg/checkout"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	riskRepo := repository.NewRiskAssessmentRepository(db)
	monitorRepo := repository.NewRiskMonitorRepository(db)
	complianceAuditRepo := repository.NewComplianceAuditRepository(db)
	showcaseRepo := repository.NewCustomerShowcaseRepository(db)
	programRepo := repository.NewInfosecProgramRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Services
	var gateway checkout.Gateway
	if cfg.Stripe.SecretKey != "" {
		gateway = checkout.NewStripeGateway(cfg.Stripe.SecretKey)
	} else {
		gateway = &checkout.StubGateway{}
	}
	authSvc := service.NewAuthService(cfg, userRepo)
	paymentSvc := service.NewPaymentService(gateway, paymentRepo, &cfg.Stripe)
	notifSvc := service.NewNotificationService(notificationRepo, nil)
	reconciler := service.NewReconcileService(paymentRepo, notifSvc)
	scorer := service.NewRiskScorer(rand.New(rand.NewSource(time.Now().UnixNano())))

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	webhookHandler := handler.NewStripeWebhookHandler(reconciler, auditLogRepo, &cfg.Stripe)
	riskHandler := handler.NewRiskHandler(scorer, riskRepo, monitorRepo, userRepo)
	complianceHandler := handler.NewComplianceHandler(complianceAuditRepo, showcaseRepo, programRepo, userRepo, auditLogRepo)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	authOptMw := middleware.AuthOptional(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		api.POST("/payments/sessions", authMw, paymentHandler.CreateSession)
		// Signature-verified; never behind session auth.
		api.POST("/payments/webhook", webhookHandler.Handle)

		api.GET("/me/notifications", authMw, notificationHandler.List)

		users := api.Group("/users/:userId")
		{
			// The risk handler owns its authorization failure codes, so the
			// middleware only parses the session and never aborts.
			users.POST("/risk-assessments", authOptMw, riskHandler.CreateAssessment)
			users.GET("/risk-monitors", authMw, riskHandler.ListMonitors)

			users.POST("/compliance-audits", authMw, complianceHandler.CreateAudit)
			users.GET("/compliance-audits", authMw, complianceHandler.ListAudits)
			users.POST("/customer-showcases", authMw, complianceHandler.CreateShowcase)
			users.GET("/customer-showcases", authMw, complianceHandler.ListShowcases)
			users.POST("/infosec-programs", authMw, complianceHandler.CreateProgram)
			users.GET("/infosec-programs", authMw, complianceHandler.ListPrograms)
		}
	}

	return r
}
