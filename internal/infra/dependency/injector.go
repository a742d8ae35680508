// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/patungan/backend/config"
	"github.com/patungan/backend/internal/application/adapter"
	"github.com/patungan/backend/internal/application/usecase/auth"
	"github.com/patungan/backend/internal/application/usecase/bill"
	"github.com/patungan/backend/internal/application/usecase/draft"
	"github.com/patungan/backend/internal/infra/server/router"
	"github.com/patungan/backend/internal/integration/adapters"
	"github.com/patungan/backend/internal/integration/email"
	"github.com/patungan/backend/internal/integration/email/templates"
	"github.com/patungan/backend/internal/integration/entrypoint/controller"
	"github.com/patungan/backend/internal/integration/entrypoint/middleware"
	"github.com/patungan/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	Router      *router.Router
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, dbHealthChecker, redisHealthChecker func() bool) (*Injector, error) {
	// Create repositories and the draft store
	userRepo := persistence.NewUserRepository(db)
	billRepo := persistence.NewBillRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)
	draftStore := persistence.NewRedisDraftStore(redisClient, cfg.Redis.DraftTTL)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	receiptScanner := adapters.NewGeminiScanner(cfg.Gemini.APIKey)

	// Create the email pipeline. Without a Resend API key the mock sender
	// is used, which only logs.
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create email template renderer: %w", err)
	}

	var emailSender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		slog.Warn("Resend API key not configured, using mock email sender")
		emailSender = email.NewMockEmailSender()
	}

	emailWorker := email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Create draft use cases
	getDraftUseCase := draft.NewGetDraftUseCase(draftStore)
	addItemUseCase := draft.NewAddItemUseCase(draftStore)
	removeItemUseCase := draft.NewRemoveItemUseCase(draftStore)
	addParticipantUseCase := draft.NewAddParticipantUseCase(draftStore)
	removeParticipantUseCase := draft.NewRemoveParticipantUseCase(draftStore)
	toggleAssignmentUseCase := draft.NewToggleAssignmentUseCase(draftStore)
	setSurchargeUseCase := draft.NewSetSurchargeUseCase(draftStore)
	setInfoUseCase := draft.NewSetInfoUseCase(draftStore)
	scanReceiptUseCase := draft.NewScanReceiptUseCase(draftStore, receiptScanner)
	saveBillUseCase := draft.NewSaveBillUseCase(draftStore, billRepo, userRepo, emailQueueRepo)
	resetDraftUseCase := draft.NewResetDraftUseCase(draftStore)

	// Create saved bill use cases
	listBillsUseCase := bill.NewListBillsUseCase(billRepo)
	getBillUseCase := bill.NewGetBillUseCase(billRepo)

	// Create controllers
	healthController := controller.NewHealthController(dbHealthChecker, redisHealthChecker)
	authController := controller.NewAuthController(registerUseCase, loginUseCase)
	draftController := controller.NewDraftController(
		getDraftUseCase,
		addItemUseCase,
		removeItemUseCase,
		addParticipantUseCase,
		removeParticipantUseCase,
		toggleAssignmentUseCase,
		setSurchargeUseCase,
		setInfoUseCase,
		scanReceiptUseCase,
		saveBillUseCase,
		resetDraftUseCase,
	)
	billController := controller.NewBillController(listBillsUseCase, getBillUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(healthController, authController, draftController, billController, loginRateLimiter, authMiddleware)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Redis:       redisClient,
		Router:      r,
		EmailWorker: emailWorker,
	}, nil
}
