package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	assetapp "github.com/opsdesk/backend/internal/application/asset"
	documentapp "github.com/opsdesk/backend/internal/application/document"
	appevent "github.com/opsdesk/backend/internal/application/event"
	identityapp "github.com/opsdesk/backend/internal/application/identity"
	mailroomapp "github.com/opsdesk/backend/internal/application/mailroom"
	notificationapp "github.com/opsdesk/backend/internal/application/notification"
	procurementapp "github.com/opsdesk/backend/internal/application/procurement"
	projectapp "github.com/opsdesk/backend/internal/application/project"
	scheduleapp "github.com/opsdesk/backend/internal/application/schedule"
	settingapp "github.com/opsdesk/backend/internal/application/setting"
	ticketapp "github.com/opsdesk/backend/internal/application/ticket"
	partnerapp "github.com/opsdesk/backend/internal/application/partner"
	"github.com/opsdesk/backend/internal/infrastructure/cache"
	"github.com/opsdesk/backend/internal/infrastructure/config"
	"github.com/opsdesk/backend/internal/infrastructure/event"
	"github.com/opsdesk/backend/internal/infrastructure/intake"
	"github.com/opsdesk/backend/internal/infrastructure/logger"
	"github.com/opsdesk/backend/internal/infrastructure/mail"
	"github.com/opsdesk/backend/internal/infrastructure/persistence"
	"github.com/opsdesk/backend/internal/infrastructure/printing"
	"github.com/opsdesk/backend/internal/infrastructure/sanitize"
	"github.com/opsdesk/backend/internal/infrastructure/scheduler"
	"github.com/opsdesk/backend/internal/infrastructure/storage"
	"github.com/opsdesk/backend/internal/infrastructure/telemetry"
	"github.com/opsdesk/backend/internal/interfaces/http/handler"
	"github.com/opsdesk/backend/internal/interfaces/http/middleware"
	"github.com/opsdesk/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			OpsDesk Backend API
//	@version		1.0
//	@description	Helpdesk ticket tracker with purchase order workflow, asset inventory and mailbox ingestion

//	@contact.name	API Support
//	@contact.url	https://github.com/opsdesk/backend
//	@contact.email	support@opsdesk.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting OpsDesk Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize telemetry providers. Both are no-ops when telemetry is
	// disabled, so they are always created and shut down.
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Database query tracing (otelgorm)
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:        "postgresql",
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Workload gauges (open tickets, in-flight POs, outbox backlog)
	if cfg.Telemetry.Enabled {
		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:    meterProvider.Meter("opsdesk/workload"),
			Logger:   log,
			Provider: telemetry.NewGormWorkloadStatsProvider(db.DB),
		})
		if err != nil {
			log.Warn("Failed to initialize workload metrics", zap.Error(err))
		} else {
			businessMetrics.StartPeriodicCollection(context.Background(), 5*time.Minute)
			defer businessMetrics.Stop()
		}
	}

	// Initialize repositories
	ticketRepo := persistence.NewGormTicketRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	shippingLocationRepo := persistence.NewGormShippingLocationRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	assetRepo := persistence.NewGormAssetRepository(db.DB)
	assetAuditRepo := persistence.NewGormAssetAuditRepository(db.DB)
	assetPicklistRepo := persistence.NewGormAssetPicklistRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	documentCategoryRepo := persistence.NewGormDocumentCategoryRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	scheduledTicketRepo := persistence.NewGormScheduledTicketRepository(db.DB)
	settingRepo := persistence.NewGormSettingRepository(db.DB)
	mailFilterRepo := persistence.NewGormMailFilterRepository(db.DB)
	pollRunRepo := persistence.NewGormPollRunRepository(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Initialize event serializer and register all event types
	eventSerializer := event.NewEventSerializer()
	event.RegisterAllEvents(eventSerializer)

	// Create outbox publisher for transactional event saving
	outboxPublisher := event.NewOutboxPublisher(eventSerializer)

	// Inject outbox publisher into repositories that save events with the
	// aggregate in one transaction
	ticketRepo.SetOutboxEventSaver(outboxPublisher)
	purchaseOrderRepo.SetOutboxEventSaver(outboxPublisher)

	// Object storage: S3-compatible endpoint when credentials are set,
	// local directory otherwise
	var objectStore ticketapp.ObjectStorage
	if cfg.Storage.AccessKey != "" {
		s3Store, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize S3 object storage", zap.Error(err))
		}
		if err := s3Store.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStore = s3Store
		log.Info("Using S3 object storage",
			zap.String("endpoint", cfg.Storage.Endpoint),
			zap.String("bucket", cfg.Storage.Bucket),
		)
	} else {
		localStore, err := storage.NewLocalObjectStorage(cfg.Storage.LocalPath, log)
		if err != nil {
			log.Fatal("Failed to initialize local object storage", zap.Error(err))
		}
		objectStore = localStore
		log.Info("Using local object storage", zap.String("path", cfg.Storage.LocalPath))
	}

	// HTML sanitizer shared by ticket intake and note rendering
	sanitizer := sanitize.NewSanitizer()

	// Initialize application services
	ticketService := ticketapp.NewTicketService(ticketRepo, sanitizer, objectStore, log)
	purchaseOrderService := procurementapp.NewPurchaseOrderService(
		purchaseOrderRepo, vendorRepo, companyRepo, shippingLocationRepo, objectStore,
	)
	vendorService := partnerapp.NewVendorService(vendorRepo)
	companyService := partnerapp.NewCompanyService(companyRepo, objectStore)
	shippingLocationService := partnerapp.NewShippingLocationService(shippingLocationRepo)
	contactService := partnerapp.NewContactService(contactRepo)
	assetService := assetapp.NewAssetService(assetRepo, assetAuditRepo, assetPicklistRepo, userRepo)
	picklistService := assetapp.NewPicklistService(assetPicklistRepo, assetRepo)
	documentService := documentapp.NewDocumentService(documentRepo, documentCategoryRepo, objectStore)
	documentCategoryService := documentapp.NewCategoryService(documentCategoryRepo)
	projectService := projectapp.NewProjectService(projectRepo, ticketRepo)
	userService := identityapp.NewUserService(userRepo)
	settingService := settingapp.NewSettingService(settingRepo)
	scheduleService := scheduleapp.NewScheduleService(scheduledTicketRepo, userRepo, projectRepo, ticketService)
	filterService := mailroomapp.NewFilterService(mailFilterRepo)
	outboxService := appevent.NewOutboxService(outboxRepo, log)

	// Mailbox poller: the Graph client is only built when credentials are
	// configured; without one manual and scheduled polls report POLL_DISABLED
	var mailboxClient mailroomapp.MailboxClient
	if cfg.Mailbox.Enabled {
		graphClient, err := mail.NewGraphMailboxClient(&cfg.Mailbox, settingRepo, log)
		if err != nil {
			log.Fatal("Failed to initialize mailbox client", zap.Error(err))
		}
		mailboxClient = graphClient
		log.Info("Mailbox client configured", zap.String("address", cfg.Mailbox.Address))
	}

	pollLock := persistence.NewSettingPollLock(db.DB, log)
	pollerService := mailroomapp.NewPollerService(
		pollRunRepo, mailFilterRepo, ticketRepo, settingRepo,
		pollLock, mailboxClient, ticketService, contactService,
	)

	// Drop folder scanner for walk-up scanner submissions
	var intakeScanner scheduler.DropFolderScanner
	if cfg.Scheduler.DropFolderPath != "" {
		dropFolder, err := intake.NewLocalDropFolder(cfg.Scheduler.DropFolderPath, log)
		if err != nil {
			log.Fatal("Failed to initialize drop folder", zap.Error(err))
		}
		intakeScanner = mailroomapp.NewIntakeService(
			pollRunRepo, ticketRepo, assetRepo, dropFolder, ticketService, contactService,
		)
		log.Info("Drop folder scanning enabled", zap.String("path", cfg.Scheduler.DropFolderPath))
	}

	// Outbound notification mail
	var notifyMailer *mail.SMTPMailer
	if cfg.SMTP.Enabled {
		notifyMailer, err = mail.NewSMTPMailer(&cfg.SMTP, settingRepo, log)
		if err != nil {
			log.Fatal("Failed to initialize SMTP mailer", zap.Error(err))
		}
		log.Info("SMTP mailer configured",
			zap.String("host", cfg.SMTP.Host),
			zap.Int("port", cfg.SMTP.Port),
		)
	}

	// Purchase order PDF rendering
	pdfRenderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.PDF.RenderTimeout,
		RemoteURL:      cfg.PDF.RemoteURL,
		Headless:       true,
		DisableGPU:     true,
		NoSandbox:      cfg.PDF.NoSandbox,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	orderRenderer, err := printing.NewPurchaseOrderRenderer(pdfRenderer, log)
	if err != nil {
		log.Fatal("Failed to initialize purchase order renderer", zap.Error(err))
	}

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Idempotency store keeps redelivered outbox events from running a
	// handler twice. Falls back to in-memory when Redis is unreachable.
	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}

	// Purchase order finalized -> render PDF, store it, email the vendor.
	// Without SMTP the handler still renders and stores the document.
	var vendorMailer procurementapp.VendorMailer
	if notifyMailer != nil {
		vendorMailer = notifyMailer
	}
	poFinalizedHandler := procurementapp.NewPurchaseOrderFinalizedHandler(
		purchaseOrderRepo, vendorRepo, orderRenderer, objectStore, vendorMailer, log,
	)
	eventBus.Subscribe(event.NewIdempotentHandler(poFinalizedHandler, idempotencyStore, log))

	// Ticket notification mail only makes sense with an SMTP relay
	if notifyMailer != nil {
		ticketCreatedHandler := notificationapp.NewTicketCreatedHandler(userRepo, notifyMailer, log)
		ticketAssignedHandler := notificationapp.NewTicketAssignedHandler(userRepo, notifyMailer, log)
		noteAddedHandler := notificationapp.NewTicketNoteAddedHandler(ticketRepo, contactRepo, sanitizer, notifyMailer, log)
		ticketWokeHandler := notificationapp.NewTicketWokeHandler(userRepo, notifyMailer, log)

		eventBus.Subscribe(event.NewIdempotentHandler(ticketCreatedHandler, idempotencyStore, log))
		eventBus.Subscribe(event.NewIdempotentHandler(ticketAssignedHandler, idempotencyStore, log))
		eventBus.Subscribe(event.NewIdempotentHandler(noteAddedHandler, idempotencyStore, log))
		eventBus.Subscribe(event.NewIdempotentHandler(ticketWokeHandler, idempotencyStore, log))

		log.Info("Notification handlers registered",
			zap.Strings("ticket_created_events", ticketCreatedHandler.EventTypes()),
			zap.Strings("ticket_assigned_events", ticketAssignedHandler.EventTypes()),
			zap.Strings("note_added_events", noteAddedHandler.EventTypes()),
			zap.Strings("ticket_woke_events", ticketWokeHandler.EventTypes()),
		)
	}

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize and start outbox processor for guaranteed event delivery
	outboxProcessorConfig := event.OutboxProcessorConfig{
		BatchSize:        cfg.Event.BatchSize,
		PollInterval:     cfg.Event.PollInterval,
		CleanupEnabled:   cfg.Event.CleanupEnabled,
		CleanupRetention: cfg.Event.CleanupRetention,
		CleanupInterval:  time.Hour,
	}
	outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, outboxProcessorConfig, log)
	if err := outboxProcessor.Start(context.Background()); err != nil {
		log.Fatal("Failed to start outbox processor", zap.Error(err))
	}
	defer func() {
		if err := outboxProcessor.Stop(context.Background()); err != nil {
			log.Error("Error stopping outbox processor", zap.Error(err))
		}
	}()
	log.Info("Outbox processor started",
		zap.Int("batch_size", outboxProcessorConfig.BatchSize),
		zap.Duration("poll_interval", outboxProcessorConfig.PollInterval),
	)

	// Inject event bus into services that publish events outside the outbox
	ticketService.SetEventPublisher(eventBus)
	purchaseOrderService.SetEventPublisher(eventBus)
	vendorService.SetEventPublisher(eventBus)
	shippingLocationService.SetEventPublisher(eventBus)
	assetService.SetEventPublisher(eventBus)
	documentService.SetEventPublisher(eventBus)
	projectService.SetEventPublisher(eventBus)
	userService.SetEventPublisher(eventBus)
	scheduleService.SetEventPublisher(eventBus)

	// Background job scheduler: mailbox polls, drop folder scans, recurring
	// ticket schedules, snooze wakeups, the poll lock watchdog and the daily
	// intake log purge
	if cfg.Scheduler.Enabled {
		schedulerConfig := scheduler.DefaultConfig()
		schedulerConfig.MaxConcurrentJobs = cfg.Scheduler.MaxConcurrentJobs
		schedulerConfig.JobTimeout = cfg.Scheduler.JobTimeout
		schedulerConfig.RetryAttempts = cfg.Scheduler.RetryAttempts
		schedulerConfig.RetryDelay = cfg.Scheduler.RetryDelay

		jobScheduler, err := scheduler.NewScheduler(schedulerConfig, log)
		if err != nil {
			log.Fatal("Failed to initialize scheduler", zap.Error(err))
		}
		if err := jobScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := jobScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()

		cronConfig := scheduler.DefaultCronTriggerConfig()
		cronConfig.RetentionHour, cronConfig.RetentionMinute = parseDailyCron(cfg.Scheduler.RetentionCronSchedule, cronConfig.RetentionHour, cronConfig.RetentionMinute)

		cronTrigger, err := scheduler.NewCronTrigger(
			cronConfig, jobScheduler, pollerService, scheduleService, ticketService, intakeScanner, log,
		)
		if err != nil {
			log.Fatal("Failed to initialize cron trigger", zap.Error(err))
		}
		if err := cronTrigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start cron trigger", zap.Error(err))
		}
		defer func() {
			if err := cronTrigger.Stop(context.Background()); err != nil {
				log.Error("Error stopping cron trigger", zap.Error(err))
			}
		}()
		log.Info("Scheduler started",
			zap.Int("max_concurrent_jobs", schedulerConfig.MaxConcurrentJobs),
			zap.Duration("job_timeout", schedulerConfig.JobTimeout),
		)
	}

	// Initialize HTTP handlers
	ticketHandler := handler.NewTicketHandler(ticketService)
	purchaseOrderHandler := handler.NewPurchaseOrderHandler(purchaseOrderService)
	vendorHandler := handler.NewVendorHandler(vendorService)
	companyHandler := handler.NewCompanyHandler(companyService)
	shippingLocationHandler := handler.NewShippingLocationHandler(shippingLocationService)
	contactHandler := handler.NewContactHandler(contactService)
	assetHandler := handler.NewAssetHandler(assetService)
	picklistHandler := handler.NewAssetPicklistHandler(picklistService)
	documentHandler := handler.NewDocumentHandler(documentService)
	documentCategoryHandler := handler.NewDocumentCategoryHandler(documentCategoryService)
	projectHandler := handler.NewProjectHandler(projectService)
	userHandler := handler.NewUserHandler(userService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	mailroomHandler := handler.NewMailroomHandler(pollerService, filterService)
	settingHandler := handler.NewSettingHandler(settingService)
	outboxHandler := handler.NewOutboxHandler(outboxService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing/Metrics - OpenTelemetry spans and HTTP metrics
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing())
		engine.Use(middleware.SpanErrorMarker())
		engine.Use(middleware.HTTPMetricsWithMeter(meterProvider.Meter("opsdesk/http"), true))
	}
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Swagger documentation endpoint
	swaggerProtection := middleware.SwaggerProtection(middleware.SwaggerConfig{
		Enabled:    cfg.Swagger.Enabled,
		AllowedIPs: cfg.Swagger.AllowedIPs,
	}, nil)
	engine.GET("/swagger/*any", swaggerProtection, ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Helpdesk domain (tickets, notes, tasks, attachments)
	ticketRoutes := router.NewDomainGroup("helpdesk", "/tickets")
	ticketRoutes.POST("", ticketHandler.Create)
	ticketRoutes.GET("", ticketHandler.List)
	ticketRoutes.GET("/stats/summary", ticketHandler.GetStatusSummary)
	ticketRoutes.GET("/number/:number", ticketHandler.GetByNumber)
	ticketRoutes.GET("/:id", ticketHandler.GetByID)
	ticketRoutes.PUT("/:id", ticketHandler.Update)
	ticketRoutes.DELETE("/:id", ticketHandler.Delete)
	ticketRoutes.POST("/:id/assign", ticketHandler.Assign)
	ticketRoutes.POST("/:id/requester", ticketHandler.SetRequester)
	ticketRoutes.POST("/:id/status", ticketHandler.ChangeStatus)
	ticketRoutes.POST("/:id/close", ticketHandler.Close)
	ticketRoutes.POST("/:id/reopen", ticketHandler.Reopen)
	ticketRoutes.POST("/:id/snooze", ticketHandler.Snooze)
	ticketRoutes.POST("/:id/wake", ticketHandler.Wake)
	ticketRoutes.POST("/:id/merge-project", ticketHandler.MoveToProject)
	ticketRoutes.POST("/:id/notes", ticketHandler.AddNote)
	ticketRoutes.GET("/:id/notes", ticketHandler.ListNotes)
	ticketRoutes.POST("/:id/tasks", ticketHandler.AddTask)
	ticketRoutes.PUT("/:id/tasks/:task_id", ticketHandler.UpdateTask)
	ticketRoutes.DELETE("/:id/tasks/:task_id", ticketHandler.RemoveTask)
	ticketRoutes.POST("/:id/attachments", ticketHandler.UploadAttachment)
	ticketRoutes.GET("/:id/attachments/:attachment_id", ticketHandler.DownloadAttachment)

	// Procurement domain (purchase orders)
	procurementRoutes := router.NewDomainGroup("procurement", "/procurement")
	procurementRoutes.POST("/purchase-orders", purchaseOrderHandler.Create)
	procurementRoutes.GET("/purchase-orders", purchaseOrderHandler.List)
	procurementRoutes.GET("/purchase-orders/stats/summary", purchaseOrderHandler.GetStatusSummary)
	procurementRoutes.GET("/purchase-orders/number/:po_number", purchaseOrderHandler.GetByPONumber)
	procurementRoutes.GET("/purchase-orders/:id", purchaseOrderHandler.GetByID)
	procurementRoutes.PUT("/purchase-orders/:id", purchaseOrderHandler.Update)
	procurementRoutes.DELETE("/purchase-orders/:id", purchaseOrderHandler.Delete)
	procurementRoutes.POST("/purchase-orders/:id/vendor", purchaseOrderHandler.SetVendor)
	procurementRoutes.POST("/purchase-orders/:id/company", purchaseOrderHandler.SetCompany)
	procurementRoutes.POST("/purchase-orders/:id/ship-to", purchaseOrderHandler.SetShipTo)
	procurementRoutes.POST("/purchase-orders/:id/items", purchaseOrderHandler.AddItem)
	procurementRoutes.PUT("/purchase-orders/:id/items/:item_id", purchaseOrderHandler.UpdateItem)
	procurementRoutes.DELETE("/purchase-orders/:id/items/:item_id", purchaseOrderHandler.RemoveItem)
	procurementRoutes.POST("/purchase-orders/:id/finalize", purchaseOrderHandler.Finalize)
	procurementRoutes.POST("/purchase-orders/:id/items/:item_id/receive", purchaseOrderHandler.ReceiveItem)
	procurementRoutes.POST("/purchase-orders/:id/items/:item_id/backorder", purchaseOrderHandler.MarkItemBackordered)
	procurementRoutes.POST("/purchase-orders/:id/items/:item_id/mark-ordered", purchaseOrderHandler.MarkItemOrdered)
	procurementRoutes.POST("/purchase-orders/:id/items/:item_id/cancel", purchaseOrderHandler.CancelItem)
	procurementRoutes.POST("/purchase-orders/:id/cancel", purchaseOrderHandler.Cancel)
	procurementRoutes.GET("/purchase-orders/:id/document", purchaseOrderHandler.GetDocument)

	// Partner domain (vendors, company profile, shipping locations, contacts)
	partnerRoutes := router.NewDomainGroup("partners", "/partners")
	partnerRoutes.POST("/vendors", vendorHandler.Create)
	partnerRoutes.GET("/vendors", vendorHandler.List)
	partnerRoutes.GET("/vendors/:id", vendorHandler.GetByID)
	partnerRoutes.PUT("/vendors/:id", vendorHandler.Update)
	partnerRoutes.DELETE("/vendors/:id", vendorHandler.Delete)
	partnerRoutes.POST("/vendors/:id/activate", vendorHandler.Activate)
	partnerRoutes.POST("/vendors/:id/deactivate", vendorHandler.Deactivate)
	partnerRoutes.GET("/company", companyHandler.Get)
	partnerRoutes.PUT("/company", companyHandler.Update)
	partnerRoutes.POST("/company/logo", companyHandler.UploadLogo)
	partnerRoutes.GET("/company/logo", companyHandler.DownloadLogo)
	partnerRoutes.POST("/shipping-locations", shippingLocationHandler.Create)
	partnerRoutes.GET("/shipping-locations", shippingLocationHandler.List)
	partnerRoutes.GET("/shipping-locations/:id", shippingLocationHandler.GetByID)
	partnerRoutes.PUT("/shipping-locations/:id", shippingLocationHandler.Update)
	partnerRoutes.DELETE("/shipping-locations/:id", shippingLocationHandler.Delete)
	partnerRoutes.POST("/shipping-locations/:id/set-default", shippingLocationHandler.SetDefault)
	partnerRoutes.POST("/shipping-locations/:id/activate", shippingLocationHandler.Activate)
	partnerRoutes.POST("/shipping-locations/:id/deactivate", shippingLocationHandler.Deactivate)
	partnerRoutes.POST("/contacts", contactHandler.Create)
	partnerRoutes.GET("/contacts", contactHandler.List)
	partnerRoutes.GET("/contacts/:id", contactHandler.GetByID)
	partnerRoutes.PUT("/contacts/:id", contactHandler.Update)
	partnerRoutes.DELETE("/contacts/:id", contactHandler.Delete)

	// Asset domain (inventory, audits, picklists)
	assetRoutes := router.NewDomainGroup("assets", "/assets")
	assetRoutes.POST("", assetHandler.Create)
	assetRoutes.GET("", assetHandler.List)
	assetRoutes.GET("/stats/summary", assetHandler.GetStatusSummary)
	assetRoutes.GET("/tag/:tag", assetHandler.GetByTag)
	assetRoutes.GET("/:id", assetHandler.GetByID)
	assetRoutes.PUT("/:id", assetHandler.Update)
	assetRoutes.DELETE("/:id", assetHandler.Delete)
	assetRoutes.PUT("/:id/classify", assetHandler.Classify)
	assetRoutes.PUT("/:id/purchase-info", assetHandler.SetPurchaseInfo)
	assetRoutes.POST("/:id/checkout", assetHandler.Checkout)
	assetRoutes.POST("/:id/checkin", assetHandler.Checkin)
	assetRoutes.POST("/:id/audits", assetHandler.RecordAudit)
	assetRoutes.GET("/:id/audits", assetHandler.ListAudits)
	assetRoutes.POST("/:id/retire", assetHandler.Retire)
	assetRoutes.POST("/:id/restore", assetHandler.Restore)

	// Asset picklists share one handler parameterized by kind
	picklists := map[string]assetapp.PicklistKind{
		"/categories":    assetapp.PicklistCategories,
		"/manufacturers": assetapp.PicklistManufacturers,
		"/conditions":    assetapp.PicklistConditions,
		"/locations":     assetapp.PicklistLocations,
	}
	for prefix, kind := range picklists {
		assetRoutes.POST(prefix, picklistHandler.Create(kind))
		assetRoutes.GET(prefix, picklistHandler.List(kind))
		assetRoutes.PUT(prefix+"/:id", picklistHandler.Update(kind))
		assetRoutes.DELETE(prefix+"/:id", picklistHandler.Delete(kind))
	}

	// Document cabinet
	documentRoutes := router.NewDomainGroup("documents", "/documents")
	documentRoutes.POST("", documentHandler.Upload)
	documentRoutes.GET("", documentHandler.List)
	documentRoutes.POST("/categories", documentCategoryHandler.Create)
	documentRoutes.GET("/categories", documentCategoryHandler.List)
	documentRoutes.GET("/categories/:id", documentCategoryHandler.GetByID)
	documentRoutes.PUT("/categories/:id", documentCategoryHandler.Update)
	documentRoutes.DELETE("/categories/:id", documentCategoryHandler.Delete)
	documentRoutes.GET("/:id", documentHandler.GetByID)
	documentRoutes.PUT("/:id", documentHandler.Update)
	documentRoutes.DELETE("/:id", documentHandler.Delete)
	documentRoutes.GET("/:id/download", documentHandler.Download)

	// Projects
	projectRoutes := router.NewDomainGroup("projects", "/projects")
	projectRoutes.POST("", projectHandler.Create)
	projectRoutes.GET("", projectHandler.List)
	projectRoutes.GET("/:id", projectHandler.GetByID)
	projectRoutes.PUT("/:id", projectHandler.Update)
	projectRoutes.DELETE("/:id", projectHandler.Delete)
	projectRoutes.POST("/:id/archive", projectHandler.Archive)
	projectRoutes.POST("/:id/unarchive", projectHandler.Unarchive)
	projectRoutes.GET("/:id/tickets", projectHandler.ListTickets)

	// User management (admin data management, not auth)
	userRoutes := router.NewDomainGroup("identity", "/users")
	userRoutes.POST("", userHandler.Create)
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.GetByID)
	userRoutes.PUT("/:id", userHandler.Update)
	userRoutes.DELETE("/:id", userHandler.Delete)
	userRoutes.PUT("/:id/password", userHandler.ChangePassword)
	userRoutes.POST("/:id/password/reset", userHandler.ResetPassword)
	userRoutes.POST("/:id/activate", userHandler.Activate)
	userRoutes.POST("/:id/deactivate", userHandler.Deactivate)

	// Recurring ticket schedules
	scheduleRoutes := router.NewDomainGroup("schedule", "/schedule")
	scheduleRoutes.POST("/tickets", scheduleHandler.Create)
	scheduleRoutes.GET("/tickets", scheduleHandler.List)
	scheduleRoutes.GET("/tickets/:id", scheduleHandler.GetByID)
	scheduleRoutes.PUT("/tickets/:id", scheduleHandler.Update)
	scheduleRoutes.DELETE("/tickets/:id", scheduleHandler.Delete)
	scheduleRoutes.POST("/tickets/:id/enable", scheduleHandler.Enable)
	scheduleRoutes.POST("/tickets/:id/disable", scheduleHandler.Disable)
	scheduleRoutes.POST("/tickets/:id/run", scheduleHandler.Run)

	// Mailroom (poll runs, manual poll, intake filters)
	mailroomRoutes := router.NewDomainGroup("mailroom", "/mailroom")
	mailroomRoutes.GET("/runs", mailroomHandler.ListRuns)
	mailroomRoutes.GET("/runs/:id/entries", mailroomHandler.GetRunEntries)
	mailroomRoutes.POST("/poll", mailroomHandler.TriggerPoll)
	mailroomRoutes.POST("/allowed-domains", mailroomHandler.CreateAllowedDomain)
	mailroomRoutes.GET("/allowed-domains", mailroomHandler.ListAllowedDomains)
	mailroomRoutes.PUT("/allowed-domains/:id", mailroomHandler.UpdateAllowedDomain)
	mailroomRoutes.DELETE("/allowed-domains/:id", mailroomHandler.DeleteAllowedDomain)
	mailroomRoutes.POST("/deny-filters", mailroomHandler.CreateDenyFilter)
	mailroomRoutes.GET("/deny-filters", mailroomHandler.ListDenyFilters)
	mailroomRoutes.PUT("/deny-filters/:id", mailroomHandler.UpdateDenyFilter)
	mailroomRoutes.DELETE("/deny-filters/:id", mailroomHandler.DeleteDenyFilter)

	// Runtime settings
	settingRoutes := router.NewDomainGroup("settings", "/settings")
	settingRoutes.GET("", settingHandler.List)
	settingRoutes.PUT("", settingHandler.Upsert)

	// System routes (info, ping, outbox diagnostics)
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/outbox/stats", outboxHandler.GetStats)
	systemRoutes.GET("/outbox/dead", outboxHandler.GetDeadLetterEntries)
	systemRoutes.POST("/outbox/dead/retry-all", outboxHandler.RetryAllDeadEntries)
	systemRoutes.GET("/outbox/:id", outboxHandler.GetEntry)
	systemRoutes.POST("/outbox/:id/retry", outboxHandler.RetryDeadEntry)

	// Register all domain groups
	r.Register(ticketRoutes).
		Register(procurementRoutes).
		Register(partnerRoutes).
		Register(assetRoutes).
		Register(documentRoutes).
		Register(projectRoutes).
		Register(userRoutes).
		Register(scheduleRoutes).
		Register(mailroomRoutes).
		Register(settingRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// parseDailyCron extracts the hour and minute from a daily cron expression
// of the form "M H * * *", falling back to the given defaults when the
// expression is anything else.
func parseDailyCron(expr string, defaultHour, defaultMinute int) (int, int) {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return defaultHour, defaultMinute
	}
	minute, err := strconv.Atoi(fields[0])
	if err != nil || minute < 0 || minute > 59 {
		return defaultHour, defaultMinute
	}
	hour, err := strconv.Atoi(fields[1])
	if err != nil || hour < 0 || hour > 23 {
		return defaultHour, defaultMinute
	}
	return hour, minute
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
