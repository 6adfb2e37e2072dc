package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hypernova-labs/dashboard-service/internal/api"
	"github.com/hypernova-labs/dashboard-service/internal/auth"
	"github.com/hypernova-labs/dashboard-service/internal/config"
	"github.com/hypernova-labs/dashboard-service/internal/database"
	"github.com/hypernova-labs/dashboard-service/internal/email"
	"github.com/hypernova-labs/dashboard-service/internal/services"
	"github.com/sirupsen/logrus"
)

func main() {
	// Cargar configuración
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Configurar logging
	logger := setupLogger(cfg)
	logger.Info("Starting dashboard service...")

	// Configurar modo de Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Aplicar migraciones del esquema
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Fatalf("Error running migrations: %v", err)
	}

	// Conectar a la base de datos
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	// Conectar a Redis (opcional: sin Redis no hay cache de vistas)
	redis, err := database.ConnectRedis(cfg)
	if err != nil {
		logger.Warnf("Error connecting to Redis: %v", err)
		redis = nil
	} else {
		defer redis.Close()
	}

	viewCache := database.NewViewCache(redis, cfg.Cache.ViewTTL, logger)

	// Inicializar servicio de Resend
	var resendService *email.ResendService
	if cfg.Email.ResendAPIKey != "" {
		resendService = email.NewResendService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Server.BaseURL, logger)
		logger.Info("Resend service initialized successfully")
	} else {
		logger.Warn("Resend API key not provided, email service will not be available")
	}

	// Inicializar repositorios
	invoiceRepo := database.NewInvoiceRepository(db, logger)
	customerRepo := database.NewCustomerRepository(db, logger)
	userRepo := database.NewUserRepository(db, logger)

	// Inicializar servicios
	var mailer services.InvoiceMailer
	if resendService != nil {
		mailer = resendService
	}

	invoiceService := services.NewInvoiceService(invoiceRepo, customerRepo, viewCache, mailer, logger)
	customerService := services.NewCustomerService(customerRepo, viewCache, logger)

	provider := auth.NewCredentialsProvider(userRepo, cfg.Session.Secret, cfg.Session.Expiry, logger)
	authService := services.NewAuthService(provider, logger)

	// Inicializar API
	apiHandler := api.NewAPI(
		invoiceService,
		customerService,
		authService,
		viewCache,
		cfg.Session,
		logger,
	)

	// Configurar router
	router := setupRouter(apiHandler, db, cfg)

	// Crear servidor HTTP
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Canal para señales de terminación
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Iniciar servidor en goroutine
	go func() {
		logger.Infof("Server starting on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	// Esperar señal de terminación
	<-quit
	logger.Info("Shutting down server...")

	// Contexto con timeout para shutdown graceful
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown graceful del servidor
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

// setupLogger configura el logger según la configuración
func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	// Configurar nivel de log
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Configurar formato
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// setupRouter configura el router principal
func setupRouter(apiHandler *api.API, db *database.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Middleware global
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if err := db.HealthCheck(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC(),
			"service":   "dashboard-service",
			"version":   "1.0.0",
		})
	})

	// Autenticación
	router.POST("/login", apiHandler.Login)
	router.POST("/logout", apiHandler.Logout)

	// Dashboard (protegido por sesión)
	dashboard := router.Group("/dashboard")
	dashboard.Use(apiHandler.SessionAuthMiddleware())
	{
		// Invoices
		dashboard.GET("/invoices", apiHandler.GetInvoices)
		dashboard.GET("/invoices/:id", apiHandler.GetInvoice)
		dashboard.POST("/invoices", apiHandler.CreateInvoice)
		dashboard.POST("/invoices/:id", apiHandler.UpdateInvoice)
		dashboard.POST("/invoices/:id/delete", apiHandler.DeleteInvoice)

		// Customers (nunca se eliminan)
		dashboard.GET("/customers", apiHandler.GetCustomers)
		dashboard.GET("/customers/:id", apiHandler.GetCustomer)
		dashboard.POST("/customers", apiHandler.CreateCustomer)
		dashboard.POST("/customers/:id", apiHandler.UpdateCustomer)
	}

	return router
}
