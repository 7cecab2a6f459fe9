package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gestionpro/erp-backend-go/internal/config"
	appHTTP "github.com/gestionpro/erp-backend-go/internal/handler/http"
	"github.com/gestionpro/erp-backend-go/internal/pkg/cron"
	"github.com/gestionpro/erp-backend-go/internal/pkg/database"
	"github.com/gestionpro/erp-backend-go/internal/pkg/jwt"
	"github.com/gestionpro/erp-backend-go/internal/repository/postgresql"
	redisRepo "github.com/gestionpro/erp-backend-go/internal/repository/redis"
	authService "github.com/gestionpro/erp-backend-go/internal/service/auth"
	customerService "github.com/gestionpro/erp-backend-go/internal/service/customer"
	employeeService "github.com/gestionpro/erp-backend-go/internal/service/employee"
	invoiceService "github.com/gestionpro/erp-backend-go/internal/service/invoice"
	materialService "github.com/gestionpro/erp-backend-go/internal/service/material"
	messageService "github.com/gestionpro/erp-backend-go/internal/service/message"
	missionService "github.com/gestionpro/erp-backend-go/internal/service/mission"
	quoteService "github.com/gestionpro/erp-backend-go/internal/service/quote"
	reportService "github.com/gestionpro/erp-backend-go/internal/service/report"
	userService "github.com/gestionpro/erp-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient, err := database.NewRedisClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		fmt.Println("Error connecting to redis:", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	refreshTTL, err := time.ParseDuration(cfg.JWT.RefreshExpiration)
	if err != nil {
		fmt.Println("Invalid JWT_REFRESH_EXPIRATION_TIME:", err)
		os.Exit(1)
	}

	userRepo := postgresql.NewUserRepository(db)
	customerRepo := postgresql.NewCustomerRepository(db)
	quoteRepo := postgresql.NewQuoteRepository(db)
	invoiceRepo := postgresql.NewInvoiceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	loanRepo := postgresql.NewLoanRepository(db)
	missionRepo := postgresql.NewMissionRepository(db)
	materialRepo := postgresql.NewMaterialRepository(db)
	messageRepo := postgresql.NewMessageRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	refreshTokens := redisRepo.NewRefreshTokenStore(redisClient, refreshTTL)
	unreadCache := redisRepo.NewUnreadCounter(redisClient, time.Hour)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := authService.NewAuthService(userRepo, jwtService, refreshTokens)
	userSvc := userService.NewUserService(userRepo)
	customerSvc := customerService.NewCustomerService(customerRepo)
	quoteSvc := quoteService.NewQuoteService(quoteRepo, customerRepo)
	invoiceSvc := invoiceService.NewInvoiceService(invoiceRepo, quoteRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, leaveRepo, loanRepo)
	missionSvc := missionService.NewMissionService(missionRepo, customerRepo, employeeRepo, materialRepo)
	materialSvc := materialService.NewMaterialService(materialRepo)
	messageSvc := messageService.NewMessageService(messageRepo, userRepo, unreadCache)
	reportSvc := reportService.NewReportService(reportRepo)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, refreshTTL),
		User:       appHTTP.NewUserHandler(userSvc),
		Navigation: appHTTP.NewNavigationHandler(),
		Customer:   appHTTP.NewCustomerHandler(customerSvc),
		Quote:      appHTTP.NewQuoteHandler(quoteSvc),
		Invoice:    appHTTP.NewInvoiceHandler(invoiceSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Mission:    appHTTP.NewMissionHandler(missionSvc),
		Material:   appHTTP.NewMaterialHandler(materialSvc),
		Message:    appHTTP.NewMessageHandler(messageSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	}

	scheduler := cron.NewScheduler()
	cron.NewQuoteJobs(quoteSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
