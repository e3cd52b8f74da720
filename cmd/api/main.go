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

	"github.com/uniteam-app/uniteam-backend-go/internal/config"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/appconfig"
	appHTTP "github.com/uniteam-app/uniteam-backend-go/internal/handler/http"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/cron"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/database"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/device"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/jwt"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/sheet"
	"github.com/uniteam-app/uniteam-backend-go/internal/repository/postgresql"
	attendanceService "github.com/uniteam-app/uniteam-backend-go/internal/service/attendance"
	authService "github.com/uniteam-app/uniteam-backend-go/internal/service/auth"
	"github.com/uniteam-app/uniteam-backend-go/internal/service/master"
	reportService "github.com/uniteam-app/uniteam-backend-go/internal/service/report"
	syncService "github.com/uniteam-app/uniteam-backend-go/internal/service/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	branchRepo := postgresql.NewBranchRepository(db)
	jobRepo := postgresql.NewJobRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)
	accountRepo := postgresql.NewReportAccountRepository(db)
	configRepo := postgresql.NewConfigRepository(db, appconfig.Config{
		AdminUsername: cfg.Admin.Username,
		AdminPassword: cfg.Admin.Password,
	})
	outboxRepo := postgresql.NewOutboxRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	identifier := device.NewIdentifier()
	sheetClient := sheet.NewClient(time.Duration(cfg.Sync.TimeoutSeconds) * time.Second)

	authSvc := authService.NewAuthService(userRepo, configRepo, outboxRepo, jwtSvc, identifier, sheetClient)
	attendanceSvc := attendanceService.NewAttendanceService(recordRepo, branchRepo, outboxRepo)
	masterSvc := master.NewMasterService(branchRepo, jobRepo, userRepo, accountRepo, configRepo)
	syncSvc := syncService.NewSyncService(db, branchRepo, jobRepo, userRepo, recordRepo, accountRepo, configRepo, outboxRepo, sheetClient)
	reportSvc := reportService.NewReportService(accountRepo, recordRepo, userRepo)

	// A deep link in the environment seeds the endpoint before the first
	// request arrives.
	if cfg.Sync.BootstrapLink != "" {
		if err := syncSvc.Bootstrap(context.Background(), cfg.Sync.BootstrapLink); err != nil {
			slog.Warn("Startup bootstrap failed", "error", err)
		}
	}

	scheduler := cron.NewScheduler()
	cron.NewSyncJobs(syncSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(authSvc, identifier)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	masterHandler := appHTTP.NewMasterHandler(masterSvc)
	syncHandler := appHTTP.NewSyncHandler(syncSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		jwtSvc,
		authHandler,
		attendanceHandler,
		masterHandler,
		syncHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
