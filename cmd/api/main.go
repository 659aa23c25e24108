package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsphere/skillsphere-backend-go/internal/config"
	appHTTP "github.com/skillsphere/skillsphere-backend-go/internal/handler/http"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/cache"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/cron"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/database"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/hrms"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/jwt"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/metrics"
	"github.com/skillsphere/skillsphere-backend-go/internal/repository/postgresql"
	accessService "github.com/skillsphere/skillsphere-backend-go/internal/service/access"
	auditService "github.com/skillsphere/skillsphere-backend-go/internal/service/audit"
	serviceAuth "github.com/skillsphere/skillsphere-backend-go/internal/service/auth"
	dashboardService "github.com/skillsphere/skillsphere-backend-go/internal/service/dashboard"
	employeeService "github.com/skillsphere/skillsphere-backend-go/internal/service/employee"
	"github.com/skillsphere/skillsphere-backend-go/internal/service/hrmssync"
	levelmoveService "github.com/skillsphere/skillsphere-backend-go/internal/service/levelmove"
	projectService "github.com/skillsphere/skillsphere-backend-go/internal/service/project"
	skillService "github.com/skillsphere/skillsphere-backend-go/internal/service/skill"
	userService "github.com/skillsphere/skillsphere-backend-go/internal/service/user"
	"github.com/skillsphere/skillsphere-backend-go/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	level := slog.LevelInfo
	if cfg.App.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	dsn := cfg.DatabaseURL()
	if err := database.RunMigrations(dsn, migrations.Files); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	redisClient, err := cache.NewClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal("Failed to connect to Redis: ", err)
	}
	cacheClient := cache.NewCache(redisClient, cfg.Redis.DashboardTTL)

	m := metrics.NewMetrics()

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	skillRepo := postgresql.NewSkillRepository(db)
	assessmentRepo := postgresql.NewAssessmentRepository(db)
	movementRepo := postgresql.NewLevelMovementRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	engine := accessService.NewEngine(employeeRepo, assignmentRepo, m)
	auditSvc := auditService.NewAuditService(auditRepo, m)
	authService := serviceAuth.NewAuthService(db, userRepo, employeeRepo, JWTService, refreshTokenRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, userRepo, refreshTokenRepo, engine, auditSvc, cacheClient)
	userSvc := userService.NewUserService(db, userRepo, employeeSvc, refreshTokenRepo, auditSvc)
	skillSvc := skillService.NewSkillService(db, skillRepo, assessmentRepo, employeeRepo, engine, auditSvc, cacheClient)
	movementSvc := levelmoveService.NewLevelMovementService(db, movementRepo, employeeRepo, skillRepo, skillSvc, engine, auditSvc, cacheClient)
	assignmentSvc := projectService.NewAssignmentService(assignmentRepo, employeeRepo, engine, auditSvc)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, cacheClient)

	hrmsClient := hrms.NewClient(cfg.HRMS.BaseURL, cfg.HRMS.ClientID, cfg.HRMS.ClientSecret, cfg.HRMS.TokenURL)
	syncer := hrmssync.NewSyncer(hrmsClient, employeeRepo, assignmentRepo, authService, auditSvc, cacheClient, m, cfg.Service.Email, cfg.HRMS.PageSize)

	authHandler := appHTTP.NewAuthHandler(JWTService, authService)
	userHandler := appHTTP.NewUserHandler(userSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	skillHandler := appHTTP.NewSkillHandler(skillSvc)
	movementHandler := appHTTP.NewLevelMovementHandler(movementSvc)
	assignmentHandler := appHTTP.NewAssignmentHandler(assignmentSvc)
	auditHandler := appHTTP.NewAuditHandler(auditSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	hrmsHandler := appHTTP.NewHRMSHandler(syncer)

	router := appHTTP.NewRouter(
		JWTService,
		m,
		cfg.App.Env,
		authHandler,
		userHandler,
		employeeHandler,
		skillHandler,
		movementHandler,
		assignmentHandler,
		auditHandler,
		dashboardHandler,
		hrmsHandler,
	)

	scheduler := cron.NewScheduler()
	if cfg.HRMS.Enabled() {
		scheduler.AddJob("hrms_sync", cfg.HRMS.SyncInterval, true, func(ctx context.Context) error {
			_, err := syncer.Run(ctx)
			return err
		})
	}
	scheduler.Start()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}
	scheduler.Stop()
	slog.Info("Server stopped")
}
