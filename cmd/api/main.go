package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/account-service/internal/api/http"
	"github.com/spec-kit/account-service/internal/api/http/handlers"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/observability"
	"github.com/spec-kit/account-service/internal/persistence"
	"github.com/spec-kit/account-service/internal/ratelimit"
	"github.com/spec-kit/account-service/internal/repository"
	"github.com/spec-kit/account-service/internal/service"
	"github.com/spec-kit/account-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	assignmentRepo := repository.NewRoleAssignmentRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	payrollRepo := repository.NewPayrollRepository(pool)
	securityEventRepo := repository.NewSecurityEventRepository(pool)

	catalog, err := loadRoleCatalog(ctx, roleRepo, logger)
	if err != nil {
		logger.Fatal("failed to load role catalog", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	locks := service.NewAccountLocks()

	counter := ratelimit.NewRedisCounter(redis.Client)
	loginGuard := ratelimit.NewLoginGuard(counter, cfg.Security.MaxLoginFailures, cfg.Security.FailureWindow())
	authLimiter := ratelimit.NewLimiter(counter, cfg.Security.AuthRatePerMinute, time.Minute, "auth_rate")

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo:    accountRepo,
		AssignmentRepo: assignmentRepo,
		LoginGuard:     loginGuard,
		Locks:          locks,
		Dispatcher:     dispatcher,
	})
	adminService := service.NewAdminService(service.AdminDependencies{
		AccountRepo:    accountRepo,
		AssignmentRepo: assignmentRepo,
		Catalog:        catalog,
		Locks:          locks,
		Dispatcher:     dispatcher,
	})
	payrollService := service.NewPayrollService(payrollRepo, accountRepo)
	auditService := service.NewAuditService(dispatcher, securityEventRepo, logger)
	worker.StartAuditWorker(auditService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), accountRepo, assignmentRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Admin:          handlers.NewAdminHandler(adminService),
		Payroll:        handlers.NewPayrollHandler(payrollService),
		Security:       handlers.NewSecurityHandler(auditService),
		AuthMiddleware: authMiddleware,
		Dispatcher:     dispatcher,
		AuthLimiter:    authLimiter,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// loadRoleCatalog reads the seeded role table once before serving traffic.
// The catalog is immutable for the process lifetime.
func loadRoleCatalog(ctx context.Context, roleRepo repository.RoleRepository, logger *zap.Logger) (*domain.RoleCatalog, error) {
	loadCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	roles, err := roleRepo.ListRoles(loadCtx)
	if err != nil {
		return nil, err
	}
	logger.Info("role catalog loaded", zap.Int("roles", len(roles)))
	return domain.NewRoleCatalog(roles), nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
