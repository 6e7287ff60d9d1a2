package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/pcbstock-api/internal/application/auth"
	"github.com/jhoicas/pcbstock-api/internal/application/excel"
	"github.com/jhoicas/pcbstock-api/internal/application/procurement"
	"github.com/jhoicas/pcbstock-api/internal/application/production"
	"github.com/jhoicas/pcbstock-api/internal/application/usecase"
	"github.com/jhoicas/pcbstock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pcbstock-api/internal/interfaces/http"
	"github.com/jhoicas/pcbstock-api/pkg/config"
	"github.com/jhoicas/pcbstock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	componentRepo := postgres.NewComponentRepository(pool)
	pcbRepo := postgres.NewPCBRepository(pool)
	productionRepo := postgres.NewProductionRepository(pool)
	procurementRepo := postgres.NewProcurementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	procurementUC := procurement.NewUseCase(txRunner, componentRepo, procurementRepo, log)
	monitor := procurement.NewMonitor(
		procurementUC, procurementRepo,
		time.Duration(cfg.Monitor.PollIntervalSeconds)*time.Second,
		cfg.Monitor.BatchSize,
		log,
	)

	produceUC := production.NewProduceUseCase(txRunner, pcbRepo, productionRepo, monitor, log)
	componentUC := usecase.NewComponentUseCase(componentRepo, procurementUC, log)
	pcbUC := usecase.NewPCBUseCase(pcbRepo, componentRepo)
	dashboardUC := usecase.NewDashboardUseCase(analyticsRepo)
	excelUC := excel.NewUseCase(componentRepo, analyticsRepo, procurementUC, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Monitor de compras: drena el outbox tras cada producción (Kick) y por
	// ticker como respaldo.
	monitorCtx, stopMonitor := context.WithCancel(ctx)
	go monitor.Run(monitorCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (solo si el
	// swagger.json generado está presente)
	if docsHandler := httpRouter.SwaggerUI("./docs/swagger.json", "PCB Stock API"); docsHandler != nil {
		app.Use(docsHandler)
	} else {
		log.Warn().Msg("docs/swagger.json no encontrado; UI de docs deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ComponentUC:   componentUC,
		PCBUC:         pcbUC,
		ProduceUC:     produceUC,
		ProcurementUC: procurementUC,
		DashboardUC:   dashboardUC,
		ExcelUC:       excelUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	stopMonitor()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
