package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pcbstock-api/internal/application/auth"
	"github.com/jhoicas/pcbstock-api/internal/application/excel"
	"github.com/jhoicas/pcbstock-api/internal/application/procurement"
	"github.com/jhoicas/pcbstock-api/internal/application/production"
	"github.com/jhoicas/pcbstock-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ComponentUC   *usecase.ComponentUseCase
	PCBUC         *usecase.PCBUseCase
	ProduceUC     *production.ProduceUseCase
	ProcurementUC *procurement.UseCase
	DashboardUC   *usecase.DashboardUseCase
	ExcelUC       *excel.UseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Components (protegido)
	components := protected.Group("/components")
	componentHandler := NewComponentHandler(deps.ComponentUC)
	components.Post("/", componentHandler.Create)
	components.Get("/", componentHandler.List)
	components.Get("/:id", componentHandler.GetByID)
	components.Put("/:id", componentHandler.Update)
	components.Delete("/:id", RequireRole("admin"), componentHandler.Delete)

	// Import/export masivo (protegido)
	excelGroup := protected.Group("/excel")
	excelHandler := NewExcelHandler(deps.ExcelUC)
	excelGroup.Post("/import", excelHandler.Import)
	excelGroup.Get("/export", excelHandler.Export)
	excelGroup.Get("/export/consumption", excelHandler.ExportConsumption)

	// PCBs y su BOM (protegido)
	pcbs := protected.Group("/pcbs")
	pcbHandler := NewPCBHandler(deps.PCBUC)
	pcbs.Post("/", pcbHandler.Create)
	pcbs.Get("/", pcbHandler.List)
	pcbs.Get("/:id", pcbHandler.GetByID)
	pcbs.Put("/:id", pcbHandler.Update)
	pcbs.Delete("/:id", RequireRole("admin"), pcbHandler.Delete)
	pcbs.Put("/:id/components", pcbHandler.UpsertBOMLine)
	pcbs.Delete("/:id/components/:component_id", pcbHandler.DeleteBOMLine)

	// Production (protegido)
	productionGroup := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.ProduceUC)
	productionGroup.Post("/", productionHandler.Produce)
	productionGroup.Get("/", productionHandler.History)
	productionGroup.Get("/:id/consumption", productionHandler.Consumption)

	// Procurement triggers (protegido)
	procurementGroup := protected.Group("/procurement")
	procurementHandler := NewProcurementHandler(deps.ProcurementUC)
	procurementGroup.Get("/", procurementHandler.List)
	procurementGroup.Post("/:id/resolve", procurementHandler.Resolve)

	// Analytics (protegido)
	analytics := protected.Group("/analytics")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	analytics.Get("/dashboard", dashboardHandler.Dashboard)
	analytics.Get("/consumption-summary", dashboardHandler.ConsumptionSummary)
	analytics.Get("/consumption-timeline", dashboardHandler.ConsumptionTimeline)
	analytics.Get("/top-consumed", dashboardHandler.TopConsumed)
	analytics.Get("/low-stock", dashboardHandler.LowStock)
}
