package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldservice-api/internal/application/audit"
	"github.com/jhoicas/fieldservice-api/internal/application/inventory"
	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SparePartUC *usecase.SparePartUseCase
	FacilityUC  *usecase.FacilityUseCase
	TransferUC  *inventory.TransferUseCase
	LedgerUC    *inventory.LedgerUseCase
	Auditor     *audit.Writer
	JWTSecret   string
	JWTIssuer   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Todas las rutas de /api requieren Bearer Token
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	writers := RequireRole(entity.RoleAdmin, entity.RoleStorekeeper)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Spare parts
	parts := api.Group("/spare-parts")
	partHandler := NewSparePartHandler(deps.SparePartUC)
	transferHandler := NewTransferHandler(deps.TransferUC, deps.LedgerUC, deps.FacilityUC)
	parts.Post("/", writers, partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/:id", partHandler.GetByID)
	parts.Post("/:id/transfers", writers, transferHandler.Transfer)
	parts.Post("/:id/returns", writers, transferHandler.Return)
	parts.Get("/:id/transfers", transferHandler.ListByPart)
	parts.Get("/:id/transfers/report", transferHandler.Report)

	// Libro de la empresa
	api.Get("/transfers", transferHandler.ListByCompany)

	// Auditoría
	api.Get("/audit", adminOnly, NewAuditHandler(deps.Auditor).List)

	// Facilities
	facilities := api.Group("/facilities")
	facilityHandler := NewFacilityHandler(deps.FacilityUC)
	facilities.Post("/", adminOnly, facilityHandler.Create)
	facilities.Get("/", facilityHandler.List)
	facilities.Get("/:id", facilityHandler.GetByID)
	facilities.Put("/:id", adminOnly, facilityHandler.Update)
}
