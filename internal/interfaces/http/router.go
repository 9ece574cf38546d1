package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pagpro/fianca-api/internal/application/analytics"
	"github.com/pagpro/fianca-api/internal/application/applications"
	"github.com/pagpro/fianca-api/internal/application/auth"
	"github.com/pagpro/fianca-api/internal/application/commissions"
	"github.com/pagpro/fianca-api/internal/application/properties"
	"github.com/pagpro/fianca-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	PropertyUC    *properties.UseCase
	ApplicationUC *applications.UseCase
	CommissionUC  *commissions.UseCase
	AnalyticsUC   *analytics.UseCase
	JWTSecret     string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Imóveis
	props := protected.Group("/properties")
	propertyHandler := NewPropertyHandler(deps.PropertyUC)
	props.Post("/", propertyHandler.Create)
	props.Get("/", propertyHandler.List)
	props.Get("/:id", propertyHandler.GetByID)

	// Solicitações de seguro fiança
	apps := protected.Group("/applications")
	applicationHandler := NewApplicationHandler(deps.ApplicationUC)
	apps.Post("/", applicationHandler.Create)
	apps.Get("/", applicationHandler.List)
	apps.Get("/:id", applicationHandler.GetByID)
	apps.Patch("/:id/status", applicationHandler.UpdateStatus)
	apps.Post("/:id/reanalyze", applicationHandler.Reanalyze)

	// Parcelas do cronograma
	protected.Patch("/payments/:id/status", applicationHandler.UpdatePaymentStatus)

	// Comissões
	comm := protected.Group("/commissions")
	commissionHandler := NewCommissionHandler(deps.CommissionUC)
	comm.Get("/", commissionHandler.List)
	comm.Get("/summary", commissionHandler.Summary)
	comm.Patch("/:id/status", RequireRole(entity.RoleAdmin), commissionHandler.UpdateStatus)
	comm.Get("/rates", commissionHandler.ListRates)
	comm.Post("/rates", RequireRole(entity.RoleAdmin), commissionHandler.CreateRate)
	comm.Get("/payout-rules", commissionHandler.ListPayoutRules)
	comm.Put("/payout-rules", RequireRole(entity.RoleAdmin), commissionHandler.SetPayoutRule)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.AnalyticsUC)
	protected.Get("/dashboard/metrics", dashboardHandler.Metrics)
}
