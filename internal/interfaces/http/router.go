package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contenedor-api/internal/application/auth"
	"github.com/jhoicas/Contenedor-api/internal/application/batch"
	"github.com/jhoicas/Contenedor-api/internal/application/rules"
)

// Roles del operador.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	BatchUC   *batch.BatchUseCase
	RuleUC    *rules.RuleUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(RoleAdmin, RoleOperador)

	batches := protected.Group("/batches", anyRole)
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches.Post("/", batchHandler.Create)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Get("/:id/zip", batchHandler.Zip)
	batches.Get("/:id/report", batchHandler.Report)

	// Las reglas las consulta cualquier operador; sólo admin las modifica.
	rulesGroup := protected.Group("/rules", anyRole)
	ruleHandler := NewRuleHandler(deps.RuleUC)
	adminOnly := RequireRole(RoleAdmin)
	rulesGroup.Get("/", ruleHandler.List)
	rulesGroup.Post("/", adminOnly, ruleHandler.Create)
	rulesGroup.Post("/import", adminOnly, ruleHandler.Import)
	rulesGroup.Put("/:id", adminOnly, ruleHandler.Update)
	rulesGroup.Delete("/:id", adminOnly, ruleHandler.Delete)
}
