package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gesielr/guiasMEIlast/internal/application/auth"
	"github.com/gesielr/guiasMEIlast/internal/application/emission"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	EmissionUC *emission.UseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
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

	// GPS (protegido)
	gpsGroup := protected.Group("/gps")
	gpsHandler := NewGPSHandler(deps.EmissionUC)
	gpsGroup.Post("/emit", gpsHandler.Emit)
	gpsGroup.Get("/", gpsHandler.List)
	gpsGroup.Get("/:id", gpsHandler.GetByID)

	// Divergências da conferência (protegido, visão operacional)
	divGroup := protected.Group("/divergences")
	divGroup.Get("/", gpsHandler.ListDivergences)
	divGroup.Post("/:id/resolve", gpsHandler.ResolveDivergence)
}
