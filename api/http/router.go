package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/giftlink/giftlink-backend/api/http/handlers"
)

// Register wires all HTTP routes onto the given Fiber app. Routes that
// mutate user-owned state sit behind the bearer-token middleware; the
// update route additionally reads the account email from the Email header.
func Register(app *fiber.App, auth *handlers.AuthHandler, gift *handlers.GiftHandler, health *handlers.HealthHandler, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Put("/update", authMW, auth.Update)

	g := v1.Group("/gifts")
	g.Get("/", gift.List)
	g.Get("/:id", gift.GetByID)
	g.Post("/", authMW, gift.Post)

	v1.Get("/search", gift.Search)
}
