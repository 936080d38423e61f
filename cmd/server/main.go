// @title         giftlink-backend API
// @version       1.0
// @description   Backend for the GiftLink gift-exchange: account registration, login and a searchable catalog of second-hand gifts.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token issued by /auth/register and /auth/login. Formats: "Bearer <JWT>" or "<JWT>".
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/giftlink/giftlink-backend/docs"
	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	// internal imports
	"github.com/giftlink/giftlink-backend/api/http"
	"github.com/giftlink/giftlink-backend/api/http/handlers"
	"github.com/giftlink/giftlink-backend/pkg/auth"
	"github.com/giftlink/giftlink-backend/pkg/config"
	"github.com/giftlink/giftlink-backend/pkg/gifts"
	"github.com/giftlink/giftlink-backend/pkg/health"
	healthcheckers "github.com/giftlink/giftlink-backend/pkg/health/checkers"
	mongorepo "github.com/giftlink/giftlink-backend/pkg/repository/mongodb"
	"github.com/giftlink/giftlink-backend/pkg/security/jwt"
	"github.com/giftlink/giftlink-backend/pkg/security/password"
	"github.com/giftlink/giftlink-backend/pkg/storage/mongodb"
)

func main() {
	app := fiber.New()

	// Load configuration from env/.env
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Token engine; an empty secret is a fatal configuration error, the
	// process must not serve requests with an unsigned-token fallback.
	jwtGen, err := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	if err != nil {
		log.Fatalf("jwt: %v (set JWT_SECRET)", err)
	}

	// Connect to MongoDB
	client, err := mongodb.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongodb connect: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDB)

	// Wire dependencies (Clean Architecture). Repository constructors also
	// ensure collection indexes, including the unique email index.
	userRepo, err := mongorepo.NewUserRepository(db)
	if err != nil {
		log.Fatalf("init user repo: %v", err)
	}
	giftRepo, err := mongorepo.NewGiftRepository(db)
	if err != nil {
		log.Fatalf("init gift repo: %v", err)
	}

	authUC := auth.NewAuthService(userRepo, password.NewBcryptHasher(), jwtGen, logger)
	authHandler := handlers.NewAuthHandler(authUC)

	giftUC := gifts.NewService(giftRepo)
	giftHandler := handlers.NewGiftHandler(giftUC)

	// Health service: compose checkers
	readiness := health.NewService(healthcheckers.NewMongoChecker(client))
	healthHandler := handlers.NewHealthHandler(readiness)

	// JWT auth middleware for protected routes
	authMW := jwt.NewAuthMiddleware(jwtGen)

	// Register routes
	http.Register(app, authHandler, giftHandler, healthHandler, authMW)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Start server
	log.Printf("HTTP server listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
