package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/rafiul/lifesure-api/internal/config"
	"github.com/rafiul/lifesure-api/internal/database"
	"github.com/rafiul/lifesure-api/internal/handlers"
	authmw "github.com/rafiul/lifesure-api/internal/middleware"
	"github.com/rafiul/lifesure-api/internal/models"
	"github.com/rafiul/lifesure-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	policyService := services.NewPolicyService(db)
	applicationService := services.NewApplicationService(db)
	blogService := services.NewBlogService(db)
	claimService := services.NewClaimService(db)
	paymentService := services.NewPaymentService(db, cfg.BDTToUSD, cfg.GatewaySecretKey)
	reviewService := services.NewReviewService(db)
	newsletterService := services.NewNewsletterService(db)
	emailService := services.NewEmailService(cfg.SMTP)

	authHandler := handlers.NewAuthHandler(cfg, userService, tokenService, jwtService)
	userHandler := handlers.NewUserHandler(userService)
	policyHandler := handlers.NewPolicyHandler(policyService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, policyService, userService, emailService)
	blogHandler := handlers.NewBlogHandler(blogService, userService)
	claimHandler := handlers.NewClaimHandler(claimService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	publicHandler := handlers.NewPublicHandler(reviewService, newsletterService, userService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/:provider/consent", authHandler.GetConsentURL)
	auth.Get("/:provider/callback", authHandler.Callback)
	auth.Post("/exchange", authHandler.ExchangeCode)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	// Public catalog and landing-page data.
	api.Get("/policies", policyHandler.List)
	api.Get("/policies/:id", policyHandler.Get)
	api.Post("/quote", policyHandler.Quote)
	api.Get("/blogs", blogHandler.List)
	api.Get("/blogs/:id", blogHandler.Get)
	api.Get("/reviews", publicHandler.ListReviews)
	api.Get("/agents", publicHandler.ListAgents)
	api.Post("/newsletter", publicHandler.SubscribeNewsletter)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	// The "me" segment resolves to the session email inside the
	// handler, so the profile surface needs a single wildcard.
	protected.Get("/users/:email", userHandler.GetByEmail)
	protected.Patch("/users/:email", userHandler.UpdateProfile)
	protected.Post("/users", userHandler.CreateRecord)

	protected.Post("/applications", applicationHandler.Submit)
	protected.Get("/applications", applicationHandler.List)

	protected.Post("/claims", claimHandler.Create)
	protected.Get("/claims", claimHandler.List)

	protected.Post("/payments/create-intent", paymentHandler.CreateIntent)
	protected.Post("/payments/confirm", paymentHandler.Confirm)
	protected.Get("/payments", paymentHandler.List)

	protected.Post("/reviews", publicHandler.CreateReview)

	// Agents and admins author blog content and settle claims.
	staff := protected.Group("")
	staff.Use(authmw.RequireRole(userService, models.RoleAgent, models.RoleAdmin))
	staff.Post("/blogs", blogHandler.Create)
	staff.Patch("/blogs/:id", blogHandler.Update)
	staff.Delete("/blogs/:id", blogHandler.Delete)
	staff.Patch("/claims/:id/status", claimHandler.UpdateStatus)

	agent := protected.Group("/agent")
	agent.Use(authmw.RequireRole(userService, models.RoleAgent))
	agent.Get("/applications", applicationHandler.ListForAgent)
	agent.Patch("/applications/:id/status", applicationHandler.UpdateStatusAsAgent)

	admin := protected.Group("")
	admin.Use(authmw.RequireRole(userService, models.RoleAdmin))
	admin.Get("/users", userHandler.List)
	admin.Patch("/users/:email/role", userHandler.UpdateRole)
	admin.Delete("/users/:email", userHandler.Delete)
	admin.Post("/policies", policyHandler.Create)
	admin.Patch("/policies/:id", policyHandler.Update)
	admin.Delete("/policies/:id", policyHandler.Delete)
	admin.Patch("/applications/:id/status", applicationHandler.UpdateStatus)
	admin.Patch("/applications/:id/assign-agent", applicationHandler.AssignAgent)
	admin.Get("/payments/summary", paymentHandler.Summary)

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
