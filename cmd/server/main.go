// @title           Mohami Iraq API
// @version         1.0
// @description     API for an Arabic legal-consultation marketplace: clients post consultation requests, lawyers answer with priced offers, private chats connect the two, and admins run verification and moderation.
// @BasePath        /api
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Format: Bearer <token>
package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aldoetobex/mohami-backend/internal/admin"
	"github.com/aldoetobex/mohami-backend/internal/auth"
	"github.com/aldoetobex/mohami-backend/internal/chats"
	"github.com/aldoetobex/mohami-backend/internal/lawyers"
	"github.com/aldoetobex/mohami-backend/internal/posts"
	"github.com/aldoetobex/mohami-backend/internal/reports"
	"github.com/aldoetobex/mohami-backend/pkg/kv"
	"github.com/aldoetobex/mohami-backend/pkg/logging"
	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/store"
	"github.com/aldoetobex/mohami-backend/pkg/store/memory"
)

func main() {
	_ = godotenv.Load()

	log, err := logging.New(os.Getenv("APP_ENV"))
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// Snapshot persistence is optional: no DSN means memory-only.
	var persister store.Persister
	if dsn := os.Getenv("SNAPSHOT_DSN"); dsn != "" {
		kvStore, err := kv.Open(dsn)
		if err != nil {
			log.Fatal("open snapshot store", zap.Error(err))
		}
		persister = kvStore
		log.Info("snapshot store ready", zap.String("dsn", dsn))
	} else {
		log.Warn("SNAPSHOT_DSN not set, state will not survive restarts")
	}

	st, err := memory.New(memory.Options{
		Persister: persister,
		Seed:      store.DefaultSeed(),
		Logger:    log,
	})
	if err != nil {
		log.Fatal("build store", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: auth.ErrorHandler,
	})
	app.Use(logging.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := app.Group("/api")

	// Auth
	authH := auth.NewHandler(st)
	api.Post("/signup", authH.Signup)
	api.Post("/login", authH.Login)
	api.Get("/me", auth.RequireAuth(), authH.Me)
	api.Patch("/me", auth.RequireAuth(), authH.UpdateMe)
	api.Post("/disclaimer", auth.RequireAuth(), authH.AcceptDisclaimer)

	// Posts & offers
	postH := posts.NewHandler(st)
	api.Get("/posts", auth.RequireAuth(), postH.List)
	api.Post("/posts", auth.RequireAuth(), auth.RequireRole(string(models.RoleClient)), postH.Create)
	api.Get("/posts/:id", auth.RequireAuth(), postH.Get)
	api.Patch("/posts/:id", auth.RequireAuth(), postH.Update)
	api.Delete("/posts/:id", auth.RequireAuth(), postH.Delete)
	api.Post("/posts/:id/comments", auth.RequireAuth(), postH.AddComment)

	// Chats
	chatH := chats.NewHandler(st)
	api.Post("/chats", auth.RequireAuth(), auth.RequireRole(string(models.RoleClient)), chatH.Start)
	api.Get("/chats", auth.RequireAuth(), chatH.ListMine)
	api.Get("/chats/:id", auth.RequireAuth(), chatH.Get)
	api.Post("/chats/:id/messages", auth.RequireAuth(), chatH.SendMessage)

	// Lawyer directory & ratings
	lawyerH := lawyers.NewHandler(st)
	api.Get("/lawyers", auth.RequireAuth(), lawyerH.List)
	api.Get("/lawyers/:id", auth.RequireAuth(), lawyerH.Get)
	api.Post("/lawyers/:id/rating", auth.RequireAuth(), auth.RequireRole(string(models.RoleClient)), lawyerH.Rate)

	// Reports
	reportH := reports.NewHandler(st)
	api.Post("/reports", auth.RequireAuth(), reportH.Create)
	api.Get("/reports", auth.RequireAuth(), auth.RequireRole(string(models.RoleAdmin)), reportH.List)
	api.Post("/reports/:id/resolve", auth.RequireAuth(), auth.RequireRole(string(models.RoleAdmin)), reportH.Resolve)

	// Admin / moderation
	adminH := admin.NewHandler(st)
	adminGroup := api.Group("/admin", auth.RequireAuth(), auth.RequireRole(string(models.RoleAdmin)))
	adminGroup.Get("/users", adminH.ListUsers)
	adminGroup.Post("/lawyers/:id/verification", adminH.SetVerification)
	adminGroup.Post("/users/:id/status", adminH.SetAccountStatus)
	adminGroup.Delete("/users/:id", adminH.DeleteUser)
	adminGroup.Post("/admins", adminH.CreateAdmin)
	adminGroup.Get("/audit", adminH.AuditLog)
	adminGroup.Get("/chats", adminH.ListChats)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Info("server running", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("listen", zap.Error(err))
	}
}
