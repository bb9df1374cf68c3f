package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/md-ensino/medquest/internal/api/http"
	auth "github.com/md-ensino/medquest/internal/auth/middleware"
	"github.com/md-ensino/medquest/internal/config"
	"github.com/md-ensino/medquest/internal/db"
	"github.com/md-ensino/medquest/internal/generator"
	"github.com/md-ensino/medquest/internal/question"
	rbac "github.com/md-ensino/medquest/internal/rbac"
	"github.com/md-ensino/medquest/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := question.NewSQLStore(dbh, cfg.DBDriver)

	materials, err := storage.NewFSStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("material store init failed: %v", err)
	}

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)

	// --- Generation webhook ---
	gen := generator.NewClient(cfg.WebhookURL, cfg.WebhookTimeout)
	parser := generator.NewParser(generator.Options{
		DefaultDifficulty: cfg.DefaultDifficulty,
		DefaultModel:      cfg.DefaultModel,
	})

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	// Webhook generation can take minutes; the route timeout must outlive the
	// client timeout plus retries.
	r.Use(middleware.Timeout(cfg.WebhookTimeout*3 + time.Minute))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/signup", api.SignupHandler(dbh, authSvc))
	r.Post("/auth/login", api.LoginHandler(dbh, authSvc))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("question:generate")).
			Post("/questions/generate", api.GenerateQuestionHandler(gen, parser, store))

		pr.With(rbac.Require("question:list-own")).
			Get("/questions", api.ListQuestionsHandler(store))
		pr.With(rbac.Require("question:view-own")).
			Get("/questions/{questionID}", api.GetQuestionHandler(store))

		pr.With(rbac.Require("question:export")).
			Get("/questions/export", api.ExportQuestionsHandler(store))
		pr.With(rbac.Require("question:export")).
			Get("/questions/{questionID}/export", api.ExportQuestionsHandler(store))

		pr.With(rbac.Require("material:upload")).
			Post("/materials", api.UploadMaterialHandler(materials))
		// Upload permission alone also grants read-back of stored files.
		pr.With(rbac.RequireAny("material:view", "material:upload")).
			Get("/materials/{ref}", api.GetMaterialHandler(materials))

		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", api.ChangePasswordHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, webhook=%s)", cfg.HTTPAddr, cfg.DBDriver, cfg.WebhookURL)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
