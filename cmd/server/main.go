package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gymdesk_echo/internal/handlers"
	authMiddleware "gymdesk_echo/internal/middleware"
	"gymdesk_echo/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize Firebase
	credPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credPath == "" {
		credPath = "./firebase-service-account.json"
	}

	authClient, err := services.InitFirebase(credPath)
	if err != nil {
		log.Printf("Warning: Firebase initialization failed: %v", err)
		log.Println("Auth features will not work until valid credentials are provided")
	}

	// Initialize Database
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := services.InitDB(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migration and seed starter plans
	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	if err := services.SeedDefaultPlans(db); err != nil {
		log.Fatalf("Failed to seed membership plans: %v", err)
	}

	// Initialize Redis (cache + member change feed)
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	cache, err := services.NewRedisCache(redisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer cache.Close()

	feed := services.NewChangeFeed(cache)
	memberService := services.NewMemberService(db, feed, cache)

	// Snapshot: primed from the database, kept live by the change feed
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshot := services.NewSnapshotStore()
	go func() {
		if err := snapshot.Listen(ctx, db, cache); err != nil && err != context.Canceled {
			log.Printf("snapshot listener stopped: %v", err)
		}
	}()

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = authMiddleware.CustomErrorHandler

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authClient)
	planHandler := handlers.NewPlanHandler(db)
	memberHandler := handlers.NewMemberHandler(db, memberService)
	paymentHandler := handlers.NewPaymentHandler(db, memberService)
	dashboardHandler := handlers.NewDashboardHandler(snapshot, cache)

	// Public routes
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.POST("/auth/login", authHandler.HandleLogin)
	e.POST("/auth/logout", authHandler.HandleLogout)

	// Protected API routes
	api := e.Group("/api")
	api.Use(authMiddleware.RequireAuth(authClient))

	// Plan routes
	api.GET("/plans", planHandler.ListPlans)
	api.POST("/plans", planHandler.CreatePlan)
	api.GET("/plans/:id", planHandler.GetPlan)
	api.PUT("/plans/:id", planHandler.UpdatePlan)
	api.DELETE("/plans/:id", planHandler.DeletePlan)

	// Member routes
	api.GET("/members", memberHandler.ListMembers)
	api.POST("/members", memberHandler.RegisterMember)
	api.GET("/members/:id", memberHandler.GetMember)
	api.PUT("/members/:id", memberHandler.UpdateMember)
	api.DELETE("/members/:id", memberHandler.DeleteMember)

	// Payment routes
	api.POST("/payments", paymentHandler.PostPayment)
	api.GET("/payments", paymentHandler.ListPayments)
	api.GET("/members/:id/payments", paymentHandler.ListMemberPayments)

	// Dashboard routes
	api.GET("/dashboard/stats", dashboardHandler.Stats)
	api.GET("/dashboard/renewals", dashboardHandler.UpcomingRenewals)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
