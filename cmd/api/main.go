package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/akasem/divvy/docs"
	"github.com/akasem/divvy/internal/activity"
	"github.com/akasem/divvy/internal/config"
	"github.com/akasem/divvy/internal/database"
	"github.com/akasem/divvy/internal/exchange"
	"github.com/akasem/divvy/internal/expense"
	expensesplit "github.com/akasem/divvy/internal/expense/split"
	"github.com/akasem/divvy/internal/group"
	"github.com/akasem/divvy/internal/settlement"
	"github.com/akasem/divvy/internal/user"
	mw "github.com/akasem/divvy/pkg/middleware"
)

// @title           Divvy API
// @version         1.0
// @description     Multi-currency shared expense tracking with exact splits and settlement simplification.
// @BasePath        /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	// Exchange rate service with snapshot caching
	rateProvider := exchange.NewHTTPProvider(cfg.ExchangeAPIURL)
	rateService := exchange.NewService(rateProvider, cfg.ExchangeTTL)

	// Split Strategy Factory (Factory Pattern)
	splitFactory := expensesplit.NewFactory()

	// Activity feed
	activityRepo := activity.NewRepository(db)
	activityService := activity.NewService(activityRepo)
	activityHandler := activity.NewHandler(activityService)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, activityService)
	groupHandler := group.NewHandler(groupService)

	// Expense feature (with split factory and rate service injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, groupRepo, splitFactory, rateService, activityService)
	expenseHandler := expense.NewHandler(expenseService)

	// Settlement feature
	settlementRepo := settlement.NewRepository(db)
	settlementService := settlement.NewService(settlementRepo, expenseService)
	settlementHandler := settlement.NewHandler(settlementService, userService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.TestUserMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Mount feature routers
		r.Mount("/users", userHandler.Routes())
		r.Mount("/groups", groupHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/settlements", settlementHandler.Routes())
		r.Mount("/activity", activityHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
