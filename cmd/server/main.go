package main // Entry point package

import (
	"context" // bounds startup database calls
	"log"     // Logging library
	"time"

	"github.com/joho/godotenv"    // loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/viamundo/travel-sales-api/internal/config"
	"github.com/viamundo/travel-sales-api/internal/database"
	"github.com/viamundo/travel-sales-api/internal/handler"
	"github.com/viamundo/travel-sales-api/internal/queue"
	"github.com/viamundo/travel-sales-api/internal/repository"
	"github.com/viamundo/travel-sales-api/internal/router"
)

func main() {
	// Missing .env is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	// Redis is optional: a nil client turns the cache and the rate
	// limiter into pass-throughs.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	customers := repository.NewCustomerRepo(db)
	packages := repository.NewPackageRepo(db)
	quotes := repository.NewQuoteRepo(db)
	bookings := repository.NewBookingRepo(db)
	payments := repository.NewPaymentRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	auth := handler.NewAuthHandler(cfg, users, tokens)
	admin := router.AdminHandlers{
		Customers: handler.NewCustomerHandler(customers),
		Packages:  handler.NewPackageHandler(packages),
		Quotes:    handler.NewQuoteHandler(quotes, customers, packages),
		Bookings:  handler.NewBookingHandler(bookings, customers, packages),
		Payments:  handler.NewPaymentHandler(payments, bookings),
		Sales:     handler.NewSalesHandler(quotes, bookings),
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterPublic(e, admin.Packages, cacheCfg, rdb)
	router.RegisterAdmin(e, admin, cfg.JWTSecret, rlCfg, rdb)

	// The consumer reconnects on its own; a missing broker only costs
	// the event log.
	go func() {
		if err := queue.StartSalesConsumer(); err != nil {
			log.Printf("sales consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
