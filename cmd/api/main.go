package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/lusakatech/rentiva-backend/internal/modules/auth"
	"github.com/lusakatech/rentiva-backend/internal/modules/booking"
	"github.com/lusakatech/rentiva-backend/internal/modules/catalog"
	"github.com/lusakatech/rentiva-backend/internal/modules/inventory"
	"github.com/lusakatech/rentiva-backend/internal/modules/location"
	"github.com/lusakatech/rentiva-backend/internal/modules/notify"
	"github.com/lusakatech/rentiva-backend/internal/modules/payment"
	"github.com/lusakatech/rentiva-backend/internal/modules/user"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router)

	authService := auth.NewService(userRepo, os.Getenv("JWT_SECRET"))
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Catalog, Locations & Inventory ──────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	locationRepo := location.NewPostgresRepository(db)
	locationService := location.NewService(locationRepo)
	location.NewHandler(locationService).RegisterRoutes(router)

	inventoryRepo := inventory.NewPostgresRepository(db)
	inventoryService := inventory.NewService(inventoryRepo)
	inventory.NewHandler(inventoryService).RegisterRoutes(router)

	// ── Booking admission & lifecycle ───────────────────────
	relay := notify.NewLogRelay(logger)
	bookingRepo := booking.NewPostgresRepository(db)
	bookingService := booking.NewService(bookingRepo, inventoryService, catalogService, relay)
	booking.NewHandler(bookingService, authService).RegisterRoutes(router)

	// Expire stale PENDING holds in the background.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper := booking.NewSweeper(bookingService, holdTTL(), time.Minute, logger)
	go sweeper.Run(ctx)

	// ── Payments ────────────────────────────────────────────
	paymentGateways := payment.GatewayRegistry{
		payment.ProviderMobileMoney: payment.NewMobileMoneyGateway(
			os.Getenv("MOMO_API_KEY"),
			os.Getenv("MOMO_API_SECRET"),
			os.Getenv("MOMO_BASE_URL"),
			os.Getenv("MOMO_ENV"),
		),
		payment.ProviderCard: payment.NewCardGateway(
			os.Getenv("CARD_MERCHANT_ID"),
			os.Getenv("CARD_SECRET_KEY"),
			os.Getenv("CARD_BASE_URL"),
			os.Getenv("CARD_ENV"),
		),
		payment.ProviderCash: payment.NewCashGateway(),
	}
	paymentRepo := payment.NewPostgresRepository(db)
	paymentService := payment.NewService(paymentRepo, paymentGateways, bookingService)
	payment.NewHandler(paymentService, authService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Rentiva API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func holdTTL() time.Duration {
	minutes, err := strconv.Atoi(os.Getenv("HOLD_TTL_MINUTES"))
	if err != nil || minutes <= 0 {
		return booking.DefaultHoldTTL
	}
	return time.Duration(minutes) * time.Minute
}
