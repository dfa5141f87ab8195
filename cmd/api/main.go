package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"flamingo/internal/database"
	"flamingo/internal/middleware"
	"flamingo/internal/modules/auth"
	"flamingo/internal/modules/offer"
	"flamingo/internal/modules/payment"
	"flamingo/internal/modules/pricing"
	"flamingo/internal/modules/report"
	"flamingo/internal/modules/reservation"
	"flamingo/internal/modules/upload"
	"flamingo/internal/notification"
	jwtsvc "flamingo/internal/pkg/jwt"
	"flamingo/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "flamingo.db"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	auditRepo := repository.NewOverrideAuditRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)
	hub := notification.NewHub()
	defer hub.Close()

	uploadStore := upload.NewStore(os.Getenv("UPLOADS_DIR"), "")

	pricingOpts := pricing.Options{
		OnUnmatchedRoom: pricing.UnmatchedRoomPolicy(os.Getenv("PRICING_UNMATCHED_ROOM")),
	}

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	offerService := offer.NewService(offerRepo, reservationRepo)
	offerHandler := offer.NewHandler(offerService)

	reservationService := reservation.NewService(offerRepo, reservationRepo, auditRepo, pricingOpts)
	reservationHandler := reservation.NewHandler(reservationService, uploadStore)

	paymentService := payment.NewService(paymentRepo, reservationRepo, offerRepo, hub)
	paymentHandler := payment.NewHandler(paymentService)

	reportService := report.NewService(paymentRepo.DB())
	reportHandler := report.NewHandler(reportService)

	uploadHandler := upload.NewHandler(uploadStore)
	alertHandler := notification.NewHandler(hub)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = upload.UploadsBaseDir
	}
	r.Static(upload.StaticURLBase, uploadsDir)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterRoutes(protected)
			offerHandler.RegisterRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)
			uploadHandler.RegisterRoutes(protected)
			alertHandler.RegisterRoutes(protected)
		}
	}

	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
