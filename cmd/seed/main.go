package main

import (
	"context"
	"log"
	"os"
	"time"

	"flamingo/internal/database"
	"flamingo/internal/domain"
	"flamingo/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "flamingo.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (children first to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM override_audits")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM offers")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	offers := repository.NewOfferRepository(db)
	reservations := repository.NewReservationRepository(db)
	payments := repository.NewPaymentRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@flamingo.dz",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Administrateur",
		IsApproved:   true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := users.Create(ctx, &admin); err != nil {
		log.Fatal("seed admin:", err)
	}

	agencyHash, _ := bcrypt.GenerateFromPassword([]byte("agency123"), bcrypt.DefaultCost)
	agency := domain.User{
		Email:             "contact@voyagesnord.dz",
		PasswordHash:      string(agencyHash),
		Role:              domain.RoleAgency,
		Name:              "Nadia K",
		AgencyName:        "Voyages Nord",
		Address:           "12 rue des Lilas, Oran",
		RC:                "RC-445-221",
		Phone:             "+213 555 20 30 40",
		IsProfileComplete: true,
		IsApproved:        true,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if err := users.Create(ctx, &agency); err != nil {
		log.Fatal("seed agency:", err)
	}

	pendingHash, _ := bcrypt.GenerateFromPassword([]byte("agency123"), bcrypt.DefaultCost)
	pending := domain.User{
		Email:        "hello@sudtours.dz",
		PasswordHash: string(pendingHash),
		Role:         domain.RoleAgency,
		Name:         "Omar T",
		AgencyName:   "Sud Tours",
		IsApproved:   false,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := users.Create(ctx, &pending); err != nil {
		log.Fatal("seed pending agency:", err)
	}

	// ================== OFFERS ==================
	log.Println("Creating offers...")

	istanbul := domain.Offer{
		Title:   "Istanbul getaway - 7 nights",
		Country: "Turkey",
		Cities:  []string{"Istanbul"},
		Hotels: []domain.Hotel{
			{Name: "Grand Bosphorus", Stars: 4},
		},
		DepartDates: []domain.DepartDate{
			{Label: "October departure", Date: "2026-10-05", DateRetour: "2026-10-12"},
			{Label: "November departure", Date: "2026-11-02", DateRetour: "2026-11-09"},
		},
		Description: "A week on both sides of the Bosphorus, guided visits included.",
		DailyProgram: []domain.DailyProgram{
			{Day: 1, Content: "Arrival and check-in"},
			{Day: 2, Content: "Sultanahmet and Hagia Sophia"},
			{Day: 3, Content: "Bosphorus cruise"},
		},
		Inclusions: []string{"Flights", "Half board", "Airport transfers"},
		Exclusions: []string{"Visa fees", "Lunches"},
		PricingRules: []domain.PricingRule{
			{MinAge: 0, MaxAge: 1, Price: 0},
			{MinAge: 2, MaxAge: 11, Price: 85000},
			{MinAge: 12, MaxAge: 120, Price: 145000},
		},
		CancellationPolicy: []domain.CancellationPolicy{
			{MinDaysBeforeDeparture: 30, RefundPercent: 80},
			{MinDaysBeforeDeparture: 15, RefundPercent: 50},
		},
		TotalSeats:     40,
		AvailableSeats: 40,
		AlertThreshold: 5,
		RoomTypes: []domain.RoomType{
			{Label: "single", Price: 30000, Capacity: 1, PricePerPerson: true},
			{Label: "double", Price: 18000, Capacity: 2, PricePerPerson: true},
			{Label: "triple", Price: 36000, Capacity: 3, PricePerPerson: false},
		},
		CreatedBy: admin.ID,
		CreatedAt: time.Now(),
	}
	if err := offers.Create(ctx, &istanbul); err != nil {
		log.Fatal("seed offer:", err)
	}

	omra := domain.Offer{
		Title:   "Omra - 12 days",
		Country: "Saudi Arabia",
		Cities:  []string{"Mecca", "Medina"},
		PricingRules: []domain.PricingRule{
			{MinAge: 0, MaxAge: 120, Price: 320000},
		},
		TotalSeats:     25,
		AvailableSeats: 25,
		AlertThreshold: 3,
		RoomTypes: []domain.RoomType{
			{Label: "quad", Price: 120000, Capacity: 4, PricePerPerson: false},
			{Label: "double", Price: 90000, Capacity: 2, PricePerPerson: false},
		},
		CreatedBy: admin.ID,
		CreatedAt: time.Now(),
	}
	if err := offers.Create(ctx, &omra); err != nil {
		log.Fatal("seed offer:", err)
	}

	// ================== DEMO RESERVATION ==================
	log.Println("Creating a demo reservation with a pending payment...")

	demo := domain.Reservation{
		OfferID:  istanbul.ID,
		AgencyID: agency.ID,
		Clients: []domain.Client{
			{FullName: "Amine Benali", BirthDate: "1988-03-14", Passport: "19CV88231", RoomTypeSelected: "double", PrixFinal: 163000},
			{FullName: "Sara Benali", BirthDate: "1991-07-22", Passport: "19CV88232", RoomTypeSelected: "double", PrixFinal: 163000},
		},
		Status:             domain.ReservationPending,
		TotalPrice:         326000,
		MontantPaye:        0,
		ResteAPayer:        326000,
		DepartDateSelected: "2026-10-05",
		ReturnDateSelected: "2026-10-12",
		CreatedAt:          time.Now(),
	}
	if err := reservations.Create(ctx, &demo); err != nil {
		log.Fatal("seed reservation:", err)
	}

	acompte := domain.Payment{
		ReservationID: demo.ID,
		Amount:        100000,
		Method:        domain.MethodBank,
		Type:          domain.TypeAcompte,
		ProofURL:      "/static/uploads/proofs/2/seed_receipt.pdf",
		Status:        domain.PaymentPending,
		Comment:       "Bank transfer receipt attached",
		CreatedAt:     time.Now(),
	}
	if err := payments.Create(ctx, &acompte); err != nil {
		log.Fatal("seed payment:", err)
	}

	demo.PaymentIDs = []int64{acompte.ID}
	if err := reservations.Update(ctx, &demo); err != nil {
		log.Fatal("seed payment link:", err)
	}

	log.Println("Seed complete.")
	log.Println("  admin:  admin@flamingo.dz / admin123")
	log.Println("  agency: contact@voyagesnord.dz / agency123")
}
