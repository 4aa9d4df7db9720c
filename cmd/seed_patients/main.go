package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/atharva12306/ai-ayurvedic-diet/config"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/database"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/models"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/platform/logger"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/service"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/types"
)

var demoPatients = []types.CreatePatientRequest{
	{
		Name:             "Ananya Rao",
		Email:            "ananya.rao@example.com",
		Prakriti:         "Vata",
		Allergies:        []string{"peanuts"},
		HealthConditions: []string{"constipation"},
		DietPreferences:  []string{"Vegetarian"},
	},
	{
		Name:             "Vikram Singh",
		Email:            "vikram.singh@example.com",
		Prakriti:         "Pitta",
		HealthConditions: []string{"acidity", "hypertension"},
	},
	{
		Name:             "Lakshmi Iyer",
		Email:            "lakshmi.iyer@example.com",
		Prakriti:         "Kapha",
		Allergies:        []string{"dairy"},
		HealthConditions: []string{"type 2 diabetes"},
		DietPreferences:  []string{"Vegetarian"},
	},
	{
		Name:     "Arjun Mehta",
		Email:    "arjun.mehta@example.com",
		Prakriti: "Vata-Pitta",
	},
	{
		Name:             "Farah Khan",
		Email:            "farah.khan@example.com",
		Prakriti:         "Pitta-Kapha",
		Allergies:        []string{"gluten"},
		HealthConditions: []string{"bloating"},
	},
}

func main() {
	practitionerFlag := flag.String("practitioner", "", "Practitioner id owning the patients (random when empty)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	zl, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zl.Sync()

	practitioner := uuid.New()
	if *practitionerFlag != "" {
		if practitioner, err = uuid.Parse(*practitionerFlag); err != nil {
			log.Fatalf("Invalid practitioner id: %v", err)
		}
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg, zl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if _, err := database.RunMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	patients := service.NewPatientService(db)
	for i := range demoPatients {
		req := demoPatients[i]
		var existing models.Patient
		if err := db.Where("practitioner_id = ? AND email = ?", practitioner, req.Email).First(&existing).Error; err == nil {
			log.Printf("Patient %s already exists, skipping...", req.Email)
			continue
		}
		p, err := patients.Create(ctx, practitioner, &req)
		if err != nil {
			log.Printf("Failed to create patient %s: %v", req.Email, err)
			continue
		}
		log.Printf("Created patient %s (%s) prakriti=%s", p.Name, p.ID, p.Prakriti)
	}

	token, err := service.NewJWTValidator(cfg.JWTSecret).SignToken(&types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   practitioner.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
		UserID:   practitioner,
		Username: "demo-practitioner",
		Role:     "practitioner",
	})
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	log.Printf("Practitioner: %s", practitioner)
	log.Printf("Bearer token (24h): %s", token)
}
