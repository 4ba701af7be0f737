package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"minidocto/internal/config"
	"minidocto/internal/db"
	"minidocto/internal/model"
	"minidocto/internal/repository"
)

// Demo accounts. Every account gets the same throwaway password so the API
// can be exercised by hand after seeding.
const seedPassword = "password123"

type seedUser struct {
	name  string
	email string
	role  string
	// score is optional; professionals without one get a random score the
	// same way registration assigns it. A fixed zero stays zero.
	score *int
	// open slots as hour offsets from tomorrow 09:00 UTC
	slotOffsets []int
}

func intp(v int) *int { return &v }

var seedUsers = []seedUser{
	{name: "Dr. Alice Bennett", email: "alice@minidocto.dev", role: model.RoleProfessional, score: intp(92), slotOffsets: []int{0, 1, 2}},
	{name: "Dr. Marc Dupont", email: "marc@minidocto.dev", role: model.RoleProfessional, score: intp(58), slotOffsets: []int{0, 3}},
	{name: "Dr. Sofia Ricci", email: "sofia@minidocto.dev", role: model.RoleProfessional, slotOffsets: []int{1, 4, 5}},
	{name: "Paul Martin", email: "paul@minidocto.dev", role: model.RolePatient},
	{name: "Jeanne Morel", email: "jeanne@minidocto.dev", role: model.RolePatient},
}

// seedScore resolves the score an account is seeded with.
func seedScore(su seedUser) int {
	if su.role != model.RoleProfessional {
		return 0
	}
	if su.score != nil {
		return *su.score
	}
	return rand.Intn(100)
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.AvailabilitySlot{}, &model.Appointment{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	slotRepo := repository.NewAvailabilityRepository(gormDB)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	base := time.Now().UTC().AddDate(0, 0, 1).Truncate(24 * time.Hour).Add(9 * time.Hour)

	created, skipped := 0, 0
	for _, su := range seedUsers {
		if existing, err := userRepo.FindByEmail(ctx, su.email); err == nil && existing != nil {
			skipped++
			continue
		} else if err != nil && err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check account %s: %v", su.email, err)
		}

		user := &model.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: string(hash),
			Role:         su.role,
			Score:        seedScore(su),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create account %s: %v", su.email, err)
		}

		for _, off := range su.slotOffsets {
			slot := &model.AvailabilitySlot{
				UserID:   user.ID,
				StartsAt: base.Add(time.Duration(off) * time.Hour),
			}
			if err := slotRepo.Add(ctx, slot); err != nil {
				log.Fatalf("Failed to add slot for %s: %v", su.email, err)
			}
		}
		created++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New accounts created: %d", created)
	log.Printf("  - Existing accounts skipped: %d", skipped)
}
