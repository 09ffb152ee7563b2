package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/instantfun/soundboard/internal/auth"
	"github.com/instantfun/soundboard/internal/config"
	"github.com/instantfun/soundboard/internal/database"
	"github.com/instantfun/soundboard/internal/models"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Development seed data: a handful of users, a pile of sounds, and some
// collections and favorites to click around with. Run against a throwaway
// database only.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	if err := database.Initialize(cfg.DatabaseURL, false); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatalf("❌ Failed to migrate: %v", err)
	}

	svc := auth.NewService(cfg.JWTSecret, bcrypt.MinCost)

	fmt.Println("🌱 Seeding...")

	users := make([]*models.User, 0, 5)
	for i := 0; i < 5; i++ {
		resp, err := svc.Register(auth.RegisterRequest{
			Username: gofakeit.Username(),
			Email:    gofakeit.Email(),
			Password: "password1",
		})
		if err != nil {
			log.Fatalf("❌ Failed to create user: %v", err)
		}
		users = append(users, &resp.User)
	}

	sounds := make([]*models.Sound, 0, 40)
	for i := 0; i < 40; i++ {
		owner := users[rand.Intn(len(users))]
		sound := &models.Sound{
			Name:       gofakeit.NounConcrete() + " " + gofakeit.AdjectiveDescriptive(),
			URL:        fmt.Sprintf("https://cdn.example.com/seed/%s.mp3", gofakeit.UUID()),
			Color:      gofakeit.HexColor(),
			Duration:   gofakeit.Float64Range(0.5, 29),
			Size:       int64(gofakeit.Number(10_000, 4_000_000)),
			UploaderID: &owner.ID,
		}
		if err := database.DB.Create(sound).Error; err != nil {
			log.Fatalf("❌ Failed to create sound: %v", err)
		}
		sounds = append(sounds, sound)
	}

	for _, user := range users {
		collection := &models.Collection{
			Name:        gofakeit.Hobby(),
			Description: gofakeit.Sentence(8),
			OwnerID:     user.ID,
			IsPublic:    gofakeit.Bool(),
		}
		if err := database.DB.Create(collection).Error; err != nil {
			log.Fatalf("❌ Failed to create collection: %v", err)
		}
		for _, i := range rand.Perm(len(sounds))[:6] {
			if err := database.DB.Model(collection).Association("Sounds").Append(sounds[i]); err != nil {
				log.Fatalf("❌ Failed to add sound to collection: %v", err)
			}
		}

		for _, i := range rand.Perm(len(sounds))[:8] {
			favorite := &models.Favorite{UserID: user.ID, SoundID: sounds[i].ID}
			if err := database.DB.Create(favorite).Error; err != nil {
				log.Fatalf("❌ Failed to create favorite: %v", err)
			}
		}
	}

	fmt.Printf("✅ Seeded %d users, %d sounds, %d collections\n", len(users), len(sounds), len(users))
	fmt.Println("   All passwords are: password1")
}
