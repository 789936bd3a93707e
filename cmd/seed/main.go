package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/ratewise/ratewise-backend/internal/ratings"
	"github.com/ratewise/ratewise-backend/internal/stores"
	"github.com/ratewise/ratewise-backend/internal/users"
	"github.com/ratewise/ratewise-backend/pkg/config"
	"github.com/ratewise/ratewise-backend/pkg/db"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	"github.com/ratewise/ratewise-backend/pkg/logger"
	"github.com/ratewise/ratewise-backend/pkg/security"
)

const seedPassword = "Password123!"

type seedUser struct {
	name    string
	email   string
	address string
	role    enums.Role
}

type seedStore struct {
	name       string
	email      string
	address    string
	ownerEmail string
}

var seedUsers = []seedUser{
	{"System Administrator Account", "admin@ratewise.dev", "1 Admin Plaza", enums.RoleAdmin},
	{"Octavia Winters of Market Street", "owner1@store.com", "123 Market St", enums.RoleStoreOwner},
	{"Reginald Osborne of Mall Avenue", "owner2@store.com", "456 Mall Ave", enums.RoleStoreOwner},
	{"Ulysses Fairbanks of User Lane", "user1@test.com", "789 User Ln", enums.RoleNormal},
	{"Veronica Castellan of Customer Road", "user2@test.com", "321 Customer Rd", enums.RoleNormal},
}

// One store per owner; the rest stay unassigned until an admin binds them.
var seedStores = []seedStore{
	{"Tech Haven", "contact@techhaven.com", "Silicon Valley, CA", "owner1@store.com"},
	{"Fashion Forward", "sales@fashionfwd.com", "New York, NY", "owner2@store.com"},
	{"Gourmet Bites", "yum@gourmetbites.com", "Paris, France", ""},
	{"Bookworm's Paradise", "info@bookworm.com", "London, UK", ""},
	{"Fitness First", "contact@fitnessfirst.com", "Miami, FL", ""},
	{"Gadget Grove", "support@gadgetgrove.com", "Austin, TX", ""},
	{"Organic Oasis", "hello@organicoasis.com", "Portland, OR", ""},
	{"Urban Threads", "sales@urbanthreads.com", "Los Angeles, CA", ""},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	fatalOn(ctx, logg, "load config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.App.IsProd() {
		logg.Error(ctx, "refusing to seed a production environment", nil)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	fatalOn(ctx, logg, "bootstrap database", err)
	defer dbClient.Close()

	userRepo := users.NewRepository(dbClient.DB())
	storeRepo := stores.NewRepository(dbClient.DB())
	ratingRepo := ratings.NewRepository(dbClient.DB())

	hash, err := security.HashPassword(seedPassword, cfg.Password)
	fatalOn(ctx, logg, "hash seed password", err)

	userIDs := map[string]uuid.UUID{}
	for _, u := range seedUsers {
		existing, err := userRepo.FindByEmail(ctx, u.email)
		if err == nil {
			userIDs[u.email] = existing.ID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			fatalOn(ctx, logg, "look up user", err)
		}

		created, err := userRepo.Create(ctx, users.CreateUserDTO{
			Name:         u.name,
			Email:        u.email,
			PasswordHash: hash,
			Address:      u.address,
			Role:         u.role,
		})
		fatalOn(ctx, logg, fmt.Sprintf("create user %s", u.email), err)
		userIDs[u.email] = created.ID
		logg.Info(logg.WithField(ctx, "email", u.email), "seeded user")
	}

	storeIDs := make([]uuid.UUID, 0, len(seedStores))
	for _, s := range seedStores {
		existing, err := storeRepo.Search(ctx, s.name, "name", false)
		fatalOn(ctx, logg, "look up store", err)
		if len(existing) > 0 {
			storeIDs = append(storeIDs, existing[0].ID)
			continue
		}

		dto := stores.CreateStoreDTO{Name: s.name, Email: s.email, Address: s.address}
		if s.ownerEmail != "" {
			if ownerID, ok := userIDs[s.ownerEmail]; ok {
				dto.OwnerID = &ownerID
			}
		}
		created, err := storeRepo.Create(ctx, dto)
		fatalOn(ctx, logg, fmt.Sprintf("create store %s", s.name), err)
		storeIDs = append(storeIDs, created.ID)
		logg.Info(logg.WithField(ctx, "store", s.name), "seeded store")
	}

	type seedRating struct {
		userEmail string
		store     int
		value     int
	}
	for _, rating := range []seedRating{
		{"user1@test.com", 0, 5},
		{"user1@test.com", 1, 4},
		{"user2@test.com", 0, 3},
		{"user2@test.com", 2, 5},
	} {
		userID, ok := userIDs[rating.userEmail]
		if !ok || rating.store >= len(storeIDs) {
			continue
		}
		_, err := ratingRepo.Upsert(ctx, userID, storeIDs[rating.store], rating.value)
		fatalOn(ctx, logg, "seed rating", err)
	}

	logg.Info(ctx, "seeding complete")
}

func fatalOn(ctx context.Context, logg *logger.Logger, action string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("seed failed: %s", action), err)
	os.Exit(1)
}
