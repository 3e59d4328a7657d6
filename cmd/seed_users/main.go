// Command seed_users populates the database with a handful of development
// accounts and profiles so the frontend has something to render.
package main

import (
	"context"
	"log"

	"github.com/devconnect/backend/config"
	"github.com/devconnect/backend/internal/database"
	"github.com/devconnect/backend/internal/service"
	"github.com/devconnect/backend/internal/types"
)

type seedUser struct {
	name    string
	email   string
	profile types.UpsertProfileRequest
}

func strptr(s string) *string { return &s }

var seedUsers = []seedUser{
	{
		name:  "Ada Park",
		email: "ada@example.com",
		profile: types.UpsertProfileRequest{
			Status:   "Senior Developer",
			Skills:   "Go, PostgreSQL, Redis",
			Company:  strptr("Initech"),
			Location: strptr("Portland, OR"),
			Bio:      strptr("Backend developer who still misses Plan 9."),
		},
	},
	{
		name:  "Marcus Webb",
		email: "marcus@example.com",
		profile: types.UpsertProfileRequest{
			Status:         "Full Stack Developer",
			Skills:         "JavaScript, React, Node",
			GithubUsername: strptr("marcuswebb"),
		},
	},
	{
		name:  "Ines Duarte",
		email: "ines@example.com",
		profile: types.UpsertProfileRequest{
			Status:   "Student",
			Skills:   "Python, SQL",
			Location: strptr("Lisbon"),
		},
	},
}

func main() {
	if config.IsProduction() {
		log.Fatal("refusing to seed a production database")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	ctx := context.Background()
	auth := service.NewAuthService(db, cfg.JWTSecret)
	profiles := service.NewProfileService(db)

	for _, su := range seedUsers {
		token, err := auth.Register(ctx, su.name, su.email, "password123")
		if err != nil {
			log.Printf("skipping %s: %v", su.email, err)
			continue
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			log.Fatalf("seed token round-trip failed: %v", err)
		}

		if _, err := profiles.Upsert(ctx, claims.UserID, &su.profile); err != nil {
			log.Fatalf("failed to seed profile for %s: %v", su.email, err)
		}
		log.Printf("seeded %s", su.email)
	}
}
