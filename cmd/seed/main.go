package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/ecofinds/ecofinds-api/config"
	"github.com/ecofinds/ecofinds-api/internal/domain/entity"
	"github.com/ecofinds/ecofinds-api/pkg/helpers"
)

type seedProduct struct {
	title       string
	description string
	category    string
	price       float64
}

var sampleListings = []seedProduct{
	{"iPhone 12 64GB", "Lightly used iPhone 12 in good condition, battery health 87%, comes with original cable.", "electronics", 4200},
	{"Vintage denim jacket", "Classic 90s denim jacket, size M, minor fading that adds to the character.", "clothing", 450},
	{"The Pragmatic Programmer", "Paperback in great shape, no markings inside, a must-read for developers.", "books", 180},
	{"Wooden coffee table", "Solid oak coffee table, a few scratches on the top but very sturdy.", "home", 900},
	{"Yoga mat", "Barely used 6mm yoga mat, cleaned and ready for a new owner.", "sports", 120},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@ecofinds.local"
	password := "password123"
	username := "demoUser"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, username, email, hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s username=%s password=%s\n", userID, email, username, password)

	for _, p := range sampleListings {
		var id string
		err := db.QueryRow(`
			INSERT INTO products (title, description, category, price, image, owner_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, p.title, p.description, p.category, p.price, entity.PlaceholderImage, userID).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed product %q: %v", p.title, err)
		}
		fmt.Printf("seeded product: id=%s title=%q category=%s price=%.2f\n", id, p.title, p.category, p.price)
	}
}
