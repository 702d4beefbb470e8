package main

import (
	"log"

	"github.com/gcit-apps/be-suggestion-box/config"
	"github.com/gcit-apps/be-suggestion-box/domain/auth"
	"github.com/gcit-apps/be-suggestion-box/domain/user"
)

func main() {
	config.InitConfig()
	config.InitDB()
	defer config.CloseDB()
	config.MigrateDB()

	// Seed demo accounts
	accounts := []struct {
		Name     string
		Email    string
		Password string
		Role     string
	}{
		{Name: "Administrator", Email: "admin@college.edu", Password: "admin12345", Role: auth.RoleAdmin},
		{Name: "Tashi Dorji", Email: "tashi@college.edu", Password: "password1", Role: auth.RoleStudent},
		{Name: "Pema Wangmo", Email: "pema@college.edu", Password: "password2", Role: auth.RoleStudent},
		{Name: "Karma Tshering", Email: "karma@college.edu", Password: "password3", Role: auth.RoleStudent},
	}

	for _, account := range accounts {
		id, err := user.EnsureUser(account.Name, account.Email, account.Password, account.Role)
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", account.Email, err)
		}
		log.Printf("Seeded user: %s (id=%d)", account.Email, id)
	}

	// Seed default categories
	categories := []struct {
		Name        string
		Description string
	}{
		{Name: "academics", Description: "Courses, teaching and assessment"},
		{Name: "facilities", Description: "Hostels, library, labs and campus infrastructure"},
		{Name: "events", Description: "Clubs, festivals and student activities"},
		{Name: "other", Description: "Anything else"},
	}

	for _, c := range categories {
		_, err := config.DB.Exec(`
			INSERT INTO categories (name, description)
			VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING
		`, c.Name, c.Description)
		if err != nil {
			log.Fatalf("Failed to seed category %s: %v", c.Name, err)
		}
		log.Printf("Seeded category: %s", c.Name)
	}

	log.Println("Seeding complete")
}
