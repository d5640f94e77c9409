package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rafiul/lifesure-api/internal/config"
	"github.com/rafiul/lifesure-api/internal/database"
	"github.com/rafiul/lifesure-api/internal/models"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Println("Usage: promote-admin <email> [role]")
		os.Exit(1)
	}

	email := os.Args[1]
	role := models.RoleAdmin
	if len(os.Args) == 3 {
		role = os.Args[2]
	}

	if !models.ValidRole(role) {
		log.Fatalf("Invalid role: %s", role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	result, err := db.Pool.Exec(ctx, `
		UPDATE users SET role = $1, updated_at = NOW()
		WHERE email = $2
	`, role, email)
	if err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	if result.RowsAffected() == 0 {
		log.Fatalf("No user found with email: %s", email)
	}

	fmt.Printf("Successfully set %s to role %s\n", email, role)
}
