package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"e-guarding-cctv/console/config"
	"e-guarding-cctv/console/gateway"

	"github.com/joho/godotenv"
)

// Registers an admin account with the gateway auth service.
// Usage: go run scripts/create_admin/create_admin.go <email> <password>
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if len(os.Args) != 3 {
		fmt.Println("Usage: create_admin <email> <password>")
		os.Exit(1)
	}
	email := os.Args[1]
	password := os.Args[2]

	cfg := config.Load()
	gw := gateway.NewClient(cfg.Gateway)

	session, err := gw.SignUp(context.Background(), email, password)
	if err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	fmt.Printf("Admin account created: %s (id %s)\n", session.User.Email, session.User.ID)
}
