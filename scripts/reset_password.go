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

// Sends a password reset email through the gateway auth service.
// Usage: go run scripts/reset_password.go <email>
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if len(os.Args) != 2 {
		fmt.Println("Usage: reset_password <email>")
		os.Exit(1)
	}
	email := os.Args[1]

	cfg := config.Load()
	gw := gateway.NewClient(cfg.Gateway)

	if err := gw.RecoverPassword(context.Background(), email); err != nil {
		log.Fatalf("Failed to request password reset: %v", err)
	}

	fmt.Printf("Password reset email sent to %s\n", email)
}
