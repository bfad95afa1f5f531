package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"pos-storefront/app"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		envPath := ".env"
		if err := godotenv.Overload(envPath); err != nil {
			log.Printf("Warning: .env file not found at %s, using system environment variables", envPath)
		} else {
			log.Printf("Successfully loaded environment variables from %s (overriding system variables)", envPath)
		}
	}

	role := os.Getenv("POS_ROLE")
	if role == "" {
		role = app.RoleStorefront
	}

	port := app.DefaultPort(role)
	// Remove leading colon if present
	if p := strings.TrimPrefix(os.Getenv("PORT"), ":"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			log.Fatalf("Invalid PORT %q: %v", p, err)
		}
		port = n
	}

	// Initialize application
	application, err := app.Initialize(role, port)
	if err != nil {
		log.Fatal(err)
	}
	defer application.Close()

	// Listen on 0.0.0.0 to accept connections from all interfaces
	addr := "0.0.0.0:" + strconv.Itoa(port)
	log.Printf("Server starting on %s (role %s)", addr, role)

	if err := http.ListenAndServe(addr, application.Handler); err != nil {
		log.Printf("Server failed to start: %v", err)
		application.Close()
		os.Exit(1)
	}
}
