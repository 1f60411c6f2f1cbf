package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/yassine/stagelink/internal/server"
)

// @title           StageLink API
// @version         1.0
// @description     Internship placement platform connecting candidates and companies.

// @contact.name   StageLink Team
// @contact.email  support@stagelink.example

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	// Optional .env for local development. Missing file is fine.
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		log.Fatalf("failed to initialize server: %v", err)
	}

	if err := srv.Run(); err != nil {
		log.Fatalf("server terminated with error: %v", err)
	}
}
