package main

import (
	"log"

	"campusnet/internal/app"
	"campusnet/pkg/config"
)

// @title           campusnet API
// @version         1.0
// @description     Campus social network: accounts, profiles, follows and posts.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Failed to run app: %v", err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		log.Fatalf("Failed to shutdown gracefully: %v", err)
	}
}
