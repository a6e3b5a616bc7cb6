// Command seed migrates the database and loads a building from a JSON file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/jascaniojs/parking-business-api/internal/config"
	"github.com/jascaniojs/parking-business-api/internal/repository/sqlstore"
	"github.com/jascaniojs/parking-business-api/internal/seed"
	"github.com/jascaniojs/parking-business-api/internal/service"
)

func main() {
	path := flag.String("file", "initial-seed.json", "seed file")
	adminToken := flag.Bool("admin-token", false, "print a development admin token after seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}

	data, err := seed.Load(*path)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	ctx := context.Background()
	store, err := sqlstore.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Could not open database: %v", err)
	}
	defer store.Close()

	summary, err := seed.Run(ctx, service.NewBuildingService(store), data)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeding completed: building %d, %d prices, %d spaces.", summary.Building.ID, summary.Prices, summary.Spaces)

	if *adminToken {
		token, err := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiration).IssueToken("seed-admin", service.RoleAdmin)
		if err != nil {
			log.Fatalf("Could not issue admin token: %v", err)
		}
		fmt.Println(token)
	}
}
