// Command main runs the database seeder for Launchpad.
package main

import (
	"flag"
	"log"

	"launchpad/internal/config"
	"launchpad/internal/database"
	"launchpad/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numProjects := flag.Int("projects", 120, "Number of projects to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fixtures := flag.String("fixtures", "", "Optional YAML file of curated projects")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d projects, clean=%v\n", *numUsers, *numProjects, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumProjects: *numProjects,
		ShouldClean: *shouldClean,
		FixturePath: *fixtures,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
}
