// Command main runs the database seeder for Com-Musics.
package main

import (
	"flag"
	"log"

	"commusics/internal/config"
	"commusics/internal/database"
	"commusics/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numArtists := flag.Int("artists", 20, "Number of artists to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numLives := flag.Int("lives", 15, "Number of lives to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d artists, %d posts, %d lives, clean=%v\n",
		*numUsers, *numArtists, *numPosts, *numLives, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run seeder
	s := seed.NewSeeder(database.DB)
	if err := s.Seed(seed.Options{
		NumUsers:    *numUsers,
		NumArtists:  *numArtists,
		NumPosts:    *numPosts,
		NumLives:    *numLives,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
