// Command seed populates the development database with demo data.
package main

import (
	"flag"
	"log"
	"time"

	"agora/internal/auth"
	"agora/internal/config"
	"agora/internal/database"
	"agora/internal/seed"
)

func main() {
	numPosts := flag.Int("posts", 10, "number of posts to create")
	clean := flag.Bool("clean", false, "delete existing data first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{NumPosts: *numPosts, ShouldClean: *clean}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	// Print a currently valid code for the demo admin so two-factor login
	// can be tried immediately without an authenticator app.
	if code, err := auth.TOTPCodeAt(seed.DemoTOTPSecret, time.Now().UTC()); err == nil {
		log.Printf("Demo admin TOTP code (valid ~30s): %s", code)
	}
}
