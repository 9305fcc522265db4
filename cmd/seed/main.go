// Command seed runs the database seeder for local development.
package main

import (
	"flag"
	"log"

	"subredit/internal/config"
	"subredit/internal/database"
	"subredit/internal/seed"
)

func main() {
	numSubredits := flag.Int("subredits", 8, "Number of subredits to create")
	postsPerSub := flag.Int("posts", 5, "Number of posts per subredit")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumSubredits: *numSubredits,
		PostsPerSub:  *postsPerSub,
		ShouldClean:  *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
