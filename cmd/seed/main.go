// Command main seeds the configured feed storage with demo posts.
package main

import (
	"context"
	"flag"
	"log"

	"minisocial/internal/config"
	"minisocial/internal/feed"
	"minisocial/internal/seed"
	"minisocial/internal/storage"

	"github.com/spf13/afero"
)

func main() {
	numPosts := flag.Int("posts", 20, "Number of posts to generate")
	maxLikes := flag.Int("max-likes", 12, "Maximum likes per generated post")
	maxComments := flag.Int("max-comments", 4, "Maximum comments per generated post")
	fixture := flag.String("fixture", "", "YAML fixture to apply instead of generated posts")
	shouldClean := flag.Bool("clean", true, "Discard the stored feed before seeding")
	seedValue := flag.Int64("seed", 0, "Random seed (0 uses the clock)")
	flag.Parse()

	log.Println("🌱 Feed Seeder")
	log.Println("==============")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.StorageBackend == config.BackendMemory {
		log.Fatal("❌ Seeding the memory backend has no lasting effect; pick another STORAGE_BACKEND")
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	bridge := storage.NewBridge(backend, cfg.StorageKey)
	defer func() { _ = bridge.Close() }()

	s := seed.NewSeeder(feed.NewStore(), bridge)
	if !*shouldClean {
		log.Printf("Keeping %d existing posts", s.Load(ctx))
	}

	var added int
	if *fixture != "" {
		fx, err := seed.LoadFixture(afero.NewOsFs(), *fixture)
		if err != nil {
			log.Fatalf("❌ Fixture failed: %v", err)
		}
		added = s.ApplyFixture(fx)
	} else {
		added = s.Generate(seed.Options{
			Posts:       *numPosts,
			MaxLikes:    *maxLikes,
			MaxComments: *maxComments,
			Seed:        *seedValue,
		})
	}

	if err := s.Save(ctx); err != nil {
		log.Fatalf("❌ Save failed: %v", err)
	}
	log.Printf("✨ Added %d posts to %s storage under key %q", added, backend.Name(), cfg.StorageKey)
}
