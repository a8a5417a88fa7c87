// Command seed loads the starter posts and categories into MongoDB so a
// fresh deployment has content to serve.
package main

import (
	"context"
	"os"
	"time"

	"github.com/soulbrew/blog-services/internal/blog"
	"github.com/soulbrew/blog-services/internal/blog/repository"
	"github.com/soulbrew/blog-services/internal/config"
	"github.com/soulbrew/blog-services/internal/database"
	"github.com/soulbrew/blog-services/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.MongoDB.URI == "" {
		logger.Fatalf("MONGODB_URI is required for seeding")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB.Database)
	repo := repository.NewMongoRepo(db.Collection("posts"), db.Collection("categories"))

	seen := map[string]bool{}
	for _, p := range blog.FixturePosts() {
		if _, err := repo.SavePost(ctx, p, false); err != nil {
			logger.Fatalf("failed to seed post %q: %v", p.Slug, err)
		}
		logger.Infof("seeded post %s", p.Slug)
		for _, cat := range p.Categories {
			if seen[cat] {
				continue
			}
			seen[cat] = true
			if err := repo.SaveCategory(ctx, cat); err != nil {
				logger.Fatalf("failed to seed category %q: %v", cat, err)
			}
		}
	}
	logger.Infof("seeded %d categories", len(seen))
}
