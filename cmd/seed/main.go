package main

import (
	"context"
	"flag"

	"github.com/rentassist/identity-service/internal/infrastructure/config"
	mongodb "github.com/rentassist/identity-service/internal/infrastructure/db/mongo"
	"github.com/rentassist/identity-service/internal/infrastructure/seed"
	"github.com/rentassist/identity-service/pkg/logger"
)

// Seeds admin and employee accounts from a YAML file. Privileged roles are
// provisioned here instead of over HTTP; customers register through the API.
func main() {
	path := flag.String("file", "seed/accounts.yaml", "path to the accounts seed file")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx := context.Background()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()

	repo := mongodb.NewAccountRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("account index creation failed")
	}

	created, err := seed.NewSeeder(repo).Apply(ctx, *path)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("seeding failed")
	}

	log.Info().Int("created", created).Str("file", *path).Msg("seeding complete")
}
