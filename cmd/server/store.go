package main

import (
	"context"

	"alcyxob/fitness-coach/internal/config"
	"alcyxob/fitness-coach/internal/repository"
	"alcyxob/fitness-coach/internal/store"
	"alcyxob/fitness-coach/internal/store/memory"
	"alcyxob/fitness-coach/internal/store/mongo"
	"alcyxob/fitness-coach/internal/store/pgsql"
	"alcyxob/fitness-coach/internal/store/postgrest"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// openStore builds the client for the configured driver. The returned func releases it.
func openStore(ctx context.Context, cfg config.Config, log zerolog.Logger) (store.Client, func(), error) {
	noop := func() {}

	switch cfg.Store.Driver {
	case config.DriverPostgREST:
		client, err := postgrest.New(postgrest.Config{
			URL:     cfg.PostgREST.URL,
			APIKey:  cfg.PostgREST.APIKey,
			Schema:  cfg.PostgREST.Schema,
			Timeout: cfg.PostgREST.Timeout,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		return client, noop, nil

	case config.DriverPostgres:
		db, err := pgsql.Open(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxOpenConns)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close postgres pool")
			}
		}
		return pgsql.New(db, log), closeDB, nil

	case config.DriverMongo:
		mc, err := mongo.ConnectDB(ctx, cfg.Database.URI)
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() {
			log.Info().Msg("disconnecting mongodb")
			if err := mongo.DisconnectDB(context.Background(), mc); err != nil {
				log.Error().Err(err).Msg("failed to disconnect mongodb")
			}
		}
		client := mongo.New(mc.Database(cfg.Database.Name), log, repository.Schema()...)
		if err := client.EnsureIndexes(ctx); err != nil {
			disconnect()
			return nil, nil, errors.Wrap(err, "ensuring indexes")
		}
		return client, disconnect, nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory store; data is lost on exit")
		return memory.New(repository.Schema()...), noop, nil
	}
	return nil, nil, errors.Errorf("unknown store driver %q", cfg.Store.Driver)
}
