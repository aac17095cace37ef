package main

import (
	"context"
	"fmt"

	goredis "github.com/go-redis/redis/v8"

	"github.com/jhoicas/bizos-api/internal/application/ports"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
	"github.com/jhoicas/bizos-api/internal/infrastructure/kafka"
	"github.com/jhoicas/bizos-api/internal/infrastructure/memory"
	"github.com/jhoicas/bizos-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/bizos-api/internal/infrastructure/redis"
	"github.com/jhoicas/bizos-api/pkg/config"
	"github.com/jhoicas/bizos-api/pkg/logger"
)

// infra adaptadores de salida elegidos por configuración. close libera en orden inverso.
type infra struct {
	repos     repository.Repositories
	tx        repository.TxRunner
	revoked   ports.TokenRevocationStore
	publisher ports.EventPublisher
	closers   []func()
}

func (i *infra) close() {
	for n := len(i.closers) - 1; n >= 0; n-- {
		i.closers[n]()
	}
}

// openInfra conecta store, revocación y publicador según cfg. migrate aplica el esquema en postgres.
func openInfra(ctx context.Context, cfg *config.Config, log *logger.Logger, migrate bool) (*infra, error) {
	in := &infra{}

	switch cfg.Store.Driver {
	case "memory":
		store := memory.NewStore()
		in.repos, in.tx = store.Repositories(), store
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		in.closers = append(in.closers, pool.Close)
		if migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				in.close()
				return nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Msg("migraciones aplicadas")
		}
		in.repos, in.tx = postgres.NewRepositories(pool), postgres.NewTxRunner(pool)
	}

	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			in.close()
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		in.closers = append(in.closers, func() { closeRedis(client, log) })
		in.revoked = infraredis.NewRevocationStore(client)
	} else {
		in.revoked = memory.NewRevocationStore()
	}

	if len(cfg.Kafka.Brokers) > 0 {
		pub := kafka.NewPublisher(cfg.Kafka, log)
		in.closers = append(in.closers, func() {
			if err := pub.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar publicador kafka")
			}
		})
		in.publisher = pub
	} else {
		in.publisher = kafka.NopPublisher{}
	}
	return in, nil
}

func closeRedis(client *goredis.Client, log *logger.Logger) {
	if err := client.Close(); err != nil {
		log.Error().Err(err).Msg("cerrar cliente redis")
	}
}
