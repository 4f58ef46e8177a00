package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/zebrands/catalog-api/internal/api/handler"
	"github.com/zebrands/catalog-api/internal/core/ports"
	"github.com/zebrands/catalog-api/internal/core/service"
	"github.com/zebrands/catalog-api/internal/core/validation"
	"github.com/zebrands/catalog-api/internal/infrastructure/db/memory"
	mongodb "github.com/zebrands/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/zebrands/catalog-api/internal/infrastructure/db/redis"
	"github.com/zebrands/catalog-api/internal/infrastructure/notify"
	"github.com/zebrands/catalog-api/internal/infrastructure/tokens"
	"github.com/zebrands/catalog-api/internal/pkg/config"
)

type app struct {
	products *service.ProductService
	brands   *service.BrandController
	users    *service.UserService
	auth     *service.AuthService
	checkers []handler.Checker
	closers  []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

type repositories struct {
	users    ports.UserRepository
	products ports.ProductRepository
	brands   ports.BrandRepository
}

// build connects the configured backends and assembles the services.
func build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	a := &app{}
	ok := false
	defer func() {
		if !ok {
			a.close()
		}
	}()

	repos, err := a.stores(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	creds, err := a.credentials(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	notifier, err := a.notifier(cfg, log)
	if err != nil {
		return nil, err
	}

	v := validation.New(cfg.OrgEmailDomain)
	a.products = service.NewProductService(repos.products, validation.NewProductRules(v, repos.products), notifier, log)
	a.brands = service.NewBrandService(repos.brands, validation.NewBrandRules(v, repos.brands), log)
	a.users = service.NewUserService(repos.users, validation.NewUserRules(v, repos.users, cfg.BcryptCost), creds, log)
	a.auth = service.NewAuthService(repos.users, creds, log)

	ok = true
	return a, nil
}

func (a *app) stores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repositories, error) {
	if cfg.StoreDriver == config.StoreMemory {
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return repositories{
			users:    memory.NewUserRepository(),
			products: memory.NewProductRepository(),
			brands:   memory.NewBrandRepository(),
		}, nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return repositories{}, err
	}
	a.closers = append(a.closers, func() { _ = client.Disconnect(context.Background()) })
	a.checkers = append(a.checkers, mongodb.NewPinger(client))

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return repositories{}, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	return repositories{
		users:    mongodb.NewUserRepository(db),
		products: mongodb.NewProductRepository(db),
		brands:   mongodb.NewBrandRepository(db),
	}, nil
}

func (a *app) credentials(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.CredentialStore, error) {
	if cfg.TokenBackend == config.TokensJWT {
		return tokens.NewJWTStore(cfg.JWT.Secret, cfg.JWT.TTL), nil
	}

	client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = client.Close() })
	a.checkers = append(a.checkers, redisdb.NewPinger(client))
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	return redisdb.NewTokenStore(client), nil
}

func (a *app) notifier(cfg *config.Config, log zerolog.Logger) (ports.Notifier, error) {
	switch cfg.Notify.Driver {
	case config.NotifySlack:
		return notify.NewSlack(cfg.Notify.SlackWebhook, cfg.Notify.Timeout), nil
	case config.NotifyAMQP:
		p, err := notify.NewAMQP(cfg.Notify.AMQPURL, cfg.Notify.AMQPExchange)
		if err != nil {
			return nil, fmt.Errorf("notifier: %w", err)
		}
		a.closers = append(a.closers, func() { _ = p.Close() })
		a.checkers = append(a.checkers, p)
		return p, nil
	default:
		return notify.NewLog(log), nil
	}
}
