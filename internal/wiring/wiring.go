// Package wiring builds the adapters both binaries share from a Config.
package wiring

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"review_dashboard/internal/adapters/hostaway"
	"review_dashboard/internal/adapters/memory"
	"review_dashboard/internal/adapters/places"
	redisad "review_dashboard/internal/adapters/redis"
	"review_dashboard/internal/domain"
	"review_dashboard/internal/shared"
	mysqlrepo "review_dashboard/internal/storage/mysql"
)

// Store is the configured approval store plus its lifecycle hooks.
type Store struct {
	domain.ApprovalStore
	Health func(ctx context.Context) error
	Close  func() error
}

// OpenStore connects the backend named by cfg.ApprovalStore and pings it.
func OpenStore(ctx context.Context, cfg shared.Config) (Store, error) {
	switch cfg.ApprovalStore {
	case "", "memory":
		log.Warn().Msg("approval decisions are kept in memory and lost on restart")
		return Store{
			ApprovalStore: memory.New(),
			Health:        func(context.Context) error { return nil },
			Close:         func() error { return nil },
		}, nil

	case "redis":
		r := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := r.Ping(ctx); err != nil {
			_ = r.Close()
			return Store{}, fmt.Errorf("redis ping: %w", err)
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis connection ok")
		return Store{ApprovalStore: r, Health: r.Ping, Close: r.Close}, nil

	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return Store{}, fmt.Errorf("sql.Open: %w", err)
		}
		repo := mysqlrepo.New(db)
		if err := repo.Ping(ctx); err != nil {
			_ = db.Close()
			return Store{}, fmt.Errorf("db ping: %w", err)
		}
		log.Info().Msg("database connection ok")
		return Store{ApprovalStore: repo, Health: repo.Ping, Close: db.Close}, nil
	}
	return Store{}, fmt.Errorf("unknown APPROVAL_STORE %q (want memory, redis or mysql)", cfg.ApprovalStore)
}

// Clients returns live upstream clients for the configured credentials. A
// source without credentials gets a nil client, which means fixture data.
func Clients(cfg shared.Config) (domain.HostawayClient, domain.PlacesClient) {
	var (
		h domain.HostawayClient
		p domain.PlacesClient
	)
	if cfg.HostawayConfigured() {
		c, err := hostaway.New(cfg.HostawayBase, cfg.HostawayKey, cfg.HostawayAccountID, cfg.UpstreamTimeout, cfg.UpstreamRPS)
		if err != nil {
			log.Error().Err(err).Msg("hostaway client disabled")
		} else {
			h = c
		}
	}
	if cfg.PlacesConfigured() {
		c, err := places.New(cfg.PlacesBase, cfg.PlacesKey, cfg.UpstreamTimeout, cfg.UpstreamRPS)
		if err != nil {
			log.Error().Err(err).Msg("places client disabled")
		} else {
			p = c
		}
	}
	return h, p
}
