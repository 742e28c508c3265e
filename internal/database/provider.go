package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stemsi/institute-admin/internal/apperror"
	"github.com/stemsi/institute-admin/internal/config"
	"github.com/stemsi/institute-admin/internal/logger"
)

// Provider owns the single PostgreSQL pool of the process. The pool is
// created on the first call to Pool and reused until Close.
type Provider struct {
	cfg *config.Config
	log zerolog.Logger

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// NewProvider creates a Provider. No connection is made until Pool is called.
func NewProvider(cfg *config.Config, log zerolog.Logger) *Provider {
	return &Provider{cfg: cfg, log: logger.Component(log, "database")}
}

// Pool returns the live pool, connecting on first use.
func (p *Provider) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pool != nil {
		return p.pool, nil
	}

	pool, err := p.connect(ctx)
	if err != nil {
		return nil, err
	}
	p.pool = pool
	return pool, nil
}

// Close releases the pool. A later Pool call establishes a fresh one.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pool == nil {
		return
	}
	p.pool.Close()
	p.pool = nil
	p.log.Info().Msg("PostgreSQL pool closed")
}

func (p *Provider) connect(ctx context.Context) (*pgxpool.Pool, error) {
	const op = "database.Pool"

	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(p.cfg.DatabaseURL)
	if err != nil {
		return nil, apperror.Configuration(op, fmt.Errorf("parse database URL: %w", err))
	}
	poolCfg.MaxConns = p.cfg.MaxDBConns
	poolCfg.ConnConfig.ConnectTimeout = p.cfg.DBConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, apperror.Connection(op, fmt.Errorf("create pool: %w", err))
	}

	pingCtx, cancel := context.WithTimeout(ctx, p.cfg.DBConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperror.Connection(op, fmt.Errorf("ping database: %w", err))
	}

	p.log.Info().
		Int32("max_conns", p.cfg.MaxDBConns).
		Str("host", poolCfg.ConnConfig.Host).
		Str("database", poolCfg.ConnConfig.Database).
		Msg("PostgreSQL connected")

	return pool, nil
}
