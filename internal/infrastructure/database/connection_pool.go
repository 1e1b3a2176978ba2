package database

import (
	"context"
	"sync"
	"time"

	"github.com/Anandha-scraper/HarvestChain/internal/infrastructure/config"
	"github.com/Anandha-scraper/HarvestChain/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// State describes the lifecycle of the shared database connection. The pool
// owns it explicitly so callers can reason about reconnects.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateError        State = "error"
)

const (
	connectTimeout     = 5 * time.Second
	healthCheckTimeout = 2 * time.Second
)

// ConnectionPool manages the shared database connection pool
type ConnectionPool struct {
	DB              *gorm.DB
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	mu    sync.Mutex
	state State
}

// NewConnectionPool opens the database handle and attempts an initial
// connection. The handle itself is created lazily, so even when the initial
// ping fails the returned pool stays usable and a later Ensure call can bring
// it up; the caller decides whether a failed first connect is fatal.
func NewConnectionPool(cfg *config.Config) (*ConnectionPool, error) {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN: cfg.GetDSN(),
		// Skip the version probe so opening the handle does not require a
		// live server; connections are established per query.
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		// Map driver duplicate-key errors onto gorm.ErrDuplicatedKey so the
		// service layer can rely on unique indexes instead of check-then-insert
		TranslateError:       true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, err
	}

	pool := &ConnectionPool{
		DB:              db,
		MaxIdleConns:    10,
		MaxOpenConns:    10, // single shared pool, bounded at 10 connections
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 45 * time.Second,
		state:           StateDisconnected,
	}

	if err := pool.ConfigurePool(); err != nil {
		return nil, err
	}

	return pool, pool.Connect()
}

// ConfigurePool applies the pool limits to the underlying sql.DB
func (p *ConnectionPool) ConfigurePool() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(p.MaxIdleConns)
	sqlDB.SetMaxOpenConns(p.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(p.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(p.ConnMaxIdleTime)
	return nil
}

// Connect establishes the database connection. It is idempotent: when the
// pool is already connected and healthy it returns immediately.
func (p *ConnectionPool) Connect() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateConnected {
		if err := p.ping(healthCheckTimeout); err == nil {
			return nil
		}
	}

	p.setState(StateConnecting)
	if err := p.ping(connectTimeout); err != nil {
		p.setState(StateError)
		return err
	}

	p.setState(StateConnected)
	return nil
}

// Ensure verifies the connection is usable, performing at most one reconnect
// attempt. Callers surface a failure as 503 rather than retrying further.
func (p *ConnectionPool) Ensure(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateConnected {
		if err := p.pingContext(ctx, healthCheckTimeout); err == nil {
			return nil
		}
		logger.Warning("Database connection lost, attempting reconnect")
	}

	p.setState(StateConnecting)
	if err := p.pingContext(ctx, connectTimeout); err != nil {
		p.setState(StateError)
		return err
	}

	p.setState(StateConnected)
	return nil
}

// HealthCheck pings the database with a bounded timeout
func (p *ConnectionPool) HealthCheck() error {
	return p.ping(healthCheckTimeout)
}

// State returns the current connection state
func (p *ConnectionPool) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Stats reports the underlying sql.DB pool statistics
func (p *ConnectionPool) Stats() (map[string]interface{}, error) {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return nil, err
	}

	stats := sqlDB.Stats()
	return map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration":        stats.WaitDuration.String(),
	}, nil
}

// WithTransaction runs fn inside a database transaction
func (p *ConnectionPool) WithTransaction(fn func(tx *gorm.DB) error) error {
	return p.DB.Transaction(fn)
}

// Close shuts down the connection pool. Called on process termination.
func (p *ConnectionPool) Close() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.setState(StateDisconnected)
	p.mu.Unlock()
	return sqlDB.Close()
}

// GetDB returns the shared GORM handle
func (p *ConnectionPool) GetDB() *gorm.DB {
	return p.DB
}

// setState records a state transition; callers hold p.mu
func (p *ConnectionPool) setState(next State) {
	if p.state == next {
		return
	}
	logger.Info("Database connection state: %s -> %s", p.state, next)
	p.state = next
}

func (p *ConnectionPool) ping(timeout time.Duration) error {
	return p.pingContext(context.Background(), timeout)
}

func (p *ConnectionPool) pingContext(ctx context.Context, timeout time.Duration) error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
