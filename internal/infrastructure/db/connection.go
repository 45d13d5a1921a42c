// Package db opens connections to the relational store. Every Connect call
// dials a fresh connection; callers close it when their operation is done.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"nutritrack/internal/config"
	"nutritrack/internal/domain"
)

const defaultConnectTimeout = 10 * time.Second

var dialectors = map[string]func(dsn string) gorm.Dialector{
	"postgres": postgres.Open,
	"sqlite":   func(dsn string) gorm.Dialector { return sqlite.Open(sqliteDSN(dsn)) },
}

// Provider hands out database connections.
type Provider interface {
	Connect(ctx context.Context) (*Connection, error)
}

// Connection is a single open database handle.
type Connection struct {
	DB     *gorm.DB
	sqlDB  *sql.DB
	driver string
}

func (c *Connection) Close() error {
	if c == nil || c.sqlDB == nil {
		return nil
	}
	return c.sqlDB.Close()
}

type GormProvider struct {
	driver         string
	dsn            string
	connectTimeout time.Duration
	logger         *zap.Logger
}

func NewProvider(cfg config.DatabaseConfig, logger *zap.Logger) *GormProvider {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	return &GormProvider{
		driver:         cfg.Driver,
		dsn:            cfg.DSN(),
		connectTimeout: timeout,
		logger:         logger.Named("db"),
	}
}

func (p *GormProvider) Connect(ctx context.Context) (*Connection, error) {
	open, ok := dialectors[p.driver]
	if !ok {
		return nil, &domain.ConfigurationError{Driver: p.driver, Err: errors.New("unsupported database driver")}
	}
	if p.dsn == "" {
		return nil, &domain.ConfigurationError{Driver: p.driver, Err: errors.New("empty connection string")}
	}

	gdb, err := gorm.Open(open(p.dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		p.logger.Error("open database", zap.String("driver", p.driver), zap.Error(err))
		return nil, &domain.ConnectionError{Driver: p.driver, Err: err}
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, &domain.ConnectionError{Driver: p.driver, Err: err}
	}
	sqlDB.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, p.connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		p.logger.Error("ping database", zap.String("driver", p.driver), zap.Error(err))
		return nil, &domain.ConnectionError{Driver: p.driver, Err: err}
	}

	return &Connection{DB: gdb.WithContext(ctx), sqlDB: sqlDB, driver: p.driver}, nil
}

// WithConnection opens a connection, runs fn with it and closes it. A failure
// of the statement itself is reported as a ConnectionError unless it is a
// missing row or a constraint violation.
func WithConnection(ctx context.Context, p Provider, fn func(db *gorm.DB) error) error {
	conn, err := p.Connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.storageError(fn(conn.DB))
}

func (c *Connection) storageError(err error) error {
	switch {
	case err == nil,
		errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, context.Canceled),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConnection),
		errors.Is(err, domain.ErrConfiguration):
		return err
	}
	return &domain.ConnectionError{Driver: c.driver, Err: err}
}

// sqliteDSN turns on foreign key enforcement so ON DELETE CASCADE holds.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_foreign_keys=on", dsn, sep)
}
