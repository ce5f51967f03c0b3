package database

import (
	"context"
	"fmt"

	"github.com/project-registry/config"
	"github.com/project-registry/repositories"
)

// Connection is the process-wide store handle. It is opened once at startup,
// handed to the services, and closed on shutdown.
type Connection struct {
	Driver   string
	Projects repositories.ProjectRepository
	Users    repositories.UserRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Open connects to the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Connection, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, db, err := OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return &Connection{
			Driver:   cfg.Driver,
			Projects: repositories.NewMongoProjectRepository(db),
			Users:    repositories.NewMongoUserRepository(db),
			ping:     func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close:    client.Disconnect,
		}, nil

	case config.DriverPostgres:
		db, err := OpenPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get SQL DB: %w", err)
		}
		return &Connection{
			Driver:   cfg.Driver,
			Projects: repositories.NewGormProjectRepository(db),
			Users:    repositories.NewGormUserRepository(db),
			ping:     sqlDB.PingContext,
			close:    func(context.Context) error { return sqlDB.Close() },
		}, nil

	case config.DriverMemory:
		return NewMemoryConnection(), nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// NewMemoryConnection returns a Connection over empty in-memory repositories.
func NewMemoryConnection() *Connection {
	return &Connection{
		Driver:   config.DriverMemory,
		Projects: repositories.NewMemoryProjectRepository(),
		Users:    repositories.NewMemoryUserRepository(),
	}
}

// Ping checks that the store is reachable.
func (c *Connection) Ping(ctx context.Context) error {
	if c.ping == nil {
		return nil
	}
	return c.ping(ctx)
}

// Close releases the store connection.
func (c *Connection) Close(ctx context.Context) error {
	if c.close == nil {
		return nil
	}
	return c.close(ctx)
}
