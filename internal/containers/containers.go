// Package containers starts throwaway databases for integration tests and
// local development.
package containers

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/localnerve/jam-build-breezemeta/internal/config"
	"github.com/localnerve/jam-build-breezemeta/internal/database"
)

// Options selects the database image and credentials.
type Options struct {
	DBType   string
	Image    string
	Database string
	User     string
	Password string
}

// DefaultOptions runs postgres, the dialect every model type maps onto.
func DefaultOptions() Options {
	return Options{
		DBType:   "postgres",
		Image:    "postgres:17-alpine",
		Database: "northwind",
		User:     "breeze",
		Password: "breeze",
	}
}

// Database is a running container and the configuration that reaches it.
type Database struct {
	Container testcontainers.Container
	Config    *config.Config
}

// StartDatabase starts the container and waits until it accepts connections.
func StartDatabase(ctx context.Context, opts Options) (*Database, error) {
	port, env, err := initSettings(opts)
	if err != nil {
		return nil, err
	}
	tcpPort, err := nat.NewPort("tcp", port)
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        opts.Image,
			ExposedPorts: []string{string(tcpPort)},
			Env:          env,
			WaitingFor:   wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start database: %w", err)
	}
	d := &Database{Container: ctr}

	host, err := ctr.Host(ctx)
	if err != nil {
		d.Terminate(ctx)
		return nil, fmt.Errorf("failed to read database host: %w", err)
	}
	mapped, err := ctr.MappedPort(ctx, tcpPort)
	if err != nil {
		d.Terminate(ctx)
		return nil, fmt.Errorf("failed to read database port: %w", err)
	}

	d.Config = &config.Config{
		DBType:               opts.DBType,
		DBHost:               host,
		DBPort:               mapped.Port(),
		DBDatabase:           opts.Database,
		DBAppUser:            opts.User,
		DBAppPassword:        opts.Password,
		DBAppConnectionLimit: 2,
	}
	return d, nil
}

// Connect opens a pool on the container, retrying while the server
// finishes starting up.
func (d *Database) Connect(ctx context.Context, log *zap.Logger) (*gorm.DB, error) {
	var lastErr error
	for range 30 {
		db, err := database.Connect(d.Config, log)
		if err == nil {
			return db, nil
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return nil, fmt.Errorf("database never became ready: %w", lastErr)
}

// Terminate stops and removes the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

func initSettings(opts Options) (string, map[string]string, error) {
	switch opts.DBType {
	case "postgres":
		return "5432", map[string]string{
			"POSTGRES_PASSWORD": opts.Password,
			"POSTGRES_USER":     opts.User,
			"POSTGRES_DB":       opts.Database,
		}, nil
	case "mariadb", "mysql":
		return "3306", map[string]string{
			"MYSQL_ROOT_PASSWORD": opts.Password,
			"MYSQL_DATABASE":      opts.Database,
			"MYSQL_USER":          opts.User,
			"MYSQL_PASSWORD":      opts.Password,
		}, nil
	}
	return "", nil, fmt.Errorf("no container settings for database type %s", opts.DBType)
}
