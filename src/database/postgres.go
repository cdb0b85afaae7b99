package database

import (
	"context"
	"fmt"

	"ebroker/src/config"
	aws_handler "ebroker/src/utils/aws"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SetupDB opens and pings the postgres connection pool the record store runs
// on. When an AWS secret id is configured the database password is resolved
// through Secrets Manager instead of the settings file.
func SetupDB(cfg *config.Config) (*pgxpool.Pool, error) {
	password := cfg.Databases.SQL.Password
	if cfg.AWS.DBPasswordSecretID != "" {
		awsHandler, err := aws_handler.NewAWSHandler(cfg.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}
		password, err = awsHandler.SecretManager.GetSecretValue(cfg.AWS.DBPasswordSecretID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database password secret: %w", err)
		}
	}

	dsn := cfg.Databases.SQL.ConnectionString
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.Databases.SQL.Host,
			cfg.Databases.SQL.Username,
			password,
			cfg.Databases.SQL.Database,
			cfg.Databases.SQL.Port)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}
