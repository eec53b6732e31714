package database

import (
	"fmt"
	"time"

	"ems/inner/common"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Подключиться к базе данных с переданным конфигом.
// Драйвер "postgres" это lib/pq, "pgx" это jackc/pgx через database/sql.
func ConnectDbWithCfg(cfg common.Config, logger *common.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect(cfg.DbDriverName, cfg.Dsn)
	if err != nil {
		logger.Error("Failed to connect to database",
			zap.String("driver", cfg.DbDriverName),
			zap.Error(err))
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Database connection established successfully",
		zap.String("driver", cfg.DbDriverName))

	configurePool(db, cfg)

	logger.Debug("Database connection pool configured",
		zap.Int("maxIdleConns", cfg.MaxIdleConns),
		zap.Int("maxOpenConns", cfg.MaxOpenConns),
		zap.Duration("connMaxLifetime", connMaxLifetime),
		zap.Duration("connMaxIdleTime", connMaxIdleTime))

	return db, nil
}

const (
	connMaxLifetime = 1 * time.Minute
	connMaxIdleTime = 10 * time.Minute
)

func configurePool(db *sqlx.DB, cfg common.Config) {
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)
}
