// Package cli holds the storefront command tree.
package cli

import (
	"fmt"
	"time"

	"github.com/fekuna/omnipos-storefront/config"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront e-commerce API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewCreateAdminCommand(opts))

	return cmd
}

// loadConfig reads the dotenv file if present, then the environment.
func (o *RootOptions) loadConfig() *config.Config {
	_ = godotenv.Load(o.EnvFile)
	return config.LoadEnv()
}

func newLogger(cfg *config.Config) logger.ZapLogger {
	return logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
}

func openDatabase(cfg *config.Config, log logger.ZapLogger) (*sqlx.DB, error) {
	switch cfg.Database.Driver {
	case database.DriverSQLite:
		db, err := database.NewSQLite(cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info("Connected to SQLite database", zap.String("path", cfg.Database.SQLitePath))
		return db, nil
	case database.DriverPostgres:
		db, err := database.NewPostgres(&database.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: secondsToDuration(cfg.Postgres.ConnMaxLifetime),
			ConnMaxIdleTime: secondsToDuration(cfg.Postgres.ConnMaxIdleTime),
		})
		if err != nil {
			return nil, err
		}
		log.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want %q or %q)",
			cfg.Database.Driver, database.DriverPostgres, database.DriverSQLite)
	}
}

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}
