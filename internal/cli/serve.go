package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/catalogcache"
	"github.com/fekuna/omnipos-storefront/internal/order/publisher"
	"github.com/fekuna/omnipos-storefront/internal/server"
	"github.com/fekuna/omnipos-storefront/pkg/broker"
	"github.com/fekuna/omnipos-storefront/pkg/cache"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type ServeOptions struct {
	*RootOptions
	Migrate bool
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the gRPC health server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Migrate, "migrate", false, "apply pending migrations before serving")

	return cmd
}

func serve(ctx context.Context, opts *ServeOptions) error {
	cfg := opts.loadConfig()
	appLogger := newLogger(cfg)
	defer appLogger.Sync()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDatabase(cfg, appLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	if opts.Migrate {
		if err := database.MigrateUp(db); err != nil {
			return err
		}
		appLogger.Info("Database schema is up to date")
	}

	tokens, err := auth.NewJWTMaker(cfg.JWT.SecretKey, cfg.JWT.TTL)
	if err != nil {
		return err
	}

	deps := server.Deps{
		Tx:     database.NewTxManager(db),
		Hasher: auth.NewBcryptHasher(bcrypt.DefaultCost),
		Tokens: tokens,
		Logger: appLogger,
	}

	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, catalog cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			deps.Catalog = catalogcache.New(redisClient, cfg.Redis.TTL, appLogger)
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := broker.NewKafkaProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}, appLogger)
		if err != nil {
			return err
		}
		defer producer.Close()
		deps.Publisher = publisher.NewKafkaPublisher(producer)
		appLogger.Info("Kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	router := server.NewRouter(server.NewHandlers(deps), tokens, server.RouterConfig{
		CORSOrigins: cfg.Server.CORSOrigins,
	}, appLogger)

	srv := server.New(server.Config{
		HTTPAddr:        cfg.Server.HTTPPort,
		GRPCAddr:        cfg.Server.GRPCPort,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, router, appLogger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return err
	}
	appLogger.Info("Server stopped")
	return nil
}
