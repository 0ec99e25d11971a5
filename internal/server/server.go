package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

type Config struct {
	HTTPAddr        string
	GRPCAddr        string
	ShutdownTimeout time.Duration
}

// Server runs the HTTP API and the gRPC health endpoint side by side.
type Server struct {
	cfg    Config
	http   *http.Server
	grpc   *grpc.Server
	health *health.Server
	logger logger.ZapLogger
}

func New(cfg Config, handler http.Handler, log logger.ZapLogger) *Server {
	grpcServer, healthServer := NewGRPCServer(log)
	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:              normalizeAddr(cfg.HTTPAddr),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		grpc:   grpcServer,
		health: healthServer,
		logger: log,
	}
}

func normalizeAddr(addr string) string {
	if addr != "" && !strings.Contains(addr, ":") {
		return ":" + addr
	}
	return addr
}

// Run serves until ctx is cancelled or a listener fails, then shuts both
// servers down within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", normalizeAddr(s.cfg.GRPCAddr))
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		s.logger.Info("Starting gRPC health server", zap.String("addr", lis.Addr().String()))
		if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down servers...")
		s.health.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		stopped := make(chan struct{})
		go func() {
			s.grpc.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			s.grpc.Stop()
		}

		return s.http.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
