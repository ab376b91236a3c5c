package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcHandler "github.com/anthanhphan/go-snowflake/internal/idgen/adapter/inbound/grpc"
	httpHandler "github.com/anthanhphan/go-snowflake/internal/idgen/adapter/inbound/http"
	"github.com/anthanhphan/go-snowflake/internal/idgen/config"
	"github.com/anthanhphan/go-snowflake/internal/idgen/service"
	"github.com/anthanhphan/go-snowflake/pkg/idgen"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg         *config.Config
	httpServer  *httpHandler.Server
	grpcServer  *grpc.Server
	redisClient *redis.Client
	IDGen       *idgen.SharedAsyncGenerator
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	a := &App{cfg: cfg}
	ok := false
	defer func() {
		if !ok {
			a.closeRedis()
		}
	}()

	// 3. Clock
	clock, err := a.buildClock()
	if err != nil {
		return nil, fmt.Errorf("failed to init clock: %w", err)
	}

	// 4. Worker ID and epoch
	workerID, err := resolveWorkerID(cfg.Generator)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve worker id: %w", err)
	}
	epoch, err := cfg.EpochMillis()
	if err != nil {
		return nil, err
	}

	// 5. Generator
	idGen, err := idgen.NewSharedAsyncGenerator(workerID, epoch, idgen.WithClock(clock))
	if err != nil {
		return nil, fmt.Errorf("failed to init snowflake: %w", err)
	}
	a.IDGen = idGen

	// 6. Service and inbound adapters
	svc := service.NewIDService(cfg.Generator, idGen)
	if cfg.Server.HTTPAddr != "" {
		a.httpServer = httpHandler.NewServer(cfg.Server.HTTPAddr, svc)
	}
	if cfg.Server.GRPCPort != 0 {
		a.grpcServer = grpc.NewServer()
		grpcHandler.RegisterIDGeneratorServer(a.grpcServer, grpcHandler.NewServer(svc))
	}

	logger.Infow("ID generator initialized",
		"worker_id", workerID,
		"epoch_ms", epoch,
		"clock", cfg.Generator.Clock)

	ok = true
	return a, nil
}

func (a *App) buildClock() (idgen.Clock, error) {
	switch a.cfg.Generator.Clock {
	case config.ClockSystem:
		return idgen.SystemClock{}, nil
	case config.ClockRedis:
		a.redisClient = redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		timeout := time.Duration(a.cfg.Redis.TimeoutMS) * time.Millisecond
		return idgen.NewRedisClock(a.redisClient, timeout), nil
	default:
		return idgen.NewMonotonicClock()
	}
}

func resolveWorkerID(cfg config.GeneratorConfig) (int64, error) {
	if cfg.WorkerIDSource != config.WorkerSourceHostname {
		return cfg.WorkerID, nil
	}

	hostname, err := os.Hostname()
	if err != nil {
		return 0, err
	}
	workerID := idgen.WorkerIDFromName(hostname)
	logger.Infow("Worker ID derived from hostname", "hostname", hostname, "worker_id", workerID)
	return workerID, nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var listener net.Listener
	if a.grpcServer != nil {
		var err error
		listener, err = net.Listen("tcp", fmt.Sprintf(":%d", a.cfg.Server.GRPCPort))
		if err != nil {
			return fmt.Errorf("failed to listen on port %d: %w", a.cfg.Server.GRPCPort, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if a.httpServer != nil {
		g.Go(func() error {
			logger.Infow("HTTP server starting", "addr", a.cfg.Server.HTTPAddr)
			if err := a.httpServer.Start(); err != nil {
				return fmt.Errorf("http server failed: %w", err)
			}
			return nil
		})
	}

	if a.grpcServer != nil {
		g.Go(func() error {
			logger.Infow("gRPC server starting", "port", a.cfg.Server.GRPCPort)
			if err := a.grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("gRPC server failed: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			logger.Info("Shutdown signal received")
		}
		a.shutdown()
		return nil
	})

	runErr := g.Wait()
	if runErr != nil {
		logger.Errorw("ID service exited unexpectedly", "error", runErr.Error())
	}
	return runErr
}

func (a *App) shutdown() {
	logger.Info("Shutting down ID services")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Stop(ctx); err != nil {
			logger.Warnw("HTTP shutdown error", "error", err.Error())
		}
	}
	if a.grpcServer != nil {
		a.grpcServer.GracefulStop()
	}
	a.closeRedis()
}

func (a *App) closeRedis() {
	if a.redisClient == nil {
		return
	}
	if err := a.redisClient.Close(); err != nil {
		logger.Warnw("Redis close failed", "error", err.Error())
	}
}
