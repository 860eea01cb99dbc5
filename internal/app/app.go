package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"

	httpHandler "github.com/docvault/docvault/internal/adapter/inbound/http"
	"github.com/docvault/docvault/internal/adapter/outbound/authtoken"
	"github.com/docvault/docvault/internal/adapter/outbound/blobstore"
	"github.com/docvault/docvault/internal/adapter/outbound/catalog"
	"github.com/docvault/docvault/internal/config"
	"github.com/docvault/docvault/internal/service"
	"github.com/docvault/docvault/pkg/idgen"
)

// App owns construction and teardown of every component. Storage clients
// are built here and injected; nothing is initialized by package-level side
// effects.
type App struct {
	cfg         *config.Config
	server      *httpHandler.Server
	redisClient *redis.Client
	blobStore   *blobstore.Store
	service     *service.DocumentServiceImpl
	janitorStop context.CancelFunc
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Redis client and Snowflake IDGen
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	redisClock := idgen.NewRedisClock(redisClient)
	idGen, err := idgen.New(cfg.App.NodeID, redisClock)
	if err != nil {
		return nil, fmt.Errorf("failed to init snowflake: %w", err)
	}

	// 4. Storage adapters
	blobStore, err := blobstore.NewStore(cfg.Blob)
	if err != nil {
		return nil, fmt.Errorf("failed to init chunk store: %w", err)
	}
	fileCatalog := catalog.NewRedisCatalog(redisClient)

	// 5. Services
	svc := service.NewDocumentService(cfg, blobStore, fileCatalog, idGen)

	// 6. Access gate and HTTP server
	verifier := authtoken.NewJWTVerifier(cfg.Auth.Secret, cfg.Auth.Issuer)
	httpServer := httpHandler.NewServer(cfg, svc, verifier)

	return &App{
		cfg:         cfg,
		server:      httpServer,
		redisClient: redisClient,
		blobStore:   blobStore,
		service:     svc,
	}, nil
}

func (a *App) Run() error {
	// Start orphan janitor
	if interval := a.cfg.App.JanitorIntervalSec; interval > 0 {
		janitorCtx, cancel := context.WithCancel(context.Background())
		a.janitorStop = cancel
		go a.runJanitor(janitorCtx, time.Duration(interval)*time.Second)
	}

	// Start HTTP
	logger.Infow("Server starting", "addr", a.cfg.Server.Addr)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("http server failed: %w", err)
		logger.Errorw("Server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down")
	if a.janitorStop != nil {
		a.janitorStop()
	}
	if err := a.server.Stop(context.Background()); err != nil {
		logger.Errorw("HTTP shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}
	if err := a.blobStore.Close(); err != nil {
		logger.Errorw("Chunk store close error", "error", err.Error())
	}
	if err := a.redisClient.Close(); err != nil {
		logger.Errorw("Redis close error", "error", err.Error())
	}

	return runErr
}

// runJanitor periodically sweeps orphaned chunk sets.
func (a *App) runJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.service.SweepOrphans(ctx); err != nil {
				logger.Warnw("Orphan sweep failed", "error", err.Error())
			}
		}
	}
}
