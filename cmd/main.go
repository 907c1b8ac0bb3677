package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"google.golang.org/grpc/reflection"

	apicontext "github.com/bryanmylee/LetsMeetService/internal/api/context"
	grpcRouter "github.com/bryanmylee/LetsMeetService/internal/api/grpc/router"
	grpcServer "github.com/bryanmylee/LetsMeetService/internal/api/grpc/server"
	httpMiddleware "github.com/bryanmylee/LetsMeetService/internal/api/http/middleware"
	httpRouter "github.com/bryanmylee/LetsMeetService/internal/api/http/router"
	httpServer "github.com/bryanmylee/LetsMeetService/internal/api/http/server"
	"github.com/bryanmylee/LetsMeetService/internal/config"
	"github.com/bryanmylee/LetsMeetService/internal/hasher"
	"github.com/bryanmylee/LetsMeetService/internal/logger"
	"github.com/bryanmylee/LetsMeetService/internal/metrics"
	"github.com/bryanmylee/LetsMeetService/internal/model"
	"github.com/bryanmylee/LetsMeetService/internal/repository/memory"
	"github.com/bryanmylee/LetsMeetService/internal/repository/postgres"
	"github.com/bryanmylee/LetsMeetService/internal/server"
	"github.com/bryanmylee/LetsMeetService/internal/service"
	storage "github.com/bryanmylee/LetsMeetService/internal/storage/minio"
	"github.com/bryanmylee/LetsMeetService/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

// stores groups the persistence the session layer needs for one driver.
type stores struct {
	users  model.UserStore
	tokens model.RefreshTokenStore
	ping   model.Pinger
	close  func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "driver", cfg.Store.Driver, "error", err)
	}
	defer st.close()

	tokenManager := token.NewJWT(cfg.Auth)
	authService := service.NewAuth(st.users, st.tokens, hasher.NewBcrypt(cfg.Auth.HashCost), tokenManager, logger)
	ctxMgr := apicontext.NewManager()
	m := metrics.New()

	trustedProxies, err := cfg.HTTP.TrustedProxyPrefixes()
	if err != nil {
		logger.Fatal("invalid trusted proxies", "error", err)
	}
	limiter := httpMiddleware.NewRateLimiter(cfg.HTTP.RateLimitPerSecond, cfg.HTTP.RateLimitBurst, trustedProxies)
	go limiter.Run(ctx)

	handler := httpRouter.New(cfg, authService, ctxMgr, st.ping, m, limiter, logger).Register()
	servers := []model.Server{httpServer.NewHTTPServer(handler, fmt.Sprintf(":%s", cfg.HTTP.Port))}

	if cfg.GRPC.Enabled {
		s := grpcRouter.New(authService, ctxMgr, logger).Register()
		reflection.Register(s)
		servers = append(servers, grpcServer.NewGRPCServer(s, fmt.Sprintf(":%s", cfg.GRPC.Port)))
	}

	sl := server.NewSecurityLayer(cfg.HTTP)

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg *config.Config) (stores, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := postgres.NewConection(ctx, cfg.Database.DSN)
		if err != nil {
			return stores{}, err
		}
		return stores{
			users:  postgres.NewUserRepository(db.DB),
			tokens: postgres.NewRefreshTokenRepository(db.DB),
			ping:   db,
			close:  func() { _ = db.Close() },
		}, nil

	case config.StoreMinio:
		minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
			Secure: cfg.Storage.UseSSL,
		})
		if err != nil {
			return stores{}, fmt.Errorf("failed to create minio client: %w", err)
		}
		client, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
		if err != nil {
			return stores{}, fmt.Errorf("failed to initialize storage client: %w", err)
		}
		docs := storage.NewDocumentStore(client)
		return stores{users: docs, tokens: docs, ping: docs, close: func() {}}, nil

	default:
		mem := memory.NewStore()
		return stores{users: mem, tokens: mem, ping: mem, close: func() {}}, nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
