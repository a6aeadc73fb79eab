package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/bryanwahyu/ayurconnect/internal/application"
	appai "github.com/bryanwahyu/ayurconnect/internal/application/ai"
	appauth "github.com/bryanwahyu/ayurconnect/internal/application/auth"
	appcontact "github.com/bryanwahyu/ayurconnect/internal/application/contact"
	appshare "github.com/bryanwahyu/ayurconnect/internal/application/share"
	"github.com/bryanwahyu/ayurconnect/internal/config"
	domai "github.com/bryanwahyu/ayurconnect/internal/domain/ai"
	"github.com/bryanwahyu/ayurconnect/internal/domain/leads"
	"github.com/bryanwahyu/ayurconnect/internal/domain/mail"
	"github.com/bryanwahyu/ayurconnect/internal/domain/otp"
	"github.com/bryanwahyu/ayurconnect/internal/infra/ai/anthropic"
	"github.com/bryanwahyu/ayurconnect/internal/infra/ai/openai"
	"github.com/bryanwahyu/ayurconnect/internal/infra/db"
	"github.com/bryanwahyu/ayurconnect/internal/infra/httpserver"
	"github.com/bryanwahyu/ayurconnect/internal/infra/mailer"
	"github.com/bryanwahyu/ayurconnect/internal/infra/otpstore"
	"github.com/bryanwahyu/ayurconnect/internal/infra/storage"
	"github.com/bryanwahyu/ayurconnect/internal/middleware"
)

func main() {
	// .env opsional, ENV asli tetap menang
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}
	logger := application.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	model := newModel(cfg)

	seedOpt := appai.WithSeed(nil)
	if !cfg.AI.NoSeed {
		seed := cfg.AI.Seed
		seedOpt = appai.WithSeed(&seed)
	}
	gateway := appai.NewGateway(model, appai.WithLogger(logger), seedOpt)

	var mailSvc mail.Mailer = mailer.NewLog(logger)
	if cfg.SMTP.Enabled() {
		smtp, err := mailer.NewSMTP(mailer.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			TLS:      cfg.SMTP.TLS,
			SSL:      cfg.SMTP.SSL,
			Timeout:  cfg.SMTP.Timeout,
		})
		if err != nil {
			return fmt.Errorf("smtp init: %w", err)
		}
		mailSvc = smtp
	} else {
		logger.Warn("smtp not configured, mail goes to the log")
	}

	checkers := map[string]middleware.HealthChecker{}

	var leadRepo leads.Repository
	if cfg.Database.Enabled() {
		conn, err := db.Open(ctx, cfg.Database.Driver, cfg.DSN())
		if err != nil {
			return err
		}
		defer conn.Close()

		if !cfg.Database.SkipMigrate {
			results, err := conn.Migrate(ctx)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info("migrations applied", slog.Int("count", len(results)))
		}
		repo := conn.Leads()
		leadRepo = repo
		checkers["database"] = middleware.CheckFunc(repo.Check)
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret = randomSecret()
		logger.Warn("auth.jwt_secret not set, sessions will not survive a restart")
	}
	authSvc := appauth.NewService(appauth.Deps{
		Store:  otpstore.New(cfg.Auth.OTPCacheSize, otp.TTL),
		Sender: mailer.OTPSender{Mailer: mailSvc},
		Leads:  leadRepo,
		Tokens: appauth.NewTokens(secret, cfg.Auth.SessionTTL, nil),
		Logger: logger,
	})

	contactSvc := appcontact.NewService(mailSvc, mailer.ContactMessage, cfg.Contact.ExpertInbox, leadRepo, logger)

	var shareSvc *appshare.Service
	if cfg.Minio.Enabled() {
		store, err := storage.New(ctx, storage.Options{
			Endpoint:  cfg.Minio.Endpoint,
			Region:    cfg.Minio.Region,
			Bucket:    cfg.Minio.BucketName,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			UseSSL:    cfg.Minio.UseSSL,
		})
		if err != nil {
			return fmt.Errorf("minio init: %w", err)
		}
		shareSvc = appshare.NewService(store)
		checkers["storage"] = store
	}

	var limiter *middleware.RateLimiter
	if !cfg.RateLimit.Disabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.Rate, cfg.RateLimit.Burst)
		defer limiter.Stop()
	}

	handler := httpserver.NewRouter(httpserver.Deps{
		Gateway:      gateway,
		Auth:         authSvc,
		Contact:      contactSvc,
		Share:        shareSvc,
		Metrics:      middleware.NewMetrics(),
		Limiter:      limiter,
		Checkers:     checkers,
		Logger:       logger,
		RequireLogin: cfg.Auth.RequireLogin,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		CORSOrigins:  cfg.CORS.Origins(),
		CORSMaxAge:   cfg.CORS.MaxAge,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening",
			slog.String("addr", srv.Addr),
			slog.String("provider", cfg.AI.Provider),
			slog.Bool("share", shareSvc != nil),
			slog.Bool("leads", leadRepo != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newModel(cfg *config.Config) domai.Model {
	httpClient := &http.Client{Timeout: cfg.AI.Timeout}
	if cfg.AI.Provider == "anthropic" {
		return anthropic.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, httpClient)
	}
	return openai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, httpClient)
}

func randomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
