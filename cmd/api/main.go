package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/if-project/agenda-backend/config"
	agendacron "github.com/if-project/agenda-backend/internal/agendas/cron"
	agendahttp "github.com/if-project/agenda-backend/internal/agendas/http"
	agendarepo "github.com/if-project/agenda-backend/internal/agendas/repository"
	agendasvc "github.com/if-project/agenda-backend/internal/agendas/service"
	"github.com/if-project/agenda-backend/internal/api/http/middleware"
	"github.com/if-project/agenda-backend/internal/api/http/routes"
	attachmenthttp "github.com/if-project/agenda-backend/internal/attachments/http"
	attachmentsvc "github.com/if-project/agenda-backend/internal/attachments/service"
	"github.com/if-project/agenda-backend/internal/auth"
	"github.com/if-project/agenda-backend/internal/bootstrap"
	"github.com/if-project/agenda-backend/internal/logging"
	userhttp "github.com/if-project/agenda-backend/internal/users/http"
	usersvc "github.com/if-project/agenda-backend/internal/users/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.App.LogLevel, cfg.App.LogFormat).With("service", cfg.App.ServiceName)
	slog.SetDefault(logger)

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := bootstrap.OpenBackend(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize backend", "backend", cfg.App.Backend, "error", err)
		os.Exit(1)
	}
	logger.Info("backend ready", "backend", cfg.App.Backend)

	var invites agendarepo.InviteCache = agendarepo.NoopInviteCache{}
	if cfg.Redis.URL != "" {
		rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{URL: cfg.Redis.URL})
		if err != nil {
			// the cache is optional; invites still resolve through the database
			logger.Warn("invite cache disabled", "error", err)
		} else {
			defer rdb.Close()
			invites = agendarepo.NewRedisInviteCache(rdb, cfg.Redis.InviteTTL)
		}
	}

	agendaRepo := agendarepo.NewAgendaRepository(backend.Tree)
	agendaService := agendasvc.NewAgendaService(agendaRepo, backend.Directory, invites)
	itemService := agendasvc.NewItemService(agendaRepo)

	var limiter *middleware.ClientRateLimiter
	if cfg.Server.RateLimitRPS > 0 {
		limiter = middleware.NewClientRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    cfg.App.ServiceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.AllowedOrigins(),
		RateLimiter:    limiter,
		Tree:           backend.Tree,
		V1: routes.V1Deps{
			APIKey: auth.DeriveAPIKey(cfg.Auth.APISecret),
			Users:  userhttp.New(usersvc.NewUserService(backend.Directory, cfg.App.DefaultPhoneRegion)),
			Agendas: agendahttp.New(agendaService, itemService, agendasvc.RedirectTargets{
				IOSDeepLink:   cfg.Invite.IOSDeepLink,
				AndroidIntent: cfg.Invite.AndroidIntent,
				StoreURL:      cfg.Invite.StoreURL,
			}),
			Attachments: attachmenthttp.New(attachmentsvc.NewAttachmentService(backend.Blobs)),
		},
	})

	var scheduler *agendacron.Scheduler
	if cfg.Jobs.OrphanSweepSchedule != "" {
		scheduler = agendacron.NewScheduler(agendaService, logger)
		if err := scheduler.Start(cfg.Jobs.OrphanSweepSchedule); err != nil {
			logger.Error("invalid ORPHAN_SWEEP_SCHEDULE", "error", err)
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port, "env", cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	logger.Info("server exited")
}
