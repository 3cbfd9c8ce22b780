package app

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/leshachaplin/convrelay/app/waiter"
	"github.com/leshachaplin/convrelay/internal/config"
	appServer "github.com/leshachaplin/convrelay/internal/server/http"
	"github.com/leshachaplin/convrelay/internal/service"
	"github.com/leshachaplin/convrelay/internal/upstream"
)

const shutdownTimeout = time.Minute

type LoadConfigFn func() (config.Config, error)

type App struct {
	cfg      config.Config
	logger   zerolog.Logger
	server   *appServer.Server
	waiter   waiter.Waiter
	ctx      context.Context
	cancelFn context.CancelFunc
}

func New(loadConfigFn LoadConfigFn) *App {
	ctx, cancelFn := context.WithCancel(context.Background())
	cfg, err := loadConfigFn()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := NewZeroLogger(ParseLevel(cfg.LogLevel))

	w := waiter.NewWaiter(ctx, cancelFn, waiter.WithLogger(logger))

	return &App{
		cfg:      cfg,
		logger:   logger,
		waiter:   w,
		ctx:      ctx,
		cancelFn: cancelFn,
	}
}

func (a *App) Start() {
	defer a.cancelFn()

	a.logConfig()

	client := upstream.New(a.cfg.Upstream, a.logger.With().Str("component", "upstream").Logger())
	conversion := service.New(a.cfg.Upstream, client, a.logger.With().Str("component", "service").Logger())
	handler := appServer.NewHandler(conversion, a.logger)

	a.server = appServer.New(a.cfg, handler, a.logger)

	a.waitForServer()

	if err := a.waiter.Wait(); err != nil {
		a.logger.Fatal().Err(err).Msg("App crash.")
	}
}

func (a *App) Stop() {
	a.cancelFn()
}

// logConfig never prints the access token and only a prefix of the pixel id.
func (a *App) logConfig() {
	if !a.cfg.Upstream.Configured() {
		a.logger.Warn().
			Bool("pixel_id_set", a.cfg.Upstream.PixelID != "").
			Bool("access_token_set", a.cfg.Upstream.AccessToken != "").
			Msg("PIXEL_ID or ACCESS_TOKEN not loaded, conversions will be refused")
	} else {
		a.logger.Info().
			Str("pixel_id", a.cfg.Upstream.MaskedPixelID()).
			Str("api_version", a.cfg.Upstream.APIVersion).
			Msg("conversions api configured")
	}
	a.logger.Info().Str("allowed_origin", a.cfg.CORS.AllowedOrigin).Msg("accepting requests from origin")
}

func (a *App) waitForServer() {
	a.waiter.Add(func(ctx context.Context) error {
		defer a.logger.Debug().Msg("server has been shutdown")

		group, gCtx := errgroup.WithContext(ctx)
		group.Go(func() error {
			defer a.logger.Debug().Msg("public server exited")
			a.logger.Info().Str("addr", a.server.Addr()).Msg("starting server")
			err := a.server.ServePublic()
			if err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})

		group.Go(func() error {
			<-gCtx.Done()
			a.logger.Debug().Msg("shutting down the server")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := a.server.ShutdownPublic(ctx); err != nil {
				a.logger.Warn().Err(err).Msg("error while shutting down the server")
			}
			return nil
		})

		return group.Wait()
	})
}
