package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"

	"github.com/leshachaplin/convrelay/internal/config"
)

const livenessText = "Conversion relay is alive"

type Server struct {
	public       *http.Server
	publicRouter *chi.Mux

	cfg     config.Config
	handler *Handler
	logger  zerolog.Logger
}

func New(cfg config.Config, handler *Handler, logger zerolog.Logger) *Server {
	s := &Server{
		publicRouter: chi.NewRouter(),

		cfg:     cfg,
		handler: handler,
		logger:  logger,
	}
	s.registerPublicRoutes()

	s.public = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.publicRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

// Router exposes the fully wired routes, mostly for httptest.
func (s *Server) Router() http.Handler {
	return s.publicRouter
}

func (s *Server) Addr() string {
	return s.public.Addr
}

func (s *Server) ServePublic() error {
	return s.public.ListenAndServe()
}

func (s *Server) ShutdownPublic(ctx context.Context) error {
	if err := s.public.Shutdown(ctx); err != nil {
		return s.public.Close()
	}
	return nil
}

func (s *Server) registerPublicRoutes() {
	s.publicRouter.Use(
		requestLogger(s.logger),
		recoverer,
		OriginGuard(s.cfg.CORS.AllowedOrigin),
	)

	s.publicRouter.Get("/", func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("liveness check")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(livenessText))
	})
	s.publicRouter.Get("/_/ready", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	s.publicRouter.Route("/api", func(r chi.Router) {
		r.Post("/conversion", s.handler.Conversion)
	})
}
