package jobapi

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/fpl-datacollector/internal/platform/logging"
)

type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Server struct {
	srv    *fasthttp.Server
	addr   string
	logger *logging.Logger
}

func NewServer(cfg ServerConfig, handler *Handler, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		// Collection runs inside the request, so the write timeout has to
		// cover a full snapshot of the player pool.
		cfg.WriteTimeout = 15 * time.Minute
	}

	return &Server{
		srv: &fasthttp.Server{
			Handler:      handler.HandleRequest,
			Name:         "fpl-datacollector",
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		addr:   cfg.Addr,
		logger: logger,
	}
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("job api listening", "addr", s.addr)
	return s.srv.ListenAndServe(s.addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.ShutdownWithContext(ctx)
}
