package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/integration-hub/internal/config"
	"github.com/MKhiriev/integration-hub/internal/handler"
	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/workers"
)

type server struct {
	httpServer *httpServer
	workers    *workers.Workers

	// stopWorkers cancels the workers' context on Shutdown.
	stopWorkers context.CancelFunc
	workersDone chan struct{}

	logger *logger.Logger
}

// NewServer builds the HTTP server for handlers. bg may be nil.
func NewServer(handlers *handler.Handlers, bg *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoIngressHandler
	}
	if cfg.HTTPAddress == "" {
		return nil, errNoListenAddress
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		workers:    bg,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	if s.workers != nil {
		workersCtx, cancel := context.WithCancel(context.Background())
		s.stopWorkers = cancel
		s.workersDone = make(chan struct{})
		s.logger.Info().Msg("Launching background workers")
		go func() {
			s.workers.Run(workersCtx)
			close(s.workersDone)
		}()
	}

	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()

		s.Shutdown()

		close(idleConnectionsClosed)
	}()

	s.logger.Info().Str("address", s.httpServer.server.Addr).Msg("Launching HTTP server")
	go s.httpServer.RunServer()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()

	if s.stopWorkers != nil {
		s.stopWorkers()
		<-s.workersDone
	}
}
