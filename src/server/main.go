package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"therapy-scheduler/src/config"
	"therapy-scheduler/src/db"
	"therapy-scheduler/src/rabbitmq"
	"therapy-scheduler/src/router"
	"therapy-scheduler/src/service"

	_ "therapy-scheduler/src/docs"

	_ "github.com/swaggo/files"
	_ "github.com/swaggo/gin-swagger"
)

// Server represents the HTTP server
type Server struct {
	config          *config.GlobalConfig
	database        *db.DB
	publisher       *rabbitmq.AMQPPublisher
	http            *http.Server
	shutdownHandler ShutdownHandlerInterface
}

// NewServer creates a new server instance
func NewServer(cfg *config.GlobalConfig) (*Server, error) {
	// Initialize database connection
	database, err := db.NewDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	server := &Server{
		config:   cfg,
		database: database,
	}

	// Queue-event publishing is optional; the scheduler runs without it.
	if cfg.NotifierEnabled() {
		publisher, err := rabbitmq.NewAMQPPublisher(cfg.GetRabbitURL(), config.QUEUE_EVENTS_EXCHANGE)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		server.publisher = publisher
	} else {
		slog.Info("RabbitMQ not configured, queue events disabled")
	}

	// Create and assign shutdown handler
	server.shutdownHandler = NewShutdownHandler(server)

	return server, nil
}

// Run starts the server with graceful shutdown using ShutdownHandler
func (s *Server) Run() error {
	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	serverDone := s.startServerGoroutine()

	return s.shutdownHandler.HandleShutdown(serverDone, osSignals)
}

// startServerGoroutine starts the HTTP server in a goroutine and returns a channel for errors
func (s *Server) startServerGoroutine() chan error {
	serverDone := make(chan error, 1)

	go func() {
		var notifier *service.QueueNotifier
		if s.publisher != nil {
			notifier = service.NewQueueNotifier(s.publisher)
		}

		r := router.NewRouter(s.database, notifier)
		// Create HTTP server
		httpServer := &http.Server{
			Addr:    fmt.Sprintf("%s:%s", s.config.GetHost(), s.config.GetPort()),
			Handler: r,
		}
		s.http = httpServer

		slog.Info("Starting therapy scheduler",
			"host", s.config.GetHost(),
			"port", s.config.GetPort())

		serverDone <- s.startServer()
	}()

	return serverDone
}

// startServer starts the HTTP server and handles errors
func (s *Server) startServer() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
