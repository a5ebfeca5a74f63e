// Package server собирает приложение: хранилище, сервисы, HTTP и gRPC серверы.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	grpcapi "todo-notes/internal/api/grpc"
	httpapi "todo-notes/internal/api/http"
	"todo-notes/internal/config"
	"todo-notes/internal/metrics"
	"todo-notes/internal/repository"
	"todo-notes/internal/repository/memory"
	"todo-notes/internal/repository/sqlite"
	"todo-notes/internal/service/events"
	"todo-notes/internal/service/notes"
	"todo-notes/internal/service/todos"
	"todo-notes/internal/web"
)

// Server HTTP (REST, HTML, метрики) и gRPC (лента изменений, health) на общем наборе сервисов
type Server struct {
	HTTPServer   *http.Server
	HTTPListener net.Listener

	GRPCServer   *grpc.Server
	GRPCListener net.Listener
	Health       *health.Server

	Broker *events.Broker

	// Ctx отменяется при shutdown: стримы ленты изменений слушают его сами,
	// GracefulStop их не завершает
	Ctx    context.Context
	Cancel context.CancelFunc

	Config *config.Config
	log    *zap.Logger

	closeStore func() error
}

type store struct {
	todos  repository.TodoRepository
	notes  repository.NoteRepository
	pinger repository.Pinger
	close  func() error
}

// openStore выбирает реализацию хранилища по database.driver
func openStore(ctx context.Context, cfg *config.ConfigDatabase) (*store, error) {
	switch cfg.Driver {
	case "memory":
		todoRepo := memory.NewTodoRepository()
		pinger, _ := todoRepo.(repository.Pinger)
		return &store{
			todos:  todoRepo,
			notes:  memory.NewNoteRepository(),
			pinger: pinger,
			close:  func() error { return nil },
		}, nil
	case "sqlite", "":
		db, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return &store{
			todos:  sqlite.NewTodoRepository(db),
			notes:  sqlite.NewNoteRepository(db),
			pinger: db,
			close:  db.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

// NewServer создает и инициализирует сервер. Слушатели открываются сразу,
// чтобы ошибка занятого порта проявилась до Start.
func NewServer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	st, err := openStore(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	log.Info("store opened", zap.String("driver", cfg.Database.Driver), zap.String("path", cfg.Database.Path))

	broker := events.NewBroker()
	publishers := events.Multi{broker}

	var collector *metrics.Collector
	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.Namespace)
		publishers = append(publishers, collector)
	}

	todoSvc := todos.NewTodoService(st.todos, publishers)
	noteSvc := notes.NewNoteService(st.notes, publishers)

	deps := httpapi.Deps{
		Todos:   todoSvc,
		Notes:   noteSvc,
		Pinger:  st.pinger,
		Gateway: cfg.Gateway,
		Log:     log,
		Metrics: collector,
		Swagger: cfg.Swagger != nil && cfg.Swagger.Enabled,
	}
	if cfg.Web != nil && cfg.Web.Enabled {
		frontend, err := web.New(todoSvc, noteSvc, log, cfg.Web.Locale)
		if err != nil {
			_ = st.close()
			return nil, fmt.Errorf("parsing templates: %w", err)
		}
		deps.Web = frontend.Register
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())

	var gauge grpcapi.StreamGauge
	if collector != nil {
		gauge = collector.FeedStreams
	}
	healthSrv := health.NewServer()
	grpcServer := grpcapi.NewServer(grpcapi.NewFeed(serverCtx, broker, log, gauge), healthSrv, log)

	grpcAddr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.PortGRPC))
	grpcListener, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		serverCancel()
		_ = st.close()
		return nil, fmt.Errorf("failed to listen on %s: %w", grpcAddr, err)
	}

	httpAddr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.PortHTTP))
	httpListener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		_ = grpcListener.Close()
		serverCancel()
		_ = st.close()
		return nil, fmt.Errorf("failed to listen on %s: %w", httpAddr, err)
	}

	httpServer := &http.Server{
		Handler:           httpapi.NewRouter(deps),
		ReadTimeout:       seconds(cfg.Server.HTTPReadTimeout),
		WriteTimeout:      seconds(cfg.Server.HTTPWriteTimeout),
		IdleTimeout:       seconds(cfg.Server.HTTPIdleTimeout),
		ReadHeaderTimeout: seconds(cfg.Server.HTTPReadHeaderTimeout),
		ErrorLog:          zap.NewStdLog(log.Named("http")),
	}

	return &Server{
		HTTPServer:   httpServer,
		HTTPListener: httpListener,
		GRPCServer:   grpcServer,
		GRPCListener: grpcListener,
		Health:       healthSrv,
		Broker:       broker,
		Ctx:          serverCtx,
		Cancel:       serverCancel,
		Config:       cfg,
		log:          log,
		closeStore:   st.close,
	}, nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// Start запускает gRPC и HTTP серверы в горутинах.
// Возвращает канал ошибок для отслеживания ошибок серверов.
func (s *Server) Start() <-chan error {
	errChan := make(chan error, 2)

	go func() {
		s.log.Info("gRPC server listening", zap.String("addr", s.GRPCListener.Addr().String()))
		if err := s.GRPCServer.Serve(s.GRPCListener); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		s.log.Info("HTTP server listening", zap.String("addr", s.HTTPListener.Addr().String()))
		if err := s.HTTPServer.Serve(s.HTTPListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	return errChan
}

// Shutdown выполняет graceful shutdown сервера
func (s *Server) Shutdown() error {
	s.log.Info("starting graceful shutdown")

	// контекст сервера отменяется до GracefulStop, иначе открытые стримы его не дождутся
	s.Cancel()
	// health переводит все сервисы в NOT_SERVING
	s.Health.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), seconds(s.Config.Server.GracefulShutdownTimeout))
	defer cancel()

	var errs []error
	if err := s.HTTPServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
	}

	stopped := make(chan struct{})
	go func() {
		s.GRPCServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		s.log.Info("gRPC server stopped gracefully")
	case <-ctx.Done():
		s.log.Warn("graceful shutdown timeout, forcing stop")
		s.GRPCServer.Stop()
		errs = append(errs, ctx.Err())
	}

	if err := s.closeStore(); err != nil {
		errs = append(errs, fmt.Errorf("closing store: %w", err))
	}
	return errors.Join(errs...)
}
