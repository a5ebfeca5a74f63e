// Command swagger-server отдает OpenAPI документ и Swagger UI отдельно от основного сервера.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"todo-notes/internal/api/http/middleware"
	"todo-notes/internal/api/swagger"
	"todo-notes/internal/config"
	"todo-notes/internal/logger"
)

func main() {
	log, err := logger.New(&config.ConfigLogger{Level: "info"})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	port := os.Getenv("SWAGGER_PORT")
	if port == "" {
		port = "8082"
	}
	addr := net.JoinHostPort("0.0.0.0", port)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging(log))
	swagger.Register(r)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("swagger UI server started",
		zap.String("ui", "http://localhost:"+port+"/swagger/"),
		zap.String("spec", "http://localhost:"+port+"/swagger.json"),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("swagger UI server failed", zap.Error(err))
	}
}
