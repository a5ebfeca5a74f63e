// Package httpapi содержит REST API задач и заметок поверх chi.
package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"todo-notes/internal/api/http/middleware"
	"todo-notes/internal/api/swagger"
	"todo-notes/internal/config"
	"todo-notes/internal/metrics"
	"todo-notes/internal/repository"
	svc "todo-notes/internal/service"
)

// Deps зависимости роутера. Необязательные поля могут быть nil.
type Deps struct {
	Todos   svc.TodoService
	Notes   svc.NoteService
	Pinger  repository.Pinger
	Gateway *config.ConfigGateway
	Log     *zap.Logger

	Metrics *metrics.Collector
	// Web монтируется в корень, если задан
	Web     func(r chi.Router)
	Swagger bool
}

// NewRouter собирает HTTP обработчик приложения
func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	gw := d.Gateway
	if gw == nil {
		gw = &config.ConfigGateway{}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}
	r.Use(setupCORS(gw).Handler)
	if gw.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(log, gw.RateLimitRPS, gw.RateLimitBurst))
	}
	r.NotFound(notFound)

	r.Get("/health", health)
	r.Get("/ready", ready(d.Pinger, log))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}
	if d.Swagger {
		swagger.Register(r)
	}

	todos := NewTodoHandler(d.Todos, log)
	r.Route("/api/todos", func(r chi.Router) {
		r.MethodNotAllowed(methodNotAllowed(http.MethodGet, http.MethodPost))
		r.Get("/", todos.List)
		r.Post("/", todos.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.MethodNotAllowed(methodNotAllowed(http.MethodPut, http.MethodDelete))
			r.Put("/", todos.Update)
			r.Delete("/", todos.Delete)
		})
	})

	notes := NewNoteHandler(d.Notes, log)
	r.Route("/api/notes", func(r chi.Router) {
		r.MethodNotAllowed(methodNotAllowed(http.MethodGet, http.MethodPost))
		r.Get("/", notes.List)
		r.Post("/", notes.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.MethodNotAllowed(methodNotAllowed(http.MethodGet, http.MethodPut, http.MethodDelete))
			r.Get("/", notes.Get)
			r.Put("/", notes.Update)
			r.Delete("/", notes.Delete)
		})
	})

	if d.Web != nil {
		d.Web(r)
	}

	return r
}

// setupCORS настраивает CORS middleware используя конфигурацию
func setupCORS(cfg *config.ConfigGateway) *cors.Cors {
	// Пустой список в rs/cors означает "разрешить все"
	var origins []string
	for _, origin := range strings.Split(cfg.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	maxAge := cfg.CORSMaxAge
	if maxAge == 0 {
		maxAge = 300
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Requested-With", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         maxAge,
	})
}
