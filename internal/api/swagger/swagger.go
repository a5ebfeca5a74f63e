package swagger

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed embed/*
var content embed.FS

// Spec возвращает встроенный OpenAPI документ
func Spec() []byte {
	data, err := content.ReadFile("embed/openapi.json")
	if err != nil {
		// Файл встроен при сборке, отсутствовать не может
		panic(err)
	}
	return data
}

// Register добавляет маршруты документации:
//   - GET /swagger.json - OpenAPI документ
//   - GET /swagger/ - страница Swagger UI
func Register(r chi.Router) {
	spec := Spec()
	ui, err := fs.Sub(content, "embed")
	if err != nil {
		panic(err)
	}

	r.Get("/swagger.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(spec)
	})

	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", http.StripPrefix("/swagger", http.FileServer(http.FS(ui))).ServeHTTP)
}
