package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"todo-notes/internal/apperrors"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError отдает клиенту безопасное сообщение. Причина внутренних ошибок
// попадает только в лог.
func writeError(log *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.As(err)
	if appErr.Type == apperrors.TypeInternal {
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("requestID", chimiddleware.GetReqID(r.Context())),
			zap.Error(appErr.Cause),
		)
	}
	writeJSON(w, appErr.HTTPStatus(), errorResponse{Error: appErr.Message})
}

// decodeJSON читает тело запроса. Неизвестные поля игнорируются,
// после JSON значения допускаются только пробельные символы.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.Validation("Request body too large")
		}
		if errors.Is(err, io.EOF) {
			return apperrors.Validation("Request body is required")
		}
		return apperrors.Validation("Invalid JSON body")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return apperrors.Validation("Invalid JSON body")
	}
	return nil
}

// parseID разбирает параметр {id} пути; resource используется в тексте ошибки
func parseID(r *http.Request, resource string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperrors.Validationf("Invalid %s ID", resource)
	}
	return id, nil
}

// methodNotAllowed отвечает 405 и перечисляет поддерживаемые методы в Allow
func methodNotAllowed(methods ...string) http.HandlerFunc {
	allow := strings.Join(methods, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: apperrors.MethodNotAllowed(r.Method).Message})
	}
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
}
