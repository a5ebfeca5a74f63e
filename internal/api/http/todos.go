package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	svc "todo-notes/internal/service"
)

// TodoHandler обрабатывает REST запросы к задачам
type TodoHandler struct {
	service svc.TodoService
	log     *zap.Logger
}

// NewTodoHandler создает обработчик задач
func NewTodoHandler(service svc.TodoService, log *zap.Logger) *TodoHandler {
	return &TodoHandler{service: service, log: log}
}

// List GET /api/todos
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	todos, err := h.service.List(r.Context())
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

// Create POST /api/todos
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(h.log, w, r, err)
		return
	}

	todo, err := h.service.Create(r.Context(), req.Title, req.Description)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

// Update PUT /api/todos/{id}
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "todo")
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}

	var req updateTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(h.log, w, r, err)
		return
	}

	todo, err := h.service.Update(r.Context(), id, req.toModel())
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// Delete DELETE /api/todos/{id}
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "todo")
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Todo deleted successfully"})
}
