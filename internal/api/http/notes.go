package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	svc "todo-notes/internal/service"
)

// NoteHandler обрабатывает REST запросы к заметкам
type NoteHandler struct {
	service svc.NoteService
	log     *zap.Logger
}

// NewNoteHandler создает обработчик заметок
func NewNoteHandler(service svc.NoteService, log *zap.Logger) *NoteHandler {
	return &NoteHandler{service: service, log: log}
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.List(r.Context())
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(h.log, w, r, err)
		return
	}

	note, err := h.service.Create(r.Context(), req.Title, req.Content, req.Type)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "note")
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}

	note, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "note")
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}

	var req updateNoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(h.log, w, r, err)
		return
	}

	note, err := h.service.Update(r.Context(), id, req.toModel())
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "note")
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Note deleted successfully"})
}
