package notes

import (
	"context"
	"errors"
	"time"

	"todo-notes/internal/apperrors"
	"todo-notes/internal/model"
	"todo-notes/internal/repository"
	svc "todo-notes/internal/service"
	"todo-notes/internal/service/events"
)

var _ svc.NoteService = (*service)(nil)

type service struct {
	noteRepository repository.NoteRepository
	publisher      events.Publisher
}

// NewNoteService создает новый экземпляр сервиса для работы с заметками
func NewNoteService(noteRepository repository.NoteRepository, publisher events.Publisher) svc.NoteService {
	if publisher == nil {
		publisher = events.Discard
	}
	return &service{
		noteRepository: noteRepository,
		publisher:      publisher,
	}
}

// Create создает новую заметку. Title и content сохраняются как есть, без обрезки.
func (s *service) Create(ctx context.Context, title, content string, noteType model.NoteType) (model.Note, error) {
	if noteType == "" {
		noteType = model.NoteGeneral
	}

	note := model.Note{
		Title:   title,
		Content: content,
		Type:    noteType,
	}
	if err := note.Validate(); err != nil {
		return model.Note{}, err
	}

	createdNote, err := s.noteRepository.Create(ctx, note)
	if err != nil {
		return model.Note{}, apperrors.Internal(err)
	}

	s.publish(model.OpCreated, createdNote.ID)
	return createdNote, nil
}

// Get возвращает заметку по её ID
func (s *service) Get(ctx context.Context, id int64) (model.Note, error) {
	note, err := s.noteRepository.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, mapRepoError(err)
	}
	return note, nil
}

// List возвращает список всех заметок
func (s *service) List(ctx context.Context) ([]model.Note, error) {
	notes, err := s.noteRepository.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return notes, nil
}

// Update применяет команду обновления к заметке с указанным ID
func (s *service) Update(ctx context.Context, id int64, update model.NoteUpdate) (model.Note, error) {
	existingNote, err := s.noteRepository.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, mapRepoError(err)
	}

	note, err := update.Apply(existingNote)
	if err != nil {
		return model.Note{}, err
	}

	updatedNote, err := s.noteRepository.Update(ctx, note)
	if err != nil {
		return model.Note{}, mapRepoError(err)
	}

	s.publish(model.OpUpdated, updatedNote.ID)
	return updatedNote, nil
}

// Delete удаляет заметку по ID
func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.noteRepository.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}

	s.publish(model.OpDeleted, id)
	return nil
}

func (s *service) publish(op model.Op, id int64) {
	s.publisher.Publish(model.Change{Entity: model.EntityNote, Op: op, ID: id, At: time.Now().UTC()})
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Note")
	}
	return apperrors.Internal(err)
}
