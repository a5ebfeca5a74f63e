package todos

import (
	"context"
	"errors"
	"strings"
	"time"

	"todo-notes/internal/apperrors"
	"todo-notes/internal/model"
	"todo-notes/internal/repository"
	svc "todo-notes/internal/service"
	"todo-notes/internal/service/events"
)

var _ svc.TodoService = (*service)(nil)

type service struct {
	todoRepository repository.TodoRepository
	publisher      events.Publisher
}

// NewTodoService создает новый экземпляр сервиса для работы с задачами.
// publisher может быть nil, тогда события не публикуются.
func NewTodoService(todoRepository repository.TodoRepository, publisher events.Publisher) svc.TodoService {
	if publisher == nil {
		publisher = events.Discard
	}
	return &service{
		todoRepository: todoRepository,
		publisher:      publisher,
	}
}

// List возвращает список всех задач
func (s *service) List(ctx context.Context) ([]model.Todo, error) {
	todos, err := s.todoRepository.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return todos, nil
}

// Create создает новую задачу с обрезанными title и description
func (s *service) Create(ctx context.Context, title string, description *string) (model.Todo, error) {
	todo := model.Todo{
		Title:       strings.TrimSpace(title),
		Description: model.NormalizeDescription(description),
	}
	if err := todo.Validate(); err != nil {
		return model.Todo{}, err
	}

	created, err := s.todoRepository.Create(ctx, todo)
	if err != nil {
		return model.Todo{}, apperrors.Internal(err)
	}

	s.publish(model.OpCreated, created.ID)
	return created, nil
}

// Update применяет команду обновления к существующей задаче
func (s *service) Update(ctx context.Context, id int64, update model.TodoUpdate) (model.Todo, error) {
	existing, err := s.todoRepository.GetByID(ctx, id)
	if err != nil {
		return model.Todo{}, mapRepoError(err)
	}

	todo, err := update.Apply(existing)
	if err != nil {
		return model.Todo{}, err
	}

	updated, err := s.todoRepository.Update(ctx, todo)
	if err != nil {
		return model.Todo{}, mapRepoError(err)
	}

	s.publish(model.OpUpdated, updated.ID)
	return updated, nil
}

// Delete удаляет задачу по ID
func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.todoRepository.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}

	s.publish(model.OpDeleted, id)
	return nil
}

func (s *service) publish(op model.Op, id int64) {
	s.publisher.Publish(model.Change{Entity: model.EntityTodo, Op: op, ID: id, At: time.Now().UTC()})
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Todo")
	}
	return apperrors.Internal(err)
}
