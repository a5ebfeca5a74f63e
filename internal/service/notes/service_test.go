package notes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-notes/internal/apperrors"
	"todo-notes/internal/model"
	"todo-notes/internal/repository"
	"todo-notes/internal/service/events"
)

// mockRepository - простой mock репозитория для тестирования
type mockRepository struct {
	notes       map[int64]model.Note
	nextID      int64
	createError error
	listError   error
	updateError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		notes: make(map[int64]model.Note),
	}
}

func (m *mockRepository) Create(ctx context.Context, note model.Note) (model.Note, error) {
	if m.createError != nil {
		return model.Note{}, m.createError
	}

	m.nextID++
	note.ID = m.nextID
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt
	m.notes[note.ID] = note
	return note, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (model.Note, error) {
	note, exists := m.notes[id]
	if !exists {
		return model.Note{}, repository.ErrNotFound
	}
	return note, nil
}

func (m *mockRepository) List(ctx context.Context) ([]model.Note, error) {
	if m.listError != nil {
		return nil, m.listError
	}

	notes := make([]model.Note, 0, len(m.notes))
	for _, note := range m.notes {
		notes = append(notes, note)
	}
	return notes, nil
}

func (m *mockRepository) Update(ctx context.Context, note model.Note) (model.Note, error) {
	if m.updateError != nil {
		return model.Note{}, m.updateError
	}
	if _, exists := m.notes[note.ID]; !exists {
		return model.Note{}, repository.ErrNotFound
	}

	note.UpdatedAt = time.Now()
	m.notes[note.ID] = note
	return note, nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.notes[id]; !exists {
		return repository.ErrNotFound
	}
	delete(m.notes, id)
	return nil
}

// Проверка, что mockRepository реализует интерфейс
var _ repository.NoteRepository = (*mockRepository)(nil)

func TestNoteService_Create_Success(t *testing.T) {
	repo := newMockRepository()
	broker := events.NewBroker()
	changes := broker.Subscribe()
	s := NewNoteService(repo, broker)

	note, err := s.Create(context.Background(), "Rapat", "Jam 9 pagi", model.NoteImportant)
	require.NoError(t, err)

	assert.Equal(t, int64(1), note.ID)
	assert.Equal(t, "Rapat", note.Title)
	assert.Equal(t, "Jam 9 pagi", note.Content)
	assert.Equal(t, model.NoteImportant, note.Type)

	change := <-changes
	assert.Equal(t, model.EntityNote, change.Entity)
	assert.Equal(t, model.OpCreated, change.Op)
	assert.Equal(t, note.ID, change.ID)
}

func TestNoteService_Create_DefaultsToGeneral(t *testing.T) {
	s := NewNoteService(newMockRepository(), nil)

	note, err := s.Create(context.Background(), "title", "content", "")
	require.NoError(t, err)
	assert.Equal(t, model.NoteGeneral, note.Type)
}

func TestNoteService_Create_KeepsWhitespace(t *testing.T) {
	s := NewNoteService(newMockRepository(), nil)

	note, err := s.Create(context.Background(), "  padded  ", " body ", model.NoteDaily)
	require.NoError(t, err)
	assert.Equal(t, "  padded  ", note.Title)
	assert.Equal(t, " body ", note.Content)
}

func TestNoteService_Create_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		content  string
		noteType model.NoteType
		message  string
	}{
		{name: "empty title", title: "", content: "x", message: "Title and content are required"},
		{name: "empty content", title: "x", content: "", message: "Title and content are required"},
		{name: "unknown type", title: "x", content: "y", noteType: "urgent", message: `Invalid note type "urgent"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			s := NewNoteService(repo, nil)

			_, err := s.Create(context.Background(), tt.title, tt.content, tt.noteType)
			require.Error(t, err)
			appErr := apperrors.As(err)
			assert.Equal(t, apperrors.TypeValidation, appErr.Type)
			assert.Equal(t, tt.message, appErr.Message)
			assert.Empty(t, repo.notes)
		})
	}
}

func TestNoteService_Create_RepositoryError(t *testing.T) {
	repo := newMockRepository()
	repo.createError = errors.New("database error")
	s := NewNoteService(repo, nil)

	_, err := s.Create(context.Background(), "title", "content", model.NoteGeneral)
	assert.True(t, apperrors.IsType(err, apperrors.TypeInternal))
}

func TestNoteService_Get(t *testing.T) {
	s := NewNoteService(newMockRepository(), nil)
	ctx := context.Background()

	created, err := s.Create(ctx, "title", "content", model.NoteDaily)
	require.NoError(t, err)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = s.Get(ctx, 999)
	appErr := apperrors.As(err)
	assert.Equal(t, apperrors.TypeNotFound, appErr.Type)
	assert.Equal(t, "Note not found", appErr.Message)
}

func TestNoteService_List_Error(t *testing.T) {
	repo := newMockRepository()
	repo.listError = errors.New("list error")
	s := NewNoteService(repo, nil)

	_, err := s.List(context.Background())
	assert.True(t, apperrors.IsType(err, apperrors.TypeInternal))
}

func TestNoteService_Update(t *testing.T) {
	s := NewNoteService(newMockRepository(), nil)
	ctx := context.Background()

	created, err := s.Create(ctx, "title", "content", "")
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, model.NoteUpdate{Type: model.Set(model.NoteImportant)})
	require.NoError(t, err)
	assert.Equal(t, model.NoteImportant, updated.Type)
	assert.Equal(t, "title", updated.Title)
	assert.Equal(t, "content", updated.Content)

	updated, err = s.Update(ctx, created.ID, model.NoteUpdate{Title: model.Set("new"), Content: model.Set("body")})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "body", updated.Content)
	assert.Equal(t, model.NoteImportant, updated.Type)
}

func TestNoteService_Update_Invalid(t *testing.T) {
	s := NewNoteService(newMockRepository(), nil)
	ctx := context.Background()

	created, err := s.Create(ctx, "title", "content", "")
	require.NoError(t, err)

	for name, update := range map[string]model.NoteUpdate{
		"empty title":  {Title: model.Set("")},
		"null content": {Content: model.Null[string]()},
		"bad type":     {Type: model.Set(model.NoteType("urgent"))},
		"null type":    {Type: model.Null[model.NoteType]()},
	} {
		_, err := s.Update(ctx, created.ID, update)
		assert.True(t, apperrors.IsType(err, apperrors.TypeValidation), name)
	}

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestNoteService_Update_NotFound(t *testing.T) {
	s := NewNoteService(newMockRepository(), nil)

	_, err := s.Update(context.Background(), 42, model.NoteUpdate{Title: model.Set("x")})
	assert.True(t, apperrors.IsType(err, apperrors.TypeNotFound))
}

func TestNoteService_Delete(t *testing.T) {
	repo := newMockRepository()
	s := NewNoteService(repo, nil)
	ctx := context.Background()

	created, err := s.Create(ctx, "title", "content", "")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))
	assert.Empty(t, repo.notes)

	err = s.Delete(ctx, created.ID)
	assert.True(t, apperrors.IsType(err, apperrors.TypeNotFound))
}
