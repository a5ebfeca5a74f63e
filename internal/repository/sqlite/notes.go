package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"todo-notes/internal/model"
	"todo-notes/internal/repository"
)

var _ repository.NoteRepository = (*NoteRepository)(nil)

const noteColumns = "id, title, content, type, created_at, updated_at"

// NoteRepository таблица Note
type NoteRepository struct {
	db *DB
}

// NewNoteRepository создает репозиторий заметок поверх открытой базы
func NewNoteRepository(db *DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note model.Note) (model.Note, error) {
	now := r.db.now()
	res, err := r.db.db.ExecContext(ctx,
		"INSERT INTO Note (title, content, type, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		note.Title, note.Content, string(note.Type), formatTime(now), formatTime(now),
	)
	if err != nil {
		return model.Note{}, fmt.Errorf("inserting note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Note{}, fmt.Errorf("reading note id: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *NoteRepository) GetByID(ctx context.Context, id int64) (model.Note, error) {
	row := r.db.db.QueryRowContext(ctx, "SELECT "+noteColumns+" FROM Note WHERE id = ?", id)
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Note{}, repository.ErrNotFound
		}
		return model.Note{}, fmt.Errorf("getting note %d: %w", id, err)
	}
	return note, nil
}

func (r *NoteRepository) List(ctx context.Context) ([]model.Note, error) {
	rows, err := r.db.db.QueryContext(ctx, "SELECT "+noteColumns+" FROM Note ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) Update(ctx context.Context, note model.Note) (model.Note, error) {
	res, err := r.db.db.ExecContext(ctx,
		"UPDATE Note SET title = ?, content = ?, type = ?, updated_at = ? WHERE id = ?",
		note.Title, note.Content, string(note.Type), formatTime(r.db.now()), note.ID,
	)
	if err != nil {
		return model.Note{}, fmt.Errorf("updating note %d: %w", note.ID, err)
	}
	if err := expectOneRow(res); err != nil {
		return model.Note{}, err
	}
	return r.GetByID(ctx, note.ID)
}

func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.db.ExecContext(ctx, "DELETE FROM Note WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting note %d: %w", id, err)
	}
	return expectOneRow(res)
}

func (r *NoteRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanNote(s scanner) (model.Note, error) {
	var (
		note                 model.Note
		noteType             string
		createdAt, updatedAt string
		err                  error
	)
	if err = s.Scan(&note.ID, &note.Title, &note.Content, &noteType, &createdAt, &updatedAt); err != nil {
		return model.Note{}, err
	}
	note.Type = model.NoteType(noteType)
	if note.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Note{}, err
	}
	if note.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Note{}, err
	}
	return note, nil
}
