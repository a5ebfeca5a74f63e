package client

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	grpcapi "todo-notes/internal/api/grpc"
	"todo-notes/internal/model"
)

const (
	minBackoff = 500 * time.Millisecond
	maxBackoff = 30 * time.Second
)

// Watcher подписывается на ленту изменений и перечитывает затронутый список целиком.
// hello (в том числе после переподключения) перечитывает оба списка.
type Watcher struct {
	feed  *grpcapi.FeedClient
	todos *TodoStore
	notes *NoteStore
	log   *zap.Logger

	// OnRefresh вызывается после успешной перезагрузки списка
	OnRefresh func(model.Entity)
}

func NewWatcher(feed *grpcapi.FeedClient, todos *TodoStore, notes *NoteStore, log *zap.Logger) *Watcher {
	return &Watcher{feed: feed, todos: todos, notes: notes, log: log}
}

// Run работает до отмены ctx, переподключаясь с экспоненциальной задержкой
func (w *Watcher) Run(ctx context.Context) error {
	backoff := minBackoff
	for {
		received, err := w.watchOnce(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if received {
			backoff = minBackoff
		}
		w.log.Warn("change feed disconnected", zap.Error(err), zap.Duration("retryIn", backoff))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

// watchOnce читает один стрим до ошибки; received показывает, было ли хоть одно событие
func (w *Watcher) watchOnce(ctx context.Context) (received bool, err error) {
	entities := make([]model.Entity, 0, 2)
	if w.todos != nil {
		entities = append(entities, model.EntityTodo)
	}
	if w.notes != nil {
		entities = append(entities, model.EntityNote)
	}

	stream, err := w.feed.Watch(ctx, &grpcapi.WatchRequest{Entities: entities})
	if err != nil {
		return false, err
	}

	for {
		change, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled {
				return received, nil
			}
			return received, err
		}
		received = true
		w.apply(ctx, *change)
	}
}

func (w *Watcher) apply(ctx context.Context, change model.Change) {
	switch {
	case change.Op == model.OpHello:
		w.refresh(ctx, model.EntityTodo)
		w.refresh(ctx, model.EntityNote)
	default:
		w.refresh(ctx, change.Entity)
	}
}

func (w *Watcher) refresh(ctx context.Context, entity model.Entity) {
	var err error
	switch {
	case entity == model.EntityTodo && w.todos != nil:
		err = w.todos.FetchAll(ctx)
	case entity == model.EntityNote && w.notes != nil:
		err = w.notes.FetchAll(ctx)
	default:
		return
	}

	if err != nil {
		w.log.Warn("refresh after change failed", zap.String("entity", string(entity)), zap.Error(err))
		return
	}
	if w.OnRefresh != nil {
		w.OnRefresh(entity)
	}
}
