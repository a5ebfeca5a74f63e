package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"todo-notes/internal/client"
	"todo-notes/internal/model"
)

// Run запускает TUI в альтернативном экране. Если watcher задан, списки
// перечитываются по событиям ленты изменений, пока программа работает.
func Run(ctx context.Context, opts Options, watcher *client.Watcher) error {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))

	if watcher != nil {
		watcher.OnRefresh = func(e model.Entity) { p.Send(RefreshedMsg{Entity: e}) }
		go func() {
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				opts.Log.Warn("change feed watcher stopped", zap.Error(err))
			}
		}()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
