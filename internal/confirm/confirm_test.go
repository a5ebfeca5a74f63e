package confirm

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var deletePrompt = Prompt{
	Title:       "Hapus Catatan?",
	Message:     "Apakah Anda yakin ingin menghapus catatan ini?",
	ConfirmText: "Ya, Hapus",
}

func TestTerminal_Answers(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"ya\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			gate := Terminal{In: strings.NewReader(tt.input), Out: &out}

			ok, err := gate.Confirm(context.Background(), deletePrompt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Contains(t, out.String(), "Hapus Catatan?")
			assert.Contains(t, out.String(), "[y/N]")
		})
	}
}

func TestTerminal_ContextCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := Terminal{In: r, Out: io.Discard}.Confirm(ctx, deletePrompt)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestModal_Resolve(t *testing.T) {
	m := NewModal()

	result := make(chan bool, 1)
	go func() {
		ok, err := m.Confirm(context.Background(), deletePrompt)
		assert.NoError(t, err)
		result <- ok
	}()

	select {
	case p := <-m.Requests():
		assert.Equal(t, deletePrompt, p)
	case <-time.After(time.Second):
		t.Fatal("no request published")
	}

	pending, ok := m.Pending()
	require.True(t, ok)
	assert.Equal(t, "Ya, Hapus", pending.ConfirmText)

	require.True(t, m.Resolve(true))
	assert.True(t, <-result)

	_, ok = m.Pending()
	assert.False(t, ok)
	assert.False(t, m.Resolve(false))
}

func TestModal_Busy(t *testing.T) {
	m := NewModal()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _, _ = m.Confirm(ctx, deletePrompt) }()
	<-m.Requests()

	_, err := m.Confirm(context.Background(), deletePrompt)
	assert.ErrorIs(t, err, ErrBusy)
}

func TestModal_ContextCancelClearsPending(t *testing.T) {
	m := NewModal()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := m.Confirm(ctx, deletePrompt)
		done <- err
	}()
	<-m.Requests()
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	_, ok := m.Pending()
	assert.False(t, ok)
}

func TestFuncAndAlways(t *testing.T) {
	ok, err := Always(true).Confirm(context.Background(), deletePrompt)
	require.NoError(t, err)
	assert.True(t, ok)

	called := false
	gate := Func(func(_ context.Context, p Prompt) (bool, error) {
		called = true
		return p.Title == "Hapus Catatan?", nil
	})
	ok, err = gate.Confirm(context.Background(), deletePrompt)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, called)
}
