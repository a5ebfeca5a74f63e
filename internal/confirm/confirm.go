// Package confirm описывает подтверждение разрушительных действий.
// Terminal - блокирующий вопрос y/N, Modal - подтверждение через модальное окно TUI.
package confirm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrBusy возвращается Modal, если предыдущий запрос еще не разрешен
var ErrBusy = errors.New("confirmation already pending")

// Prompt текст запроса подтверждения
type Prompt struct {
	Title       string
	Message     string
	ConfirmText string
}

// Gate спрашивает пользователя и возвращает его решение
type Gate interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

// Func адаптер обычной функции к Gate
type Func func(ctx context.Context, p Prompt) (bool, error)

func (f Func) Confirm(ctx context.Context, p Prompt) (bool, error) {
	return f(ctx, p)
}

// Always Gate, который всегда отвечает одинаково (флаг --yes)
func Always(answer bool) Gate {
	return Func(func(context.Context, Prompt) (bool, error) { return answer, nil })
}

// Terminal спрашивает подтверждение в терминале. Пустой ответ означает "нет".
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

func (t Terminal) Confirm(ctx context.Context, p Prompt) (bool, error) {
	if p.Title != "" {
		fmt.Fprintln(t.Out, p.Title)
	}
	fmt.Fprintf(t.Out, "%s [y/N]: ", p.Message)

	answer := make(chan string, 1)
	errc := make(chan error, 1)
	go func() {
		line, err := bufio.NewReader(t.In).ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			errc <- err
			return
		}
		answer <- line
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errc:
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	case line := <-answer:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes", "ya":
			return true, nil
		}
		return false, nil
	}
}

// Request ожидающий ответа запрос Modal
type Request struct {
	Prompt Prompt
	reply  chan bool
}

// Modal Gate, который разрешается снаружи: TUI показывает Pending и вызывает Resolve
type Modal struct {
	mu       sync.Mutex
	pending  *Request
	requests chan Prompt
}

// NewModal создает Modal. Каждый новый запрос публикуется в Requests.
func NewModal() *Modal {
	return &Modal{requests: make(chan Prompt, 1)}
}

// Requests канал уведомлений о новых запросах
func (m *Modal) Requests() <-chan Prompt {
	return m.requests
}

// Pending возвращает текущий запрос, если он есть
func (m *Modal) Pending() (Prompt, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return Prompt{}, false
	}
	return m.pending.Prompt, true
}

func (m *Modal) Confirm(ctx context.Context, p Prompt) (bool, error) {
	req := &Request{Prompt: p, reply: make(chan bool, 1)}

	m.mu.Lock()
	if m.pending != nil {
		m.mu.Unlock()
		return false, ErrBusy
	}
	m.pending = req
	m.mu.Unlock()

	select {
	case m.requests <- p:
	default:
	}

	select {
	case <-ctx.Done():
		m.clear(req)
		return false, ctx.Err()
	case ok := <-req.reply:
		return ok, nil
	}
}

// Resolve отвечает на текущий запрос. Возвращает false, если запроса нет.
func (m *Modal) Resolve(ok bool) bool {
	m.mu.Lock()
	req := m.pending
	m.pending = nil
	m.mu.Unlock()

	if req == nil {
		return false
	}
	req.reply <- ok
	return true
}

func (m *Modal) clear(req *Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == req {
		m.pending = nil
	}
}
