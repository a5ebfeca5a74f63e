package client

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/test/bufconn"

	grpcapi "todo-notes/internal/api/grpc"
	"todo-notes/internal/model"
)

type nopGauge struct{}

func (nopGauge) Inc() {}
func (nopGauge) Dec() {}

func startFeed(t *testing.T, srv *testServer) *grpcapi.FeedClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	serverCtx, cancel := context.WithCancel(context.Background())
	gs := grpcapi.NewServer(grpcapi.NewFeed(serverCtx, srv.broker, zap.NewNop(), nopGauge{}), health.NewServer(), zap.NewNop())
	go func() { _ = gs.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		cancel()
		_ = conn.Close()
		gs.Stop()
	})
	return grpcapi.NewFeedClient(conn)
}

func TestWatcher_RefreshesOnRemoteChange(t *testing.T) {
	srv := startServer(t)
	feed := startFeed(t, srv)

	local := NewTodoStore(srv.api)
	remote := NewTodoStore(srv.api)
	notesStore := NewNoteStore(srv.api)

	refreshed := make(chan model.Entity, 16)
	w := NewWatcher(feed, local, notesStore, zap.NewNop())
	w.OnRefresh = func(e model.Entity) { refreshed <- e }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// hello перечитывает оба списка
	waitFor(t, refreshed, model.EntityTodo)
	waitFor(t, refreshed, model.EntityNote)

	created, err := remote.Add(testContext(t), "from another client", "")
	require.NoError(t, err)

	waitFor(t, refreshed, model.EntityTodo)
	require.Len(t, local.Items(), 1)
	assert.Equal(t, created.ID, local.Items()[0].ID)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func waitFor(t *testing.T, ch <-chan model.Entity, want model.Entity) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-ch:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("no refresh for %s", want)
		}
	}
}
