package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"todo-notes/internal/model"
	"todo-notes/internal/service/events"
)

type gauge struct{ n int }

func (g *gauge) Inc() { g.n++ }
func (g *gauge) Dec() { g.n-- }

type feedEnv struct {
	broker       *events.Broker
	conn         *grpc.ClientConn
	client       *FeedClient
	cancelServer context.CancelFunc
}

func startFeed(t *testing.T) *feedEnv {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	broker := events.NewBroker()
	serverCtx, cancel := context.WithCancel(context.Background())

	srv := NewServer(NewFeed(serverCtx, broker, zap.NewNop(), &gauge{}), health.NewServer(), zap.NewNop())
	go func() { _ = srv.Serve(lis) }()

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
		srv.Stop()
	})

	return &feedEnv{broker: broker, conn: conn, client: NewFeedClient(conn), cancelServer: cancel}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestWatch_HelloThenChanges(t *testing.T) {
	env := startFeed(t)

	stream, err := env.client.Watch(testContext(t), &WatchRequest{})
	require.NoError(t, err)

	hello, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, model.OpHello, hello.Op)

	change := model.Change{Entity: model.EntityTodo, Op: model.OpCreated, ID: 7, At: time.Now().UTC().Truncate(time.Millisecond)}
	env.broker.Publish(change)

	got, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, change.Entity, got.Entity)
	assert.Equal(t, change.Op, got.Op)
	assert.Equal(t, change.ID, got.ID)
	assert.True(t, change.At.Equal(got.At))
}

func TestWatch_FiltersEntities(t *testing.T) {
	env := startFeed(t)

	stream, err := env.client.Watch(testContext(t), &WatchRequest{Entities: []model.Entity{model.EntityNote}})
	require.NoError(t, err)
	_, err = stream.Recv()
	require.NoError(t, err)

	env.broker.Publish(model.Change{Entity: model.EntityTodo, Op: model.OpDeleted, ID: 1})
	env.broker.Publish(model.Change{Entity: model.EntityNote, Op: model.OpUpdated, ID: 2})

	got, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, model.EntityNote, got.Entity)
	assert.Equal(t, int64(2), got.ID)
}

func TestWatch_RejectsUnknownEntity(t *testing.T) {
	env := startFeed(t)

	stream, err := env.client.Watch(testContext(t), &WatchRequest{Entities: []model.Entity{"user"}})
	require.NoError(t, err)

	_, err = stream.Recv()
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestWatch_EndsOnServerShutdown(t *testing.T) {
	env := startFeed(t)

	stream, err := env.client.Watch(testContext(t), &WatchRequest{})
	require.NoError(t, err)
	_, err = stream.Recv()
	require.NoError(t, err)

	env.cancelServer()

	_, err = stream.Recv()
	assert.Equal(t, codes.Unavailable, status.Code(err))
	assert.Eventually(t, func() bool { return env.broker.Subscribers() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHealthService(t *testing.T) {
	env := startFeed(t)

	resp, err := healthpb.NewHealthClient(env.conn).Check(testContext(t), &healthpb.HealthCheckRequest{Service: serviceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestWatchRequest_Validate(t *testing.T) {
	assert.NoError(t, (&WatchRequest{}).Validate())
	assert.NoError(t, (&WatchRequest{Entities: []model.Entity{model.EntityTodo, model.EntityNote}}).Validate())
	assert.Error(t, (&WatchRequest{Entities: []model.Entity{"user"}}).Validate())
}
