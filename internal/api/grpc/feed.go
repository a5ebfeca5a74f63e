package grpc

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"todo-notes/internal/model"
	"todo-notes/internal/service/events"
)

const (
	serviceName = "changes.v1.ChangeFeed"
	// WatchMethod полное имя метода для клиентов
	WatchMethod = "/" + serviceName + "/Watch"
)

// WatchRequest запрос подписки. Пустой Entities означает все сущности.
type WatchRequest struct {
	Entities []model.Entity `json:"entities,omitempty"`
}

// Validate проверяет, что перечислены только известные сущности
func (r *WatchRequest) Validate() error {
	for _, e := range r.Entities {
		if e != model.EntityTodo && e != model.EntityNote {
			return fmt.Errorf("unknown entity %q", e)
		}
	}
	return nil
}

func (r *WatchRequest) wants(e model.Entity) bool {
	if len(r.Entities) == 0 {
		return true
	}
	for _, want := range r.Entities {
		if want == e {
			return true
		}
	}
	return false
}

// ChangeFeedServer серверная часть ленты изменений
type ChangeFeedServer interface {
	Watch(req *WatchRequest, stream grpc.ServerStreamingServer[model.Change]) error
}

// ChangeFeedServiceDesc описание сервиса для grpc.Server.RegisterService
var ChangeFeedServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ChangeFeedServer)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       watchHandler,
			ServerStreams: true,
		},
	},
	Metadata: "changes/v1/changes.json",
}

func watchHandler(srv any, stream grpc.ServerStream) error {
	req := new(WatchRequest)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(ChangeFeedServer).Watch(req, &grpc.GenericServerStream[WatchRequest, model.Change]{ServerStream: stream})
}

// StreamGauge считает открытые стримы; prometheus.Gauge подходит
type StreamGauge interface {
	Inc()
	Dec()
}

// Feed реализует ChangeFeedServer поверх events.Broker
type Feed struct {
	broker *events.Broker
	log    *zap.Logger
	// serverCtx отменяется при shutdown, GracefulStop сам стримы не завершает
	serverCtx context.Context
	gauge     StreamGauge
}

// NewFeed создает ленту изменений. gauge может быть nil.
func NewFeed(serverCtx context.Context, broker *events.Broker, log *zap.Logger, gauge StreamGauge) *Feed {
	return &Feed{
		broker:    broker,
		log:       log,
		serverCtx: serverCtx,
		gauge:     gauge,
	}
}

// Watch отправляет приветственное событие, затем по одному Change на каждую мутацию
func (f *Feed) Watch(req *WatchRequest, stream grpc.ServerStreamingServer[model.Change]) error {
	ch := f.broker.Subscribe()
	defer f.broker.Unsubscribe(ch)

	if f.gauge != nil {
		f.gauge.Inc()
		defer f.gauge.Dec()
	}

	if err := stream.Send(&model.Change{Op: model.OpHello, At: time.Now().UTC()}); err != nil {
		return err
	}

	for {
		select {
		case <-f.serverCtx.Done():
			f.log.Debug("change feed stopped by server shutdown")
			return status.Error(codes.Unavailable, "server is shutting down")
		case <-stream.Context().Done():
			return nil
		case change, ok := <-ch:
			if !ok {
				return nil
			}
			if !req.wants(change.Entity) {
				continue
			}
			if err := stream.Send(&change); err != nil {
				return err
			}
		}
	}
}
