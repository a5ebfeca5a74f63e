package grpc

import (
	"context"

	"google.golang.org/grpc"

	"todo-notes/internal/model"
)

// FeedClient клиент ленты изменений
type FeedClient struct {
	cc grpc.ClientConnInterface
}

// NewFeedClient создает клиента поверх установленного соединения
func NewFeedClient(cc grpc.ClientConnInterface) *FeedClient {
	return &FeedClient{cc: cc}
}

// Watch открывает стрим изменений. Первое сообщение стрима - событие hello.
func (c *FeedClient) Watch(ctx context.Context, req *WatchRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[model.Change], error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	stream, err := c.cc.NewStream(ctx, &ChangeFeedServiceDesc.Streams[0], WatchMethod, opts...)
	if err != nil {
		return nil, err
	}

	x := &grpc.GenericClientStream[WatchRequest, model.Change]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(req); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
