package interceptors

import (
	"errors"
	"io"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// wrappedServerStream считает отправленные сообщения и логирует ошибки чтения
type wrappedServerStream struct {
	grpc.ServerStream
	log    *zap.Logger
	method string
	sent   int
}

func (w *wrappedServerStream) RecvMsg(m any) error {
	err := w.ServerStream.RecvMsg(m)
	if err != nil && !errors.Is(err, io.EOF) {
		w.log.Debug("stream RecvMsg error", zap.String("method", w.method), zap.Error(err))
	}
	return err
}

func (w *wrappedServerStream) SendMsg(m any) error {
	err := w.ServerStream.SendMsg(m)
	if err == nil {
		w.sent++
	}
	return err
}

// StreamInterceptor логирует открытие и закрытие стрима с числом отправленных сообщений
func StreamInterceptor(log *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		log.Info("stream opened", zap.String("method", info.FullMethod))

		wrapped := &wrappedServerStream{ServerStream: ss, log: log, method: info.FullMethod}
		err := handler(srv, wrapped)

		log.Info("stream closed",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Convert(err).Code().String()),
			zap.Int("sent", wrapped.sent),
			zap.Duration("duration", time.Since(start)),
		)
		return err
	}
}
