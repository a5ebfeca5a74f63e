package interceptors

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Validator реализуется сообщениями, которые умеют проверять себя
type Validator interface {
	Validate() error
}

func validate(m any) error {
	if v, ok := m.(Validator); ok {
		if err := v.Validate(); err != nil {
			return status.Errorf(codes.InvalidArgument, "validation failed: %v", err)
		}
	}
	return nil
}

// ValidateUnaryInterceptor отклоняет невалидные запросы с кодом InvalidArgument
func ValidateUnaryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

type validatingStream struct {
	grpc.ServerStream
}

func (s *validatingStream) RecvMsg(m any) error {
	if err := s.ServerStream.RecvMsg(m); err != nil {
		return err
	}
	return validate(m)
}

// ValidateStreamInterceptor проверяет каждое входящее сообщение стрима
func ValidateStreamInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	return handler(srv, &validatingStream{ServerStream: ss})
}
