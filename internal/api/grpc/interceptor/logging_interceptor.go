package interceptor

import (
	"context"
	"time"

	"carsharing-backend/internal/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Unary logs every call and turns panics and non-status errors into
// codes.Internal.
func Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorContext(ctx, "gRPC handler panicked", "method", info.FullMethod, "panic", r)
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}
			code := status.Code(err)
			if code == codes.OK {
				logger.Debug("gRPC call", "method", info.FullMethod, "duration_ms", time.Since(start).Milliseconds())
				return
			}
			logger.Warn("gRPC call failed", "method", info.FullMethod, "code", code.String(), "duration_ms", time.Since(start).Milliseconds())
		}()

		resp, err = handler(ctx, req)
		if err != nil {
			err = ToStatus(err)
		}
		return resp, err
	}
}

// ToStatus converts err to a gRPC status error. Errors that already carry a
// status pass through; anything else becomes codes.Internal without detail.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	logger.Error("gRPC handler returned a non-status error", "error", err)
	return status.Error(codes.Internal, "internal error")
}
