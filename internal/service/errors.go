package service

import (
	"context"
	"errors"
	"time"

	"connectrpc.com/connect"
	"go.uber.org/zap"

	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/metrics"
)

// toConnectError maps an application error to its RPC status
func toConnectError(err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}

	switch {
	case errors.Is(err, apperr.ErrValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, apperr.ErrInvalidTransition):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, apperr.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, apperr.ErrPersistence):
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// NewObservabilityInterceptor records RPC latency and logs failed calls
func NewObservabilityInterceptor(logger *zap.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			res, err := next(ctx, req)

			procedure := req.Spec().Procedure
			status := "ok"
			if err != nil {
				code := connect.CodeOf(err)
				status = code.String()
				fields := []zap.Field{zap.String("procedure", procedure), zap.String("code", status), zap.Error(err)}
				if code == connect.CodeInternal || code == connect.CodeUnavailable {
					logger.Error("RPC failed", fields...)
				} else {
					logger.Debug("RPC rejected", fields...)
				}
			}
			metrics.RecordRPCDuration(procedure, status, time.Since(start).Seconds())
			return res, err
		}
	}
}
