package logger

import (
	"context"

	"github.com/Gunvolt24/storefront-cart/internal/ports"
	"github.com/Gunvolt24/storefront-cart/pkg/ctxmeta"
	"go.uber.org/zap"
)

var _ ports.Logger = (*ZapLogger)(nil)

// ZapLogger — реализация ports.Logger поверх zap.SugaredLogger.
// Метаданные запроса из ctx (request_id, cart_id, trace_id) уходят отдельными полями.
type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

// NewZapLogger — production (JSON) или development (консоль) конфигурация.
func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, nil, err
	}

	return wrap(logger, isProd), func() error { return logger.Sync() }, nil
}

// NewFromZap — обёртка над готовым *zap.Logger (например, zaptest/observer в тестах).
func NewFromZap(logger *zap.Logger) *ZapLogger { return wrap(logger, false) }

func wrap(logger *zap.Logger, isProd bool) *ZapLogger {
	return &ZapLogger{
		// AddCallerSkip(1): в caller должен попадать вызывающий код, а не эта обёртка.
		base:   logger,
		sugar:  logger.WithOptions(zap.AddCallerSkip(1)).Sugar(),
		isProd: isProd,
	}
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.withCtx(ctx).Infof(format, args...)
}

func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.withCtx(ctx).Warnf(format, args...)
}

func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.withCtx(ctx).Errorf(format, args...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }

// withCtx — добавляет поля из контекста, если они там есть.
func (z *ZapLogger) withCtx(ctx context.Context) *zap.SugaredLogger {
	fields := make([]any, 0, 8)
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		fields = append(fields, "request_id", rid)
	}
	if cid, ok := ctxmeta.CartIDFromContext(ctx); ok {
		fields = append(fields, "cart_id", cid)
	}
	if tr, sp, ok := ctxmeta.TraceFromContext(ctx); ok {
		fields = append(fields, "trace_id", tr, "span_id", sp)
	}
	if len(fields) == 0 {
		return z.sugar
	}
	return z.sugar.With(fields...)
}
