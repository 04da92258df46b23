// Пакет ctxmeta — нейтральный слой для метаданных запроса в context.Context
// (request_id, cart_id, trace_id). HTTP-слой и логгер зависят от него, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// Ключи контекста (неэкспортируемый тип — чтобы избежать коллизий).
	KeyRequestID ctxKey = "request_id"
	KeyCartID    ctxKey = "cart_id"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyRequestID)
}

// WithCartID кладёт идентификатор корзины сессии в контекст.
func WithCartID(ctx context.Context, cartID string) context.Context {
	return withString(ctx, KeyCartID, cartID)
}

// CartIDFromContext достаёт идентификатор корзины.
func CartIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyCartID)
}

func withString(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
