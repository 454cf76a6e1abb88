package booking

import "context"

type contextKey string

const idempotencyKey contextKey = "bookingIdempotencyKey"

// WithIdempotencyKey marks ctx so that repeated submissions with the same key
// resolve to the booking created by the first one.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKey, key)
}

func IdempotencyKeyFrom(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(idempotencyKey).(string)

	return key, ok && key != ""
}
