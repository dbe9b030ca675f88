package middleware

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/metrics"
)

// Interceptors returns the server's interceptor chain, outermost first.
// Logging and metrics wrap authentication so rejected calls are recorded too.
func Interceptors(v SessionVerifier, logger *slog.Logger, m *metrics.Metrics) []connect.Interceptor {
	return []connect.Interceptor{
		LoggingInterceptor(logger),
		MetricsInterceptor(m),
		RequireSession(v),
	}
}

// callerSlot lets an outer interceptor learn who the caller turned out to be
// once authentication, which runs further in, has verified them.
type callerSlot struct {
	userID string
}

type callerSlotKey struct{}

func withCallerSlot(ctx context.Context) (context.Context, *callerSlot) {
	slot := &callerSlot{}
	return context.WithValue(ctx, callerSlotKey{}, slot), slot
}

func noteCaller(ctx context.Context, userID string) {
	if slot, ok := ctx.Value(callerSlotKey{}).(*callerSlot); ok {
		slot.userID = userID
	}
}
