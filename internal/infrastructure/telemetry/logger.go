package telemetry

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/mrops-br/catalog-store/internal/infrastructure/config"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const logAttrsKey contextKey = "log.attrs"

// WithLogAttrs returns a context whose log records carry attrs in addition to
// any attributes already attached to ctx.
func WithLogAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	existing := LogAttrsFromContext(ctx)
	return context.WithValue(ctx, logAttrsKey, append(slices.Clip(existing), attrs...))
}

// LogAttrsFromContext returns the attributes attached with WithLogAttrs
func LogAttrsFromContext(ctx context.Context) []slog.Attr {
	attrs, _ := ctx.Value(logAttrsKey).([]slog.Attr)
	return attrs
}

// WithHTTPRoute adds the HTTP route to the context
func WithHTTPRoute(ctx context.Context, route string) context.Context {
	return WithLogAttrs(ctx, slog.String("http.route", route))
}

// traceContextHandler injects trace ids and context attributes into records
type traceContextHandler struct {
	handler slog.Handler
}

func (h *traceContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *traceContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	r.AddAttrs(LogAttrsFromContext(ctx)...)

	return h.handler.Handle(ctx, r)
}

func (h *traceContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceContextHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *traceContextHandler) WithGroup(name string) slog.Handler {
	return &traceContextHandler{handler: h.handler.WithGroup(name)}
}

// NewLogger returns a JSON logger writing to out, tagged with the service
// name and environment.
func NewLogger(cfg *config.OTLPConfig, out io.Writer) *slog.Logger {
	return initLogger(cfg, out)
}

func initLogger(cfg *config.OTLPConfig, out io.Writer) *slog.Logger {
	jsonHandler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	return slog.New(&traceContextHandler{handler: jsonHandler}).With(
		slog.String("service.name", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)
}
