package logging

import (
	"context"
	"github.com/myrjola/veritruth/internal/errors"
	"log/slog"
)

type contextKey string

const slogAttrs contextKey = "slogAttrs"

type ContextHandler struct {
	slog.Handler
}

// NewContextHandler constructs a ContextHandler that adds new [slog.Attr] to the log messages from [context.Context]
// to the underlying [slog.Handler].
func NewContextHandler(h slog.Handler) ContextHandler {
	return ContextHandler{Handler: h}
}

// Handle enriches the log record with [slog.Attr] stored in context with [WithAttrs].
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogAttrs).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}

	if err := h.Handler.Handle(ctx, r); err != nil {
		return errors.Wrap(err, "handle log record")
	}
	return nil
}

// WithAttrs keeps the handler context-aware when the logger is derived with [slog.Logger.With].
func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup keeps the handler context-aware when the logger is derived with [slog.Logger.WithGroup].
func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithGroup(name)}
}

// WithAttrs adds [...slog.Attr] to the [context.Context] that enriches the log messages handled by [ContextHandler].
func WithAttrs(ctx context.Context, attr ...slog.Attr) context.Context {
	if v, ok := ctx.Value(slogAttrs).([]slog.Attr); ok {
		// Copy so that sibling contexts derived from the same parent don't share the backing array.
		merged := make([]slog.Attr, 0, len(v)+len(attr))
		merged = append(merged, v...)
		merged = append(merged, attr...)
		return context.WithValue(ctx, slogAttrs, merged)
	}
	return context.WithValue(ctx, slogAttrs, attr)
}
