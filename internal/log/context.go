package log

import (
	"context"
	"log/slog"
)

type attrSliceContextKey struct{}

func attrSliceFromContext(ctx context.Context) []slog.Attr {
	if v := ctx.Value(attrSliceContextKey{}); v != nil {
		return v.([]slog.Attr)
	}
	return nil
}

// ContextWithAttrs is used to add attrs to the context so they are included
// when logs are output.
func ContextWithAttrs(ctx context.Context, attr ...slog.Attr) context.Context {
	if len(attr) == 0 {
		return ctx
	}
	existing := attrSliceFromContext(ctx)
	attrSlice := make([]slog.Attr, 0, len(existing)+len(attr))
	attrSlice = append(attrSlice, existing...)
	attrSlice = append(attrSlice, attr...)
	return context.WithValue(ctx, attrSliceContextKey{}, attrSlice)
}

type contextLogHandler struct {
	handler slog.Handler
}

func (h *contextLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrSlice := attrSliceFromContext(ctx); len(attrSlice) > 0 {
		r.AddAttrs(attrSlice...)
	}
	return h.handler.Handle(ctx, r)
}

func (h *contextLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextLogHandler{
		handler: h.handler.WithAttrs(attrs),
	}
}

func (h *contextLogHandler) WithGroup(name string) slog.Handler {
	return &contextLogHandler{
		handler: h.handler.WithGroup(name),
	}
}

func (h *contextLogHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.handler.Enabled(ctx, l)
}

// NewContextLogHandler wraps handler so records carry the attrs stored in
// their context by ContextWithAttrs.
func NewContextLogHandler(handler slog.Handler) slog.Handler {
	return &contextLogHandler{
		handler: handler,
	}
}
