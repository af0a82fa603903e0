package sqlalias

import "context"

type ctxData int

const (
	ctxDataBackend ctxData = iota
)

type ctxValueBackend struct {
	context.Context
	be *Backend
}

func (c *ctxValueBackend) Value(v any) any {
	if v == ctxDataBackend {
		return c.be
	}
	return c.Context.Value(v)
}

// ContextBackend returns a context carrying be
func ContextBackend(ctx context.Context, be *Backend) context.Context {
	return &ctxValueBackend{ctx, be}
}

// Plug attaches the backend to ctx
func (be *Backend) Plug(ctx context.Context) context.Context {
	return ContextBackend(ctx, be)
}

// GetBackend returns the backend attached to ctx, or a SQLite backend if there is none
func GetBackend(ctx context.Context) *Backend {
	if ctx != nil {
		if be, ok := ctx.Value(ctxDataBackend).(*Backend); ok && be != nil {
			return be
		}
	}
	return defaultBackend
}

var defaultBackend = NewEngine(EngineSQLite)

// CreateContext is the same as Create, using the backend attached to ctx
func CreateContext(ctx context.Context, initialTable string, joins []JoinFragment, tracker *AliasTracker) (Strategy, error) {
	return Create(GetBackend(ctx), initialTable, joins, tracker)
}
