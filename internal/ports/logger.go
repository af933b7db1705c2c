package ports

import "context"

// Logger — логгер с форматированием в стиле Printf.
// Метаданные запроса (request_id, op, trace_id) реализация берёт из ctx сама.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
