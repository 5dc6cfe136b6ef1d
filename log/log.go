package log

import (
	"context"
	"io"
)

// Logger is the observability collaborator injected into chat adapters.
type Logger interface {
	Printf(string, ...any)
	Errorf(string, ...any)
	Infof(string, ...any)
	Debugf(string, ...any)

	SetLogLevel(Level)
	SetLogOutput(io.Writer)

	IsQuiet() bool
	IsVerbose() bool
	IsTrace() bool
}

// default
var std = New()

func Default() Logger {
	return std
}

type loggerKey struct{}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// GetLogger returns the logger carried by ctx, or the default.
func GetLogger(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(Logger); ok {
			return l
		}
	}
	return std
}
