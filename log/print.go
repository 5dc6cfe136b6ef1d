package log

import (
	"fmt"
	"io"
	"os"
)

type Level int

const (
	Quiet Level = iota
	Normal
	Verbose
	Tracing
)

type defaultLogger struct {
	logLevel Level

	printLogger Printer
	debugLogger Printer
	infoLogger  Printer
	errLogger   Printer
}

func New() Logger {
	logger := &defaultLogger{
		printLogger: NewPrinter(os.Stdout, true),
		debugLogger: NewPrinter(os.Stderr, false),
		infoLogger:  NewPrinter(os.Stderr, true),
		errLogger:   NewPrinter(os.Stderr, true),
	}
	logger.SetLogLevel(Normal)
	return logger
}

func (r *defaultLogger) Printf(format string, a ...any) {
	r.printLogger.Printf(format, a...)
}

func (r *defaultLogger) Errorf(format string, a ...any) {
	r.errLogger.Printf(format, a...)
}

func (r *defaultLogger) Infof(format string, a ...any) {
	r.infoLogger.Printf(format, a...)
}

func (r *defaultLogger) Debugf(format string, a ...any) {
	r.debugLogger.Printf(format, a...)
}

func (r *defaultLogger) SetLogLevel(level Level) {
	r.logLevel = level

	// stdout
	r.printLogger.SetEnabled(true)

	// stderr
	switch level {
	case Quiet:
		r.debugLogger.SetEnabled(false)
		r.infoLogger.SetEnabled(false)
		r.errLogger.SetEnabled(false)
	case Normal:
		r.debugLogger.SetEnabled(false)
		r.infoLogger.SetEnabled(true)
		r.errLogger.SetEnabled(true)
	default:
		r.debugLogger.SetEnabled(true)
		r.infoLogger.SetEnabled(true)
		r.errLogger.SetEnabled(true)
	}
}

func (r *defaultLogger) SetLogOutput(w io.Writer) {
	r.printLogger.SetLogger(w)
	r.debugLogger.SetLogger(w)
	r.infoLogger.SetLogger(w)
	r.errLogger.SetLogger(w)
}

func (r *defaultLogger) IsQuiet() bool {
	return r.logLevel == Quiet
}

func (r *defaultLogger) IsVerbose() bool {
	return r.logLevel >= Verbose
}

func (r *defaultLogger) IsTrace() bool {
	return r.logLevel == Tracing
}

type Printer interface {
	Printf(string, ...any)

	SetEnabled(bool)
	IsEnabled() bool

	SetLogger(io.Writer)
}

func NewPrinter(w io.Writer, enabled bool) Printer {
	return &printer{
		out: w,
		on:  enabled,
	}
}

type printer struct {
	out io.Writer
	on  bool

	logger io.Writer
}

func (r *printer) SetEnabled(b bool) {
	r.on = b
}

func (r *printer) IsEnabled() bool {
	return r.on
}

func (r *printer) Printf(format string, a ...any) {
	if r.on {
		fmt.Fprintf(r.out, format, a...)
	}
	if r.logger != nil {
		fmt.Fprintf(r.logger, format, a...)
	}
}

func (r *printer) SetLogger(w io.Writer) {
	r.logger = w
}
