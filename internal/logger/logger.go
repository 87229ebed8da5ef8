package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// dualHandler writes every record to core and mirrors errors to a second handler.
type dualHandler struct {
	coreHandler  slog.Handler
	errorHandler slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.coreHandler.Enabled(ctx, lvl) || h.errorHandler.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error

	// Всегда пишем в основной вывод (stdout)
	if h.coreHandler.Enabled(ctx, r.Level) {
		err = h.coreHandler.Handle(ctx, r)
		if err != nil {
			return err
		}
	}

	// Если это ошибка, пишем в файл
	if r.Level >= slog.LevelError && h.errorHandler.Enabled(ctx, r.Level) {
		if fileErr := h.errorHandler.Handle(ctx, r.Clone()); fileErr != nil {
			return fileErr
		}
	}

	return err
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithAttrs(attrs),
		errorHandler: h.errorHandler.WithAttrs(attrs),
	}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithGroup(name),
		errorHandler: h.errorHandler.WithGroup(name),
	}
}

func newCoreHandler(env string, w io.Writer) slog.Handler {
	// Определяем уровень логирования
	level := slog.LevelDebug
	if env == EnvProd {
		level = slog.LevelInfo
	}

	switch env {
	case EnvDev:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
}

// New builds a logger for env writing to out, with errors mirrored to errOut.
func New(env string, out, errOut io.Writer) *slog.Logger {
	core := newCoreHandler(env, out)
	if errOut == nil {
		return slog.New(core)
	}

	return slog.New(&dualHandler{
		coreHandler:  core,
		errorHandler: slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelError}),
	})
}

// Setup logs to stdout and appends errors to errorLogPath. The returned
// closer releases the error file.
func Setup(env, errorLogPath string) (*slog.Logger, io.Closer) {
	if errorLogPath == "" {
		return New(env, os.Stdout, nil), io.NopCloser(nil)
	}

	errorFile, err := os.OpenFile(errorLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		log := New(env, os.Stdout, nil)
		log.Warn("cannot open error log file", slog.String("path", errorLogPath), slog.Any("error", err))
		return log, io.NopCloser(nil)
	}

	return New(env, os.Stdout, errorFile), errorFile
}

func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
