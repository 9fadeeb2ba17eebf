package slog

import (
	"io"
	"log/slog"
)

// SlogHandler adapts a log/slog handler to logger.Logger.
type SlogHandler struct {
	logger *slog.Logger
}

func New(h slog.Handler) *SlogHandler {
	return &SlogHandler{logger: slog.New(h)}
}

// NewText logs human-readable key=value lines to w, dropping records below
// level.
func NewText(w io.Writer, level slog.Level) *SlogHandler {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// With returns a handler that adds args to every record, e.g. the path of the
// file being read.
func (handler *SlogHandler) With(args ...any) *SlogHandler {
	return &SlogHandler{logger: handler.logger.With(args...)}
}

func (handler *SlogHandler) Error(msg string, args ...any) {
	handler.logger.Error(msg, args...)
}

func (handler *SlogHandler) Warn(msg string, args ...any) {
	handler.logger.Warn(msg, args...)
}

func (handler *SlogHandler) Info(msg string, args ...any) {
	handler.logger.Info(msg, args...)
}

func (handler *SlogHandler) Debug(msg string, args ...any) {
	handler.logger.Debug(msg, args...)
}
