package main

import (
	"go.uber.org/zap"

	"github.com/jonwraymond/adablock/block"
)

// zapLogger adapts a zap logger to block.Logger.
type zapLogger struct {
	s *zap.SugaredLogger
}

var _ block.Logger = zapLogger{}

func newZapLogger(l *zap.Logger) zapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return zapLogger{s: l.Sugar()}
}

func (l zapLogger) Debug(msg string, args ...any) { l.s.Debugw(msg, args...) }
func (l zapLogger) Info(msg string, args ...any)  { l.s.Infow(msg, args...) }
func (l zapLogger) Warn(msg string, args ...any)  { l.s.Warnw(msg, args...) }
func (l zapLogger) Error(msg string, args ...any) { l.s.Errorw(msg, args...) }
