package logging

import "go.uber.org/zap"

type ZapLogger struct {
	l *zap.Logger
}

func NewZap(l *zap.Logger) *ZapLogger {
	return &ZapLogger{l: l}
}

func (z *ZapLogger) Info(msg string, fields map[string]any) {
	z.l.Info(msg, zapFields(fields)...)
}

func (z *ZapLogger) Warn(msg string, fields map[string]any) {
	z.l.Warn(msg, zapFields(fields)...)
}

func (z *ZapLogger) Error(msg string, fields map[string]any) {
	z.l.Error(msg, zapFields(fields)...)
}

func zapFields(fields map[string]any) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
