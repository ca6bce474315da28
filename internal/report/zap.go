package report

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Zap reports failures as structured error-level log entries.
type Zap struct {
	logger *zap.Logger
}

// NewZap wraps an existing logger. A nil logger drops everything.
func NewZap(logger *zap.Logger) *Zap {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Zap{logger: logger}
}

// NewZapWriter builds a logger writing to w, console-encoded or JSON.
func NewZapWriter(w io.Writer, json bool) *Zap {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoder := zapcore.NewConsoleEncoder(encoderCfg)
	if json {
		encoderCfg = zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), zapcore.DebugLevel)
	return NewZap(zap.New(core))
}

// Report logs f and flushes before returning.
func (z *Zap) Report(f Failure) {
	z.logger.Error("assertion failed",
		zap.String("condition", f.Condition),
		zap.String("message", f.Message),
		zap.String("file", f.File),
		zap.Int("line", f.Line),
		zap.String("function", f.Function),
	)
	// stderr/stdout reject fsync on some platforms; the write itself is done.
	_ = z.logger.Sync()
}
