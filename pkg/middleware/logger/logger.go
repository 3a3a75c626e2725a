package logger

import (
	"context"
	"os"
	"sync"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ServiceEnv struct {
	Platform string
	Service  string
	Env      string
}

type LogConfig struct {
	Path       string
	LogLevel   string
	ServiceEnv ServiceEnv
}

var (
	mu     sync.RWMutex
	sugar  = otelzap.New(zap.NewNop()).Sugar()
	writer *lumberjack.Logger
)

func Init(conf *LogConfig) {
	level, err := zapcore.ParseLevel(conf.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stderr)}
	var w *lumberjack.Logger
	if conf.Path != "" {
		w = &lumberjack.Logger{
			Filename:   conf.Path,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     7,
			Compress:   true,
		}
		sinks = append(sinks, zapcore.AddSync(w))
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.NewMultiWriteSyncer(sinks...),
		level,
	)

	base := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).With(
		zap.String("platform", conf.ServiceEnv.Platform),
		zap.String("service", conf.ServiceEnv.Service),
		zap.String("env", conf.ServiceEnv.Env),
	)

	l := otelzap.New(base, otelzap.WithMinLevel(zapcore.WarnLevel))

	mu.Lock()
	sugar = l.Sugar()
	writer = w
	mu.Unlock()
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	_ = sugar.Sync()
	if writer != nil {
		_ = writer.Close()
		writer = nil
	}
}

func get(ctx context.Context) otelzap.SugaredLoggerWithCtx {
	mu.RLock()
	defer mu.RUnlock()
	if ctx == nil {
		ctx = context.Background()
	}
	return sugar.Ctx(ctx)
}

func Debugf(ctx context.Context, format string, args ...any) {
	get(ctx).Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...any) {
	get(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...any) {
	get(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	get(ctx).Errorf(format, args...)
}

func Fatalf(ctx context.Context, format string, args ...any) {
	get(ctx).Fatalf(format, args...)
}
