package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Settings 日志相关配置，FileName为空时只输出到控制台
type Settings struct {
	Level      string
	FileName   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
}

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

func init() {
	l, err := zap.NewDevelopment(zap.AddCallerSkip(1))
	if err == nil {
		logger = l
	}
}

// Setup 按照配置重新创建全局logger，控制台和文件各一个core
func Setup(settings *Settings) error {
	level := zapcore.InfoLevel
	if settings.Level != "" {
		if err := level.Set(settings.Level); err != nil {
			return fmt.Errorf("logger: %w", err)
		}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(os.Stdout), level),
	}

	if settings.FileName != "" {
		if err := os.MkdirAll(filepath.Dir(settings.FileName), 0755); err != nil {
			return fmt.Errorf("logger: create log dir: %w", err)
		}
		// 按大小切分日志文件
		rotate := &lumberjack.Logger{
			Filename:   settings.FileName,
			MaxSize:    settings.MaxSize,
			MaxBackups: settings.MaxBackups,
			MaxAge:     settings.MaxAge,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(rotate), level))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	mu.Lock()
	old := logger
	logger = l
	mu.Unlock()
	_ = old.Sync()
	return nil
}

func get() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Sugar 返回printf风格的logger，gnet的WithLogger使用
func Sugar() *zap.SugaredLogger {
	return get().WithOptions(zap.AddCallerSkip(-1)).Sugar()
}

// Sync flushes buffered entries
func Sync() error {
	return get().Sync()
}

func Debug(v ...interface{}) {
	get().Debug(fmt.Sprint(v...))
}

func Info(v ...interface{}) {
	get().Info(fmt.Sprint(v...))
}

func Warn(v ...interface{}) {
	get().Warn(fmt.Sprint(v...))
}

func Error(v ...interface{}) {
	get().Error(fmt.Sprint(v...))
}

// With 返回附带字段的logger，用于需要结构化字段的地方
func With(fields ...zap.Field) *zap.Logger {
	return get().WithOptions(zap.AddCallerSkip(-1)).With(fields...)
}
