package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/countryclub/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	once sync.Once
	mu   sync.RWMutex
	base *zap.Logger
)

// Init 初始化全局日志
func Init(cfg *config.LogConfig) error {
	var err error
	once.Do(func() {
		var l *zap.Logger
		l, err = New(cfg)
		if err == nil {
			Replace(l)
		}
	})
	return err
}

// New 根据配置创建日志实例
func New(cfg *config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	var cores []zapcore.Core
	stdout := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)

	switch cfg.Output {
	case "file", "both":
		fw, err := fileWriter(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Output == "both" {
			cores = append(cores, stdout)
		}
		cores = append(cores, zapcore.NewCore(encoder, fw, level))
	default:
		cores = append(cores, stdout)
	}

	return zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

// fileWriter 使用lumberjack进行日志轮转
func fileWriter(cfg *config.LogConfig) (zapcore.WriteSyncer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0o755); err != nil {
		return nil, err
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}), nil
}

// Replace 替换全局日志实例，返回恢复函数
func Replace(l *zap.Logger) func() {
	mu.Lock()
	prev := base
	base = l
	mu.Unlock()
	return func() {
		mu.Lock()
		base = prev
		mu.Unlock()
	}
}

// Get 获取日志实例
func Get() *zap.Logger {
	mu.RLock()
	l := base
	mu.RUnlock()
	if l != nil {
		return l
	}
	l, _ = New(&config.LogConfig{Level: "debug", Format: "console", Output: "console"})
	mu.Lock()
	if base == nil {
		base = l
	}
	l = base
	mu.Unlock()
	return l
}

// Named 获取带模块名的日志实例
func Named(name string) *zap.Logger {
	return Get().Named(name)
}

// Sync 同步日志
func Sync() error {
	return Get().Sync()
}

// Debug 调试日志
func Debug(msg string, fields ...zap.Field) {
	Get().Debug(msg, fields...)
}

// Info 信息日志
func Info(msg string, fields ...zap.Field) {
	Get().Info(msg, fields...)
}

// Warn 警告日志
func Warn(msg string, fields ...zap.Field) {
	Get().Warn(msg, fields...)
}

// Error 错误日志
func Error(msg string, fields ...zap.Field) {
	Get().Error(msg, fields...)
}

// Fatal 致命错误日志
func Fatal(msg string, fields ...zap.Field) {
	Get().Fatal(msg, fields...)
}
