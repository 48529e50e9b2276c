package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultServiceName   = "mini-ozon"
	defaultLogDirName    = "logs"
	defaultLogFilename   = "app.log"
	defaultLogMaxSizeMB  = 100
	defaultLogMaxBackups = 7
	defaultLogMaxAgeDays = 30
)

// Options 日志输出配置
type Options struct {
	Service    string
	Console    bool // release 模式下同时输出到 stdout
	Dir        string
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func (o Options) normalized() Options {
	o.Service = strings.TrimSpace(o.Service)
	if o.Service == "" {
		o.Service = defaultServiceName
	}
	o.Filename = strings.TrimSpace(o.Filename)
	if o.Filename == "" {
		o.Filename = defaultLogFilename
	}
	o.Dir = strings.TrimSpace(o.Dir)
	if o.MaxSizeMB <= 0 {
		o.MaxSizeMB = defaultLogMaxSizeMB
	}
	if o.MaxBackups <= 0 {
		o.MaxBackups = defaultLogMaxBackups
	}
	if o.MaxAgeDays <= 0 {
		o.MaxAgeDays = defaultLogMaxAgeDays
	}
	return o
}

// L 全局结构化日志实例，未初始化时为 nil
var L *zap.Logger

// Init 初始化全局日志并替换 zap 全局实例
func Init(mode string, options Options) *zap.Logger {
	L = New(mode, options)
	zap.ReplaceGlobals(L)
	return L
}

// New 按运行模式创建日志：debug 输出彩色控制台，其余模式写 JSON 滚动文件
func New(mode string, options Options) *zap.Logger {
	options = options.normalized()
	encCfg := encoderConfig()

	var core zapcore.Core
	if strings.EqualFold(strings.TrimSpace(mode), "debug") {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stdout), zapcore.DebugLevel)
	} else {
		core = zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), releaseSink(options), zapcore.InfoLevel)
	}
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).
		With(zap.String("service", options.Service))
}

// releaseSink 文件不可写时退回 stdout
func releaseSink(options Options) zapcore.WriteSyncer {
	path, err := resolveLogFilePath(options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v, writing to stdout\n", err)
		return zapcore.Lock(os.Stdout)
	}
	file := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    options.MaxSizeMB,
		MaxBackups: options.MaxBackups,
		MaxAge:     options.MaxAgeDays,
		Compress:   options.Compress,
	})
	if options.Console {
		return zapcore.NewMultiWriteSyncer(file, zapcore.Lock(os.Stdout))
	}
	return file
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// resolveLogFilePath 创建日志目录并确认文件可写，Dir 为空时使用 ./logs
func resolveLogFilePath(options Options) (string, error) {
	options = options.normalized()
	dir := options.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve workdir: %w", err)
		}
		dir = filepath.Join(wd, defaultLogDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, options.Filename)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}
	return path, f.Close()
}

// Sync 刷新缓冲日志
func Sync() {
	if L != nil {
		_ = L.Sync()
	}
}

// StdLogger 供 http.Server.ErrorLog 等标准库接口使用
func StdLogger() *log.Logger {
	return zap.NewStdLog(current())
}

// current 未调用 Init 时使用 zap 全局实例（默认 no-op）
func current() *zap.Logger {
	if L != nil {
		return L
	}
	return zap.L()
}

// S 返回 SugaredLogger
func S() *zap.SugaredLogger {
	return current().Sugar()
}

// SW 返回携带键值字段的 SugaredLogger
func SW(kv ...interface{}) *zap.SugaredLogger {
	return S().With(kv...)
}

func Debugw(message string, kv ...interface{}) { S().Debugw(message, kv...) }

func Infow(message string, kv ...interface{}) { S().Infow(message, kv...) }

func Warnw(message string, kv ...interface{}) { S().Warnw(message, kv...) }

func Errorw(message string, kv ...interface{}) { S().Errorw(message, kv...) }
