package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel определяет уровни логирования
type LogLevel int32

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает уровень из конфигурации; неизвестное значение даёт INFO
func ParseLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TRACE
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case TRACE, DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Options содержит параметры системы логирования
type Options struct {
	Level LogLevel // Минимальный уровень
	Dir   string   // Каталог для файла логов; пусто: только консоль
}

var (
	// До инициализации все сообщения отбрасываются
	rootLogger atomic.Pointer[zap.Logger]
	minLevel   atomic.Int32
	logFile    *os.File
	fileMu     sync.Mutex
)

func init() {
	rootLogger.Store(zap.NewNop())
	minLevel.Store(int32(INFO))
}

// InitDefaultLogger инициализирует систему логирования: консоль + (опционально) файл
func InitDefaultLogger(component string, opts Options) error {
	level := zap.NewAtomicLevelAt(opts.Level.zapLevel())

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stdout), level),
	}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return fmt.Errorf("ошибка создания директории %s: %w", opts.Dir, err)
		}

		// Файл для логов с временной меткой
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		filename := filepath.Join(opts.Dir, fmt.Sprintf("%s_%s.log", component, timestamp))
		file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("ошибка создания файла логов: %w", err)
		}

		fileMu.Lock()
		logFile = file
		fileMu.Unlock()

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(file),
			level,
		))
	}

	root := zap.New(zapcore.NewTee(cores...)).Named(component)
	minLevel.Store(int32(opts.Level))
	rootLogger.Store(root)
	return nil
}

// CloseDefaultLogger сбрасывает буферы и закрывает файл логов
func CloseDefaultLogger() {
	_ = rootLogger.Load().Sync()
	rootLogger.Store(zap.NewNop())

	fileMu.Lock()
	defer fileMu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Logger пишет от имени компонента поверх общего корневого zap-логгера.
// Подхватывает корневой логгер лениво, поэтому его можно создать до InitDefaultLogger.
type Logger struct {
	component string

	mu    sync.Mutex
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// NewLogger создаёт логгер компонента
func NewLogger(component string) *Logger {
	return &Logger{component: component}
}

// Component возвращает имя компонента
func (l *Logger) Component() string {
	return l.component
}

func (l *Logger) current() *zap.SugaredLogger {
	root := rootLogger.Load()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.base != root {
		l.base = root
		l.sugar = root.Named(l.component).Sugar()
	}
	return l.sugar
}

// Trace логирует сообщение уровня TRACE (пишется как debug с префиксом)
func (l *Logger) Trace(format string, args ...interface{}) {
	if LogLevel(minLevel.Load()) > TRACE {
		return
	}
	l.current().Debugf("[TRACE] "+format, args...)
}

// Debug логирует сообщение уровня DEBUG
func (l *Logger) Debug(format string, args ...interface{}) {
	l.current().Debugf(format, args...)
}

// Info логирует сообщение уровня INFO
func (l *Logger) Info(format string, args ...interface{}) {
	l.current().Infof(format, args...)
}

// Warn логирует сообщение уровня WARN
func (l *Logger) Warn(format string, args ...interface{}) {
	l.current().Warnf(format, args...)
}

// Error логирует сообщение уровня ERROR
func (l *Logger) Error(format string, args ...interface{}) {
	l.current().Errorf(format, args...)
}

// Глобальные функции для логов без компонента

var defaultLogger = NewLogger("main")

// Trace логирует сообщение уровня TRACE
func Trace(format string, args ...interface{}) { defaultLogger.Trace(format, args...) }

// Debug логирует сообщение уровня DEBUG
func Debug(format string, args ...interface{}) { defaultLogger.Debug(format, args...) }

// Info логирует сообщение уровня INFO
func Info(format string, args ...interface{}) { defaultLogger.Info(format, args...) }

// Warn логирует сообщение уровня WARN
func Warn(format string, args ...interface{}) { defaultLogger.Warn(format, args...) }

// Error логирует сообщение уровня ERROR
func Error(format string, args ...interface{}) { defaultLogger.Error(format, args...) }
